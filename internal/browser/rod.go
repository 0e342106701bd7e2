package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	timeout  time.Duration
	logger   *zap.Logger
}

func openRod(ctx context.Context, opts Options) (Session, error) {
	l := launcher.New().Headless(opts.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(context.WithoutCancel(ctx))
	page, err := attachRod(l, browser)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("browser started", zap.String("driver", string(DriverRod)))
	return &rodSession{launcher: l, browser: browser, page: page, timeout: opts.Timeout, logger: opts.Logger}, nil
}

// attachRod connects browser and opens a blank page, killing proc when either
// step fails.
func attachRod(proc interface{ Kill() }, browser *rod.Browser) (*rod.Page, error) {
	if err := browser.Connect(); err != nil {
		proc.Kill()
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		proc.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return page, nil
}

func (s *rodSession) scoped(ctx context.Context) *rod.Page {
	return s.page.Context(ctx).Timeout(s.timeout)
}

func (s *rodSession) Navigate(ctx context.Context, url string) error {
	s.logger.Info("navigating", zap.String("url", url))
	page := s.scoped(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page did not load: %w", err)
	}
	return nil
}

func (s *rodSession) HTML(ctx context.Context) (string, error) {
	page := s.scoped(ctx)
	res, err := page.Evaluate(rod.Eval(syncStateScript))
	if err != nil {
		return "", fmt.Errorf("failed to sync form state: %w", err)
	}
	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	s.logger.Debug("page snapshot", zap.Int("bytes", len(html)), zap.Int("fields", res.Value.Int()))
	return html, nil
}

func (s *rodSession) Apply(ctx context.Context, mutations []types.Mutation) (int, error) {
	if len(mutations) == 0 {
		return 0, nil
	}
	res, err := s.scoped(ctx).Evaluate(rod.Eval(replayScript, mutations))
	if err != nil {
		return 0, fmt.Errorf("failed to replay mutations: %w", err)
	}
	return res.Value.Int(), nil
}

func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}
