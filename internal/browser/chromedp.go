package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

type chromedpSession struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	logger  *zap.Logger
}

func openChromedp(ctx context.Context, opts Options) (Session, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Start the browser now so launch failures surface here.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	opts.Logger.Debug("browser started", zap.String("driver", string(DriverChromedp)))
	return &chromedpSession{
		ctx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}, nil
}

// run executes actions under the session timeout, also stopping when the
// caller's ctx is done.
func (s *chromedpSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (s *chromedpSession) Navigate(ctx context.Context, url string) error {
	s.logger.Info("navigating", zap.String("url", url))
	if err := s.run(ctx, chromedp.Navigate(url), chromedp.WaitReady("body")); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (s *chromedpSession) HTML(ctx context.Context) (string, error) {
	var (
		html   string
		synced int
	)
	if err := s.run(ctx,
		chromedp.Evaluate("("+syncStateScript+")()", &synced),
		chromedp.OuterHTML("html", &html),
	); err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	s.logger.Debug("page snapshot", zap.Int("bytes", len(html)), zap.Int("fields", synced))
	return html, nil
}

func (s *chromedpSession) Apply(ctx context.Context, mutations []types.Mutation) (int, error) {
	if len(mutations) == 0 {
		return 0, nil
	}
	expr, err := replayExpression(mutations)
	if err != nil {
		return 0, err
	}
	var applied int
	if err := s.run(ctx, chromedp.Evaluate(expr, &applied)); err != nil {
		return 0, fmt.Errorf("failed to replay mutations: %w", err)
	}
	return applied, nil
}

func (s *chromedpSession) Close() error {
	s.cancel()
	return nil
}
