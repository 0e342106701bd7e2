package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/job-autofill/internal/autofill"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/strategy"
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

// FillOptions configures a live fill.
type FillOptions struct {
	IframeRecheckDelay time.Duration
	InFrame            bool
	Logger             *zap.Logger
}

// FillPage loads url in the session, runs one autofill pass over its snapshot
// and replays the writes in the page. When the first snapshot shows no
// embedded form the page is snapshotted again after IframeRecheckDelay, so a
// form frame injected late still blocks the fill.
func FillPage(ctx context.Context, s Session, url string, p *types.Profile, opts FillOptions) (types.FillReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := s.Navigate(ctx, url); err != nil {
		return types.FillReport{}, err
	}
	doc, err := snapshot(ctx, s)
	if err != nil {
		return types.FillReport{}, err
	}

	if len(strategy.EmbeddedForms(doc)) == 0 && opts.IframeRecheckDelay > 0 {
		select {
		case <-time.After(opts.IframeRecheckDelay):
		case <-ctx.Done():
			return types.FillReport{}, ctx.Err()
		}
		if doc, err = snapshot(ctx, s); err != nil {
			return types.FillReport{}, err
		}
		if forms := strategy.EmbeddedForms(doc); len(forms) > 0 {
			logger.Info("embedded application form appeared after load", zap.Strings("frames", forms))
		}
	}

	report, err := autofill.Run(ctx, autofill.Page{Doc: doc, URL: url, InFrame: opts.InFrame}, p, logger)
	if err != nil {
		return report, err
	}

	applied, err := s.Apply(ctx, report.Mutations)
	if err != nil {
		return report, err
	}
	if applied != len(report.Mutations) {
		logger.Warn("some writes were not replayed",
			zap.Int("planned", len(report.Mutations)),
			zap.Int("applied", applied))
	}
	return report, nil
}

func snapshot(ctx context.Context, s Session) (*dom.Document, error) {
	html, err := s.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot page: %w", err)
	}
	return doc, nil
}

// IsBlocked reports whether err means the form must be filled from inside
// its embedded frame.
func IsBlocked(err error) bool {
	var blocked *autofill.BlockedContextError
	return errors.As(err, &blocked)
}
