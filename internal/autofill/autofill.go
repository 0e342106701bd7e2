// Package autofill is the trigger surface: it detects the execution context of
// a page, dispatches the matching strategy and reports every write made.
package autofill

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/strategy"
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

// BlockedInstruction is shown when the application form is embedded from
// another origin.
const BlockedInstruction = "Please scroll down to the application form in the iframe and run the autofill from inside the form."

func blockedInstruction(embeddedURL string) string {
	if embeddedURL == "" {
		return BlockedInstruction
	}
	return fmt.Sprintf("%s Form: %s", BlockedInstruction, embeddedURL)
}

// dispatch runs the strategy for platform. Tests replace it to inject faults.
var dispatch = func(setter *dom.Setter, logger *zap.Logger, platform strategy.Platform, doc *dom.Document, p *types.Profile) strategy.Result {
	return strategy.NewRunner(setter, logger).Run(platform, doc, p)
}

// Page is one document to fill and where it came from.
type Page struct {
	Doc     *dom.Document
	URL     string
	InFrame bool
}

// Environment derives the execution context of a page.
func (pg Page) Environment() strategy.Environment {
	return strategy.Environment{
		Host:          strategy.HostOf(pg.URL),
		InFrame:       pg.InFrame,
		EmbeddedForms: strategy.EmbeddedForms(pg.Doc),
	}
}

// Run performs one fill pass over page. A page that embeds a cross-origin
// form is not written and yields a *BlockedContextError along with a report
// carrying the instruction. A panic inside any strategy is recovered: the
// report keeps the writes made before it and records the fault.
func Run(ctx context.Context, page Page, p *types.Profile, logger *zap.Logger) (report types.FillReport, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if page.Doc == nil {
		return report, errors.New("autofill: page has no document")
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if p == nil {
		p = &types.Profile{}
	}

	env := page.Environment()
	decision := strategy.Decide(env)

	report = types.FillReport{
		PassID:     uuid.New(),
		Platform:   string(decision.Platform),
		InFrame:    env.InFrame,
		FieldCount: page.Doc.Len(),
		Mutations:  []types.Mutation{},
	}
	logger = logger.With(zap.String("pass_id", report.PassID.String()))

	if decision.Blocked {
		logger.Info("application form is embedded in a frame",
			zap.String("embedded_url", decision.EmbeddedURL))
		report.Instruction = blockedInstruction(decision.EmbeddedURL)
		report.EmbeddedURL = decision.EmbeddedURL
		return report, &BlockedContextError{
			Message:     "form is embedded from another origin",
			EmbeddedURL: decision.EmbeddedURL,
			Instruction: report.Instruction,
		}
	}

	setter := dom.NewSetter(logger)
	defer func() {
		report.Mutations = setter.Journal()
		if r := recover(); r != nil {
			fault := &FaultError{Message: fmt.Sprint(r)}
			logger.Error("autofill pass failed",
				zap.Error(fault),
				zap.Int("writes_kept", len(report.Mutations)))
			report.Fault = fault.Error()
		}
	}()

	res := dispatch(setter, logger, decision.Platform, page.Doc, p)
	logger.Info("autofill pass complete",
		zap.String("platform", string(res.Platform)),
		zap.Int("direct", res.Direct),
		zap.Int("rules", res.Rules.Written),
		zap.Int("experience", res.Experience.Written))
	return report, nil
}
