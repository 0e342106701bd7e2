// Package workexp fills repeating work-experience blocks from the profile's
// enabled entries. Two detection strategies run back to back: indexed markup
// (experience[0].title and similar) and sections detected by container
// attributes. Both may write the same logical value through different paths.
package workexp

import (
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

// Result summarizes one fill.
type Result struct {
	Enabled  int
	Total    int
	Sections int
	Written  int
}

// Filler writes entries through a shared Setter.
type Filler struct {
	setter *dom.Setter
	logger *zap.Logger
}

// NewFiller creates a Filler. A nil setter gets a fresh one.
func NewFiller(setter *dom.Setter, logger *zap.Logger) *Filler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if setter == nil {
		setter = dom.NewSetter(logger)
	}
	return &Filler{setter: setter, logger: logger}
}

// Fill runs both strategies over the profile's enabled entries. Entry i of
// the enabled subset always maps to block i; disabled entries take no slot.
func (fl *Filler) Fill(doc *dom.Document, p *types.Profile) Result {
	if p == nil || len(p.WorkExperience) == 0 {
		return Result{}
	}
	entries := p.EnabledExperience()
	res := Result{Enabled: len(entries), Total: len(p.WorkExperience)}
	if len(entries) == 0 {
		fl.logger.Info("no enabled work experience entries", zap.Int("total", res.Total))
		return res
	}
	fl.logger.Info("filling work experience",
		zap.Int("enabled", res.Enabled),
		zap.Int("total", res.Total))

	res.Written = fl.FillIndexed(doc, entries)
	sections, written := fl.FillSections(doc, p, entries)
	res.Sections = sections
	res.Written += written
	return res
}
