package rules

import (
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

// Options controls one engine run.
type Options struct {
	// Backfill skips any field that already holds a value when the run starts,
	// so values written by a site strategy are never revisited.
	Backfill bool
}

// Result summarizes one engine run.
type Result struct {
	Scanned int
	Written int
	ByRule  map[string]int
}

// Engine walks a document's field snapshot and applies the first rule that
// produces a write for each field.
type Engine struct {
	rules  []Rule
	setter *dom.Setter
	logger *zap.Logger
}

// NewEngine creates an engine writing through setter. With no rules given the
// Default table is used.
func NewEngine(setter *dom.Setter, logger *zap.Logger, rules ...Rule) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if setter == nil {
		setter = dom.NewSetter(logger)
	}
	if len(rules) == 0 {
		rules = Default
	}
	return &Engine{rules: rules, setter: setter, logger: logger}
}

// Classify returns the intended write for f from the first rule that yields
// one, without touching the document.
func (e *Engine) Classify(f *dom.Field, p *types.Profile) (dom.Intent, bool) {
	c := Context{Field: f, Hint: f.Hint(), Profile: p, Logger: e.logger}
	for _, r := range e.rules {
		if in, ok := r.Evaluate(c); ok {
			return in, true
		}
	}
	return dom.Intent{}, false
}

// Run classifies every field of the snapshot in document order.
func (e *Engine) Run(doc *dom.Document, p *types.Profile, opts Options) Result {
	fields := doc.Fields()
	e.logger.Info("classifying fields",
		zap.Int("count", len(fields)),
		zap.Bool("backfill", opts.Backfill))
	return e.RunFields(fields, p, opts)
}

// RunFields classifies the given fields in order.
func (e *Engine) RunFields(fields []*dom.Field, p *types.Profile, opts Options) Result {
	res := Result{ByRule: make(map[string]int)}
	if p == nil {
		return res
	}

	for _, f := range fields {
		if opts.Backfill && !f.IsEmpty() {
			continue
		}
		res.Scanned++
		in, ok := e.Classify(f, p)
		if !ok {
			continue
		}
		if e.setter.Apply(in) {
			res.Written++
			res.ByRule[in.Source]++
		}
	}
	return res
}
