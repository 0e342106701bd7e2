package strategy

import (
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/match"
	"github.com/jonathan/job-autofill/internal/rules"
	"github.com/jonathan/job-autofill/internal/types"
	"github.com/jonathan/job-autofill/internal/workexp"
	"go.uber.org/zap"
)

// Result summarizes one strategy run.
type Result struct {
	Platform   Platform
	Direct     int
	Rules      rules.Result
	Experience workexp.Result
}

// Written is the total number of writes across every stage.
func (r Result) Written() int {
	return r.Direct + r.Rules.Written + r.Experience.Written
}

// site fills the platform's known fields and returns how many it wrote.
type site func(r *Runner, doc *dom.Document, p *types.Profile) int

var sites = map[Platform]site{
	PlatformGreenhouse: fillGreenhouse,
	PlatformWorkday:    fillWorkday,
	PlatformLever:      fillLever,
}

// Runner executes strategies against one document through a shared Setter.
type Runner struct {
	setter  *dom.Setter
	logger  *zap.Logger
	engine  *rules.Engine
	workexp *workexp.Filler
}

// NewRunner creates a Runner writing through setter.
func NewRunner(setter *dom.Setter, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if setter == nil {
		setter = dom.NewSetter(logger)
	}
	return &Runner{
		setter:  setter,
		logger:  logger,
		engine:  rules.NewEngine(setter, logger),
		workexp: workexp.NewFiller(setter, logger),
	}
}

// Run fills doc using the strategy for platform. Site strategies run the rule
// engine in backfill mode after their direct lookups; the generic strategy
// runs it in overwrite-allowed mode. Work experience is filled last in both.
func (r *Runner) Run(platform Platform, doc *dom.Document, p *types.Profile) Result {
	res := Result{Platform: platform}
	fill, ok := sites[platform]
	if !ok {
		res.Platform = PlatformGeneric
	}
	r.logger.Info("running strategy", zap.String("platform", string(res.Platform)))

	if ok {
		res.Direct = fill(r, doc, p)
	}
	res.Rules = r.engine.Run(doc, p, rules.Options{Backfill: ok})
	res.Experience = r.workexp.Fill(doc, p)
	return res
}

// direct writes value into f when f exists and is empty. Selects resolve
// through the generic option tiers.
func (r *Runner) direct(f *dom.Field, value, source string) int {
	if f == nil || value == "" || !f.IsEmpty() {
		return 0
	}
	in, ok := rules.ValueIntent(f, value)
	if !ok {
		r.logger.Debug("no option for direct write",
			zap.String("source", source),
			zap.String("value", value))
		return 0
	}
	in.Source = source
	if r.setter.Apply(in) {
		return 1
	}
	return 0
}

// directState writes a US state, resolving selects through the state tiers.
func (r *Runner) directState(f *dom.Field, value, source string) int {
	if f == nil || value == "" || !f.IsEmpty() {
		return 0
	}
	if !f.IsSelect() {
		return r.direct(f, value, source)
	}
	opt, tier, ok := match.State(value, f.Options())
	if !ok {
		r.logger.Debug("state not found in select", zap.String("state", value))
		return 0
	}
	r.logger.Debug("state option matched", zap.String("value", opt.Value), zap.String("tier", tier))
	if r.setter.Apply(dom.SetValue(f, opt.Value, source)) {
		return 1
	}
	return 0
}
