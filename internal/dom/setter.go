package dom

import (
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

// Intent is a write a rule or strategy wants performed. Producing an Intent has
// no side effects; only Setter.Apply touches the document.
type Intent struct {
	Field  *Field
	Kind   types.MutationKind
	Value  string
	Source string
}

// SetValue describes a value write.
func SetValue(f *Field, value, source string) Intent {
	return Intent{Field: f, Kind: types.MutationSetValue, Value: value, Source: source}
}

// Check describes checking a checkbox.
func Check(f *Field, source string) Intent {
	return Intent{Field: f, Kind: types.MutationCheck, Source: source}
}

// Setter is the only mutation primitive. Every applied write is journaled
// together with the event sequence a live page must see.
type Setter struct {
	logger  *zap.Logger
	journal []types.Mutation
}

// NewSetter creates a Setter. A nil logger disables logging.
func NewSetter(logger *zap.Logger) *Setter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Setter{logger: logger}
}

// Apply performs the intent and reports whether the document changed. It is a
// no-op when the field is missing, the value is empty, the field already holds
// the value, or a select has no option carrying the value.
func (s *Setter) Apply(in Intent) bool {
	f := in.Field
	if f == nil {
		return false
	}

	if in.Kind == types.MutationCheck {
		if f.Checked() {
			return false
		}
		f.setChecked()
		s.record(in, types.CheckEvents)
		return true
	}

	if in.Value == "" || f.Value() == in.Value {
		return false
	}
	if f.IsSelect() && !f.HasOption(in.Value) {
		s.logger.Debug("select has no option for value",
			zap.Int("locator", f.Index()),
			zap.String("value", in.Value))
		return false
	}

	f.setValue(in.Value)
	s.record(in, types.ValueEvents)
	return true
}

func (s *Setter) record(in Intent, events []types.EventKind) {
	f := in.Field
	m := types.Mutation{
		Locator: f.Index(),
		Tag:     f.Tag(),
		Name:    f.Name(),
		ID:      f.ID(),
		Kind:    in.Kind,
		Value:   in.Value,
		Events:  append([]types.EventKind(nil), events...),
		Source:  in.Source,
	}
	s.journal = append(s.journal, m)
	s.logger.Debug("field written",
		zap.String("source", in.Source),
		zap.Int("locator", m.Locator),
		zap.String("name", m.Name),
		zap.String("kind", string(m.Kind)))
}

// Journal returns the writes applied so far, in order.
func (s *Setter) Journal() []types.Mutation {
	out := make([]types.Mutation, len(s.journal))
	copy(out, s.journal)
	return out
}

// Count returns the number of writes applied so far.
func (s *Setter) Count() int {
	return len(s.journal)
}
