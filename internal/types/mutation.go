package types

import "github.com/google/uuid"

// EventKind is a DOM event raised after a write.
type EventKind string

const (
	EventInput  EventKind = "input"
	EventChange EventKind = "change"
	EventBlur   EventKind = "blur"
)

// ValueEvents is the notification sequence raised after a value write.
var ValueEvents = []EventKind{EventInput, EventChange, EventBlur}

// CheckEvents is the notification sequence raised after a checkbox is checked.
var CheckEvents = []EventKind{EventChange}

// MutationKind distinguishes value writes from checkbox toggles.
type MutationKind string

const (
	MutationSetValue MutationKind = "set_value"
	MutationCheck    MutationKind = "check"
)

// Mutation records one field write. Locator is the field's position among the
// page's input, textarea and select elements at snapshot time, which lets a
// live adapter replay the write against the same element.
type Mutation struct {
	Locator int          `json:"locator"`
	Tag     string       `json:"tag"`
	Name    string       `json:"name,omitempty"`
	ID      string       `json:"id,omitempty"`
	Kind    MutationKind `json:"kind"`
	Value   string       `json:"value,omitempty"`
	Events  []EventKind  `json:"events"`
	Source  string       `json:"source"`
}

// FillReport summarizes one autofill pass.
type FillReport struct {
	PassID      uuid.UUID  `json:"pass_id"`
	Platform    string     `json:"platform"`
	InFrame     bool       `json:"in_frame"`
	FieldCount  int        `json:"field_count"`
	Mutations   []Mutation `json:"mutations"`
	Instruction string     `json:"instruction,omitempty"`
	EmbeddedURL string     `json:"embedded_url,omitempty"`
	Fault       string     `json:"fault,omitempty"`
}
