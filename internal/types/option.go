package types

// SelectOption is one (value, display text) pair of a select element.
type SelectOption struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}
