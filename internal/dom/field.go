package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/job-autofill/internal/types"
	"golang.org/x/net/html"
)

// nonTextInputTypes are input types that never hold a typed value.
var nonTextInputTypes = map[string]bool{
	"checkbox": true,
	"radio":    true,
	"file":     true,
	"submit":   true,
	"button":   true,
	"reset":    true,
	"image":    true,
}

// Field is a live view of one snapshotted form control. Reads always reflect
// writes made through a Setter earlier in the same pass.
type Field struct {
	sel   *goquery.Selection
	node  *html.Node
	index int
	doc   *Document
}

// Index is the field's position in the snapshot.
func (f *Field) Index() int { return f.index }

// Selection returns the goquery selection wrapping the field.
func (f *Field) Selection() *goquery.Selection { return f.sel }

// Tag returns the lowercase element name.
func (f *Field) Tag() string { return strings.ToLower(f.node.Data) }

// Attr returns an attribute value, or "" when absent.
func (f *Field) Attr(name string) string {
	v, _ := f.sel.Attr(name)
	return v
}

// Name returns the name attribute.
func (f *Field) Name() string { return f.Attr("name") }

// ID returns the id attribute.
func (f *Field) ID() string { return f.Attr("id") }

// Placeholder returns the placeholder attribute.
func (f *Field) Placeholder() string { return f.Attr("placeholder") }

// Type mirrors the DOM type property: inputs default to "text", textareas
// report "textarea" and selects "select-one" or "select-multiple".
func (f *Field) Type() string {
	switch f.Tag() {
	case "textarea":
		return "textarea"
	case "select":
		if _, multiple := f.sel.Attr("multiple"); multiple {
			return "select-multiple"
		}
		return "select-one"
	}
	t := strings.ToLower(strings.TrimSpace(f.Attr("type")))
	if t == "" {
		return "text"
	}
	return t
}

// IsInput reports whether the field is an input element.
func (f *Field) IsInput() bool { return f.Tag() == "input" }

// IsTextarea reports whether the field is a multi-line text field.
func (f *Field) IsTextarea() bool { return f.Tag() == "textarea" }

// IsSelect reports whether the field is a select element.
func (f *Field) IsSelect() bool { return f.Tag() == "select" }

// IsCheckbox reports whether the field is a checkbox input.
func (f *Field) IsCheckbox() bool { return f.IsInput() && f.Type() == "checkbox" }

// Fillable reports whether the field can hold a typed or selected value.
// Buttons, file pickers, checkboxes and radios are excluded.
func (f *Field) Fillable() bool {
	if f.IsInput() {
		return !nonTextInputTypes[f.Type()]
	}
	return f.IsTextarea() || f.IsSelect()
}

// Value mirrors the DOM value property.
func (f *Field) Value() string {
	switch f.Tag() {
	case "textarea":
		return f.sel.Text()
	case "select":
		return f.selectValue()
	}
	v, ok := f.sel.Attr("value")
	if !ok && (f.Type() == "checkbox" || f.Type() == "radio") {
		return "on"
	}
	return v
}

// IsEmpty reports whether the field currently holds no value.
func (f *Field) IsEmpty() bool { return f.Value() == "" }

// Checked reports whether a checkbox or radio is checked.
func (f *Field) Checked() bool {
	_, ok := f.sel.Attr("checked")
	return ok
}

// Options returns the select's options in document order.
func (f *Field) Options() []types.SelectOption {
	if !f.IsSelect() {
		return nil
	}
	var opts []types.SelectOption
	f.sel.Find("option").Each(func(_ int, s *goquery.Selection) {
		opts = append(opts, types.SelectOption{
			Value: optionValue(s),
			Text:  strings.TrimSpace(s.Text()),
		})
	})
	return opts
}

// HasOption reports whether any option carries value.
func (f *Field) HasOption(value string) bool {
	for _, opt := range f.Options() {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func (f *Field) selectValue() string {
	options := f.sel.Find("option")
	if options.Length() == 0 {
		return ""
	}
	selected := options.FilterFunction(func(_ int, s *goquery.Selection) bool {
		_, ok := s.Attr("selected")
		return ok
	})
	if selected.Length() > 0 {
		return optionValue(selected.Last())
	}
	if f.Type() == "select-multiple" {
		return ""
	}
	return optionValue(options.First())
}

// optionValue follows the DOM rule: the value attribute, else the text with
// whitespace stripped and collapsed.
func optionValue(s *goquery.Selection) string {
	if v, ok := s.Attr("value"); ok {
		return v
	}
	return strings.Join(strings.Fields(s.Text()), " ")
}

func (f *Field) setValue(value string) {
	switch f.Tag() {
	case "textarea":
		for c := f.node.FirstChild; c != nil; {
			next := c.NextSibling
			f.node.RemoveChild(c)
			c = next
		}
		f.node.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	case "select":
		matched := false
		f.sel.Find("option").Each(func(_ int, s *goquery.Selection) {
			s.RemoveAttr("selected")
			if !matched && optionValue(s) == value {
				s.SetAttr("selected", "selected")
				matched = true
			}
		})
	default:
		f.sel.SetAttr("value", value)
	}
}

func (f *Field) setChecked() {
	f.sel.SetAttr("checked", "checked")
}
