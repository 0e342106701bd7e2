package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Candidate is one ranked way of locating a field.
type Candidate struct {
	Name string
	Find func(d *Document) *Field
}

// Lookup returns the field found by the first candidate that finds one, along
// with that candidate's name. A miss on every candidate returns nil.
func Lookup(d *Document, candidates ...Candidate) (*Field, string) {
	for _, c := range candidates {
		if f := c.Find(d); f != nil {
			return f, c.Name
		}
	}
	return nil, ""
}

// BySelector locates the first snapshot field matching a CSS selector.
func BySelector(selector string) Candidate {
	return Candidate{
		Name: selector,
		Find: func(d *Document) *Field {
			return d.Find(selector)
		},
	}
}

// ByPlaceholder locates the first field with the given tag whose placeholder
// contains text, ignoring case.
func ByPlaceholder(tag, text string) Candidate {
	needle := strings.ToLower(text)
	return Candidate{
		Name: tag + "[placeholder*=" + text + " i]",
		Find: func(d *Document) *Field {
			for _, f := range d.fields {
				if f.Tag() == tag && strings.Contains(strings.ToLower(f.Placeholder()), needle) {
					return f
				}
			}
			return nil
		},
	}
}

// ByContainer locates the element matching selector and resolves it to a
// control: the element itself when it is one, else its first descendant
// input, textarea or select.
func ByContainer(selector string) Candidate {
	return Candidate{
		Name: selector,
		Find: func(d *Document) *Field {
			base := d.root.Find(selector).First()
			if base.Length() == 0 {
				return nil
			}
			return d.Control(base)
		},
	}
}

// Control resolves a selection to a snapshot control.
func (d *Document) Control(sel *goquery.Selection) *Field {
	if sel.Length() == 0 {
		return nil
	}
	if f := d.byNode[sel.Nodes[0]]; f != nil {
		return f
	}
	for _, n := range sel.Find(FieldSelector).Nodes {
		if f := d.byNode[n]; f != nil {
			return f
		}
	}
	return nil
}
