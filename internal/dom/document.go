// Package dom provides an in-memory page model for autofill: a snapshot of the
// page's form controls, the hint builder, the value setter, and ranked
// lookups over the snapshot.
package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FieldSelector selects every form control the engine may classify.
const FieldSelector = "input, textarea, select"

// Document is a parsed page plus the field snapshot taken when it was built.
// Controls inserted afterwards are not part of the snapshot.
type Document struct {
	root   *goquery.Document
	fields []*Field
	byNode map[*html.Node]*Field
}

// Parse builds a Document from raw HTML.
func Parse(raw string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML", Cause: err}
	}
	return NewDocument(doc), nil
}

// NewDocument snapshots the form controls of an already parsed document.
func NewDocument(doc *goquery.Document) *Document {
	d := &Document{
		root:   doc,
		byNode: make(map[*html.Node]*Field),
	}
	doc.Find(FieldSelector).Each(func(i int, s *goquery.Selection) {
		f := &Field{sel: s, node: s.Nodes[0], index: i, doc: d}
		d.fields = append(d.fields, f)
		d.byNode[f.node] = f
	})
	return d
}

// Fields returns the snapshot in document order.
func (d *Document) Fields() []*Field {
	out := make([]*Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Len returns the number of snapshotted fields.
func (d *Document) Len() int {
	return len(d.fields)
}

// Root exposes the underlying goquery document for container queries.
func (d *Document) Root() *goquery.Document {
	return d.root
}

// FieldOf maps a node back to its snapshot field, or nil if the node is not a
// snapshotted control.
func (d *Document) FieldOf(n *html.Node) *Field {
	return d.byNode[n]
}

// FindAll returns the snapshot fields matching selector, in document order.
func (d *Document) FindAll(selector string) []*Field {
	return d.FieldsIn(d.root.Find(selector))
}

// Find returns the first snapshot field matching selector, or nil.
func (d *Document) Find(selector string) *Field {
	for _, n := range d.root.Find(selector).Nodes {
		if f := d.byNode[n]; f != nil {
			return f
		}
	}
	return nil
}

// FieldsIn returns the snapshot fields among the selection's nodes.
func (d *Document) FieldsIn(sel *goquery.Selection) []*Field {
	var out []*Field
	for _, n := range sel.Nodes {
		if f := d.byNode[n]; f != nil {
			out = append(out, f)
		}
	}
	return out
}

// FieldsWithin returns the snapshot fields that are descendants of container
// and match selector.
func (d *Document) FieldsWithin(container *goquery.Selection, selector string) []*Field {
	return d.FieldsIn(container.Find(selector))
}

// HTML renders the current state of the document, including every write made
// through a Setter.
func (d *Document) HTML() (string, error) {
	return d.root.Html()
}
