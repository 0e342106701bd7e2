package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedLabelElements hold text that is not part of a label's caption.
var skippedLabelElements = map[string]bool{
	"select":   true,
	"textarea": true,
	"option":   true,
	"script":   true,
	"style":    true,
	"template": true,
}

// Label returns the caption text associated with the field: a label whose
// for attribute names the field's id, else the nearest enclosing label.
func (f *Field) Label() string {
	if id := f.ID(); id != "" {
		label := f.doc.root.Find("label").FilterFunction(func(_ int, s *goquery.Selection) bool {
			v, _ := s.Attr("for")
			return v == id
		}).First()
		if label.Length() > 0 {
			return labelText(label.Nodes[0])
		}
	}
	if parent := f.sel.Closest("label"); parent.Length() > 0 {
		return labelText(parent.Nodes[0])
	}
	return ""
}

// Hint builds the field's lowercase signature from tag, type, name, id,
// placeholder and label text. Missing parts contribute empty segments.
func (f *Field) Hint() string {
	parts := []string{
		f.Tag(),
		f.Type(),
		f.Name(),
		f.ID(),
		f.Placeholder(),
		f.Label(),
	}
	return strings.TrimSpace(strings.ToLower(strings.Join(parts, " ")))
}

func labelText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		case html.ElementNode:
			if skippedLabelElements[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
