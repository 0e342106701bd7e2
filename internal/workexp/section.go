package workexp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/rules"
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// SectionSelector locates candidate work-experience containers.
const SectionSelector = `[class*="experience"], [id*="experience"], [data-section*="experience"]`

// Vocabulary for matching fields inside a detected section.
var (
	titleVocab       = regexp.MustCompile(`title|position|role|job`)
	titleExclude     = regexp.MustCompile(`company`)
	companyVocab     = regexp.MustCompile(`company|employer|organization`)
	locationVocab    = regexp.MustCompile(`location|city|place`)
	startVocab       = regexp.MustCompile(`start.*date|from.*date|begin.*date`)
	endVocab         = regexp.MustCompile(`end.*date|to.*date|until.*date`)
	descriptionVocab = regexp.MustCompile(`description|responsibilities|duties|role|achievement`)
)

// DetectSections returns the containers that look like one work-experience
// block each, in document order. A container qualifies when it holds a
// title-like or company-like field. A qualifying container that wraps two or
// more complete blocks (each with both a title and a company field) is a list
// wrapper and is skipped; per-field wrappers never displace their block.
func DetectSections(doc *dom.Document) []*goquery.Selection {
	var qualifying, complete []*html.Node
	doc.Root().Find(SectionSelector).Each(func(_ int, s *goquery.Selection) {
		title, company := hasKeyedField(s, "title"), hasKeyedField(s, "company")
		if !title && !company {
			return
		}
		qualifying = append(qualifying, s.Nodes[0])
		if title && company {
			complete = append(complete, s.Nodes[0])
		}
	})

	var sections []*goquery.Selection
	for _, n := range qualifying {
		if countDescendants(n, complete) >= 2 {
			continue
		}
		sections = append(sections, doc.Root().FindNodes(n))
	}
	return sections
}

// hasKeyedField reports whether the container holds an element whose name
// contains key or whose placeholder contains key in any case.
func hasKeyedField(container *goquery.Selection, key string) bool {
	if container.Find(`[name*="` + key + `"]`).Length() > 0 {
		return true
	}
	found := false
	container.Find("[placeholder]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		placeholder, _ := s.Attr("placeholder")
		found = strings.Contains(strings.ToLower(placeholder), key)
		return !found
	})
	return found
}

func countDescendants(n *html.Node, others []*html.Node) int {
	count := 0
	for _, o := range others {
		if o != n && isAncestor(n, o) {
			count++
		}
	}
	return count
}

func isAncestor(ancestor, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// sectionRules builds the per-block rule table for one entry. The vocabulary
// mirrors the generic rules, scoped to a single block.
func sectionRules(i int, exp types.WorkExperience) []rules.Rule {
	name := func(field string) string { return fmt.Sprintf("experience[%d].%s", i, field) }
	write := func(value string) rules.Action {
		return func(c rules.Context) (dom.Intent, bool) {
			if value == "" {
				return dom.Intent{}, false
			}
			return dom.SetValue(c.Field, value, ""), true
		}
	}

	rs := []rules.Rule{
		{Name: name("title"), Kind: rules.AnyFillable, Vocab: titleVocab, Exclude: titleExclude, Action: write(exp.Title)},
		{Name: name("company"), Kind: rules.AnyFillable, Vocab: companyVocab, Action: write(exp.Company)},
		{Name: name("location"), Kind: rules.AnyFillable, Vocab: locationVocab, Action: write(exp.Location)},
		{Name: name("startDate"), Kind: rules.AnyFillable, Vocab: startVocab, Action: write(exp.StartDate)},
	}
	if !exp.Current {
		rs = append(rs, rules.Rule{Name: name("endDate"), Kind: rules.AnyFillable, Vocab: endVocab, Action: write(exp.EndDate)})
	}
	return append(rs, rules.Rule{Name: name("description"), Kind: rules.MultiLine, Vocab: descriptionVocab, Action: write(exp.Description)})
}

// FillSections pairs detected blocks with entries in document order and fills
// each block from its entry. Blocks beyond the entry count are ignored.
func (fl *Filler) FillSections(doc *dom.Document, p *types.Profile, entries []types.WorkExperience) (int, int) {
	sections := DetectSections(doc)
	fl.logger.Info("work experience sections detected", zap.Int("count", len(sections)))

	written := 0
	for i, section := range sections {
		if i >= len(entries) {
			break
		}
		exp := entries[i]

		fields := doc.FieldsWithin(section, "input, textarea")
		engine := rules.NewEngine(fl.setter, fl.logger, sectionRules(i, exp)...)
		written += engine.RunFields(fields, p, rules.Options{Backfill: true}).Written

		if exp.Current {
			box := doc.FieldsWithin(section, `input[type="checkbox"][name*="current"], input[type="checkbox"][name*="present"]`)
			if len(box) > 0 && fl.setter.Apply(dom.Check(box[0], fmt.Sprintf("experience[%d].current", i))) {
				written++
			}
		}
	}
	return len(sections), written
}
