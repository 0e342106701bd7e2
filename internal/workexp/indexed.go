package workexp

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

// probe is one logical sub-field of an entry and the attribute patterns that
// may name it in indexed markup.
type probe struct {
	field    string
	patterns []string
	exclude  *regexp.Regexp
	value    func(exp types.WorkExperience) string
	when     func(exp types.WorkExperience) bool
	check    bool
}

var descriptionNames = regexp.MustCompile(`(?i)description|responsibilit|duties|achievement`)

// probes are tried in this order for every entry.
var probes = []probe{
	{
		field:    "title",
		patterns: []string{"title", "job.?title", "position", "role"},
		exclude:  descriptionNames,
		value:    func(exp types.WorkExperience) string { return exp.Title },
	},
	{
		field:    "company",
		patterns: []string{"company", "companyname", "employer", "organization"},
		value:    func(exp types.WorkExperience) string { return exp.Company },
	},
	{
		field:    "location",
		patterns: []string{"location", "city", "place"},
		value:    func(exp types.WorkExperience) string { return exp.Location },
	},
	{
		field:    "startDate",
		patterns: []string{"startdate", "from.*date", "start", "begin.*date"},
		value:    func(exp types.WorkExperience) string { return exp.StartDate },
	},
	{
		field:    "endDate",
		patterns: []string{"enddate", "to.*date", "end", "until.*date"},
		value:    func(exp types.WorkExperience) string { return exp.EndDate },
		when:     func(exp types.WorkExperience) bool { return !exp.Current },
	},
	{
		field:    "current",
		patterns: []string{"current", "present", "currentlywork"},
		when:     func(exp types.WorkExperience) bool { return exp.Current },
		check:    true,
	},
	{
		field:    "description",
		patterns: []string{"description", "roledescription", "responsibilities", "duties", "achievements"},
		value:    func(exp types.WorkExperience) string { return exp.Description },
	},
}

// matcher tests one indexed-markup convention against a field.
type matcher func(f *dom.Field) bool

// templates returns the indexed-markup conventions for entry i and pattern.
// The loose "experience + pattern + index" form is not used for checkboxes.
func templates(i int, pattern string, checkbox bool) []matcher {
	idx := strconv.Itoa(i)
	pat := regexp.MustCompile(`(?i)` + pattern)
	bracketDot := regexp.MustCompile(`(?i)\[` + idx + `\]\.(?:` + pattern + `)`)
	bracketPair := regexp.MustCompile(`(?i)\[` + idx + `\]\[(?:` + pattern + `)\]`)
	dotted := regexp.MustCompile(`(?i)(?:^|\D)` + idx + `\.(?:` + pattern + `)`)
	bareIndex := regexp.MustCompile(`(?:^|\D)` + idx + `(?:\D|$)`)
	experience := regexp.MustCompile(`(?i)experience`)
	idForm := regexp.MustCompile(`(?i)experience-` + idx + `-(?:` + pattern + `)`)

	out := []matcher{
		func(f *dom.Field) bool { return bracketDot.MatchString(f.Name()) },
		func(f *dom.Field) bool { return bracketPair.MatchString(f.Name()) },
		func(f *dom.Field) bool { return dotted.MatchString(f.Name()) },
	}
	if !checkbox {
		out = append(out, func(f *dom.Field) bool {
			name := f.Name()
			return experience.MatchString(name) && pat.MatchString(name) && bareIndex.MatchString(name)
		})
	}
	return append(out,
		func(f *dom.Field) bool { return idForm.MatchString(f.ID()) },
		func(f *dom.Field) bool { return f.Attr("data-index") == idx && pat.MatchString(f.Name()) },
	)
}

// FillIndexed writes each enabled entry into fields whose name, id or
// data-index carries the entry's position within entries. Every empty match is
// written, so a sub-field duplicated across layout variants is filled in
// each place.
func (fl *Filler) FillIndexed(doc *dom.Document, entries []types.WorkExperience) int {
	written := 0
	for i, exp := range entries {
		for _, p := range probes {
			if p.when != nil && !p.when(exp) {
				continue
			}
			var value string
			if !p.check {
				if value = p.value(exp); value == "" {
					continue
				}
			}
			written += fl.fillProbe(doc, i, p, value)
		}
	}
	return written
}

func (fl *Filler) fillProbe(doc *dom.Document, i int, p probe, value string) int {
	source := fmt.Sprintf("experience[%d].%s", i, p.field)
	written := 0
	for _, pattern := range p.patterns {
		for _, match := range templates(i, pattern, p.check) {
			for _, f := range doc.Fields() {
				if !fl.indexedTarget(f, p) || !match(f) {
					continue
				}
				in := dom.SetValue(f, value, source)
				if p.check {
					in = dom.Check(f, source)
				}
				if fl.setter.Apply(in) {
					fl.logger.Debug("filling indexed work experience field",
						zap.Int("index", i),
						zap.String("pattern", pattern),
						zap.String("name", f.Name()))
					written++
				}
			}
		}
	}
	return written
}

func (fl *Filler) indexedTarget(f *dom.Field, p probe) bool {
	if p.exclude != nil && p.exclude.MatchString(f.Name()) {
		return false
	}
	if p.check {
		return f.IsCheckbox() && !f.Checked()
	}
	return (f.IsInput() || f.IsTextarea()) && f.Fillable() && f.IsEmpty()
}
