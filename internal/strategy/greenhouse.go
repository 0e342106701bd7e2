package strategy

import (
	"regexp"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
)

var greenhouseSummaryVocab = regexp.MustCompile(`about you|summary|introduction|tell us|why.*you`)

// Ranked lookups for Greenhouse application forms.
var (
	greenhouseFirstName = []dom.Candidate{
		dom.BySelector(`input[name="job_application[first_name]"]`),
		dom.BySelector(`input[name*="first_name"]`),
	}
	greenhouseLastName = []dom.Candidate{
		dom.BySelector(`input[name="job_application[last_name]"]`),
		dom.BySelector(`input[name*="last_name"]`),
	}
	greenhouseEmail = []dom.Candidate{
		dom.BySelector(`input[name="job_application[email]"]`),
		dom.BySelector(`input[type="email"]`),
		dom.BySelector(`input[name*="email"]`),
	}
	greenhousePhone = []dom.Candidate{
		dom.BySelector(`input[name="job_application[phone]"]`),
		dom.BySelector(`input[type="tel"]`),
		dom.BySelector(`input[name*="phone"]`),
	}
	greenhouseLinkedIn = []dom.Candidate{
		dom.BySelector(`input[name*="linkedin"]`),
		dom.ByPlaceholder("input", "linkedin"),
	}
	greenhouseGitHub = []dom.Candidate{
		dom.BySelector(`input[name*="github"]`),
		dom.ByPlaceholder("input", "github"),
	}
	greenhouseWebsite = []dom.Candidate{
		dom.BySelector(`input[name*="website"]`),
		dom.ByPlaceholder("input", "website"),
	}
)

func fillGreenhouse(r *Runner, doc *dom.Document, p *types.Profile) int {
	first, last := p.NameParts()
	lookup := func(candidates []dom.Candidate) *dom.Field {
		f, _ := dom.Lookup(doc, candidates...)
		return f
	}

	n := r.direct(lookup(greenhouseFirstName), first, "greenhouse.first_name")
	n += r.direct(lookup(greenhouseLastName), last, "greenhouse.last_name")
	n += r.direct(lookup(greenhouseEmail), p.Email, "greenhouse.email")
	n += r.direct(lookup(greenhousePhone), p.Phone, "greenhouse.phone")
	n += r.direct(lookup(greenhouseLinkedIn), p.LinkedIn, "greenhouse.linkedin")
	n += r.direct(lookup(greenhouseGitHub), p.GitHub, "greenhouse.github")
	n += r.direct(lookup(greenhouseWebsite), p.WebsiteLink(), "greenhouse.website")

	if p.Summary != "" {
		for _, ta := range doc.FindAll("textarea") {
			if greenhouseSummaryVocab.MatchString(ta.Hint()) {
				n += r.direct(ta, p.Summary, "greenhouse.summary")
			}
		}
	}
	return n
}
