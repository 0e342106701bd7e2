package strategy

import (
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
)

// currentCompany returns the company of the first enabled entry marked
// current.
func currentCompany(p *types.Profile) string {
	for _, exp := range p.EnabledExperience() {
		if exp.Current {
			return exp.Company
		}
	}
	return ""
}

func fillLever(r *Runner, doc *dom.Document, p *types.Profile) int {
	n := r.direct(doc.Find(`input[name="name"]`), p.FullName, "lever.name")
	n += r.direct(doc.Find(`input[name="email"]`), p.Email, "lever.email")
	n += r.direct(doc.Find(`input[name="phone"]`), p.Phone, "lever.phone")
	n += r.direct(doc.Find(`input[name="org"]`), currentCompany(p), "lever.org")
	n += r.direct(doc.Find(`input[name="urls[LinkedIn]"]`), p.LinkedIn, "lever.linkedin")
	n += r.direct(doc.Find(`input[name="urls[GitHub]"]`), p.GitHub, "lever.github")
	n += r.direct(doc.Find(`input[name="urls[Portfolio]"]`), p.WebsiteLink(), "lever.portfolio")
	return n
}
