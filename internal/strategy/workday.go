package strategy

import (
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
)

// automationField locates a Workday control by data-automation-id. The keyed
// element may wrap the control or be the control itself.
func automationField(doc *dom.Document, id string) *dom.Field {
	key := `[data-automation-id="` + id + `"]`
	f, _ := dom.Lookup(doc,
		dom.BySelector(key+" input"),
		dom.BySelector(key+" textarea"),
		dom.BySelector(key+" select"),
		dom.ByContainer(key),
	)
	return f
}

// workdayFields maps automation ids to the profile value they receive, in
// fill order.
func workdayFields(p *types.Profile) []workdayField {
	first, last := p.NameParts()
	return []workdayField{
		{"legalNameSection_firstName", first},
		{"firstName", first},
		{"legalNameSection_lastName", last},
		{"lastName", last},
		{"email", p.Email},
		{"emailAddress", p.Email},
		{"phone-number", p.Phone},
		{"phoneNumber", p.Phone},
		{"addressLine1", p.Address1},
		{"addressLine2", p.Address2},
		{"city", p.City},
		{"state", p.State},
		{"postalCode", p.Zip},
		{"zipCode", p.Zip},
	}
}

type workdayField struct{ id, value string }

func fillWorkday(r *Runner, doc *dom.Document, p *types.Profile) int {
	n := 0
	for _, wf := range workdayFields(p) {
		f := automationField(doc, wf.id)
		if wf.id == "state" {
			n += r.directState(f, wf.value, "workday.state")
			continue
		}
		n += r.direct(f, wf.value, "workday."+wf.id)
	}
	return n
}
