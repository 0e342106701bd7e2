package rules

import (
	"testing"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fullProfile() *types.Profile {
	return &types.Profile{
		FullName: "Jane Q Doe",
		Email:    "jane@x.com",
		Phone:    "555-0100",
		LinkedIn: "https://linkedin.com/in/jane",
		GitHub:   "https://github.com/jane",
		Summary:  "Builder of things.",
		Skills:   "Go, SQL",
		Address1: "1 Main St",
		Address2: "Apt 4",
		City:     "Springfield",
		State:    "FL",
		Zip:      "32801",
		Country:  "United States",
	}
}

func mustParse(t *testing.T, raw string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(raw)
	require.NoError(t, err)
	return doc
}

func TestDefault_OneCategoryPerField(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		rule     string
		expected string
	}{
		{"email", `<input name="email_address">`, "email", "jane@x.com"},
		{"first name", `<label for="a">First Name</label><input id="a">`, "first_name", "Jane"},
		{"first name snake", `<input name="first_name">`, "first_name", "Jane"},
		{"last name", `<input placeholder="Last name">`, "last_name", "Q Doe"},
		{"surname", `<label>Surname <input></label>`, "last_name", "Q Doe"},
		{"full name", `<input placeholder="Full name">`, "full_name", "Jane Q Doe"},
		{"phone type", `<label>Phone Device Type <select><option value="">Select</option><option value="m">Mobile</option></select></label>`, "phone_type", "m"},
		{"phone", `<input type="tel" name="phone">`, "phone", "555-0100"},
		{"address 1", `<input placeholder="Street address">`, "address_line1", "1 Main St"},
		{"address 2", `<input placeholder="Apartment, suite">`, "address_line2", "Apt 4"},
		{"city", `<input name="city">`, "city", "Springfield"},
		{"state input", `<input placeholder="State / Province">`, "state", "FL"},
		{"state select", `<label>State <select><option value="">--</option><option value="Florida">Florida</option></select></label>`, "state", "Florida"},
		{"zip", `<input placeholder="Postal code">`, "zip", "32801"},
		{"country select", `<label>Country <select><option value="">--</option><option value="US">United States</option></select></label>`, "country", "US"},
		{"country input", `<input name="nation">`, "country", "United States"},
		{"linkedin", `<input placeholder="LinkedIn profile">`, "linkedin", "https://linkedin.com/in/jane"},
		{"github", `<input name="github_url">`, "github", "https://github.com/jane"},
		{"website", `<input placeholder="Portfolio">`, "website", "https://linkedin.com/in/jane"},
		{"skills", `<label>Key skills <textarea></textarea></label>`, "skills", "Go, SQL"},
		{"summary", `<label>Tell us about yourself <textarea></textarea></label>`, "summary", "Builder of things."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.html)
			engine := NewEngine(nil, nil)

			in, ok := engine.Classify(doc.Fields()[0], fullProfile())
			require.True(t, ok)
			assert.Equal(t, tt.rule, in.Source)
			assert.Equal(t, tt.expected, in.Value)
		})
	}
}

func TestDefault_EarlierCategoryWins(t *testing.T) {
	// "email" precedes "phone" even though both words appear.
	doc := mustParse(t, `<input placeholder="Email or phone">`)
	in, ok := NewEngine(nil, nil).Classify(doc.Fields()[0], fullProfile())
	require.True(t, ok)
	assert.Equal(t, "email", in.Source)
}

func TestDefault_DeclinesFallThrough(t *testing.T) {
	p := fullProfile()
	p.Email = ""
	doc := mustParse(t, `<input placeholder="Email or phone">`)

	in, ok := NewEngine(nil, nil).Classify(doc.Fields()[0], p)
	require.True(t, ok)
	assert.Equal(t, "phone", in.Source)
}

func TestAddressLine1_NeverMatchesLineTwoVocabulary(t *testing.T) {
	hints := []string{
		"input text address suite",
		"input text address line 2",
		"input text home address apt",
		"input text address unit",
		"input text mailing address floor",
	}
	for _, h := range hints {
		assert.True(t, AddressLine1Vocab.MatchString(h), h)
		assert.True(t, AddressLine2Vocab.MatchString(h), h)
	}

	doc := mustParse(t, `<label>Address (suite or unit) <input></label>`)
	in, ok := NewEngine(nil, nil).Classify(doc.Fields()[0], fullProfile())
	require.True(t, ok)
	assert.Equal(t, "address_line2", in.Source)
}

func TestRules_RespectFieldKinds(t *testing.T) {
	engine := NewEngine(nil, nil)
	p := fullProfile()

	t.Run("names skip textareas", func(t *testing.T) {
		doc := mustParse(t, `<label>First name <textarea></textarea></label>`)
		_, ok := engine.Classify(doc.Fields()[0], p)
		assert.False(t, ok)
	})

	t.Run("skills only in textareas", func(t *testing.T) {
		doc := mustParse(t, `<input name="skills">`)
		_, ok := engine.Classify(doc.Fields()[0], p)
		assert.False(t, ok)
	})

	t.Run("address only in inputs", func(t *testing.T) {
		doc := mustParse(t, `<label>Street address <textarea></textarea></label>`)
		_, ok := engine.Classify(doc.Fields()[0], p)
		assert.False(t, ok)
	})

	t.Run("phone type never guesses", func(t *testing.T) {
		doc := mustParse(t, `<label>Phone type <select><option value="">-</option><option value="h">Home</option></select></label>`)
		_, ok := engine.Classify(doc.Fields()[0], p)
		assert.False(t, ok)
	})

	t.Run("checkbox is not fillable", func(t *testing.T) {
		doc := mustParse(t, `<label>Email me <input type="checkbox"></label>`)
		_, ok := engine.Classify(doc.Fields()[0], p)
		assert.False(t, ok)
	})
}

func TestState_UnknownLeavesSelectUntouched(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	p := fullProfile()
	p.State = "ZZ"

	doc := mustParse(t, `<label>State <select><option value="">Select</option><option value="FL">Florida</option><option value="GA">Georgia</option></select></label>`)
	field := doc.Fields()[0]
	before := field.Value()

	res := NewEngine(nil, logger).Run(doc, p, Options{})
	assert.Equal(t, 0, res.Written)
	assert.Equal(t, before, field.Value())
	assert.Equal(t, 1, logs.FilterMessage("state not found in select").Len())
}

func TestRun_SkipsFilledFields(t *testing.T) {
	doc := mustParse(t, `
		<input name="email" value="old@x.com">
		<input name="city">
		<select name="country"><option value="CA" selected>Canada</option><option value="US">United States</option></select>`)

	for _, backfill := range []bool{false, true} {
		setter := dom.NewSetter(nil)
		res := NewEngine(setter, nil).Run(doc, fullProfile(), Options{Backfill: backfill})

		fields := doc.Fields()
		assert.Equal(t, "old@x.com", fields[0].Value())
		assert.Equal(t, "Springfield", fields[1].Value())
		assert.Equal(t, "CA", fields[2].Value())
		if !backfill {
			assert.Equal(t, 1, res.Written)
		}
	}
}

func TestRun_EndToEnd(t *testing.T) {
	doc := mustParse(t, `<form>
		<label for="f">First name</label><input id="f">
		<label for="l">Last name</label><input id="l">
		<label for="e">Email address</label><input id="e">
	</form>`)
	setter := dom.NewSetter(nil)
	p := &types.Profile{FullName: "Jane Doe", Email: "jane@x.com"}

	res := NewEngine(setter, nil).Run(doc, p, Options{})
	assert.Equal(t, 3, res.Written)
	assert.Equal(t, 3, res.Scanned)

	fields := doc.Fields()
	assert.Equal(t, "Jane", fields[0].Value())
	assert.Equal(t, "Doe", fields[1].Value())
	assert.Equal(t, "jane@x.com", fields[2].Value())

	for _, m := range setter.Journal() {
		assert.Equal(t, types.ValueEvents, m.Events)
	}
}

func TestRun_Idempotent(t *testing.T) {
	doc := mustParse(t, `
		<input placeholder="Full name">
		<input type="email">
		<label>State <select><option value="">-</option><option value="FL">Florida</option></select></label>
		<label>Summary <textarea></textarea></label>`)
	setter := dom.NewSetter(nil)
	engine := NewEngine(setter, nil)

	first := engine.Run(doc, fullProfile(), Options{})
	require.Equal(t, 4, first.Written)

	second := engine.Run(doc, fullProfile(), Options{})
	assert.Equal(t, 0, second.Written)
	assert.Equal(t, 4, setter.Count())
}

func TestRun_NilProfileWritesNothing(t *testing.T) {
	doc := mustParse(t, `<input name="email">`)
	res := NewEngine(nil, nil).Run(doc, nil, Options{})
	assert.Equal(t, 0, res.Written)
}

func TestRun_UnsetAttributeDeclines(t *testing.T) {
	doc := mustParse(t, `<input name="github">`)
	res := NewEngine(nil, nil).Run(doc, &types.Profile{Email: "a@b.co"}, Options{})
	assert.Equal(t, 0, res.Written)
	assert.Empty(t, doc.Fields()[0].Value())
}
