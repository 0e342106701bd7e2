// Package match resolves a target string to the best option of a select
// element. Policies are ordered tiers; the first tier with a matching option
// wins, and within a tier the first option in document order wins. No match
// is not an error: callers leave the field untouched.
package match

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-autofill/internal/types"
)

// Tier is one named test applied to a normalized option.
type Tier struct {
	Name string
	Test func(o Normalized) bool
}

// Normalized holds an option's trimmed, lowercased value and text.
type Normalized struct {
	Value string
	Text  string
}

func normalize(o types.SelectOption) Normalized {
	return Normalized{
		Value: strings.ToLower(strings.TrimSpace(o.Value)),
		Text:  strings.ToLower(strings.TrimSpace(o.Text)),
	}
}

// Resolve applies tiers in order and returns the first matching option along
// with the name of the tier that matched.
func Resolve(options []types.SelectOption, tiers []Tier) (types.SelectOption, string, bool) {
	normalized := make([]Normalized, len(options))
	for i, o := range options {
		normalized[i] = normalize(o)
	}
	for _, tier := range tiers {
		for i, n := range normalized {
			if tier.Test(n) {
				return options[i], tier.Name, true
			}
		}
	}
	return types.SelectOption{}, "", false
}

// GenericTiers matches target exactly against value or text, then by
// containment of target within value or text.
func GenericTiers(target string) []Tier {
	t := strings.ToLower(strings.TrimSpace(target))
	if t == "" {
		return nil
	}
	return []Tier{
		{Name: "exact", Test: func(o Normalized) bool { return o.Value == t || o.Text == t }},
		{Name: "contains", Test: func(o Normalized) bool {
			return strings.Contains(o.Value, t) || strings.Contains(o.Text, t)
		}},
	}
}

// Best resolves target with the generic tiers.
func Best(target string, options []types.SelectOption) (types.SelectOption, bool) {
	opt, _, ok := Resolve(options, GenericTiers(target))
	return opt, ok
}

// Country resolves a country name. Countries use the generic tiers without an
// abbreviation table.
func Country(target string, options []types.SelectOption) (types.SelectOption, bool) {
	return Best(target, options)
}

var codePairPattern = regexp.MustCompile(`^[a-z]+-[a-z]+$`)

// StateTiers builds the US-state policy for target. Both the abbreviation and
// the full name are tried; tiers that need a form the table cannot supply are
// omitted.
func StateTiers(target string) []Tier {
	abbr, full := StateForms(target)
	var tiers []Tier
	if abbr != "" {
		tiers = append(tiers, Tier{Name: "value=abbr", Test: func(o Normalized) bool { return o.Value == abbr }})
	}
	if full != "" {
		tiers = append(tiers, Tier{Name: "value=name", Test: func(o Normalized) bool { return o.Value == full }})
	}
	if abbr != "" {
		tiers = append(tiers, Tier{Name: "text=abbr", Test: func(o Normalized) bool { return o.Text == abbr }})
	}
	if full != "" {
		tiers = append(tiers, Tier{Name: "text=name", Test: func(o Normalized) bool { return o.Text == full }})
	}
	if abbr != "" {
		suffix := "-" + abbr
		paren := "(" + abbr + ")"
		tiers = append(tiers,
			Tier{Name: "value ends -abbr", Test: func(o Normalized) bool { return strings.HasSuffix(o.Value, suffix) }},
			Tier{Name: "value code-abbr", Test: func(o Normalized) bool {
				return strings.Contains(o.Value, abbr) && codePairPattern.MatchString(o.Value)
			}},
			Tier{Name: "text ends (abbr)", Test: func(o Normalized) bool { return strings.HasSuffix(o.Text, paren) }},
			Tier{Name: "text has (abbr)", Test: func(o Normalized) bool { return strings.Contains(o.Text, paren) }},
		)
	}
	if full != "" {
		tiers = append(tiers, Tier{Name: "text starts name", Test: func(o Normalized) bool { return strings.HasPrefix(o.Text, full) }})
	}
	if abbr != "" || full != "" {
		tiers = append(tiers, Tier{Name: "contains", Test: func(o Normalized) bool {
			if abbr != "" && (strings.Contains(o.Value, abbr) || strings.Contains(o.Text, abbr)) {
				return true
			}
			return full != "" && (strings.Contains(o.Value, full) || strings.Contains(o.Text, full))
		}})
	}
	return tiers
}

// State resolves a US state given as an abbreviation or a full name.
func State(target string, options []types.SelectOption) (types.SelectOption, string, bool) {
	return Resolve(options, StateTiers(target))
}

// Mobile finds the option whose value or text is "mobile", ignoring case.
// Phone-type selects never fall back to another option.
func Mobile(options []types.SelectOption) (types.SelectOption, bool) {
	opt, _, ok := Resolve(options, []Tier{{
		Name: "mobile",
		Test: func(o Normalized) bool { return o.Value == "mobile" || o.Text == "mobile" },
	}})
	return opt, ok
}
