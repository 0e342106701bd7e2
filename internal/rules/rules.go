// Package rules classifies form fields by their hint and writes the matching
// profile attribute. Rules form an ordered table; the first rule that produces
// a write consumes the field and later rules never see it.
package rules

import (
	"regexp"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/match"
	"github.com/jonathan/job-autofill/internal/types"
	"go.uber.org/zap"
)

// FieldKind restricts the controls a rule may consider.
type FieldKind int

const (
	// AnyFillable accepts text inputs, textareas and selects.
	AnyFillable FieldKind = iota
	// SingleLine accepts text inputs and selects but not textareas.
	SingleLine
	// InputOnly accepts text inputs.
	InputOnly
	// MultiLine accepts textareas.
	MultiLine
	// SelectOnly accepts selects.
	SelectOnly
)

func (k FieldKind) accepts(f *dom.Field) bool {
	if !f.Fillable() {
		return false
	}
	switch k {
	case SingleLine:
		return !f.IsTextarea()
	case InputOnly:
		return f.IsInput()
	case MultiLine:
		return f.IsTextarea()
	case SelectOnly:
		return f.IsSelect()
	default:
		return true
	}
}

// Context is what a rule action sees.
type Context struct {
	Field   *dom.Field
	Hint    string
	Profile *types.Profile
	Logger  *zap.Logger
}

// Action turns a matched field into an intended write, or declines.
type Action func(c Context) (dom.Intent, bool)

// Rule is one (precondition, vocabulary, action) entry.
type Rule struct {
	Name    string
	Kind    FieldKind
	Vocab   *regexp.Regexp
	Exclude *regexp.Regexp
	Action  Action
}

// Matches reports whether the rule's preconditions and vocabulary accept the
// field. The field must be empty at the time of the call.
func (r Rule) Matches(f *dom.Field, hint string) bool {
	if f == nil || !r.Kind.accepts(f) || !f.IsEmpty() {
		return false
	}
	if r.Vocab != nil && !r.Vocab.MatchString(hint) {
		return false
	}
	if r.Exclude != nil && r.Exclude.MatchString(hint) {
		return false
	}
	return true
}

// Evaluate returns the rule's intended write for the field without applying it.
func (r Rule) Evaluate(c Context) (dom.Intent, bool) {
	if !r.Matches(c.Field, c.Hint) {
		return dom.Intent{}, false
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	in, ok := r.Action(c)
	if !ok || in.Field == nil {
		return dom.Intent{}, false
	}
	in.Source = r.Name
	return in, true
}

// Vocabulary shared by the rule table.
var (
	EmailVocab         = regexp.MustCompile(`email`)
	FirstNameVocab     = regexp.MustCompile(`first[\s_-]?name|given[\s_-]?name|forename`)
	FirstNameExclude   = regexp.MustCompile(`last|surname|family`)
	LastNameVocab      = regexp.MustCompile(`last[\s_-]?name|surname|family[\s_-]?name`)
	FullNameVocab      = regexp.MustCompile(`full[\s_-]?name|your name|name as it appears|legal name`)
	FullNameExclude    = regexp.MustCompile(`first|last|surname|family`)
	PhoneTypeVocab     = regexp.MustCompile(`device.*type|phone.*type|type.*device|type.*phone`)
	PhoneVocab         = regexp.MustCompile(`phone|mobile|cell`)
	AddressLine1Vocab  = regexp.MustCompile(`\baddress\b|address line 1|address1|street address|home address|mailing address`)
	AddressLine2Vocab  = regexp.MustCompile(`address line 2|address2|apt|apartment|suite|unit|floor`)
	CityVocab          = regexp.MustCompile(`\bcity\b`)
	StateVocab         = regexp.MustCompile(`state|province|region|cntry.*region`)
	ZipVocab           = regexp.MustCompile(`zip|postal code|postcode`)
	CountryVocab       = regexp.MustCompile(`country|nation`)
	LinkedInVocab      = regexp.MustCompile(`linkedin`)
	GitHubVocab        = regexp.MustCompile(`github`)
	WebsiteVocab       = regexp.MustCompile(`website|portfolio|personal site|personal url`)
	SkillsVocab        = regexp.MustCompile(`skill|expertise|proficienc|competenc|capabilit`)
	SummaryVocab       = regexp.MustCompile(`summary|about you|about yourself|introduction|why.*you|tell us`)
)

// Default is the generic rule table in priority order.
var Default = []Rule{
	{Name: "email", Kind: AnyFillable, Vocab: EmailVocab, Action: profileValue(func(p *types.Profile) string { return p.Email })},
	{Name: "first_name", Kind: SingleLine, Vocab: FirstNameVocab, Exclude: FirstNameExclude, Action: profileValue(func(p *types.Profile) string {
		first, _ := p.NameParts()
		return first
	})},
	{Name: "last_name", Kind: SingleLine, Vocab: LastNameVocab, Action: profileValue(func(p *types.Profile) string {
		_, last := p.NameParts()
		return last
	})},
	{Name: "full_name", Kind: SingleLine, Vocab: FullNameVocab, Exclude: FullNameExclude, Action: profileValue(func(p *types.Profile) string { return p.FullName })},
	{Name: "phone_type", Kind: SelectOnly, Vocab: PhoneTypeVocab, Action: phoneType},
	{Name: "phone", Kind: AnyFillable, Vocab: PhoneVocab, Action: profileValue(func(p *types.Profile) string { return p.Phone })},
	{Name: "address_line1", Kind: InputOnly, Vocab: AddressLine1Vocab, Exclude: AddressLine2Vocab, Action: profileValue(func(p *types.Profile) string { return p.Address1 })},
	{Name: "address_line2", Kind: InputOnly, Vocab: AddressLine2Vocab, Action: profileValue(func(p *types.Profile) string { return p.Address2 })},
	{Name: "city", Kind: AnyFillable, Vocab: CityVocab, Action: profileValue(func(p *types.Profile) string { return p.City })},
	{Name: "state", Kind: SingleLine, Vocab: StateVocab, Action: state},
	{Name: "zip", Kind: AnyFillable, Vocab: ZipVocab, Action: profileValue(func(p *types.Profile) string { return p.Zip })},
	{Name: "country", Kind: AnyFillable, Vocab: CountryVocab, Action: country},
	{Name: "linkedin", Kind: AnyFillable, Vocab: LinkedInVocab, Action: profileValue(func(p *types.Profile) string { return p.LinkedIn })},
	{Name: "github", Kind: AnyFillable, Vocab: GitHubVocab, Action: profileValue(func(p *types.Profile) string { return p.GitHub })},
	{Name: "website", Kind: AnyFillable, Vocab: WebsiteVocab, Action: profileValue(func(p *types.Profile) string { return p.WebsiteLink() })},
	{Name: "skills", Kind: MultiLine, Vocab: SkillsVocab, Action: profileValue(func(p *types.Profile) string { return p.Skills })},
	{Name: "summary", Kind: MultiLine, Vocab: SummaryVocab, Action: profileValue(func(p *types.Profile) string { return p.Summary })},
}

// profileValue writes a profile attribute verbatim into text fields and
// through the generic option tiers into selects. An unset attribute declines.
func profileValue(get func(p *types.Profile) string) Action {
	return func(c Context) (dom.Intent, bool) {
		value := get(c.Profile)
		if value == "" {
			return dom.Intent{}, false
		}
		return ValueIntent(c.Field, value)
	}
}

// ValueIntent builds a write of value into f, resolving selects to the best
// option by the generic tiers.
func ValueIntent(f *dom.Field, value string) (dom.Intent, bool) {
	if f.IsSelect() {
		opt, ok := match.Best(value, f.Options())
		if !ok {
			return dom.Intent{}, false
		}
		value = opt.Value
	}
	return dom.SetValue(f, value, ""), true
}

func phoneType(c Context) (dom.Intent, bool) {
	c.Logger.Debug("phone device type field", zap.String("hint", c.Hint))
	opt, ok := match.Mobile(c.Field.Options())
	if !ok {
		c.Logger.Debug("no mobile option in device type field",
			zap.Any("options", c.Field.Options()))
		return dom.Intent{}, false
	}
	return dom.SetValue(c.Field, opt.Value, ""), true
}

func state(c Context) (dom.Intent, bool) {
	value := c.Profile.State
	if value == "" {
		return dom.Intent{}, false
	}
	if !c.Field.IsSelect() {
		return dom.SetValue(c.Field, value, ""), true
	}

	options := c.Field.Options()
	opt, tier, ok := match.State(value, options)
	if !ok {
		shown := options
		if len(shown) > 5 {
			shown = shown[:5]
		}
		c.Logger.Debug("state not found in select",
			zap.String("state", value),
			zap.Any("first_options", shown))
		return dom.Intent{}, false
	}
	c.Logger.Debug("state option matched",
		zap.String("value", opt.Value),
		zap.String("text", opt.Text),
		zap.String("tier", tier))
	return dom.SetValue(c.Field, opt.Value, ""), true
}

func country(c Context) (dom.Intent, bool) {
	value := c.Profile.Country
	if value == "" {
		return dom.Intent{}, false
	}
	if !c.Field.IsSelect() {
		return dom.SetValue(c.Field, value, ""), true
	}
	opt, ok := match.Country(value, c.Field.Options())
	if !ok {
		return dom.Intent{}, false
	}
	return dom.SetValue(c.Field, opt.Value, ""), true
}
