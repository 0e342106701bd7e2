// Package types provides type definitions for structured data used throughout the job-autofill system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Recognized profile store keys. Reads and writes are restricted to this set.
const (
	KeyFullName       = "fullName"
	KeyEmail          = "email"
	KeyPhone          = "phone"
	KeyLinkedIn       = "linkedin"
	KeyGitHub         = "github"
	KeyWebsite        = "website"
	KeySummary        = "summary"
	KeySkills         = "skills"
	KeyAddress1       = "address1"
	KeyAddress2       = "address2"
	KeyCity           = "city"
	KeyState          = "state"
	KeyZip            = "zip"
	KeyCountry        = "country"
	KeyWorkExperience = "workExperience"
)

// ProfileKeys lists every recognized key in storage order.
var ProfileKeys = []string{
	KeyFullName,
	KeyEmail,
	KeyPhone,
	KeyLinkedIn,
	KeyGitHub,
	KeyWebsite,
	KeySummary,
	KeySkills,
	KeyAddress1,
	KeyAddress2,
	KeyCity,
	KeyState,
	KeyZip,
	KeyCountry,
	KeyWorkExperience,
}

// IsProfileKey reports whether key belongs to the recognized key set.
func IsProfileKey(key string) bool {
	for _, k := range ProfileKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Profile is the applicant data written into forms. An empty attribute is
// treated as unset and is never written.
type Profile struct {
	FullName string `json:"fullName,omitempty" yaml:"fullName,omitempty" validate:"omitempty,max=200"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty" validate:"omitempty,max=40"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty" validate:"omitempty,url"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty" validate:"omitempty,url"`
	Summary  string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Skills   string `json:"skills,omitempty" yaml:"skills,omitempty"`

	Address1 string `json:"address1,omitempty" yaml:"address1,omitempty"`
	Address2 string `json:"address2,omitempty" yaml:"address2,omitempty"`
	City     string `json:"city,omitempty" yaml:"city,omitempty"`
	State    string `json:"state,omitempty" yaml:"state,omitempty" validate:"omitempty,max=64"`
	Zip      string `json:"zip,omitempty" yaml:"zip,omitempty" validate:"omitempty,max=16"`
	Country  string `json:"country,omitempty" yaml:"country,omitempty"`

	WorkExperience []WorkExperience `json:"workExperience,omitempty" yaml:"workExperience,omitempty" validate:"dive"`
}

// WorkExperience is one employment record. Order is meaningful: the Nth enabled
// record fills the Nth repeating form block.
type WorkExperience struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Company     string `json:"company,omitempty" yaml:"company,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Current     bool   `json:"current,omitempty" yaml:"current,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the record takes part in autofill. Records are
// enabled unless explicitly disabled.
func (w WorkExperience) IsEnabled() bool {
	return w.Enabled == nil || *w.Enabled
}

// EnabledExperience returns the enabled records in their stored order.
func (p Profile) EnabledExperience() []WorkExperience {
	enabled := make([]WorkExperience, 0, len(p.WorkExperience))
	for _, exp := range p.WorkExperience {
		if exp.IsEnabled() {
			enabled = append(enabled, exp)
		}
	}
	return enabled
}

// NameParts splits FullName into a first name (the first token) and a last
// name (the remaining tokens joined by single spaces).
func (p Profile) NameParts() (first, last string) {
	parts := strings.Fields(p.FullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// WebsiteLink returns the value used for website/portfolio fields: the
// dedicated website if stored, else LinkedIn, else GitHub.
func (p Profile) WebsiteLink() string {
	switch {
	case p.Website != "":
		return p.Website
	case p.LinkedIn != "":
		return p.LinkedIn
	default:
		return p.GitHub
	}
}
