// Package strategy picks and runs the fill procedure for a page. Site
// strategies write known platform fields directly, then defer to the rule
// engine in backfill mode and to the work-experience filler.
package strategy

import (
	"net/url"
	"strings"

	"github.com/jonathan/job-autofill/internal/dom"
)

// Platform represents a known applicant tracking system.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformGeneric is any other page
	PlatformGeneric Platform = "generic"
)

// EmbeddedFormSelector matches a Greenhouse application form embedded in a
// company careers page.
const EmbeddedFormSelector = `iframe[id*="grnhse"], iframe[src*="greenhouse"]`

// DetectPlatform identifies the platform from a host name.
func DetectPlatform(host string) Platform {
	host = strings.ToLower(host)

	switch {
	case strings.Contains(host, "greenhouse"):
		return PlatformGreenhouse
	case strings.Contains(host, "workday"):
		return PlatformWorkday
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	default:
		return PlatformGeneric
	}
}

// HostOf returns the lowercase host of a page URL, or the input lowercased
// when it does not parse as an absolute URL.
func HostOf(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return strings.ToLower(pageURL)
	}
	return strings.ToLower(parsed.Hostname())
}

// Environment is the execution context of one fill pass.
type Environment struct {
	Host          string
	InFrame       bool
	EmbeddedForms []string
}

// EmbeddedForms returns the src of every embedded Greenhouse form frame. A
// frame without src is reported by its id.
func EmbeddedForms(doc *dom.Document) []string {
	var forms []string
	for _, n := range doc.Root().Find(EmbeddedFormSelector).Nodes {
		var src, id string
		for _, a := range n.Attr {
			switch a.Key {
			case "src":
				src = a.Val
			case "id":
				id = a.Val
			}
		}
		if src == "" {
			src = "#" + id
		}
		forms = append(forms, src)
	}
	return forms
}

// Decision is the outcome of context detection.
type Decision struct {
	Platform Platform
	// Blocked is set when the form lives in a frame the engine cannot script.
	Blocked     bool
	EmbeddedURL string
}

// Decide selects the strategy for env. A Greenhouse frame is filled directly;
// a top-level page embedding one is blocked; otherwise the host decides.
func Decide(env Environment) Decision {
	platform := DetectPlatform(env.Host)
	if env.InFrame && platform == PlatformGreenhouse {
		return Decision{Platform: PlatformGreenhouse}
	}
	if len(env.EmbeddedForms) > 0 {
		return Decision{Platform: PlatformGreenhouse, Blocked: true, EmbeddedURL: env.EmbeddedForms[0]}
	}
	return Decision{Platform: platform}
}
