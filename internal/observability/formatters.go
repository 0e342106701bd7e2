// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-autofill/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport outputs a human-readable summary of one fill pass.
func (p *Printer) PrintReport(source string, report *types.FillReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	if source != "" {
		sb.WriteString(fmt.Sprintf("Page:      %s\n", source))
	}
	sb.WriteString(fmt.Sprintf("Platform:  %s", report.Platform))
	if report.InFrame {
		sb.WriteString(" (in frame)")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Fields:    %d\n", report.FieldCount))
	sb.WriteString(fmt.Sprintf("Written:   %d\n", len(report.Mutations)))

	if report.Instruction != "" {
		sb.WriteString("\n")
		sb.WriteString(wrap(report.Instruction, boxWidth-4))
		sb.WriteString("\n")
	}
	if report.Fault != "" {
		sb.WriteString(fmt.Sprintf("\nFault: %s\n", report.Fault))
	}

	if len(report.Mutations) > 0 {
		sb.WriteString("\n")
		count := min(len(report.Mutations), maxItemsToShow)
		for _, m := range report.Mutations[:count] {
			sb.WriteString(fmt.Sprintf("  • %s ← %s\n", fieldLabel(m), m.Source))
		}
		if len(report.Mutations) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Mutations)-maxItemsToShow))
		}
	}

	p.printBox("AUTOFILL", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs which profile attributes are set.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	set := func(label, v string) {
		if v != "" {
			sb.WriteString(fmt.Sprintf("%-10s %s\n", label+":", v))
		}
	}
	set("Name", profile.FullName)
	set("Email", profile.Email)
	set("Phone", profile.Phone)
	set("City", profile.City)
	set("State", profile.State)
	set("Country", profile.Country)

	enabled := profile.EnabledExperience()
	sb.WriteString(fmt.Sprintf("\nWork experience: %d (%d enabled)\n", len(profile.WorkExperience), len(enabled)))
	count := min(len(enabled), 3)
	for _, w := range enabled[:count] {
		sb.WriteString(fmt.Sprintf("  • %s, %s\n", w.Title, w.Company))
	}
	if len(enabled) > 3 {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(enabled)-3))
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

func fieldLabel(m types.Mutation) string {
	switch {
	case m.Name != "":
		return fmt.Sprintf("%s[name=%s]", m.Tag, m.Name)
	case m.ID != "":
		return fmt.Sprintf("%s#%s", m.Tag, m.ID)
	default:
		return fmt.Sprintf("%s #%d", m.Tag, m.Locator)
	}
}

func wrap(text string, width int) string {
	var lines []string
	var line []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		if len(line) > 0 && len(line)+1+len(w) > width {
			lines = append(lines, string(line))
			line = nil
		}
		// Words wider than the box, such as URLs, are split across lines.
		for len(w) > width {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		if len(w) == 0 {
			continue
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, w...)
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return strings.Join(lines, "\n")
}
