// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}

func (p *Printer) writeItemList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", truncate(items[i], 50)))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintResumeSummary outputs a short overview of a loaded resume.
func (p *Printer) PrintResumeSummary(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", data.PersonalInfo.FullName))
	if data.PersonalInfo.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", data.PersonalInfo.Email))
	}
	sb.WriteString(fmt.Sprintf("Template:  %s\n", data.Template))
	sb.WriteString(fmt.Sprintf("Sections:  %d roles, %d bullets, %d skills",
		len(data.WorkExperience), data.TotalBullets(), len(data.Skills)))

	p.printBox("RESUME", sb.String())
}

// PrintJobAnalysis outputs a human-readable summary of a job analysis.
func (p *Printer) PrintJobAnalysis(analysis *types.JobAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match score:  %d → %d\n\n",
		analysis.OriginalMatchScore, analysis.OptimizedMatchScore))

	if len(analysis.MatchedSkills) > 0 {
		skills := strings.Join(analysis.MatchedSkills, ", ")
		sb.WriteString(fmt.Sprintf("Matched:  %s\n", truncate(skills, 45)))
	}
	if len(analysis.MissingSkills) > 0 {
		skills := strings.Join(analysis.MissingSkills, ", ")
		sb.WriteString(fmt.Sprintf("Missing:  %s\n", truncate(skills, 45)))
	}
	sb.WriteString("\n")

	p.writeItemList(&sb, "Key Requirements", analysis.KeyRequirements, maxItemsToShow)
	p.writeItemList(&sb, "Suggestions", analysis.Suggestions, 3)

	p.printBox("JOB ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTailoredChanges outputs the per-role bullet rewrites, original next
// to optimized, so a reviewer can eyeball what the tailoring changed.
func (p *Printer) PrintTailoredChanges(original, tailored *types.ResumeData) {
	if original == nil || tailored == nil {
		return
	}

	var sb strings.Builder
	changed := 0

	for i := range tailored.WorkExperience {
		if i >= len(original.WorkExperience) {
			break
		}
		before := original.WorkExperience[i]
		after := tailored.WorkExperience[i]

		var lines []string
		for j := range after.Description {
			if j < len(before.Description) && before.Description[j] == after.Description[j] {
				continue
			}
			lines = append(lines, fmt.Sprintf("  • %s", truncate(after.Description[j], 50)))
			changed++
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s - %s\n", truncate(after.Company, 25), truncate(after.Position, 25)))
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n\n")
	}

	if changed == 0 {
		sb.WriteString("No bullets changed.")
	} else {
		sb.WriteString(fmt.Sprintf("%d bullets rewritten.", changed))
	}

	p.printBox("TAILORED BULLETS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSAnalysis outputs an ATS compatibility report.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintATSAnalysis(analysis *types.ATSAnalysis) {
	if analysis == nil {
		return
	}

	if analysis.OverallScore >= 85 && len(analysis.Issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4,
			fmt.Sprintf("✅ ATS SCORE %d: NO ISSUES FOUND", analysis.OverallScore))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall score:     %d\n", analysis.OverallScore))
	sb.WriteString(fmt.Sprintf("Keyword density:   %d\n\n", analysis.KeywordDensity))

	p.writeItemList(&sb, "Issues", analysis.Issues, maxItemsToShow)
	p.writeItemList(&sb, "Recommendations", analysis.Recommendations, 3)
	p.writeItemList(&sb, "Format Compliance", analysis.FormatCompliance, 3)

	p.printBox("ATS COMPATIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}
