package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/basilforge/lispfmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 violations, in 3 files, 2 files reformatted".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.ViolationsTotal == 0 {
		msg := s.Success.Render("No violations found") + s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed))
		if stats.FilesModified > 0 {
			fileWord := wordFiles
			if stats.FilesModified == 1 {
				fileWord = wordFile
			}
			msg += ", " + s.Success.Render(fmt.Sprintf("%d %s reformatted", stats.FilesModified, fileWord))
		}
		return msg + "\n"
	}

	var parts []string

	violationWord := "violations"
	if stats.ViolationsTotal == 1 {
		violationWord = "violation"
	}
	parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.ViolationsTotal, violationWord)))

	fileWord := wordFiles
	if stats.FilesWithIssues == 1 {
		fileWord = wordFile
	}
	parts = append(parts, fmt.Sprintf("in %d %s", stats.FilesWithIssues, fileWord))

	if stats.FilesModified > 0 {
		modifiedFileWord := wordFiles
		if stats.FilesModified == 1 {
			modifiedFileWord = wordFile
		}
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s reformatted", stats.FilesModified, modifiedFileWord)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues:  " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}

	if stats.FilesModified > 0 {
		builder.WriteString("  Files reformatted:  " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total violations:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.ViolationsTotal)) + "\n")

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Run failed with errors"))
	case stats.ViolationsTotal > 0:
		builder.WriteString(s.Failure.Render("Violations remain"))
	default:
		builder.WriteString(s.Success.Render("All files within the configured line length"))
	}
	builder.WriteString("\n")

	return builder.String()
}
