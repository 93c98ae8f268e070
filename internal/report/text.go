package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sanghyxuk/shieldhub-cli/models"
)

var (
	criticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D32F2F"))
	highStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF7043"))
	mediumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCA28"))
	lowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#66BB6A"))
	unknownStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// SeverityStyle returns the lipgloss style for a severity string.
func SeverityStyle(severity string) lipgloss.Style {
	switch models.Severity(severity) {
	case models.SeverityCritical:
		return criticalStyle
	case models.SeverityHigh:
		return highStyle
	case models.SeverityMedium:
		return mediumStyle
	case models.SeverityLow:
		return lowStyle
	default:
		return unknownStyle
	}
}

// WriteText renders a styled terminal report: summary line, bucket counts,
// and one row per vulnerability ordered by severity.
func WriteText(w io.Writer, result *models.ScanResult) error {
	sum := Group(result)
	crit, high, med, low := sum.Counts()

	fmt.Fprintln(w, headerStyle.Render("Security Scan Results"))
	status := "FAILED"
	if result.Success {
		status = "OK"
	}
	fmt.Fprintf(w, "%s  [%s]\n\n", result.URL, status)

	fmt.Fprintf(w, "%s %d   %s %d   %s %d   %s %d",
		criticalStyle.Render("CRITICAL"), crit,
		highStyle.Render("HIGH"), high,
		mediumStyle.Render("MEDIUM"), med,
		lowStyle.Render("LOW"), low,
	)
	if sum.Unknown > 0 {
		fmt.Fprintf(w, "   %s %d", unknownStyle.Render("UNKNOWN"), sum.Unknown)
	}
	fmt.Fprintf(w, "\n\n")

	if len(result.Vulnerabilities) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No vulnerabilities found."))
		return nil
	}

	for _, bucket := range [][]models.Vulnerability{sum.Critical, sum.High, sum.Medium, sum.Low} {
		for _, v := range bucket {
			writeVuln(w, v)
		}
	}
	return nil
}

func writeVuln(w io.Writer, v models.Vulnerability) {
	fmt.Fprintf(w, "%-10s %-20s %3.0f%%  %s\n",
		SeverityStyle(v.Severity).Render(v.Severity),
		v.Type,
		v.Confidence*100,
		dimStyle.Render(locationHead(v.Location)),
	)
}

// locationHead trims a compound location ("url - Form #1 action: ...") down
// to its leading URL for table rows; the full value shows in detail views.
func locationHead(location string) string {
	if head, _, found := strings.Cut(location, " - "); found {
		return head
	}
	return location
}

// WriteDetail renders the full drill-down for a single vulnerability,
// including remediation steps.
func WriteDetail(w io.Writer, v models.Vulnerability) {
	fmt.Fprintf(w, "%s  %s\n\n", headerStyle.Render(v.Type), SeverityStyle(v.Severity).Render(v.Severity))
	fmt.Fprintf(w, "Confidence: %.0f%%\n", v.Confidence*100)
	fmt.Fprintf(w, "Location:   %s\n", v.Location)
	fmt.Fprintf(w, "Pattern:    %s\n", v.Pattern)
	fmt.Fprintf(w, "Details:    %s\n\n", v.Details)

	fmt.Fprintln(w, headerStyle.Render("Remediation"))
	for i, step := range RemediationSteps(v.Type) {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}
