package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sanghyxuk/shieldhub-cli/internal/history"
	"github.com/sanghyxuk/shieldhub-cli/internal/report"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

// ResultsModel browses the latest cached scan result: findings listed by
// severity, with a detail pane showing remediation steps for the selected one.
type ResultsModel struct {
	store   *history.Store
	result  *models.ScanResult
	summary report.Summary
	rows    []models.Vulnerability // flattened, severity order
	width   int
	height  int
	cursor  int
	detail  bool
	loading bool
}

type resultLoadedMsg struct{ result *models.ScanResult }

// NewResultsModel creates a ResultsModel.
func NewResultsModel(store *history.Store) ResultsModel {
	return ResultsModel{store: store, loading: true}
}

func (r ResultsModel) Init() tea.Cmd {
	return r.loadCmd()
}

func (r ResultsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		result, _ := r.store.LatestReport(context.Background())
		return resultLoadedMsg{result: result}
	}
}

func (r ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultLoadedMsg:
		r.result = msg.result
		r.loading = false
		if msg.result != nil {
			r.summary = report.Group(msg.result)
			r.rows = r.flatten()
		}
		r = r.clampCursor()

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if !r.detail {
				r.cursor++
			}
		case "k", "up":
			if !r.detail && r.cursor > 0 {
				r.cursor--
			}
		case "enter":
			if len(r.rows) > 0 {
				r.detail = true
			}
		case "esc", "backspace":
			r.detail = false
		case "r":
			r.loading = true
			return r, r.loadCmd()
		}
	}
	r = r.clampCursor()
	return r, nil
}

func (r *ResultsModel) SetSize(w, h int) {
	r.width = w
	r.height = h
}

// flatten orders the grouped findings critical first.
func (r ResultsModel) flatten() []models.Vulnerability {
	out := make([]models.Vulnerability, 0, r.summary.Total())
	out = append(out, r.summary.Critical...)
	out = append(out, r.summary.High...)
	out = append(out, r.summary.Medium...)
	out = append(out, r.summary.Low...)
	return out
}

func (r ResultsModel) View() string {
	if r.loading && r.result == nil {
		return panelStyle.Width(max(20, r.width-2)).Render("Loading latest scan...")
	}
	if r.result == nil {
		return panelStyle.Width(max(20, r.width-2)).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				panelHeaderStyle.Render("Scan Results"),
				"",
				dimStyle.Render("No scan results yet."),
				dimStyle.Render("Run 'shieldhub scan <url>' first."),
			),
		)
	}
	if r.detail && r.cursor < len(r.rows) {
		return r.viewDetail(r.rows[r.cursor])
	}
	return r.viewList()
}

func (r ResultsModel) viewList() string {
	critical, high, medium, low := r.summary.Counts()
	counts := lipgloss.JoinHorizontal(lipgloss.Left,
		criticalStyle.Render(fmt.Sprintf("Critical %d", critical)),
		dimStyle.Render("  ·  "),
		highStyle.Render(fmt.Sprintf("High %d", high)),
		dimStyle.Render("  ·  "),
		mediumStyle.Render(fmt.Sprintf("Medium %d", medium)),
		dimStyle.Render("  ·  "),
		lowStyle.Render(fmt.Sprintf("Low %d", low)),
	)

	lineLimit := r.height - 10
	if lineLimit < 5 {
		lineLimit = 5
	}
	rows := ""
	for i, v := range r.rows {
		if i >= lineLimit {
			rows += dimStyle.Render(fmt.Sprintf("… %d more\n", len(r.rows)-i))
			break
		}
		rows += r.renderRow(i, v)
	}
	if rows == "" {
		rows = okStyle.Render("No vulnerabilities found.\n")
	}

	return panelStyle.Width(max(20, r.width-2)).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			panelHeaderStyle.Render("Scan Results · "+truncate(r.result.URL, 48)),
			counts,
			"",
			dimStyle.Render("Severity   Type                         Location"),
			rows,
			"",
			dimStyle.Render("j/k navigate  enter details  r refresh"),
		),
	)
}

func (r ResultsModel) renderRow(idx int, v models.Vulnerability) string {
	cursor := " "
	if idx == r.cursor {
		cursor = "▌"
	}
	line := lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Width(2).Foreground(accent).Render(cursor),
		lipgloss.NewStyle().Width(10).Render(severityStyle(v.Severity).Render(v.Severity)),
		lipgloss.NewStyle().Width(30).Foreground(ink).Render(truncate(v.Type, 28)),
		lipgloss.NewStyle().Foreground(slate).Render(truncate(v.Location, 40)),
	)
	if idx == r.cursor {
		return selectedRowStyle.Width(max(20, r.width-6)).Render(line) + "\n"
	}
	return line + "\n"
}

func (r ResultsModel) viewDetail(v models.Vulnerability) string {
	parts := []string{
		panelHeaderStyle.Render(v.Type),
		severityStyle(v.Severity).Render(v.Severity) +
			dimStyle.Render(fmt.Sprintf("   confidence %.0f%%", v.Confidence*100)),
		"",
		dimStyle.Render("Location"),
		lipgloss.NewStyle().Foreground(ink).Render(v.Location),
	}
	if v.Pattern != "" {
		parts = append(parts, "", dimStyle.Render("Pattern"),
			lipgloss.NewStyle().Foreground(ink).Render(v.Pattern))
	}
	if v.Details != "" {
		parts = append(parts, "", dimStyle.Render("Details"),
			lipgloss.NewStyle().Foreground(ink).Render(v.Details))
	}
	parts = append(parts, "", dimStyle.Render("Remediation"))
	for i, step := range report.RemediationSteps(v.Type) {
		parts = append(parts, lipgloss.NewStyle().Foreground(ink).
			Render(fmt.Sprintf("  %d. %s", i+1, step)))
	}
	parts = append(parts, "", dimStyle.Render("esc back"))

	return panelStyle.Width(max(20, r.width-2)).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
}

func (r ResultsModel) clampCursor() ResultsModel {
	if len(r.rows) == 0 {
		r.cursor = 0
		return r
	}
	if r.cursor < 0 {
		r.cursor = 0
	}
	if r.cursor >= len(r.rows) {
		r.cursor = len(r.rows) - 1
	}
	return r
}
