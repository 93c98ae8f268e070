package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sanghyxuk/shieldhub-cli/internal/history"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

// HistoryModel lists locally recorded actions, newest first.
type HistoryModel struct {
	store   *history.Store
	entries []models.HistoryEntry
	width   int
	height  int
	cursor  int
	filter  string // "" (all) | encrypt | decrypt | website
	loading bool
}

type historyLoadedMsg struct{ entries []models.HistoryEntry }

// NewHistoryModel creates a HistoryModel.
func NewHistoryModel(store *history.Store) HistoryModel {
	return HistoryModel{store: store, loading: true}
}

func (h HistoryModel) Init() tea.Cmd {
	return h.loadCmd()
}

func (h HistoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		entries, _ := h.store.LoadAll(context.Background())
		return historyLoadedMsg{entries: entries}
	}
}

func (h HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		h.entries = msg.entries
		h.loading = false

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			h.cursor++
		case "k", "up":
			if h.cursor > 0 {
				h.cursor--
			}
		case "e":
			h.filter = models.HistoryTypeEncrypt
			h.cursor = 0
		case "d":
			h.filter = models.HistoryTypeDecrypt
			h.cursor = 0
		case "w":
			h.filter = models.HistoryTypeWebsite
			h.cursor = 0
		case "0":
			h.filter = ""
			h.cursor = 0
		case "r":
			h.loading = true
			return h, h.loadCmd()
		}
	}
	h = h.clampCursor()
	return h, nil
}

func (h *HistoryModel) SetSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h HistoryModel) visible() []models.HistoryEntry {
	if h.filter == "" {
		return h.entries
	}
	out := make([]models.HistoryEntry, 0, len(h.entries))
	for _, e := range h.entries {
		if e.Type == h.filter {
			out = append(out, e)
		}
	}
	return out
}

func (h HistoryModel) View() string {
	if h.loading && len(h.entries) == 0 {
		return panelStyle.Width(max(20, h.width-2)).Render("Loading history...")
	}

	visible := h.visible()
	lineLimit := h.height - 10
	if lineLimit < 5 {
		lineLimit = 5
	}
	rows := ""
	for i, e := range visible {
		if i >= lineLimit {
			rows += dimStyle.Render(fmt.Sprintf("… %d more\n", len(visible)-i))
			break
		}
		rows += h.renderRow(i, e)
	}
	if rows == "" {
		rows = dimStyle.Render("No history yet.\n")
	}

	filterBar := lipgloss.JoinHorizontal(lipgloss.Left,
		h.filterChip("All", "", len(h.entries), "0"),
		" ",
		h.filterChip("Encrypt", models.HistoryTypeEncrypt, h.countOf(models.HistoryTypeEncrypt), "e"),
		" ",
		h.filterChip("Decrypt", models.HistoryTypeDecrypt, h.countOf(models.HistoryTypeDecrypt), "d"),
		" ",
		h.filterChip("Website", models.HistoryTypeWebsite, h.countOf(models.HistoryTypeWebsite), "w"),
		"  ",
		keycapStyle.Render("r"),
		" ",
		dimStyle.Render("refresh"),
	)

	return panelStyle.Width(max(20, h.width-2)).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			panelHeaderStyle.Render("Action History"),
			filterBar,
			"",
			dimStyle.Render("Date         Type      Status            Title"),
			rows,
			"",
			dimStyle.Render("j/k navigate  e/d/w filter  0 all"),
		),
	)
}

func (h HistoryModel) renderRow(idx int, e models.HistoryEntry) string {
	cursor := " "
	if idx == h.cursor {
		cursor = "▌"
	}
	line := lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Width(2).Foreground(accent).Render(cursor),
		lipgloss.NewStyle().Width(13).Foreground(slate).Render(e.Date),
		lipgloss.NewStyle().Width(10).Foreground(slate).Render(e.Type),
		lipgloss.NewStyle().Width(18).Foreground(ink).Render(truncate(e.Status, 16)),
		lipgloss.NewStyle().Foreground(ink).Render(truncate(e.Title, 44)),
	)
	if idx == h.cursor {
		return selectedRowStyle.Width(max(20, h.width-6)).Render(line) + "\n"
	}
	return line + "\n"
}

func (h HistoryModel) filterChip(label, value string, count int, key string) string {
	text := fmt.Sprintf("%s %d", label, count)
	if h.filter == value {
		return activeTabStyle.Render(text)
	}
	return tabStyle.Render(text + " [" + key + "]")
}

func (h HistoryModel) countOf(entryType string) int {
	n := 0
	for _, e := range h.entries {
		if e.Type == entryType {
			n++
		}
	}
	return n
}

func (h HistoryModel) clampCursor() HistoryModel {
	total := len(h.visible())
	if total == 0 {
		h.cursor = 0
		return h
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
	if h.cursor >= total {
		h.cursor = total - 1
	}
	return h
}
