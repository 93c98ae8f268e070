package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sanghyxuk/shieldhub-cli/internal/events"
	"github.com/sanghyxuk/shieldhub-cli/internal/history"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

// Tab represents a TUI navigation tab.
type Tab int

const (
	TabResults Tab = iota
	TabHistory
)

var tabNames = []string{"Results", "History"}

// historyChangedMsg arrives when another part of the process appends a
// history entry.
type historyChangedMsg struct{}

// App is the root bubbletea model: the latest scan's results plus the
// local action history.
type App struct {
	bus       *events.Bus
	historyCh <-chan events.Event
	session   models.Session
	width     int
	height    int
	activeTab Tab
	results   ResultsModel
	histView  HistoryModel
}

// NewApp creates the TUI application.
func NewApp(store *history.Store, bus *events.Bus, sess models.Session) *App {
	return &App{
		bus:       bus,
		historyCh: bus.Subscribe(events.HistoryUpdated),
		session:   sess,
		results:   NewResultsModel(store),
		histView:  NewHistoryModel(store),
	}
}

// Run starts the bubbletea program.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.results.Init(),
		a.histView.Init(),
		a.waitForHistoryChange(),
	)
}

// waitForHistoryChange blocks on the event bus and wakes the UI when the
// history list grows.
func (a *App) waitForHistoryChange() tea.Cmd {
	ch := a.historyCh
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return historyChangedMsg{}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentW := msg.Width - 2
		if contentW < 20 {
			contentW = 20
		}
		contentH := msg.Height - 7
		if contentH < 8 {
			contentH = 8
		}
		a.results.SetSize(contentW, contentH)
		a.histView.SetSize(contentW, contentH)

	case historyChangedMsg:
		cmds = append(cmds, a.histView.loadCmd(), a.waitForHistoryChange())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.activeTab = TabResults
		case "2":
			a.activeTab = TabHistory
		case "tab":
			a.activeTab = (a.activeTab + 1) % Tab(len(tabNames))
		case "shift+tab":
			a.activeTab--
			if a.activeTab < 0 {
				a.activeTab = Tab(len(tabNames) - 1)
			}
		}
	}

	// Delegate to active view. Load messages go everywhere so background
	// refreshes land even on the inactive tab.
	switch msg.(type) {
	case tea.KeyMsg:
		switch a.activeTab {
		case TabResults:
			newResults, cmd := a.results.Update(msg)
			a.results = newResults.(ResultsModel)
			cmds = append(cmds, cmd)
		case TabHistory:
			newHist, cmd := a.histView.Update(msg)
			a.histView = newHist.(HistoryModel)
			cmds = append(cmds, cmd)
		}
	default:
		newResults, cmd := a.results.Update(msg)
		a.results = newResults.(ResultsModel)
		cmds = append(cmds, cmd)
		newHist, cmd := a.histView.Update(msg)
		a.histView = newHist.(HistoryModel)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	nav := a.renderTabs()

	var content string
	switch a.activeTab {
	case TabResults:
		content = a.results.View()
	case TabHistory:
		content = a.histView.View()
	}

	contentBox := lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		MaxHeight(max(1, a.height-4)).
		Render(content)

	status := lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Foreground(slateDim).
		Render("tab next  shift+tab prev  1-2 jump  q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		nav,
		contentBox,
		status,
	)
}

func (a *App) renderHeader() string {
	who := "not signed in"
	if a.session.LoggedIn() {
		who = a.session.Username
	}
	row := lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render("shieldhub"),
		"  ",
		dimStyle.Render("website security and file protection"),
		"  ",
		mutedBadgeStyle.Render(" "+who+" "),
	)
	return lipgloss.NewStyle().
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(line).
		Width(a.width).
		Padding(0, 1).
		Render(row)
}

func (a *App) renderTabs() string {
	parts := make([]string, 0, len(tabNames)*2)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if Tab(i) == a.activeTab {
			parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(accent).Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
		if i < len(tabNames)-1 {
			parts = append(parts, dimStyle.Render("  ·  "))
		}
	}
	return lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Foreground(slate).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, parts...))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
