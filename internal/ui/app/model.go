package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	insightdto "etut/internal/modules/insight/dto"
	sessiondto "etut/internal/modules/session/dto"
	statsdto "etut/internal/modules/stats/dto"
	"etut/internal/platform/config"
	"etut/internal/ui/theme"
	dashboardview "etut/internal/ui/views/dashboard"
	insightsview "etut/internal/ui/views/insights"
	libraryview "etut/internal/ui/views/library"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages.

type sessionPort interface {
	DailyStats(ctx context.Context, date time.Time, sessionType string) (sessiondto.DailyStatsOutput, error)
}

type statsPort interface {
	PeriodSummary(ctx context.Context, input statsdto.PeriodInput) (statsdto.SummaryOutput, error)
}

type insightPort interface {
	Streak(ctx context.Context) (int, error)
	Insights(ctx context.Context) ([]insightdto.InsightOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabLibrary
	tabInsights
	tabCount
)

var tabLabels = [tabCount]string{
	"Özet", "Kitaplık", "İçgörüler",
}

// ─── async messages ───────────────────────────────────────────────────────────

type todayLoadedMsg struct {
	today sessiondto.DailyStatsOutput
	err   error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sekme")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "yenile")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "yardım")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "çık")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing and the status
// line; rendering and data loading live in the sub-views.
type Model struct {
	cfg     config.Config
	session sessionPort

	dashView dashboardview.Model
	libView  libraryview.Model
	insView  insightsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	today     sessiondto.DailyStatsOutput
	status    string
	width     int
	height    int
}

func NewModel(cfg config.Config, session sessionPort, library libraryview.LibraryPort, stats statsPort, insight insightPort) Model {
	return Model{
		cfg:      cfg,
		session:  session,
		dashView: dashboardview.New(stats, insight),
		libView:  libraryview.New(library),
		insView:  insightsview.New(insight),
		keys:     defaultKeys(),
		help:     help.New(),
		status:   "hazır",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.libView.Init(),
		m.insView.Init(),
		m.loadTodayCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()

	case todayLoadedMsg:
		if msg.err != nil {
			m.status = "günlük özet: " + msg.err.Error()
		} else {
			m.today = msg.today
			m.status = "hazır"
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, tea.Batch(
				m.dashView.Refresh(),
				m.libView.Refresh(),
				m.insView.Refresh(),
				m.loadTodayCmd(),
			)
		}
	}

	// Route everything else to the sub-views; the inactive ones still
	// receive their own async load messages.
	var cmd tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.activeTab == tabDashboard {
		m.dashView, cmd = m.dashView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.activeTab == tabLibrary {
		m.libView, cmd = m.libView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.activeTab == tabInsights {
		m.insView, cmd = m.insView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) propagateSize() {
	size := tea.WindowSizeMsg{Width: m.width, Height: m.height - 4}
	m.dashView, _ = m.dashView.Update(size)
	m.libView, _ = m.libView.Update(size)
	m.insView, _ = m.insView.Update(size)
}

func (m Model) loadTodayCmd() tea.Cmd {
	return func() tea.Msg {
		today, err := m.session.DailyStats(context.Background(), time.Now(), "")
		return todayLoadedMsg{today: today, err: err}
	}
}

// ─── view ─────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderTabs()
	statusLine := theme.Muted.Render(fmt.Sprintf(
		"bugün: %d soru, %.2f net  •  %s",
		m.today.Val, m.today.Net, m.status,
	))

	var body string
	switch m.activeTab {
	case tabDashboard:
		body = m.dashView.View()
	case tabLibrary:
		body = m.libView.View()
	case tabInsights:
		body = m.insView.View()
	}
	if m.showHelp {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
	}
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, header, statusLine, body))
}

func (m Model) renderTabs() string {
	rendered := make([]string, 0, int(tabCount))
	for i, label := range tabLabels {
		if tabID(i) == m.activeTab {
			rendered = append(rendered, theme.Hot.Render("["+label+"]"))
		} else {
			rendered = append(rendered, theme.Muted.Render(" "+label+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
