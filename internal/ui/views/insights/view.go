package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"etut/internal/modules/insight/domain"
	insightdto "etut/internal/modules/insight/dto"
	"etut/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type InsightPort interface {
	Insights(ctx context.Context) ([]insightdto.InsightOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type InsightsLoadedMsg struct {
	Insights []insightdto.InsightOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model shows three carousels, one per category. Left/right cycles the
// focused carousel; up/down moves focus between them.
type Model struct {
	port InsightPort

	groups  [3][]insightdto.InsightOutput
	indexes [3]int
	focus   int
	spinner spinner.Model
	loading bool
	errText string
	width   int
}

var groupOrder = [3]string{"positive", "neutral", "negative"}
var groupTitles = [3]string{"İyi gidiyor", "Dikkat", "Uyarı"}

func New(port InsightPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case InsightsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.groups = [3][]insightdto.InsightOutput{}
		m.indexes = [3]int{}
		for _, insight := range msg.Insights {
			for g, category := range groupOrder {
				if insight.Category == category {
					m.groups[g] = append(m.groups[g], insight)
					break
				}
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.indexes[m.focus] = domain.Cycle(m.indexes[m.focus], -1, len(m.groups[m.focus]))
		case "right", "l":
			m.indexes[m.focus] = domain.Cycle(m.indexes[m.focus], 1, len(m.groups[m.focus]))
		case "up", "k":
			m.focus = domain.Cycle(m.focus, -1, 3)
		case "down", "j":
			m.focus = domain.Cycle(m.focus, 1, 3)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return theme.Pane.Render(m.spinner.View() + " içgörüler hazırlanıyor")
	}
	if m.errText != "" {
		return theme.Pane.Render(theme.Bad.Render("içgörüler alınamadı: " + m.errText))
	}

	panes := make([]string, 0, 3)
	for g := range groupOrder {
		panes = append(panes, m.renderGroup(g))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panes...)
}

// Refresh reloads insights after the session log changes.
func (m Model) Refresh() tea.Cmd {
	return m.loadCmd()
}

func (m Model) renderGroup(g int) string {
	titleStyle := [3]lipgloss.Style{theme.Good, theme.Warn, theme.Bad}[g]

	var b strings.Builder
	b.WriteString(titleStyle.Render(groupTitles[g]))
	items := m.groups[g]
	if len(items) == 0 {
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render("şimdilik bir şey yok"))
	} else {
		idx := m.indexes[g]
		b.WriteString(theme.Muted.Render(fmt.Sprintf("  %d/%d", idx+1, len(items))))
		b.WriteString("\n")
		b.WriteString(items[idx].Message)
	}

	pane := theme.Pane
	if g == m.focus {
		pane = theme.PaneActive
	}
	if m.width > 8 {
		pane = pane.Width(m.width - 8)
	}
	return pane.Render(b.String())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		insights, err := m.port.Insights(context.Background())
		return InsightsLoadedMsg{Insights: insights, Err: err}
	}
}
