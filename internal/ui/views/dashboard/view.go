package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "etut/internal/modules/stats/dto"
	"etut/internal/ui/theme"
)

const chartDays = 14

// ─── port ────────────────────────────────────────────────────────────────────

type StatsPort interface {
	PeriodSummary(ctx context.Context, input statsdto.PeriodInput) (statsdto.SummaryOutput, error)
}

type StreakPort interface {
	Streak(ctx context.Context) (int, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SummaryLoadedMsg struct {
	Summary statsdto.SummaryOutput
	Err     error
}

type StreakLoadedMsg struct {
	Streak int
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	stats   StatsPort
	streaks StreakPort

	summary statsdto.SummaryOutput
	streak  int
	spinner spinner.Model
	loading bool
	errText string
	width   int
	height  int
}

func New(stats StatsPort, streaks StreakPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{stats: stats, streaks: streaks, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSummaryCmd(), m.loadStreakCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case SummaryLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.summary = msg.Summary

	case StreakLoadedMsg:
		if msg.Err == nil {
			m.streak = msg.Streak
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return theme.Pane.Render(m.spinner.View() + " özet yükleniyor")
	}
	if m.errText != "" {
		return theme.Pane.Render(theme.Bad.Render("özet alınamadı: " + m.errText))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Son %d gün", chartDays)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %d   %s %.1f%%   %s %.2f net   %s %s\n",
		theme.Muted.Render("soru"), m.summary.Questions,
		theme.Muted.Render("isabet"), m.summary.Accuracy,
		theme.Muted.Render("toplam"), m.summary.Net,
		theme.Muted.Render("süre"), formatDuration(m.summary.DurationSeconds),
	))
	b.WriteString(theme.Hot.Render(fmt.Sprintf("seri: %d gün", m.streak)))
	b.WriteString("\n\n")
	b.WriteString(renderBars(m.summary.Days))
	b.WriteString("\n")

	for i, subject := range m.summary.Subjects {
		if i >= 5 {
			break
		}
		b.WriteString(fmt.Sprintf("%-14s %4d soru\n", subject.Subject, subject.Questions))
	}
	return theme.Pane.Render(b.String())
}

// Refresh reloads the period after a session write elsewhere in the app.
func (m Model) Refresh() tea.Cmd {
	return tea.Batch(m.loadSummaryCmd(), m.loadStreakCmd())
}

func (m Model) loadSummaryCmd() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		summary, err := m.stats.PeriodSummary(context.Background(), statsdto.PeriodInput{
			From: now.AddDate(0, 0, -(chartDays - 1)),
			To:   now,
		})
		return SummaryLoadedMsg{Summary: summary, Err: err}
	}
}

func (m Model) loadStreakCmd() tea.Cmd {
	return func() tea.Msg {
		streak, err := m.streaks.Streak(context.Background())
		return StreakLoadedMsg{Streak: streak, Err: err}
	}
}

var barGlyphs = []rune(" ▁▂▃▄▅▆▇█")

func renderBars(days []statsdto.DayOutput) string {
	maxVal := 0
	for _, day := range days {
		if day.Val > maxVal {
			maxVal = day.Val
		}
	}
	if maxVal == 0 {
		return theme.Muted.Render("henüz veri yok")
	}
	var bars strings.Builder
	for _, day := range days {
		idx := day.Val * (len(barGlyphs) - 1) / maxVal
		glyph := string(barGlyphs[idx])
		if day.Synthetic {
			bars.WriteString(theme.Muted.Render(glyph))
		} else {
			bars.WriteString(theme.Good.Render(glyph))
		}
	}
	return bars.String()
}

func formatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	min := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dd", min)
	}
	return fmt.Sprintf("%ds %dd", h, min)
}
