package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	libdto "etut/internal/modules/library/dto"
	"etut/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type LibraryPort interface {
	ListBooks(ctx context.Context) ([]libdto.BookOutput, error)
	GetBook(ctx context.Context, ref string) (libdto.BookDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type BooksLoadedMsg struct {
	Books []libdto.BookOutput
	Err   error
}

type DetailLoadedMsg struct {
	Detail libdto.BookDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type bookItem struct {
	book libdto.BookOutput
}

func (i bookItem) Title() string { return i.book.Title }
func (i bookItem) Description() string {
	return fmt.Sprintf("%s  %%%d  %d soru", i.book.Category, i.book.Progress, i.book.SolvedQuestions)
}
func (i bookItem) FilterValue() string { return i.book.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    LibraryPort
	list    list.Model
	detail  libdto.BookDetailOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port LibraryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Kitaplık"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBooksCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case BooksLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Kitaplık — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Books))
		for i, b := range msg.Books {
			items[i] = bookItem{book: b}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Books) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Books[0].Ref))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(renderDetail(msg.Detail))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
		if item, ok := m.list.SelectedItem().(bookItem); ok && item.book.Ref != m.detail.Ref {
			cmds = append(cmds, m.loadDetailCmd(item.book.Ref))
		}
		return m, tea.Batch(cmds...)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return theme.Pane.Render(m.spinner.View() + " kitaplık yükleniyor")
	}
	left := theme.PaneActive.Render(m.list.View())
	right := theme.Pane.Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// Refresh reloads the shelf after a reconciliation elsewhere in the app.
func (m Model) Refresh() tea.Cmd {
	return m.loadBooksCmd()
}

func (m *Model) resize() {
	listWidth := m.width / 2
	m.list.SetSize(listWidth-4, m.height-6)
	m.preview.Width = m.width - listWidth - 6
	m.preview.Height = m.height - 6
}

func (m Model) loadBooksCmd() tea.Cmd {
	return func() tea.Msg {
		books, err := m.port.ListBooks(context.Background())
		return BooksLoadedMsg{Books: books, Err: err}
	}
}

func (m Model) loadDetailCmd(ref string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.GetBook(context.Background(), ref)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}

func renderDetail(d libdto.BookDetailOutput) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(d.Category))
	b.WriteString("\n\n")
	if d.TotalQuestions != nil && *d.TotalQuestions > 0 {
		b.WriteString(fmt.Sprintf("soru: %d / %d\n", d.SolvedQuestions, *d.TotalQuestions))
	} else {
		b.WriteString(fmt.Sprintf("soru: %d\n", d.SolvedQuestions))
	}
	b.WriteString(fmt.Sprintf("ilerleme: %%%d\n", d.Progress))
	b.WriteString(fmt.Sprintf("isabet: %%%d   hız: %.2f soru/dk\n", d.Accuracy, d.QPM))
	if !d.LastSolvedAt.IsZero() {
		b.WriteString(fmt.Sprintf("son çözüm: %s\n", d.LastSolvedAt.Format(time.DateOnly)))
	}
	if len(d.Topics) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render("konular"))
		b.WriteString("\n")
		for _, topic := range d.Topics {
			if topic.IsDeleted {
				continue
			}
			marker := " "
			if topic.IsFinished {
				marker = theme.Good.Render("✓")
			}
			b.WriteString(fmt.Sprintf("%s %-24s %%%d\n", marker, topic.Label, topic.Progress))
		}
	}
	return b.String()
}
