// Package ui renders an interactive hierarchy browser: a class list on
// the left, the selected class's parents and linearization on the right.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ClassEntry carries everything the browser shows for one class.
type ClassEntry struct {
	Name          string
	Params        []string
	Parents       []string
	Linearization []string
	Problem       string // non-empty when linearization failed
}

type browserModel struct {
	title   string
	entries []ClassEntry
	cursor  int
	spinner spinner.Model
	width   int
	height  int
	loaded  bool
}

type loadedMsg struct{}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	problemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	paneStyle     = lipgloss.NewStyle().PaddingLeft(2)
)

// NewBrowserModel returns a Bubble Tea model over the armed classes.
func NewBrowserModel(title string, entries []ClassEntry) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return &browserModel{
		title:   title,
		entries: entries,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return loadedMsg{} })
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loaded = true
		return m, nil
	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.entries) - 1
		}
		return m, nil
	}
	return m, nil
}

func (m *browserModel) View() string {
	var b strings.Builder
	header := m.title
	if !m.loaded {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	listWidth := m.listWidth()
	list := m.renderList(listWidth)
	detail := m.renderDetail(m.width - listWidth - 4)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, paneStyle.Render(detail)))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ select · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *browserModel) listWidth() int {
	width := 12
	for _, e := range m.entries {
		if n := runewidth.StringWidth(e.Name) + 2; n > width {
			width = n
		}
	}
	if max := m.width / 3; width > max && max > 12 {
		width = max
	}
	return width
}

func (m *browserModel) renderList(width int) string {
	var b strings.Builder
	for i, e := range m.entries {
		name := runewidth.Truncate(e.Name, width, "…")
		line := "  " + name
		if i == m.cursor {
			line = selectedStyle.Render("> " + name)
		} else if e.Problem != "" {
			line = problemStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *browserModel) renderDetail(width int) string {
	if len(m.entries) == 0 {
		return dimStyle.Render("no classes armed")
	}
	if width < 20 {
		width = 20
	}
	e := m.entries[m.cursor]

	var b strings.Builder
	sig := e.Name
	if len(e.Params) > 0 {
		sig += "[" + strings.Join(e.Params, ", ") + "]"
	}
	b.WriteString(selectedStyle.Render(sig))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("parents"))
	b.WriteString("\n")
	if len(e.Parents) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, p := range e.Parents {
		b.WriteString("  " + runewidth.Truncate(p, width, "…") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("linearization"))
	b.WriteString("\n")
	if e.Problem != "" {
		b.WriteString(problemStyle.Render("  " + runewidth.Truncate(e.Problem, width, "…")))
		b.WriteString("\n")
		return b.String()
	}
	for i, step := range e.Linearization {
		prefix := "  "
		if i > 0 {
			prefix = "  " + dimStyle.Render("<-") + " "
		}
		b.WriteString(prefix + runewidth.Truncate(step, width, "…") + "\n")
	}
	return b.String()
}

// Run starts the browser and blocks until the user quits.
func Run(title string, entries []ClassEntry) error {
	p := tea.NewProgram(NewBrowserModel(title, entries), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
