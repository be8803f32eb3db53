package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/eduverse/internal/scene"
)

const (
	stateMenu = iota
	statePreview
)

// Opener mounts a preview for the chosen kind.
type Opener func(scene.Kind) (Preview, error)

// App shows a model menu and hands over to a Preview on selection. Esc in
// the preview unmounts it and returns to the menu.
type App struct {
	state   int
	cursor  int
	kinds   []scene.Kind
	open    Opener
	preview Preview
	err     error
	theme   Theme
	width   int
	height  int
}

func NewApp(kinds []scene.Kind, open Opener) App {
	return App{kinds: kinds, open: open, theme: ThemeClassroom}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == statePreview {
			return m.forward(msg)
		}
		return m, nil
	case tea.KeyMsg:
		if m.state == statePreview {
			if msg.String() == "esc" {
				m.preview.Close()
				m.preview = Preview{}
				m.state = stateMenu
				return m, nil
			}
			return m.forward(msg)
		}
		return m.menuKey(msg)
	default:
		if m.state == statePreview {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.preview.Update(msg)
	m.preview = next.(Preview)
	return m, cmd
}

func (m App) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.kinds)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.kinds) == 0 {
			return m, nil
		}
		p, err := m.open(m.kinds[m.cursor])
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.preview, m.state = p, statePreview
		cmds := []tea.Cmd{p.Init()}
		if m.width > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} })
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// Selected returns the kind under the cursor.
func (m App) Selected() scene.Kind {
	if len(m.kinds) == 0 {
		return ""
	}
	return m.kinds[m.cursor]
}

func (m App) InPreview() bool { return m.state == statePreview }

func (m App) View() string {
	if m.state == statePreview {
		return m.preview.View()
	}

	t := m.theme
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("EDUVERSE", t.Primary, t.Accent) + "\n    " +
		subtle.Render("procedural concept models") + "\n    " + subtle.Render(strings.Repeat("─", 25)) + "\n\n")
	pointer := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	name := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.Accent)
	dimmed := lipgloss.NewStyle().Foreground(t.Muted)
	for i, k := range m.kinds {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", pointer.Render("▸"), name.Render(fmt.Sprintf("%-12s", k)), desc.Render(scene.Describe(k))))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", dimmed.Render(fmt.Sprintf("%-12s", k)), dimmed.Render(scene.Describe(k))))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(t.Error).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints(t, "j/k", "navigate", "enter", "open", "esc", "back", "q", "quit") + "\n")
	return b.String()
}

// RunApp runs the menu full screen.
func RunApp(app App) error {
	final, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	if a, ok := final.(App); ok && a.state == statePreview {
		a.preview.Close()
	}
	return err
}
