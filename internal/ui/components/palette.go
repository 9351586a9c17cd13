package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

type paletteCommand struct {
	name string
	desc string
}

// commands must stay in sync with the switch in app/model.go executePalette.
var commands = []paletteCommand{
	{"view:change", "pick Serious or Playful again"},
	{"projects:refresh", "refetch projects, skipping the cache"},
	{"copy:email", "copy the e-mail address"},
	{"copy:github", "copy the GitHub link"},
	{"content:reload", "re-read the content file"},
	{"quit", "leave folio"},
}

const maxSuggestions = 6

// Palette is the ":" command line. Tab completes the first suggestion.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	accent  lipgloss.Color
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command, tab to complete"
	ti.CharLimit = 64
	ti.Prompt = ": "
	return Palette{input: ti, accent: theme.Serious.Accent}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// SetAccent matches the border to the mounted mode.
func (p *Palette) SetAccent(c lipgloss.Color) { p.accent = c }

// Value is the current input.
func (p Palette) Value() string { return p.input.Value() }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if found := suggestions(p.input.Value()); len(found) > 0 {
				p.input.SetValue(found[0].name)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func suggestions(prefix string) []paletteCommand {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []paletteCommand
	for _, c := range commands {
		if strings.HasPrefix(c.name, prefix) {
			out = append(out, c)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	found := suggestions(p.input.Value())
	nameW := 0
	for _, c := range found {
		nameW = max(nameW, len(c.name))
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(p.accent).Bold(true).Render("Commands") + "\n")
	sb.WriteString(p.input.View())
	for i, c := range found {
		name := c.name + strings.Repeat(" ", nameW-len(c.name))
		if i == 0 {
			name = lipgloss.NewStyle().Foreground(p.accent).Render(name)
		}
		sb.WriteString("\n  " + name + "  " + theme.Muted.Render(c.desc))
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.accent).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(w - 2).
		Render(sb.String())
}
