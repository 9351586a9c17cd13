package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	Crust    = lipgloss.Color("#11111b")
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Overlay0 = lipgloss.Color("#6c7086")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Peach    = lipgloss.Color("#fab387")
)

// Side is the colour set one mode is painted with.
type Side struct {
	Bg     lipgloss.Color
	Bar    lipgloss.Color
	Accent lipgloss.Color
	Rule   lipgloss.Color
}

var (
	Serious = Side{Bg: Mantle, Bar: Mantle, Accent: Sapphire, Rule: Surface1}
	Playful = Side{Bg: Base, Bar: Crust, Accent: Peach, Rule: Surface0}
)

// For picks the side by mode name; anything but "playful" is Serious.
func For(mode string) Side {
	if mode == "playful" {
		return Playful
	}
	return Serious
}

// Card frames a block of the Serious page.
func (s Side) Card() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(s.Rule).
		Background(s.Bg).
		Foreground(Text)
}

var (
	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Chip  = lipgloss.NewStyle().Foreground(Subtext0).Background(Surface0).Padding(0, 1)
	Link  = lipgloss.NewStyle().Foreground(Lavender).Underline(true)
)
