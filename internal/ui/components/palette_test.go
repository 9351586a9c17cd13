package components_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"folio/internal/ui/components"
)

func typeText(p components.Palette, s string) components.Palette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPaletteTabCompletes(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeText(p, "pro")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.Value() != "projects:refresh" {
		t.Fatalf("expected completion, got %q", p.Value())
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("enter must close the palette")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != "projects:refresh" {
		t.Fatalf("unexpected submit %#v", cmd())
	}
}

func TestPaletteFiltersSuggestions(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeText(p, "copy")
	out := ansi.Strip(p.View())
	if !strings.Contains(out, "copy:email") || !strings.Contains(out, "copy:github") {
		t.Fatalf("expected copy commands:\n%s", out)
	}
	if strings.Contains(out, "quit") {
		t.Fatalf("non-matching commands must be hidden:\n%s", out)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("esc must close the palette")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("expected a cancel message")
	}
}
