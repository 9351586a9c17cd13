package chooser

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"folio/internal/ui/theme"
)

const (
	title       = "CHOOSE YOUR REALITY"
	hintDesktop = "Drag the tilted bar. Release on the side you want."
	hintMobile  = "Drag the bar up or down. Release on the side you want."
	hintKeys    = "or use the arrow keys"
)

var (
	seriousCopy = []string{"SERIOUS", "", "Recruiter friendly layout", "", "Compact GitHub-style overview.", "Projects and stack first,", "jokes later."}
	playfulCopy = []string{"PLAYFUL", "", "Same data, different vibe", "", "Less Serious, no loss of", "information."}

	seriousChips = []string{"Pinned projects", "Tech stack", "Timeline"}
	playfulChips = []string{"Less Serious", "Soft animations", "Same projects"}
)

type layoutKey struct {
	w, h   int
	mobile bool
}

// panelLayout holds both panels as full-screen plain text grids. The divider
// decides, cell by cell, which grid shows through.
type panelLayout struct {
	serious []string
	playful []string
	// overlay lists, per row, the column spans of centred text that sits
	// above the divider bar.
	overlay map[int][]span
}

type span struct{ from, to int }

type segment struct {
	side  Side
	bar   bool
	from  int
	width int
}

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	mobile := m.machine.Mobile()
	layout := m.layout(mobile)
	raster := Compute(m.shown, mobile).Cells(m.width, m.height)

	seriousStyle := m.style(theme.Serious.Bg, theme.Text)
	playfulStyle := m.style(theme.Playful.Bg, theme.Text)
	barStyle := m.style(theme.Playful.Bg, theme.Text).Bold(true)
	if m.machine.Dragging() {
		barStyle = m.style(theme.Playful.Bg, theme.Playful.Accent).Bold(true)
	}
	barGlyph := "╲"
	if mobile {
		barGlyph = "━"
	}

	rows := make([]string, m.height)
	for row := range m.height {
		var sb strings.Builder
		for _, seg := range rowSegments(raster, row, m.width, layout.overlay[row]) {
			switch {
			case seg.bar:
				sb.WriteString(barStyle.Render(strings.Repeat(barGlyph, seg.width)))
			case seg.side == SeriousSide:
				sb.WriteString(seriousStyle.Render(sliceCols(layout.serious[row], seg.from, seg.from+seg.width)))
			default:
				sb.WriteString(playfulStyle.Render(sliceCols(layout.playful[row], seg.from, seg.from+seg.width)))
			}
		}
		rows[row] = sb.String()
	}
	return strings.Join(rows, "\n")
}

// style blends both colours toward the backdrop as the exit fade runs.
func (m Model) style(bg, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(blend(string(bg), string(theme.Crust), m.fade))).
		Foreground(lipgloss.Color(blend(string(fg), string(theme.Crust), m.fade)))
}

func blend(from, to string, t float64) string {
	if t <= 0 {
		return from
	}
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil {
		return from
	}
	return a.BlendLab(b, t).Clamped().Hex()
}

func rowSegments(r Raster, row, width int, overlay []span) []segment {
	if r.Empty() {
		return []segment{{side: SeriousSide, width: width}}
	}
	var segs []segment
	for col := range width {
		bar := r.OnBar(col, row) && !covered(overlay, col)
		cur := segment{side: r.Side(col, row), bar: bar, from: col, width: 1}
		if n := len(segs); n > 0 && segs[n-1].side == cur.side && segs[n-1].bar == cur.bar {
			segs[n-1].width++
			continue
		}
		segs = append(segs, cur)
	}
	return segs
}

func covered(spans []span, col int) bool {
	for _, s := range spans {
		if col >= s.from && col < s.to {
			return true
		}
	}
	return false
}

func (m Model) layout(mobile bool) panelLayout {
	k := layoutKey{w: m.width, h: m.height, mobile: mobile}
	if cached, ok := m.layouts.Get(k); ok {
		return cached
	}
	l := buildLayout(m.width, m.height, mobile)
	m.layouts.Add(k, l)
	return l
}

func buildLayout(w, h int, mobile bool) panelLayout {
	serious := blankGrid(w, h)
	playful := blankGrid(w, h)
	padX, padY := 4, 2
	if mobile {
		padX, padY = 2, 1
	}

	for i, line := range seriousCopy {
		put(serious, padY+i, padX, line)
	}
	if mobile {
		top := h - padY - len(playfulCopy)
		for i, line := range playfulCopy {
			put(playful, top+i, w-padX-runewidth.StringWidth(line), line)
		}
	} else {
		for i, line := range playfulCopy {
			put(playful, padY+i, w-padX-runewidth.StringWidth(line), line)
		}
		chips := chipLine(seriousChips)
		put(serious, h-padY-1, padX, chips)
		chips = chipLine(playfulChips)
		put(playful, h-padY-1, w-padX-runewidth.StringWidth(chips), chips)
	}

	hint := hintDesktop
	if mobile {
		hint = hintMobile
	}
	overlay := map[int][]span{}
	mid := h / 2
	for row, text := range map[int]string{mid - 2: title, mid: hint, mid + 1: hintKeys} {
		center(serious, row, text)
		from := center(playful, row, text)
		overlay[row] = append(overlay[row], span{from: from, to: from + runewidth.StringWidth(text)})
	}
	return panelLayout{serious: serious, playful: playful, overlay: overlay}
}

func chipLine(chips []string) string {
	parts := make([]string, len(chips))
	for i, c := range chips {
		parts[i] = "(" + c + ")"
	}
	return strings.Join(parts, " ")
}

func blankGrid(w, h int) []string {
	grid := make([]string, h)
	for i := range grid {
		grid[i] = strings.Repeat(" ", w)
	}
	return grid
}

func center(grid []string, row int, text string) int {
	if row < 0 || row >= len(grid) {
		return 0
	}
	w := runewidth.StringWidth(grid[row])
	col := (w - runewidth.StringWidth(text)) / 2
	put(grid, row, col, text)
	return col
}

// put overwrites grid[row] starting at col, clipping at both edges.
func put(grid []string, row, col int, text string) {
	if row < 0 || row >= len(grid) {
		return
	}
	line := grid[row]
	w := runewidth.StringWidth(line)
	if col < 0 {
		text = sliceCols(text, -col, runewidth.StringWidth(text))
		col = 0
	}
	if col >= w {
		return
	}
	text = runewidth.Truncate(text, w-col, "")
	tw := runewidth.StringWidth(text)
	grid[row] = sliceCols(line, 0, col) + text + sliceCols(line, col+tw, w)
}

// sliceCols returns the display columns [from, to) of s, padding with spaces
// where a wide rune straddles either edge.
func sliceCols(s string, from, to int) string {
	if to <= from {
		return ""
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		next := col + rw
		switch {
		case next <= from:
		case col >= to:
			return runewidth.FillRight(sb.String(), to-from)
		case col < from || next > to:
			sb.WriteString(strings.Repeat(" ", min(next, to)-max(col, from)))
		default:
			sb.WriteRune(r)
		}
		col = next
	}
	return runewidth.FillRight(sb.String(), to-from)
}
