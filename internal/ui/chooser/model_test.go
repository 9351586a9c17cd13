package chooser_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"folio/internal/modules/preference/domain"
	"folio/internal/platform/sched"
	"folio/internal/ui/chooser"
)

type harness struct {
	model chooser.Model
	clock *sched.Manual
	now   time.Time
	out   []tea.Msg
}

func newHarness(t *testing.T, hint domain.Mode, width, height int) *harness {
	t.Helper()
	h := &harness{clock: &sched.Manual{}, now: t0}
	h.model = chooser.New(hint, chooser.Config{
		Width:        width,
		Height:       height,
		CellWidthPx:  8,
		CellHeightPx: 16,
		Now:          func() time.Time { return h.now },
		Schedule: func(task sched.Task) tea.Cmd {
			h.clock.Add(task)
			return nil
		},
	})
	return h
}

func (h *harness) send(msg tea.Msg) {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	h.collect(cmd)
}

// collect runs synchronous commands, skipping the mouse-mode toggles which
// are program-level side effects.
func (h *harness) collect(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			h.collect(c)
		}
		return
	}
	if _, ok := msg.(chooser.DecidedMsg); ok {
		h.out = append(h.out, msg)
	}
}

func (h *harness) advance(d time.Duration) {
	h.clock.AdvanceEach(d, func(task sched.Task) []sched.Task {
		h.now = t0.Add(h.clock.Now())
		h.send(chooser.TimerMsg{ID: task.ID})
		return nil
	})
	h.now = t0.Add(h.clock.Now())
}

func (h *harness) decisions() []domain.Mode {
	var modes []domain.Mode
	for _, msg := range h.out {
		if d, ok := msg.(chooser.DecidedMsg); ok {
			modes = append(modes, d.Mode)
		}
	}
	return modes
}

func dividerColumn(m chooser.Model, row int) int {
	r := chooser.Compute(m.Machine().Ratio(), m.Machine().Mobile()).Cells(120, 40)
	for col := range 120 {
		if r.OnBar(col, row) {
			return col
		}
	}
	return -1
}

func TestMouseDragHardCommitDecidesAfter440ms(t *testing.T) {
	t.Parallel()
	h := newHarness(t, domain.Serious, 120, 40)
	col := dividerColumn(h.model, 20)
	if col < 0 {
		t.Fatalf("divider not found on row 20")
	}

	h.send(tea.MouseMsg{X: col, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !h.model.Machine().Dragging() || h.model.Machine().Captures() != 1 {
		t.Fatalf("press on the divider must start a drag")
	}
	h.now = h.now.Add(16 * time.Millisecond)
	h.send(tea.MouseMsg{X: col + 40, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if h.model.Machine().State() != chooser.Committing {
		t.Fatalf("expected hard commit, got %s", h.model.Machine().State())
	}

	h.advance(439 * time.Millisecond)
	if len(h.decisions()) != 0 {
		t.Fatalf("decision arrived before 440ms")
	}
	h.advance(time.Millisecond)
	if got := h.decisions(); len(got) != 1 || got[0] != domain.Serious {
		t.Fatalf("expected one serious decision, got %v", got)
	}

	h.send(tea.MouseMsg{X: col, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	h.advance(time.Second)
	if len(h.decisions()) != 1 {
		t.Fatalf("decision must be reported exactly once")
	}
}

func TestPressAwayFromDividerIsIgnored(t *testing.T) {
	t.Parallel()
	h := newHarness(t, domain.Serious, 120, 40)
	h.send(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if h.model.Machine().Dragging() {
		t.Fatalf("press far from the divider must not grab")
	}
}

func TestArrowKeysNudgeThenCommit(t *testing.T) {
	t.Parallel()
	h := newHarness(t, domain.Playful, 120, 40)
	h.send(tea.KeyMsg{Type: tea.KeyLeft})
	if h.model.Machine().State() != chooser.Idle {
		t.Fatalf("first nudge must stay idle, got %s", h.model.Machine().State())
	}
	h.send(tea.KeyMsg{Type: tea.KeyLeft})
	if h.model.Machine().State() != chooser.Committing {
		t.Fatalf("second nudge must commit, got %s", h.model.Machine().State())
	}
	h.advance(440 * time.Millisecond)
	if got := h.decisions(); len(got) != 1 || got[0] != domain.Playful {
		t.Fatalf("expected playful decision, got %v", got)
	}
}

func TestTeardownStopsPendingDecision(t *testing.T) {
	t.Parallel()
	h := newHarness(t, domain.Serious, 120, 40)
	h.send(tea.KeyMsg{Type: tea.KeyRight})
	h.send(tea.KeyMsg{Type: tea.KeyRight})
	h.model.Teardown()
	h.advance(time.Second)
	if len(h.decisions()) != 0 {
		t.Fatalf("torn down chooser must stay silent")
	}
}

func TestViewFillsScreenAndShowsTitle(t *testing.T) {
	t.Parallel()
	h := newHarness(t, domain.Serious, 120, 40)
	view := h.model.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 40 {
		t.Fatalf("expected 40 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 120 {
			t.Fatalf("row %d: expected width 120, got %d", i, w)
		}
	}
	plain := ansi.Strip(view)
	for _, want := range []string{"CHOOSE YOUR REALITY", "SERIOUS", "PLAYFUL", "Pinned projects"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestMobileViewDropsChips(t *testing.T) {
	t.Parallel()
	h := newHarness(t, domain.Serious, 60, 40)
	if !h.model.Machine().Mobile() {
		t.Fatalf("60 columns at 8px must be mobile")
	}
	plain := ansi.Strip(h.model.View())
	if strings.Contains(plain, "Pinned projects") {
		t.Fatalf("feature chips are desktop only")
	}
	if !strings.Contains(plain, "up or down") {
		t.Fatalf("mobile hint missing")
	}
}

func TestEasingSettlesOnLogicalRatio(t *testing.T) {
	t.Parallel()
	h := newHarness(t, domain.Serious, 120, 40)
	h.send(tea.KeyMsg{Type: tea.KeyRight})
	if !h.model.Animating() {
		t.Fatalf("nudge must start easing the divider")
	}
	for range 100 {
		h.now = h.now.Add(40 * time.Millisecond)
		h.model.Tick(h.now)
	}
	if h.model.Animating() {
		t.Fatalf("divider must settle, shown=%v logical=%v", h.model.Ratio(), h.model.Machine().Ratio())
	}
}
