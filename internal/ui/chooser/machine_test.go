package chooser_test

import (
	"math"
	"testing"
	"time"

	"folio/internal/modules/preference/domain"
	"folio/internal/platform/sched"
	"folio/internal/ui/chooser"
)

var (
	desktop = chooser.Rect{W: 1200, H: 800}
	mobile  = chooser.Rect{W: 480, H: 800}
	t0      = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func grabAtDivider(t *testing.T, m *chooser.Machine, ms int) {
	t.Helper()
	c := m.Container()
	p := chooser.Pointer{X: c.X + m.Ratio()*c.W, Y: c.Y + m.Ratio()*c.H, At: at(ms)}
	if step := m.Grab(p); step.Outcome != chooser.Grabbed {
		t.Fatalf("grab: expected Grabbed, got %v", step.Outcome)
	}
}

// runToDecision drives the scheduled tasks on virtual time and returns the
// decisions observed and when each arrived.
func runToDecision(m *chooser.Machine, clock *sched.Manual, window time.Duration) ([]domain.Mode, []time.Duration) {
	var choices []domain.Mode
	var times []time.Duration
	clock.AdvanceEach(window, func(task sched.Task) []sched.Task {
		step := m.Fire(task.ID)
		if step.Decided {
			choices = append(choices, step.Choice)
			times = append(times, clock.Now())
		}
		return step.Tasks
	})
	return choices, times
}

func TestSeedRatioFollowsHint(t *testing.T) {
	t.Parallel()
	if r := chooser.NewMachine(domain.Serious, desktop, nil).Ratio(); r != 0.55 {
		t.Fatalf("serious hint: expected 0.55, got %v", r)
	}
	if r := chooser.NewMachine(domain.Playful, desktop, nil).Ratio(); r != 0.45 {
		t.Fatalf("playful hint: expected 0.45, got %v", r)
	}
}

func TestHardThresholdCommitsWithoutRelease(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	grabAtDivider(t, m, 0)

	step := m.Move(chooser.Pointer{X: 0.86 * desktop.W, Y: 400, At: at(16)})
	if step.Outcome != chooser.HardCommit {
		t.Fatalf("expected hard commit, got %v", step.Outcome)
	}
	if step.Choice != domain.Serious {
		t.Fatalf("desktop ratio above centre must choose serious, got %s", step.Choice)
	}
	if m.Ratio() != 1.5 {
		t.Fatalf("overshoot must be visible immediately, got %v", m.Ratio())
	}
	if m.Dragging() || m.Captures() != 0 {
		t.Fatalf("hard commit must end the drag and release the capture")
	}
	if late := m.Release(chooser.Pointer{At: at(20)}); late.Outcome != chooser.Ignored {
		t.Fatalf("release after hard commit must be ignored, got %v", late.Outcome)
	}
}

func TestHardThresholdInvertedOnMobile(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, mobile, nil)
	if !m.Mobile() {
		t.Fatalf("480px wide container must be mobile")
	}
	grabAtDivider(t, m, 0)
	step := m.Move(chooser.Pointer{X: 240, Y: 0.9 * mobile.H, At: at(1000)})
	if step.Outcome != chooser.HardCommit || step.Choice != domain.Playful {
		t.Fatalf("mobile low divider must choose playful, got %v %s", step.Outcome, step.Choice)
	}
	if m.Ratio() != 1.5 {
		t.Fatalf("mobile playful overshoot must be 1.5, got %v", m.Ratio())
	}
}

func TestOffsetAtExactlyHardThresholdDoesNotCommit(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	grabAtDivider(t, m, 0)
	// (0.85-0.5)*2 evaluates to 0.7 exactly, which is not above the threshold.
	step := m.Move(chooser.Pointer{X: 0.85 * desktop.W, At: at(5000)})
	if step.Outcome != chooser.Moved {
		t.Fatalf("expected a plain move at offset 0.7, got %v", step.Outcome)
	}
}

func TestHardThresholdFiresIffOffsetAboveLimit(t *testing.T) {
	t.Parallel()
	for i := 0; i <= 100; i++ {
		target := float64(i) / 100
		m := chooser.NewMachine(domain.Serious, desktop, nil)
		grabAtDivider(t, m, 0)
		x := target * desktop.W
		clamped := math.Min(0.9, math.Max(0.1, x/desktop.W))
		want := math.Abs((clamped-0.5)*2) > chooser.HardThreshold

		step := m.Move(chooser.Pointer{X: x, At: at(100000)})
		if got := step.Outcome == chooser.HardCommit; got != want {
			t.Fatalf("target %.2f: hard commit=%v, want %v", target, got, want)
		}
	}
}

func TestVelocityBeatsRestingSide(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	grabAtDivider(t, m, 0)
	m.Move(chooser.Pointer{X: 0.65 * desktop.W, At: at(1000)})
	m.Move(chooser.Pointer{X: 0.60 * desktop.W, At: at(1002)})
	if v := m.Velocity(); v > -0.01 {
		t.Fatalf("expected a fast leftward velocity, got %v", v)
	}

	step := m.Release(chooser.Pointer{At: at(1003)})
	if step.Outcome != chooser.VelocityCommit {
		t.Fatalf("expected velocity commit, got %v", step.Outcome)
	}
	if step.Choice != domain.Playful {
		t.Fatalf("negative desktop velocity must choose playful despite ratio 0.6, got %s", step.Choice)
	}
	if m.Velocity() != 0 {
		t.Fatalf("velocity must reset on release")
	}
}

func TestVelocityDirectionInvertedOnMobile(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Playful, mobile, nil)
	grabAtDivider(t, m, 0)
	m.Move(chooser.Pointer{X: 240, Y: 0.40 * mobile.H, At: at(1000)})
	m.Move(chooser.Pointer{X: 240, Y: 0.50 * mobile.H, At: at(1004)})
	step := m.Release(chooser.Pointer{At: at(1005)})
	if step.Outcome != chooser.VelocityCommit || step.Choice != domain.Playful {
		t.Fatalf("positive mobile velocity must choose playful, got %v %s", step.Outcome, step.Choice)
	}
	if m.Ratio() != 1.5 {
		t.Fatalf("mobile playful overshoot must be 1.5, got %v", m.Ratio())
	}
}

func TestReleaseWithoutMoveDiscards(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	grabAtDivider(t, m, 0)
	step := m.Release(chooser.Pointer{At: at(800)})
	if step.Outcome != chooser.Discarded {
		t.Fatalf("expected discard, got %v", step.Outcome)
	}
	if m.State() != chooser.Idle || m.Ratio() != 0.55 {
		t.Fatalf("discard must return to idle at 0.55, got %s %v", m.State(), m.Ratio())
	}
	if len(step.Tasks) != 0 {
		t.Fatalf("discard must not schedule anything")
	}
}

func TestFirstMoveOnlySeedsVelocity(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	grabAtDivider(t, m, 0)
	m.Move(chooser.Pointer{X: 0.62 * desktop.W, At: at(5)})
	if m.Velocity() != 0 {
		t.Fatalf("a single move must not produce a velocity, got %v", m.Velocity())
	}
	step := m.Release(chooser.Pointer{At: at(6)})
	if step.Outcome != chooser.Discarded {
		t.Fatalf("offset 0.24 without velocity must discard, got %v", step.Outcome)
	}
}

func TestResizeMidDragKeepsGrabOffsetInScale(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	// Grab 60px right of the divider at 0.55.
	if step := m.Grab(chooser.Pointer{X: 0.55*desktop.W + 60, Y: 400, At: at(0)}); step.Outcome != chooser.Grabbed {
		t.Fatalf("grab: expected Grabbed, got %v", step.Outcome)
	}
	wide := chooser.Rect{W: 2400, H: 800}
	m.Resize(wide)
	m.Move(chooser.Pointer{X: 0.60*wide.W + 120, Y: 400, At: at(5000)})
	if math.Abs(m.Ratio()-0.60) > 1e-9 {
		t.Fatalf("expected the divider to follow the scaled grab point to 0.60, got %v", m.Ratio())
	}
}

func TestSlowReleaseCommitsByRestingSide(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Playful, desktop, nil)
	grabAtDivider(t, m, 0)
	m.Move(chooser.Pointer{X: 0.30 * desktop.W, At: at(5000)})
	m.Move(chooser.Pointer{X: 0.25 * desktop.W, At: at(10000)})
	step := m.Release(chooser.Pointer{At: at(20000)})
	if step.Outcome != chooser.RestingCommit || step.Choice != domain.Playful {
		t.Fatalf("expected resting commit to playful, got %v %s", step.Outcome, step.Choice)
	}
	if m.Ratio() != -0.5 {
		t.Fatalf("desktop playful overshoot must be -0.5, got %v", m.Ratio())
	}
}

func TestExactlyOneReleaseOutcome(t *testing.T) {
	t.Parallel()
	positions := []float64{0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	delays := []int{1, 10, 100, 10000}
	for _, pos := range positions {
		for _, delay := range delays {
			m := chooser.NewMachine(domain.Serious, desktop, nil)
			grabAtDivider(t, m, 0)
			moved := m.Move(chooser.Pointer{X: pos * desktop.W, At: at(delay)})
			if moved.Committed() {
				continue
			}
			step := m.Release(chooser.Pointer{At: at(delay + 1)})
			switch step.Outcome {
			case chooser.Discarded, chooser.RestingCommit, chooser.VelocityCommit:
			default:
				t.Fatalf("pos %.1f delay %d: unexpected release outcome %v", pos, delay, step.Outcome)
			}
		}
	}
}

func TestCommitSequenceDecidesOnceAfter440ms(t *testing.T) {
	t.Parallel()
	paths := map[string]func(*chooser.Machine) chooser.Step{
		"hard": func(m *chooser.Machine) chooser.Step {
			return m.Move(chooser.Pointer{X: 0.9 * desktop.W, At: at(10)})
		},
		"velocity": func(m *chooser.Machine) chooser.Step {
			m.Move(chooser.Pointer{X: 0.50 * desktop.W, At: at(4)})
			m.Move(chooser.Pointer{X: 0.45 * desktop.W, At: at(5)})
			return m.Release(chooser.Pointer{At: at(6)})
		},
		"resting": func(m *chooser.Machine) chooser.Step {
			m.Move(chooser.Pointer{X: 0.75 * desktop.W, At: at(60000)})
			return m.Release(chooser.Pointer{At: at(60001)})
		},
	}
	for name, trigger := range paths {
		m := chooser.NewMachine(domain.Serious, desktop, nil)
		grabAtDivider(t, m, 0)
		step := trigger(m)
		if !step.Committed() {
			t.Fatalf("%s: expected a commit, got %v", name, step.Outcome)
		}
		clock := &sched.Manual{}
		clock.Add(step.Tasks...)

		choices, _ := runToDecision(m, clock, 219*time.Millisecond)
		if m.Exiting() || len(choices) != 0 {
			t.Fatalf("%s: nothing may happen before 220ms", name)
		}
		choices, _ = runToDecision(m, clock, time.Millisecond)
		if !m.Exiting() || len(choices) != 0 {
			t.Fatalf("%s: exit fade must start at 220ms without deciding", name)
		}
		choices, _ = runToDecision(m, clock, 219*time.Millisecond)
		if len(choices) != 0 {
			t.Fatalf("%s: decision arrived early", name)
		}
		choices, times := runToDecision(m, clock, time.Millisecond)
		if len(choices) != 1 || times[0] != 440*time.Millisecond {
			t.Fatalf("%s: expected one decision at 440ms, got %v at %v", name, choices, times)
		}
		choices, _ = runToDecision(m, clock, 10*time.Second)
		if len(choices) != 0 {
			t.Fatalf("%s: decision reported twice", name)
		}
	}
}

func TestInputsIgnoredOnceCommitting(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	grabAtDivider(t, m, 0)
	step := m.Move(chooser.Pointer{X: 0.9 * desktop.W, At: at(10)})
	if !step.Committed() {
		t.Fatalf("expected commit")
	}
	if g := m.Grab(chooser.Pointer{X: 600, At: at(20)}); g.Outcome != chooser.Ignored {
		t.Fatalf("grab during commit must be ignored, got %v", g.Outcome)
	}
	if n := m.Nudge(-0.1, at(30)); n.Outcome != chooser.Ignored {
		t.Fatalf("nudge during commit must be ignored, got %v", n.Outcome)
	}
	if m.Captures() != 0 {
		t.Fatalf("no capture may be held while committing")
	}
}

func TestTeardownCancelsPendingSequence(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	grabAtDivider(t, m, 0)
	step := m.Move(chooser.Pointer{X: 0.9 * desktop.W, At: at(10)})
	clock := &sched.Manual{}
	clock.Add(step.Tasks...)

	m.Teardown()
	choices, _ := runToDecision(m, clock, time.Second)
	if len(choices) != 0 || m.Exiting() {
		t.Fatalf("torn down machine must not advance, got %v", choices)
	}
}

func TestCaptureScopedToDrag(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	for i := range 5 {
		grabAtDivider(t, m, i*1000)
		if m.Captures() != 1 {
			t.Fatalf("grab %d: expected one capture, got %d", i, m.Captures())
		}
		m.Release(chooser.Pointer{At: at(i*1000 + 500)})
		if m.Captures() != 0 {
			t.Fatalf("release %d: capture leaked", i)
		}
	}
	grabAtDivider(t, m, 10000)
	m.Teardown()
	if m.Captures() != 0 || m.Dragging() {
		t.Fatalf("teardown must release an active capture")
	}
	if step := m.Move(chooser.Pointer{X: 1000, At: at(10001)}); step.Outcome != chooser.Ignored {
		t.Fatalf("move without capture must be ignored")
	}
}

func TestResizeKeepsRatioAndDrag(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	grabAtDivider(t, m, 0)
	m.Move(chooser.Pointer{X: 0.6 * desktop.W, At: at(5000)})
	before := m.Ratio()

	m.Resize(chooser.Rect{W: 600, H: 900})
	if !m.Mobile() {
		t.Fatalf("600px must switch to mobile")
	}
	if m.Ratio() != before || !m.Dragging() {
		t.Fatalf("resize must not reset ratio or drag")
	}

	m.Resize(chooser.Rect{W: 1600, H: 900})
	want := math.Atan(0.36*1600.0/900.0) * 180 / math.Pi
	if math.Abs(m.Angle()-want) > 1e-9 {
		t.Fatalf("expected angle %v, got %v", want, m.Angle())
	}
}

func TestZeroSizedContainerIgnoresSamples(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	grabAtDivider(t, m, 0)
	m.Resize(chooser.Rect{})
	if step := m.Move(chooser.Pointer{X: 900, At: at(10)}); step.Outcome != chooser.Ignored {
		t.Fatalf("move in a zero-sized container must be ignored, got %v", step.Outcome)
	}
	if m.Ratio() != 0.55 {
		t.Fatalf("ratio must be untouched, got %v", m.Ratio())
	}
}

func TestNudgeIsZeroVelocityGesture(t *testing.T) {
	t.Parallel()
	m := chooser.NewMachine(domain.Serious, desktop, nil)
	step := m.Nudge(0.05, at(0))
	if step.Outcome != chooser.Discarded {
		t.Fatalf("small nudge must discard, got %v", step.Outcome)
	}
	if math.Abs(m.Ratio()-0.6) > 1e-9 {
		t.Fatalf("expected ratio 0.6 after nudge, got %v", m.Ratio())
	}
	step = m.Nudge(0.1, at(10))
	if step.Outcome != chooser.RestingCommit || step.Choice != domain.Serious {
		t.Fatalf("nudge past the soft threshold must commit, got %v %s", step.Outcome, step.Choice)
	}
	if m.Captures() != 0 {
		t.Fatalf("nudge must not leave a capture behind")
	}
}
