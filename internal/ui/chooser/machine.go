package chooser

import (
	"math"
	"time"

	"folio/internal/modules/preference/domain"
	"folio/internal/platform/sched"
)

const (
	MobileBreakpoint  = 768.0
	BandHalfWidth     = 18.0
	BarWidth          = 4.0
	MinRatio          = 0.1
	MaxRatio          = 0.9
	SoftThreshold     = 0.3
	HardThreshold     = 0.7
	VelocityThreshold = 0.003
	SlideDuration     = 220 * time.Millisecond
	FadeDuration      = 220 * time.Millisecond

	overshootHigh = 1.5
	overshootLow  = -0.5

	stepSlide = "slide"
	stepFade  = "fade"
)

type State int

const (
	Idle State = iota
	Dragging
	Committing
	Exiting
	Decided
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	case Exiting:
		return "exiting"
	case Decided:
		return "decided"
	default:
		return "unknown"
	}
}

type Source int

const (
	SourceMouse Source = iota
	SourceTouch
	SourceKeyboard
)

// Pointer is a position in logical pixels relative to the terminal origin.
type Pointer struct {
	X, Y   float64
	At     time.Time
	Source Source
}

// Rect is the chooser container in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

type Outcome int

const (
	Ignored Outcome = iota
	Grabbed
	Moved
	Discarded
	RestingCommit
	VelocityCommit
	HardCommit
	StartedExit
	Finished
)

// Step reports what an input did. Tasks must be scheduled by the caller and
// handed back through Fire when they elapse.
type Step struct {
	Outcome Outcome
	Tasks   []sched.Task
	Decided bool
	Choice  domain.Mode
}

func (s Step) Committed() bool {
	return s.Outcome == RestingCommit || s.Outcome == VelocityCommit || s.Outcome == HardCommit
}

// Machine is the divider gesture state machine. It is not safe for
// concurrent use; Bubble Tea serialises every call through Update.
type Machine struct {
	state     State
	ratio     float64
	velocity  float64
	mobile    bool
	angle     float64
	container Rect

	// grabOffset is the grab point minus the divider, as a fraction of the
	// container along the active axis.
	grabOffset float64
	lastRaw    float64
	lastAt     time.Time
	hasSample  bool

	captures int
	choice   domain.Mode
	timers   *sched.Timers
}

func NewMachine(hint domain.Mode, container Rect, timers *sched.Timers) *Machine {
	if timers == nil {
		timers = sched.NewTimers()
	}
	m := &Machine{ratio: 0.45, timers: timers}
	if hint == domain.Serious {
		m.ratio = 0.55
	}
	m.Resize(container)
	return m
}

func (m *Machine) State() State        { return m.state }
func (m *Machine) Ratio() float64      { return m.ratio }
func (m *Machine) Velocity() float64   { return m.velocity }
func (m *Machine) Mobile() bool        { return m.mobile }
func (m *Machine) Angle() float64      { return m.angle }
func (m *Machine) Dragging() bool      { return m.state == Dragging }
func (m *Machine) Exiting() bool       { return m.state == Exiting || m.state == Decided }
func (m *Machine) Container() Rect     { return m.container }
func (m *Machine) Captures() int       { return m.captures }
func (m *Machine) Choice() domain.Mode { return m.choice }

// Offset is the normalised distance of the divider from the centre.
func (m *Machine) Offset() float64 {
	return math.Abs((m.ratio - 0.5) * 2)
}

// Resize updates the layout flags. It never touches the ratio or an active
// drag.
func (m *Machine) Resize(container Rect) {
	m.container = container
	m.mobile = container.W < MobileBreakpoint
	if !m.mobile && container.H > 0 {
		aspect := container.W / container.H
		m.angle = math.Atan((2*BandHalfWidth/100)*aspect) * 180 / math.Pi
	}
}

func (m *Machine) Grab(p Pointer) Step {
	if m.state != Idle || m.container.Empty() {
		return Step{}
	}
	pos, size := m.axis(p)
	m.grabOffset = pos/size - m.ratio
	// The first move only seeds the velocity sample.
	m.hasSample = false
	m.velocity = 0
	m.state = Dragging
	m.captures = 1
	return Step{Outcome: Grabbed}
}

func (m *Machine) Move(p Pointer) Step {
	if m.state != Dragging || m.captures == 0 || m.container.Empty() {
		return Step{}
	}
	pos, size := m.axis(p)
	raw := pos/size - m.grabOffset

	if m.hasSample {
		dt := float64(p.At.Sub(m.lastAt)) / float64(time.Millisecond)
		if dt <= 0 {
			dt = 1
		}
		sample := (raw - m.lastRaw) / dt
		m.velocity = 0.5*sample + 0.5*m.velocity
	}
	m.lastRaw = raw
	m.lastAt = p.At
	m.hasSample = true

	m.ratio = clamp(raw, MinRatio, MaxRatio)
	if m.Offset() > HardThreshold {
		m.resetGesture()
		return m.commit(m.sideChoice(), HardCommit)
	}
	return Step{Outcome: Moved}
}

func (m *Machine) Release(p Pointer) Step {
	if m.state != Dragging {
		return Step{}
	}
	velocity := m.velocity
	m.resetGesture()

	if math.Abs(velocity) > VelocityThreshold {
		return m.commit(m.velocityChoice(velocity), VelocityCommit)
	}
	if m.Offset() < SoftThreshold {
		m.state = Idle
		return Step{Outcome: Discarded}
	}
	return m.commit(m.sideChoice(), RestingCommit)
}

// Nudge moves the divider by delta as one complete zero-velocity gesture.
func (m *Machine) Nudge(delta float64, at time.Time) Step {
	if m.state != Idle || m.container.Empty() {
		return Step{}
	}
	centre := Pointer{X: m.container.X + m.ratio*m.container.W, Y: m.container.Y + m.ratio*m.container.H, At: at, Source: SourceKeyboard}
	if step := m.Grab(centre); step.Outcome != Grabbed {
		return step
	}
	target := centre
	if m.mobile {
		target.Y += delta * m.container.H
	} else {
		target.X += delta * m.container.W
	}
	if step := m.Move(target); step.Committed() {
		return step
	}
	m.velocity = 0
	return m.Release(target)
}

// Fire advances the commit sequence. Unknown, stale and cancelled ids are
// ignored.
func (m *Machine) Fire(id uint64) Step {
	task, ok := m.timers.Take(id)
	if !ok {
		return Step{}
	}
	switch {
	case task.Step == stepSlide && m.state == Committing:
		m.state = Exiting
		return Step{Outcome: StartedExit, Tasks: []sched.Task{m.timers.After(FadeDuration, stepFade)}}
	case task.Step == stepFade && m.state == Exiting:
		m.state = Decided
		return Step{Outcome: Finished, Decided: true, Choice: m.choice}
	default:
		return Step{}
	}
}

func (m *Machine) Teardown() {
	m.timers.CancelAll()
	m.captures = 0
	if m.state == Dragging {
		m.resetGesture()
		m.state = Idle
	}
}

func (m *Machine) commit(choice domain.Mode, outcome Outcome) Step {
	m.choice = choice
	m.ratio = m.overshoot(choice)
	m.state = Committing
	return Step{Outcome: outcome, Tasks: []sched.Task{m.timers.After(SlideDuration, stepSlide)}, Choice: choice}
}

func (m *Machine) resetGesture() {
	m.velocity = 0
	m.hasSample = false
	m.lastRaw = 0
	m.lastAt = time.Time{}
	m.captures = 0
}

func (m *Machine) axis(p Pointer) (float64, float64) {
	if m.mobile {
		return p.Y - m.container.Y, m.container.H
	}
	return p.X - m.container.X, m.container.W
}

func (m *Machine) sideChoice() domain.Mode {
	high := m.ratio >= 0.5
	if m.mobile {
		high = !high
	}
	if high {
		return domain.Serious
	}
	return domain.Playful
}

func (m *Machine) velocityChoice(v float64) domain.Mode {
	positive := v > 0
	if m.mobile {
		positive = !positive
	}
	if positive {
		return domain.Serious
	}
	return domain.Playful
}

func (m *Machine) overshoot(choice domain.Mode) float64 {
	high := choice == domain.Serious
	if m.mobile {
		high = !high
	}
	if high {
		return overshootHigh
	}
	return overshootLow
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
