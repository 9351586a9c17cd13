package chooser

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	lru "github.com/hashicorp/golang-lru/v2"

	"folio/internal/modules/preference/domain"
	"folio/internal/platform/sched"
)

const (
	exitFade  = 300 * time.Millisecond
	frameRate = 25
	grabSlack = 2
	nudgeStep = 0.05
)

// ─── messages ────────────────────────────────────────────────────────────────

// TimerMsg carries a scheduled task back to the machine that created it.
type TimerMsg struct{ ID uint64 }

// DecidedMsg is emitted exactly once per chooser, when the exit fade ends.
type DecidedMsg struct{ Mode domain.Mode }

// ─── config ──────────────────────────────────────────────────────────────────

type Config struct {
	Width, Height int
	// CellWidthPx and CellHeightPx convert terminal cells to logical pixels.
	CellWidthPx, CellHeightPx int
	Now                       func() time.Time
	// Schedule turns a task into a command that yields TimerMsg. Defaults to
	// tea.Tick.
	Schedule func(sched.Task) tea.Cmd
	Log      *slog.Logger
}

type keyMap struct {
	Back    key.Binding
	Forward key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Back:    key.NewBinding(key.WithKeys("left", "up", "h", "k"), key.WithHelp("←/↑", "move divider")),
		Forward: key.NewBinding(key.WithKeys("right", "down", "l", "j"), key.WithHelp("→/↓", "move divider")),
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	machine *Machine
	cfg     Config
	keys    keyMap
	width   int
	height  int

	spring   harmonica.Spring
	shown    float64
	shownVel float64

	fadeStart time.Time
	fade      float64
	decided   bool

	layouts *lru.Cache[layoutKey, panelLayout]
}

func New(hint domain.Mode, cfg Config) Model {
	if cfg.CellWidthPx <= 0 {
		cfg.CellWidthPx = 8
	}
	if cfg.CellHeightPx <= 0 {
		cfg.CellHeightPx = 16
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Schedule == nil {
		cfg.Schedule = tickTask
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	layouts, _ := lru.New[layoutKey, panelLayout](8)
	m := Model{
		cfg:     cfg,
		keys:    defaultKeys(),
		width:   cfg.Width,
		height:  cfg.Height,
		spring:  harmonica.NewSpring(harmonica.FPS(frameRate), 14.0, 1.0),
		layouts: layouts,
	}
	m.machine = NewMachine(hint, m.container(), sched.NewTimers())
	m.shown = m.machine.Ratio()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

func (m Model) Machine() *Machine { return m.machine }

// Ratio is the divider position currently drawn, which trails the logical
// ratio while easing.
func (m Model) Ratio() float64 { return m.shown }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.machine.Resize(m.container())

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m.apply(m.machine.Nudge(-nudgeStep, m.cfg.Now()))
		case key.Matches(msg, m.keys.Forward):
			return m.apply(m.machine.Nudge(nudgeStep, m.cfg.Now()))
		}

	case TimerMsg:
		return m.apply(m.machine.Fire(msg.ID))
	}
	return m, nil
}

// Tick advances the divider spring and the exit fade by one frame.
func (m *Model) Tick(now time.Time) {
	target := m.machine.Ratio()
	if m.machine.Dragging() {
		m.shown, m.shownVel = target, 0
	} else {
		m.shown, m.shownVel = m.spring.Update(m.shown, m.shownVel, target)
	}
	if !m.fadeStart.IsZero() {
		m.fade = float64(now.Sub(m.fadeStart)) / float64(exitFade)
		if m.fade > 1 {
			m.fade = 1
		}
	}
}

// Animating reports whether Tick still has visible work to do.
func (m Model) Animating() bool {
	if m.machine.Dragging() {
		return false
	}
	if diff := m.shown - m.machine.Ratio(); diff > 0.001 || diff < -0.001 {
		return true
	}
	return !m.fadeStart.IsZero() && m.fade < 1
}

// Teardown cancels pending timers and releases the pointer capture.
func (m *Model) Teardown() tea.Cmd {
	held := m.machine.Captures() > 0
	m.machine.Teardown()
	if held {
		return tea.EnableMouseCellMotion
	}
	return nil
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	p := m.pointer(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		raster := Compute(m.machine.Ratio(), m.machine.Mobile()).Cells(m.width, m.height)
		if !raster.Near(msg.X, msg.Y, grabSlack) {
			return m, nil
		}
		return m.apply(m.machine.Grab(p))
	case tea.MouseActionMotion:
		if m.machine.Captures() == 0 {
			return m, nil
		}
		next, cmd := m.apply(m.machine.Move(p))
		if next.machine.Dragging() {
			next.shown, next.shownVel = next.machine.Ratio(), 0
		}
		return next, cmd
	case tea.MouseActionRelease:
		return m.apply(m.machine.Release(p))
	}
	return m, nil
}

func (m Model) apply(step Step) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch step.Outcome {
	case Ignored:
		return m, nil
	case Grabbed:
		m.cfg.Log.Debug("divider grabbed", "ratio", m.machine.Ratio(), "mobile", m.machine.Mobile())
		cmds = append(cmds, tea.EnableMouseAllMotion)
	case Discarded:
		m.cfg.Log.Debug("gesture discarded", "ratio", m.machine.Ratio())
		cmds = append(cmds, tea.EnableMouseCellMotion)
	case RestingCommit, VelocityCommit, HardCommit:
		m.cfg.Log.Info("mode committed", "choice", step.Choice, "path", outcomeName(step.Outcome))
		cmds = append(cmds, tea.EnableMouseCellMotion)
	case StartedExit:
		m.fadeStart = m.cfg.Now()
	}
	for _, task := range step.Tasks {
		cmds = append(cmds, m.cfg.Schedule(task))
	}
	if step.Decided && !m.decided {
		m.decided = true
		choice := step.Choice
		cmds = append(cmds, func() tea.Msg { return DecidedMsg{Mode: choice} })
	}
	return m, tea.Batch(cmds...)
}

func (m Model) container() Rect {
	return Rect{
		W: float64(m.width * m.cfg.CellWidthPx),
		H: float64(m.height * m.cfg.CellHeightPx),
	}
}

// pointer maps a cell to the logical pixel at its centre.
func (m Model) pointer(col, row int) Pointer {
	cw, ch := float64(m.cfg.CellWidthPx), float64(m.cfg.CellHeightPx)
	return Pointer{
		X:      float64(col)*cw + cw/2,
		Y:      float64(row)*ch + ch/2,
		At:     m.cfg.Now(),
		Source: SourceMouse,
	}
}

func tickTask(task sched.Task) tea.Cmd {
	id := task.ID
	return tea.Tick(task.Delay, func(time.Time) tea.Msg { return TimerMsg{ID: id} })
}

func outcomeName(o Outcome) string {
	switch o {
	case RestingCommit:
		return "resting"
	case VelocityCommit:
		return "velocity"
	case HardCommit:
		return "hard"
	default:
		return "none"
	}
}
