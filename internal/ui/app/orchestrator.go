package app

import (
	"context"
	"log/slog"
	"time"

	"folio/internal/modules/preference/domain"
	preferencedto "folio/internal/modules/preference/dto"
	"folio/internal/platform/clock"
	"folio/internal/platform/sched"
)

const (
	ReopenDelay  = 400 * time.Millisecond
	SwapDelay    = 150 * time.Millisecond
	ResetDelay   = 850 * time.Millisecond
	OverlayFade  = 400 * time.Millisecond
	stepReveal   = "reveal-chooser"
	stepSwap     = "swap-mode"
	stepClearOut = "clear-overlay"
)

type preferencePort interface {
	Load(ctx context.Context) preferencedto.PreferenceOutput
	Save(ctx context.Context, mode string) (preferencedto.PreferenceOutput, error)
}

// Overlay is the full-screen black layer that masks a mode swap.
type Overlay struct {
	Visible       bool
	Opaque        bool
	HasTransition bool
	ChangedAt     time.Time
}

// Alpha is the overlay opacity at now, in [0, 1].
func (o Overlay) Alpha(now time.Time) float64 {
	switch {
	case !o.Visible:
		return 0
	case o.Opaque:
		return 1
	case o.HasTransition:
		t := float64(now.Sub(o.ChangedAt)) / float64(OverlayFade)
		if t >= 1 {
			return 0
		}
		if t <= 0 {
			return 1
		}
		return 1 - t
	default:
		return 0
	}
}

type sequence int

const (
	seqNone sequence = iota
	seqReopen
	seqDecide
)

// Orchestrator sequences the content views, the chooser and the overlay.
// It never touches Bubble Tea; the root model turns its tasks into ticks.
type Orchestrator struct {
	prefs  preferencePort
	clock  clock.Clock
	log    *slog.Logger
	timers *sched.Timers

	activeMode    domain.Mode
	hasChosenMode bool
	showChooser   bool
	overlay       Overlay

	pending     sequence
	pendingMode domain.Mode
	// reopened marks a chooser mounted through Reopen, whose decision runs
	// the overlay choreography.
	reopened bool
}

func NewOrchestrator(prefs preferencePort, clk clock.Clock, log *slog.Logger) *Orchestrator {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{prefs: prefs, clock: clk, log: log, timers: sched.NewTimers(), activeMode: domain.Serious}
}

func (o *Orchestrator) Start(ctx context.Context) {
	pref := o.prefs.Load(ctx)
	if pref.Found {
		o.activeMode = pref.Mode
		o.hasChosenMode = true
		o.showChooser = false
		o.log.Info("returning visitor", "mode", pref.Mode)
		return
	}
	o.showChooser = true
	o.log.Info("first visit, mounting chooser")
}

// Reopen is the page-chrome trigger.
func (o *Orchestrator) Reopen() []sched.Task {
	if o.showChooser || !o.hasChosenMode || o.pending != seqNone {
		return nil
	}
	o.setOverlay(Overlay{Visible: true, Opaque: true})
	o.pending = seqReopen
	return []sched.Task{o.timers.After(ReopenDelay, stepReveal)}
}

// Decide is the chooser's callback.
func (o *Orchestrator) Decide(ctx context.Context, mode domain.Mode) []sched.Task {
	if !o.ChooserMounted() || o.pending != seqNone || !mode.Valid() {
		return nil
	}
	if !o.reopened {
		o.hasChosenMode = true
		o.save(ctx, mode)
		o.activeMode = mode
		o.showChooser = false
		return nil
	}
	o.setOverlay(Overlay{Visible: true, Opaque: true})
	o.hasChosenMode = true
	o.pending = seqDecide
	o.pendingMode = mode
	return []sched.Task{o.timers.After(SwapDelay, stepSwap)}
}

// Fire advances a pending sequence. Stale ids are ignored.
func (o *Orchestrator) Fire(ctx context.Context, id uint64) []sched.Task {
	task, ok := o.timers.Take(id)
	if !ok {
		return nil
	}
	switch task.Step {
	case stepReveal:
		o.showChooser = true
		o.reopened = true
		o.overlay.Visible = false
		o.pending = seqNone
		return nil
	case stepSwap:
		o.save(ctx, o.pendingMode)
		o.activeMode = o.pendingMode
		o.showChooser = false
		o.setOverlay(Overlay{Visible: true, Opaque: false, HasTransition: true})
		return []sched.Task{o.timers.After(ResetDelay, stepClearOut)}
	case stepClearOut:
		o.setOverlay(Overlay{})
		o.pending = seqNone
		o.reopened = false
		return nil
	default:
		return nil
	}
}

func (o *Orchestrator) Teardown() {
	o.timers.CancelAll()
}

func (o *Orchestrator) ActiveMode() domain.Mode { return o.activeMode }
func (o *Orchestrator) HasChosenMode() bool     { return o.hasChosenMode }
func (o *Orchestrator) ShowChooser() bool       { return o.showChooser }
func (o *Orchestrator) Overlay() Overlay        { return o.overlay }
func (o *Orchestrator) Pending() bool           { return o.pending != seqNone }

func (o *Orchestrator) ChooserMounted() bool {
	return o.showChooser || !o.hasChosenMode
}

// Placeholder reports that the content area must render reserved empty
// space instead of a mode view.
func (o *Orchestrator) Placeholder() bool {
	return o.ChooserMounted()
}

func (o *Orchestrator) ChromeVisible() bool {
	return o.hasChosenMode && !o.showChooser && !o.overlay.Opaque
}

func (o *Orchestrator) save(ctx context.Context, mode domain.Mode) {
	if _, err := o.prefs.Save(ctx, mode.String()); err != nil {
		o.log.Warn("saving mode failed", "mode", mode, "err", err)
	}
}

func (o *Orchestrator) setOverlay(next Overlay) {
	next.ChangedAt = o.clock.Now()
	o.overlay = next
}
