package app_test

import (
	"context"
	"testing"
	"time"

	"folio/internal/modules/preference/domain"
	preferencedto "folio/internal/modules/preference/dto"
	"folio/internal/platform/sched"
	"folio/internal/ui/app"
)

type fakePrefs struct {
	stored domain.Mode
	saves  []domain.Mode
}

func (f *fakePrefs) Load(context.Context) preferencedto.PreferenceOutput {
	return preferencedto.PreferenceOutput{Mode: f.stored, Found: f.stored.Valid()}
}

func (f *fakePrefs) Save(_ context.Context, mode string) (preferencedto.PreferenceOutput, error) {
	m, _ := domain.ParseMode(mode)
	f.stored = m
	f.saves = append(f.saves, m)
	return preferencedto.PreferenceOutput{Mode: m, Found: true}, nil
}

// virtualClock ties the orchestrator's clock to a sched.Manual.
type virtualClock struct {
	base   time.Time
	manual *sched.Manual
}

func (c virtualClock) Now() time.Time { return c.base.Add(c.manual.Now()) }

func newOrchestrator(prefs *fakePrefs) (*app.Orchestrator, *sched.Manual) {
	manual := &sched.Manual{}
	clk := virtualClock{base: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC), manual: manual}
	o := app.NewOrchestrator(prefs, clk, nil)
	o.Start(context.Background())
	return o, manual
}

func drive(o *app.Orchestrator, manual *sched.Manual, d time.Duration) {
	manual.AdvanceEach(d, func(task sched.Task) []sched.Task {
		return o.Fire(context.Background(), task.ID)
	})
}

func TestFirstVisitMountsChooserWithoutOverlay(t *testing.T) {
	t.Parallel()
	o, _ := newOrchestrator(&fakePrefs{})
	if !o.ShowChooser() || o.HasChosenMode() {
		t.Fatalf("first visit must show the chooser without a chosen mode")
	}
	if !o.ChooserMounted() || !o.Placeholder() || o.ChromeVisible() {
		t.Fatalf("first visit must render the placeholder and hide the chrome")
	}
	if o.Overlay().Visible {
		t.Fatalf("first visit must not show an overlay")
	}
}

func TestFirstVisitDecisionIsImmediate(t *testing.T) {
	t.Parallel()
	prefs := &fakePrefs{}
	o, _ := newOrchestrator(prefs)
	tasks := o.Decide(context.Background(), domain.Playful)
	if len(tasks) != 0 {
		t.Fatalf("first visit decision must not schedule anything")
	}
	if o.ActiveMode() != domain.Playful || o.ShowChooser() || !o.HasChosenMode() {
		t.Fatalf("unexpected state after decision: mode=%s show=%v chosen=%v", o.ActiveMode(), o.ShowChooser(), o.HasChosenMode())
	}
	if len(prefs.saves) != 1 || prefs.saves[0] != domain.Playful {
		t.Fatalf("expected one save of playful, got %v", prefs.saves)
	}
	if !o.ChromeVisible() || o.Overlay().Visible {
		t.Fatalf("chrome must show with no overlay")
	}
}

func TestReturningVisitorSkipsChooser(t *testing.T) {
	t.Parallel()
	o, _ := newOrchestrator(&fakePrefs{stored: domain.Playful})
	if o.ShowChooser() || o.ChooserMounted() {
		t.Fatalf("returning visitor must not mount the chooser")
	}
	if o.ActiveMode() != domain.Playful || !o.HasChosenMode() {
		t.Fatalf("expected playful active, got %s", o.ActiveMode())
	}
	if o.Overlay().Visible || !o.ChromeVisible() {
		t.Fatalf("returning visitor sees chrome and no overlay")
	}
}

func TestReopenSequenceTiming(t *testing.T) {
	t.Parallel()
	prefs := &fakePrefs{stored: domain.Serious}
	o, manual := newOrchestrator(prefs)
	ctx := context.Background()

	manual.Add(o.Reopen()...)
	ov := o.Overlay()
	if !ov.Visible || !ov.Opaque || ov.HasTransition {
		t.Fatalf("reopen must snap to an opaque overlay, got %+v", ov)
	}
	if o.ShowChooser() {
		t.Fatalf("chooser must wait behind the overlay")
	}
	if o.Reopen() != nil {
		t.Fatalf("reopen must be ignored while a sequence is pending")
	}

	drive(o, manual, 399*time.Millisecond)
	if o.ShowChooser() {
		t.Fatalf("chooser revealed before 400ms")
	}
	drive(o, manual, time.Millisecond)
	if !o.ShowChooser() || o.Overlay().Visible {
		t.Fatalf("at 400ms the chooser must show and the overlay drop")
	}
	if o.Reopen() != nil {
		t.Fatalf("reopen must be ignored while the chooser is shown")
	}

	manual.Add(o.Decide(ctx, domain.Playful)...)
	ov = o.Overlay()
	if !ov.Visible || !ov.Opaque || ov.HasTransition {
		t.Fatalf("decision must snap the overlay opaque, got %+v", ov)
	}
	if len(prefs.saves) != 0 {
		t.Fatalf("save must wait for the swap")
	}

	drive(o, manual, 149*time.Millisecond)
	if o.ActiveMode() != domain.Serious || !o.ShowChooser() {
		t.Fatalf("swap happened before 150ms")
	}
	drive(o, manual, time.Millisecond)
	if o.ActiveMode() != domain.Playful || o.ShowChooser() {
		t.Fatalf("at 150ms the mode must swap and the chooser unmount")
	}
	ov = o.Overlay()
	if !ov.Visible || ov.Opaque || !ov.HasTransition {
		t.Fatalf("overlay must start fading at 150ms, got %+v", ov)
	}
	if len(prefs.saves) != 1 || prefs.saves[0] != domain.Playful {
		t.Fatalf("expected playful saved once, got %v", prefs.saves)
	}
	if !o.ChromeVisible() {
		t.Fatalf("chrome returns while the overlay fades")
	}

	drive(o, manual, 849*time.Millisecond)
	if !o.Overlay().Visible {
		t.Fatalf("overlay removed before 1000ms")
	}
	drive(o, manual, time.Millisecond)
	if o.Overlay() != (app.Overlay{ChangedAt: o.Overlay().ChangedAt}) {
		t.Fatalf("overlay must be neutral at 1000ms, got %+v", o.Overlay())
	}
	if o.Pending() {
		t.Fatalf("sequence must be finished")
	}
	if len(o.Reopen()) != 1 {
		t.Fatalf("reopen must be accepted again once the sequence completes")
	}
}

func TestReopenIgnoredBeforeAnyChoice(t *testing.T) {
	t.Parallel()
	o, _ := newOrchestrator(&fakePrefs{})
	if o.Reopen() != nil || o.Overlay().Visible {
		t.Fatalf("reopen without a chosen mode must be ignored")
	}
}

func TestStaleIDsAndTeardown(t *testing.T) {
	t.Parallel()
	o, manual := newOrchestrator(&fakePrefs{stored: domain.Serious})
	tasks := o.Reopen()
	if len(o.Fire(context.Background(), 987654321)) != 0 || o.ShowChooser() {
		t.Fatalf("unknown ids must be ignored")
	}
	manual.Add(tasks...)
	o.Teardown()
	drive(o, manual, time.Second)
	if o.ShowChooser() {
		t.Fatalf("torn down orchestrator must not advance")
	}
}

func TestOverlayAlphaFades(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	fading := app.Overlay{Visible: true, HasTransition: true, ChangedAt: start}
	if a := fading.Alpha(start); a != 1 {
		t.Fatalf("fade starts opaque, got %v", a)
	}
	if a := fading.Alpha(start.Add(200 * time.Millisecond)); a != 0.5 {
		t.Fatalf("expected half alpha at 200ms, got %v", a)
	}
	if a := fading.Alpha(start.Add(400 * time.Millisecond)); a != 0 {
		t.Fatalf("fade ends transparent, got %v", a)
	}
	opaque := app.Overlay{Visible: true, Opaque: true}
	if opaque.Alpha(start) != 1 {
		t.Fatalf("opaque overlay has full alpha")
	}
	if (app.Overlay{Opaque: true}).Alpha(start) != 0 {
		t.Fatalf("hidden overlay has no alpha")
	}
}
