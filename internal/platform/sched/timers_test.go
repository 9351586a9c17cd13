package sched_test

import (
	"testing"
	"time"

	"folio/internal/platform/sched"
)

func TestTimersTakeOnce(t *testing.T) {
	t.Parallel()
	timers := sched.NewTimers()
	task := timers.After(220*time.Millisecond, "slide")
	if timers.Pending() != 1 {
		t.Fatalf("expected one pending task, got %d", timers.Pending())
	}
	if _, ok := timers.Take(task.ID); !ok {
		t.Fatalf("first take must succeed")
	}
	if _, ok := timers.Take(task.ID); ok {
		t.Fatalf("second take must fail")
	}
}

func TestTimersCancelAll(t *testing.T) {
	t.Parallel()
	timers := sched.NewTimers()
	a := timers.After(time.Millisecond, "a")
	b := timers.After(time.Millisecond, "b")
	timers.CancelAll()
	if _, ok := timers.Take(a.ID); ok {
		t.Fatalf("cancelled task a must not fire")
	}
	if _, ok := timers.Take(b.ID); ok {
		t.Fatalf("cancelled task b must not fire")
	}
}

func TestTaskIDsUniqueAcrossTimers(t *testing.T) {
	t.Parallel()
	first := sched.NewTimers().After(time.Millisecond, "x")
	second := sched.NewTimers().After(time.Millisecond, "x")
	if first.ID == second.ID {
		t.Fatalf("task ids must be unique across timer sets")
	}
	other := sched.NewTimers()
	if _, ok := other.Take(first.ID); ok {
		t.Fatalf("a foreign id must not be taken")
	}
}

func TestManualReleasesInDueOrder(t *testing.T) {
	t.Parallel()
	timers := sched.NewTimers()
	clock := &sched.Manual{}
	late := timers.After(400*time.Millisecond, "late")
	early := timers.After(150*time.Millisecond, "early")
	clock.Add(late, early)

	if due := clock.Advance(149 * time.Millisecond); len(due) != 0 {
		t.Fatalf("nothing should be due yet, got %v", due)
	}
	due := clock.Advance(time.Millisecond)
	if len(due) != 1 || due[0].Step != "early" {
		t.Fatalf("expected early task at 150ms, got %v", due)
	}
	due = clock.Advance(time.Second)
	if len(due) != 1 || due[0].Step != "late" {
		t.Fatalf("expected late task, got %v", due)
	}
}

func TestManualAdvanceEachQueuesFollowUps(t *testing.T) {
	t.Parallel()
	timers := sched.NewTimers()
	clock := &sched.Manual{}
	clock.Add(timers.After(220*time.Millisecond, "slide"))

	var fired []time.Duration
	clock.AdvanceEach(time.Second, func(task sched.Task) []sched.Task {
		fired = append(fired, clock.Now())
		if task.Step == "slide" {
			return []sched.Task{timers.After(220*time.Millisecond, "fade")}
		}
		return nil
	})
	if len(fired) != 2 {
		t.Fatalf("expected two firings, got %d", len(fired))
	}
	if fired[0] != 220*time.Millisecond || fired[1] != 440*time.Millisecond {
		t.Fatalf("unexpected firing times: %v", fired)
	}
}
