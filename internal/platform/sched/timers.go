package sched

import (
	"sort"
	"sync/atomic"
	"time"
)

// taskIDs is process-wide so ids never collide across components, including
// a component that is torn down and mounted again.
var taskIDs atomic.Uint64

// Task is a delayed step. The owner turns it into a real timer (tea.Tick in
// the UI, Manual in tests) and hands the ID back when it fires.
type Task struct {
	ID    uint64
	Delay time.Duration
	Step  string
}

// Timers tracks the pending delayed steps of a single component.
type Timers struct {
	pending map[uint64]Task
}

func NewTimers() *Timers {
	return &Timers{pending: map[uint64]Task{}}
}

// After registers a step to run once delay has elapsed.
func (t *Timers) After(delay time.Duration, step string) Task {
	task := Task{ID: taskIDs.Add(1), Delay: delay, Step: step}
	t.pending[task.ID] = task
	return task
}

// Take consumes a pending task. It reports false for unknown, already fired
// or cancelled ids.
func (t *Timers) Take(id uint64) (Task, bool) {
	task, ok := t.pending[id]
	if ok {
		delete(t.pending, id)
	}
	return task, ok
}

func (t *Timers) CancelAll() {
	for id := range t.pending {
		delete(t.pending, id)
	}
}

func (t *Timers) Pending() int {
	return len(t.pending)
}

// Manual is a virtual clock for tests: tasks are queued with a due time and
// released in due order by Advance.
type Manual struct {
	now   time.Duration
	queue []queued
}

type queued struct {
	due  time.Duration
	task Task
}

func (m *Manual) Add(tasks ...Task) {
	for _, task := range tasks {
		m.queue = append(m.queue, queued{due: m.now + task.Delay, task: task})
	}
}

// Now is the virtual time elapsed since the Manual was created.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Advance moves virtual time forward by d and returns every task that became
// due, earliest first. Callers that schedule follow-up tasks should use
// AdvanceEach so those are released within the same window.
func (m *Manual) Advance(d time.Duration) []Task {
	var due []Task
	m.AdvanceEach(d, func(task Task) []Task {
		due = append(due, task)
		return nil
	})
	return due
}

// AdvanceEach moves virtual time forward by d, invoking fire for each task at
// its due time. Tasks returned by fire are queued relative to that due time.
func (m *Manual) AdvanceEach(d time.Duration, fire func(Task) []Task) {
	end := m.now + d
	for {
		idx := m.next(end)
		if idx < 0 {
			break
		}
		item := m.queue[idx]
		m.queue = append(m.queue[:idx], m.queue[idx+1:]...)
		m.now = item.due
		m.Add(fire(item.task)...)
	}
	m.now = end
}

func (m *Manual) next(end time.Duration) int {
	if len(m.queue) == 0 {
		return -1
	}
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].due == m.queue[j].due {
			return m.queue[i].task.ID < m.queue[j].task.ID
		}
		return m.queue[i].due < m.queue[j].due
	})
	if m.queue[0].due > end {
		return -1
	}
	return 0
}
