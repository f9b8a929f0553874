package chat

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs a callback once after a delay. Scheduled work cannot be cancelled.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler schedules callbacks on runtime timers.
type TimerScheduler struct{}

// After implements Scheduler. The timer handle is dropped on purpose: replies are
// fire-and-forget.
func (TimerScheduler) After(d time.Duration, fn func()) {
	_ = time.AfterFunc(d, fn)
}

// ManualScheduler queues callbacks until the test advances its clock. It is safe for
// concurrent use.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []scheduled
}

type scheduled struct {
	due time.Duration
	seq int
	fn  func()
}

// NewManualScheduler returns an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After implements Scheduler.
func (s *ManualScheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.pending = append(s.pending, scheduled{due: s.now + d, seq: s.seq, fn: fn})
}

// Pending reports how many callbacks have not fired yet.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Advance moves the clock forward and runs every callback that became due, in due order.
// Callbacks run without the scheduler lock held.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.now += d
	var due, rest []scheduled
	for _, item := range s.pending {
		if item.due <= s.now {
			due = append(due, item)
		} else {
			rest = append(rest, item)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].seq < due[j].seq
		}
		return due[i].due < due[j].due
	})
	for _, item := range due {
		item.fn()
	}
	return len(due)
}

// FireAll runs every queued callback regardless of due time.
func (s *ManualScheduler) FireAll() int {
	s.mu.Lock()
	var latest time.Duration
	for _, item := range s.pending {
		if item.due > latest {
			latest = item.due
		}
	}
	delta := latest - s.now
	s.mu.Unlock()
	if delta < 0 {
		delta = 0
	}
	return s.Advance(delta)
}
