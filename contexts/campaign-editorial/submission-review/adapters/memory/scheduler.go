package memory

import (
	"sort"
	"sync"
	"time"

	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
)

// ManualScheduler is a clock that only moves when Advance is called. Due
// callbacks run on the caller's goroutine in deadline order.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	owner    *ManualScheduler
	deadline time.Time
	seq      int
	fire     func()
}

func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) ports.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	timer := &manualTimer{owner: s, deadline: s.now.Add(d), seq: s.seq, fire: f}
	s.timers = append(s.timers, timer)
	return timer
}

// Pending counts timers that have neither fired nor been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.popDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.deadline
		s.mu.Unlock()
		next.fire()
	}
}

func (s *ManualScheduler) popDueLocked(target time.Time) *manualTimer {
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].deadline.Equal(s.timers[j].deadline) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].deadline.Before(s.timers[j].deadline)
	})
	if len(s.timers) == 0 || s.timers[0].deadline.After(target) {
		return nil
	}
	next := s.timers[0]
	s.timers = s.timers[1:]
	return next
}

func (t *manualTimer) Stop() bool {
	s := t.owner
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.timers {
		if item == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}
