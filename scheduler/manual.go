package scheduler

import (
	"fmt"
	"sync"
	"time"
)

type manualJob struct {
	interval time.Duration
	next     time.Duration
	fn       func()
}

// manualEpoch is what Now reports before the first Advance.
var manualEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ManualScheduler fires jobs only when Advance moves its virtual clock.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	jobs   map[int]*manualJob
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{jobs: make(map[int]*manualJob)}
}

func (s *ManualScheduler) Every(interval time.Duration, job func()) (func(), error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid interval %v", interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.jobs[id] = &manualJob{interval: interval, next: s.now + interval, fn: job}

	return func() {
		s.mu.Lock()
		delete(s.jobs, id)
		s.mu.Unlock()
	}, nil
}

// Advance moves the clock forward by d, running due jobs in time order on the
// calling goroutine.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d

	for {
		job := s.earliestDue(target)
		if job == nil {
			break
		}
		s.now = job.next
		job.next += job.interval
		fn := job.fn
		s.mu.Unlock()

		fn()

		s.mu.Lock()
	}

	s.now = target
	s.mu.Unlock()
}

// Now reports the virtual clock as wall time. Jobs running inside Advance see
// their own fire time.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return manualEpoch.Add(s.now)
}

// Active reports how many jobs are scheduled.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *ManualScheduler) earliestDue(target time.Duration) *manualJob {
	bestID := -1
	var best *manualJob
	for id, job := range s.jobs {
		if job.next > target {
			continue
		}
		if best == nil || job.next < best.next || (job.next == best.next && id < bestID) {
			bestID, best = id, job
		}
	}
	return best
}
