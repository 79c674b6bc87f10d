package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/resistor-color/api/datastore"
)

type Scheduler struct {
	CustomColorRepo datastore.CustomColorRepository
	Hour            int
	now             func() time.Time

	mu      sync.Mutex
	timer   *time.Timer
	ticker  *time.Ticker
	done    chan struct{}
	stopped bool
}

// NewScheduler snapshots the custom color list once a day at hour (0-23, local time)
func NewScheduler(repo datastore.CustomColorRepository, hour int) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = 0
	}
	return &Scheduler{
		CustomColorRepo: repo,
		Hour:            hour,
		now:             time.Now,
		done:            make(chan struct{}),
	}
}

// nextRun is the first time at s.Hour strictly after from
func (s *Scheduler) nextRun(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), s.Hour, 0, 0, 0, from.Location())
	if !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start waits for the next snapshot hour, then snapshots every 24 hours
func (s *Scheduler) Start() {
	now := s.now()
	wait := s.nextRun(now).Sub(now)
	log.Printf("Scheduler started. Next custom color snapshot in %v", wait)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = time.AfterFunc(wait, func() {
		s.RunSnapshot()

		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			return
		}
		s.ticker = time.NewTicker(24 * time.Hour)
		ticks := s.ticker.C
		s.mu.Unlock()

		go func() {
			for {
				select {
				case <-ticks:
					s.RunSnapshot()
				case <-s.done:
					return
				}
			}
		}()
	})
}

// Stop cancels pending and recurring snapshots. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.done)
	log.Println("Scheduler stopped")
}

// RunSnapshot copies the current custom color list under today's snapshot key
func (s *Scheduler) RunSnapshot() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := s.now()
	count, err := s.CustomColorRepo.Snapshot(ctx, today)
	if err != nil {
		log.Printf("Error snapshotting custom colors: %v", err)
		return err
	}

	log.Printf("Saved %d custom colors to %s", count, datastore.SnapshotKey(today))
	return nil
}
