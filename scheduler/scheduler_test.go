package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/resistor-color/api/datastore"
	"github.com/resistor-color/api/models"
)

func TestNextRun(t *testing.T) {
	s := NewScheduler(nil, 3)
	loc := time.UTC

	tests := []struct {
		from time.Time
		want time.Time
	}{
		{time.Date(2026, 10, 14, 1, 0, 0, 0, loc), time.Date(2026, 10, 14, 3, 0, 0, 0, loc)},
		{time.Date(2026, 10, 14, 3, 0, 0, 0, loc), time.Date(2026, 10, 15, 3, 0, 0, 0, loc)},
		{time.Date(2026, 10, 14, 23, 59, 0, 0, loc), time.Date(2026, 10, 15, 3, 0, 0, 0, loc)},
		{time.Date(2026, 12, 31, 12, 0, 0, 0, loc), time.Date(2027, 1, 1, 3, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		if got := s.nextRun(tt.from); !got.Equal(tt.want) {
			t.Errorf("nextRun(%v) = %v, want %v", tt.from, got, tt.want)
		}
	}
}

func TestNewSchedulerClampsHour(t *testing.T) {
	if s := NewScheduler(nil, 42); s.Hour != 0 {
		t.Errorf("Hour = %d, want 0", s.Hour)
	}
}

func TestRunSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := datastore.NewMemoryKV()
	repo, _ := datastore.NewCustomColorDatabase(kv)
	if _, _, err := repo.Learn(ctx, models.CustomColor{Name: "Gold", RGB: models.RGB{R: 200, G: 170, B: 60}}); err != nil {
		t.Fatal(err)
	}

	day := time.Date(2026, 10, 14, 0, 0, 5, 0, time.UTC)
	s := NewScheduler(repo, 0)
	s.now = func() time.Time { return day }

	if err := s.RunSnapshot(); err != nil {
		t.Fatal(err)
	}
	if _, err := kv.Get(ctx, datastore.SnapshotKey(day)); err != nil {
		t.Errorf("snapshot missing: %v", err)
	}
}

func TestRunSnapshotWithoutStore(t *testing.T) {
	repo, _ := datastore.NewCustomColorDatabase(nil)
	s := NewScheduler(repo, 0)
	if err := s.RunSnapshot(); !errors.Is(err, datastore.ErrNoStore) {
		t.Errorf("RunSnapshot without store = %v", err)
	}
}

func TestStopBeforeFirstRun(t *testing.T) {
	repo, _ := datastore.NewCustomColorDatabase(datastore.NewMemoryKV())
	s := NewScheduler(repo, 0)
	s.Start()

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked")
	}
}
