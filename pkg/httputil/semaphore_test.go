package httputil

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSemaphoreTryAcquire(t *testing.T) {
	sem := NewSemaphore(2)

	if !sem.TryAcquire() {
		t.Error("first TryAcquire should succeed")
	}
	if !sem.TryAcquire() {
		t.Error("second TryAcquire should succeed")
	}
	if sem.TryAcquire() {
		t.Error("third TryAcquire should fail at capacity")
	}
	if sem.DroppedCount() != 1 {
		t.Errorf("DroppedCount = %d, want 1", sem.DroppedCount())
	}

	sem.Release()
	if !sem.TryAcquire() {
		t.Error("TryAcquire should succeed after Release")
	}
}

func TestSemaphoreConcurrent(t *testing.T) {
	sem := NewSemaphore(10)
	var acquired atomic.Int32
	var wg sync.WaitGroup

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sem.TryAcquire() {
				acquired.Add(1)
				time.Sleep(10 * time.Millisecond)
				sem.Release()
			}
		}()
	}

	wg.Wait()

	stats := sem.Stats()
	t.Logf("acquired=%d, dropped=%d", acquired.Load(), stats.Dropped)
	if stats.InUse != 0 {
		t.Errorf("expected 0 in use after completion, got %d", stats.InUse)
	}
}

func TestSemaphoreStats(t *testing.T) {
	sem := NewSemaphore(5)

	stats := sem.Stats()
	if stats.Capacity != 5 || stats.Available != 5 || stats.InUse != 0 {
		t.Errorf("fresh stats = %+v", stats)
	}

	sem.TryAcquire()
	sem.TryAcquire()

	stats = sem.Stats()
	if stats.InUse != 2 || stats.Available != 3 {
		t.Errorf("stats after 2 acquires = %+v", stats)
	}
}

func TestNewSemaphoreDefaultCapacity(t *testing.T) {
	for _, capacity := range []int{0, -5} {
		sem := NewSemaphore(capacity)
		if cap(sem.sem) != 100 {
			t.Errorf("NewSemaphore(%d) capacity = %d, want 100", capacity, cap(sem.sem))
		}
	}
}
