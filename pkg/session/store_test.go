package session

import (
	"context"
	"testing"
	"time"

	"github.com/lurelab/decoy/pkg/intel"
)

func TestInMemoryStoreSaveAndGet(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()
	ctx := context.Background()

	state := NewState("key-1", "trust-first")
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.Get(ctx, "key-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil || got.PersonaID != "trust-first" {
		t.Errorf("got %+v", got)
	}
	if got.Status != StatusActive {
		t.Errorf("new session status = %q", got.Status)
	}
}

func TestInMemoryStoreMissingIsNotAnError(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()

	got, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing session, got %+v", got)
	}
}

func TestInMemoryStoreSaveValidation(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Save(ctx, nil); err == nil {
		t.Error("nil state should error")
	}
	if err := store.Save(ctx, &State{}); err == nil {
		t.Error("empty key should error")
	}
}

func TestInMemoryStoreSaveFillsDefaults(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Save(ctx, &State{Key: "bare"}); err != nil {
		t.Fatal(err)
	}
	got, _ := store.Get(ctx, "bare")
	if got.Status != StatusActive {
		t.Errorf("status = %q", got.Status)
	}
	if got.Intelligence == nil {
		t.Error("intelligence should be initialized")
	}
	if got.CreatedAt.IsZero() || got.LastTurnAt.IsZero() {
		t.Error("timestamps should be initialized")
	}
}

func TestInMemoryStoreExpiry(t *testing.T) {
	store := NewInMemoryStore(WithMaxAge(10*time.Millisecond), WithCleanupInterval(time.Hour))
	defer store.Close()
	ctx := context.Background()

	state := NewState("stale", "trust-first")
	state.LastTurnAt = time.Now().Add(-time.Minute)
	if err := store.Save(ctx, state); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "stale")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Error("stale session should read as absent")
	}
}

func TestInMemoryStoreDelete(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()
	ctx := context.Background()

	_ = store.Save(ctx, NewState("gone", "trust-first"))
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got, _ := store.Get(ctx, "gone"); got != nil {
		t.Error("deleted session still readable")
	}
}

func TestInMemoryStoreStats(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()
	ctx := context.Background()

	a := NewState("a", "trust-first")
	a.TurnCount = 3
	a.Status = StatusFinished
	b := NewState("b", "polite")
	b.TurnCount = 1
	_ = store.Save(ctx, a)
	_ = store.Save(ctx, b)

	stats := store.Stats()
	if stats.SessionCount != 2 || stats.TotalTurns != 4 || stats.Finished != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestNewStateInitializesIntelligence(t *testing.T) {
	state := NewState("k", "p")
	for _, cat := range intel.Categories() {
		if _, ok := state.Intelligence[cat]; !ok {
			t.Errorf("missing category %q", cat)
		}
	}
}
