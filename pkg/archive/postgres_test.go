package archive

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/lurelab/decoy/pkg/intel"
)

// Integration test; needs a reachable Postgres.
func TestArchiveStoreIntegration(t *testing.T) {
	dsn := os.Getenv("DECOY_ARCHIVE_TEST_DSN")
	if dsn == "" {
		t.Skip("DECOY_ARCHIVE_TEST_DSN not set")
	}

	ctx := context.Background()
	a, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer a.Close()

	rec := intel.NewRecord()
	rec.Add(intel.CategoryUPI, "scam@ybl")
	rec.Add(intel.CategoryPhone, "9876543210")

	err = a.Store(ctx, Report{
		SessionKey:   "test-session",
		PersonaID:    "trust-first",
		Tactic:       "KYC Scam",
		TurnCount:    4,
		Intelligence: rec,
		FinishedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("Store error: %v", err)
	}
}
