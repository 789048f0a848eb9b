// Package archive persists final engagement reports to Postgres for
// offline analysis. The archive is optional: a gateway with no DSN
// configured simply skips it.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lurelab/decoy/pkg/intel"
)

// Report is the immutable record of one finished engagement.
type Report struct {
	ID           uuid.UUID
	SessionKey   string
	PersonaID    string
	Tactic       string
	TurnCount    int
	Intelligence intel.Record
	FinishedAt   time.Time
}

// Archive writes engagement reports to Postgres.
type Archive struct {
	pool *pgxpool.Pool
}

// New connects to Postgres and ensures the reports table exists.
func New(ctx context.Context, dsn string) (*Archive, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("archive connect: %w", err)
	}

	a := &Archive{pool: pool}
	if err := a.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS engagement_reports (
	id           UUID PRIMARY KEY,
	session_key  TEXT NOT NULL,
	persona_id   TEXT NOT NULL,
	tactic       TEXT NOT NULL,
	turn_count   INT NOT NULL,
	intelligence JSONB NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL
)`
	if _, err := a.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("archive schema: %w", err)
	}
	return nil
}

// Store writes one report. A zero report ID gets minted here.
func (a *Archive) Store(ctx context.Context, r Report) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}

	intelJSON, err := json.Marshal(r.Intelligence)
	if err != nil {
		return fmt.Errorf("archive marshal: %w", err)
	}

	const q = `
INSERT INTO engagement_reports (id, session_key, persona_id, tactic, turn_count, intelligence, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := a.pool.Exec(ctx, q, r.ID, r.SessionKey, r.PersonaID, r.Tactic, r.TurnCount, intelJSON, r.FinishedAt); err != nil {
		return fmt.Errorf("archive insert: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (a *Archive) Close() {
	if a != nil && a.pool != nil {
		a.pool.Close()
	}
}
