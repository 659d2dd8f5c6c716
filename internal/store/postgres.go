package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benvon/day-planner/internal/models"

	// Postgres driver
	_ "github.com/lib/pq"
)

const planSchema = `
CREATE TABLE IF NOT EXISTS event_plans (
	thread_id  TEXT PRIMARY KEY,
	plan       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresPlanStore persists plans as one JSONB row per thread. Updates run
// inside a transaction with SELECT ... FOR UPDATE, giving the per-thread
// exclusive access the workflow requires.
type PostgresPlanStore struct {
	db *sql.DB
}

// NewPostgresPlanStore connects to Postgres and ensures the schema exists
func NewPostgresPlanStore(databaseURL string) (*PostgresPlanStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, planSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return &PostgresPlanStore{db: db}, nil
}

// Create stores a new plan row
func (s *PostgresPlanStore) Create(ctx context.Context, plan *models.Plan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO event_plans (thread_id, plan, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		plan.ThreadID, raw, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}
	return nil
}

// Get returns the plan for a thread id
func (s *PostgresPlanStore) Get(ctx context.Context, threadID string) (*models.Plan, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT plan FROM event_plans WHERE thread_id = $1`, threadID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("thread %s: %w", threadID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query plan: %w", err)
	}

	var plan models.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}

// Update applies fn to the plan inside a row-locking transaction
func (s *PostgresPlanStore) Update(ctx context.Context, threadID string, fn func(*models.Plan) error) (*models.Plan, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var raw []byte
	err = tx.QueryRowContext(ctx,
		`SELECT plan FROM event_plans WHERE thread_id = $1 FOR UPDATE`, threadID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("thread %s: %w", threadID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock plan: %w", err)
	}

	var plan models.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	if err := fn(&plan); err != nil {
		return nil, err
	}

	updated, err := json.Marshal(&plan)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE event_plans SET plan = $1, updated_at = $2 WHERE thread_id = $3`,
		updated, plan.UpdatedAt, threadID,
	); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit plan update: %w", err)
	}
	return &plan, nil
}

// HealthCheck pings the database
func (s *PostgresPlanStore) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Close closes the database connection pool
func (s *PostgresPlanStore) Close() error {
	return s.db.Close()
}
