// Package store persists plans and profiles. Plans are keyed by thread id
// and every mutation goes through a read-modify-write callback executed
// under per-thread exclusive access.
package store

import (
	"context"
	"errors"

	"github.com/benvon/day-planner/internal/models"
)

// ErrNotFound is returned for unknown profile or thread identifiers
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when creating a plan under a taken thread id
var ErrAlreadyExists = errors.New("already exists")

// PlanStore persists event plans keyed by thread id
type PlanStore interface {
	// Create stores a new plan under its thread id
	Create(ctx context.Context, plan *models.Plan) error

	// Get returns the plan for a thread id
	Get(ctx context.Context, threadID string) (*models.Plan, error)

	// Update runs fn against the current plan under an exclusive per-thread
	// lock and persists the result. fn returning an error aborts the write.
	Update(ctx context.Context, threadID string, fn func(*models.Plan) error) (*models.Plan, error)

	// HealthCheck verifies the backing store is reachable
	HealthCheck(ctx context.Context) error
}

// ProfileStore holds planning profiles keyed by profile id
type ProfileStore interface {
	Get(ctx context.Context, profileID string) (*models.Profile, error)
	List(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, profileID string, profile *models.Profile) error
}
