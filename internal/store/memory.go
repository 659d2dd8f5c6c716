package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/benvon/day-planner/internal/models"
)

// planEntry pairs a plan with its own lock so updates to different threads
// never contend with each other
type planEntry struct {
	mu   sync.Mutex
	plan *models.Plan
}

// MemoryPlanStore is the in-memory PlanStore used when no database is
// configured. Plans are deep-copied on every read and write.
type MemoryPlanStore struct {
	mu      sync.RWMutex
	entries map[string]*planEntry
}

// NewMemoryPlanStore creates an empty in-memory plan store
func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{entries: make(map[string]*planEntry)}
}

// Create stores a new plan under its thread id
func (s *MemoryPlanStore) Create(ctx context.Context, plan *models.Plan) error {
	copied, err := clonePlan(plan)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[plan.ThreadID]; ok {
		return fmt.Errorf("thread %s: %w", plan.ThreadID, ErrAlreadyExists)
	}
	s.entries[plan.ThreadID] = &planEntry{plan: copied}
	return nil
}

// Get returns a copy of the plan for a thread id
func (s *MemoryPlanStore) Get(ctx context.Context, threadID string) (*models.Plan, error) {
	s.mu.RLock()
	entry, ok := s.entries[threadID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("thread %s: %w", threadID, ErrNotFound)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return clonePlan(entry.plan)
}

// Update applies fn to the plan under the thread's exclusive lock
func (s *MemoryPlanStore) Update(ctx context.Context, threadID string, fn func(*models.Plan) error) (*models.Plan, error) {
	s.mu.RLock()
	entry, ok := s.entries[threadID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("thread %s: %w", threadID, ErrNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	working, err := clonePlan(entry.plan)
	if err != nil {
		return nil, err
	}
	if err := fn(working); err != nil {
		return nil, err
	}
	entry.plan = working
	return clonePlan(working)
}

// HealthCheck always succeeds for the in-memory store
func (s *MemoryPlanStore) HealthCheck(ctx context.Context) error {
	return nil
}

// clonePlan deep-copies a plan through JSON, keeping callers isolated from
// shared slices and maps
func clonePlan(plan *models.Plan) (*models.Plan, error) {
	raw, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	var out models.Plan
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	return &out, nil
}

// MemoryProfileStore is an in-memory ProfileStore, optionally seeded with
// the embedded demo profiles
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

// NewMemoryProfileStore creates a profile store seeded from the given map
func NewMemoryProfileStore(seed map[string]*models.Profile) *MemoryProfileStore {
	profiles := make(map[string]*models.Profile, len(seed))
	for id, p := range seed {
		profiles[id] = p
	}
	return &MemoryProfileStore{profiles: profiles}
}

// Get returns the profile for an id
func (s *MemoryProfileStore) Get(ctx context.Context, profileID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[profileID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", profileID, ErrNotFound)
	}
	return p, nil
}

// List returns all profile ids, sorted
func (s *MemoryProfileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Upsert stores or replaces a profile
func (s *MemoryProfileStore) Upsert(ctx context.Context, profileID string, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profileID] = profile
	return nil
}
