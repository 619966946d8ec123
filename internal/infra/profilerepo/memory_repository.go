package profilerepo

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/profile"
)

// ErrDuplicateID is returned when a profile id is already stored.
var ErrDuplicateID = errors.New("profile id already exists")

// MemoryRepository provides an in-memory profile store for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]profile.Profile
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[uuid.UUID]profile.Profile)}
}

// Create stores the profile record.
func (r *MemoryRepository) Create(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[p.ID]; exists {
		return ErrDuplicateID
	}
	r.profiles[p.ID] = p
	return nil
}

// Get returns a profile by id.
func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	return p, ok, nil
}

// List returns up to limit profiles, newest first.
func (r *MemoryRepository) List(_ context.Context, limit int) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ profile.Repository = (*MemoryRepository)(nil)
