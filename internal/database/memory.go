package database

import (
	"context"
	"sync"

	"github.com/blockvibe/ranker/internal/domain"
)

// MemoryProfileStore is an in-memory ProfileStore used in tests and when the
// service runs without a database file.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*domain.UserProfile
}

// NewMemoryProfileStore creates an empty in-memory store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]*domain.UserProfile)}
}

// GetProfile returns the stored profile or (nil, nil) when absent.
func (s *MemoryProfileStore) GetProfile(_ context.Context, userID string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

// SaveProfile stores a copy of the profile.
func (s *MemoryProfileStore) SaveProfile(_ context.Context, profile *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *profile
	s.profiles[profile.UserID] = &copied
	return nil
}
