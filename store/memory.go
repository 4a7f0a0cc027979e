package store

import (
	"context"
	"sync"

	"github.com/CreativeUnicorns/usersettings"
)

// memoryRecord holds one user's stored settings. Either field may be nil when
// the user never wrote that value.
type memoryRecord struct {
	display  *usersettings.DisplaySettings
	language *usersettings.Language
}

// MemoryStore implements the Store interface using an in-memory map.
// This is useful for testing or simple applications where persistence is not required.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*memoryRecord
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*memoryRecord),
	}
}

// GetDisplaySettings retrieves the display settings stored for a user.
// It returns usersettings.ErrNotFound if the user never set them.
func (s *MemoryStore) GetDisplaySettings(_ context.Context, userID string) (usersettings.DisplaySettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.users[userID]
	if !ok || record.display == nil {
		return usersettings.DisplaySettings{}, usersettings.ErrNotFound
	}

	return *record.display, nil
}

// SetDisplaySettings stores the display settings for a user.
func (s *MemoryStore) SetDisplaySettings(_ context.Context, userID string, settings usersettings.DisplaySettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.users[userID]
	if !ok {
		record = &memoryRecord{}
		s.users[userID] = record
	}

	record.display = &settings
	return nil
}

// GetLanguage retrieves the language stored for a user.
// It returns usersettings.ErrNotFound if the user never set one.
func (s *MemoryStore) GetLanguage(_ context.Context, userID string) (usersettings.Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.users[userID]
	if !ok || record.language == nil {
		return "", usersettings.ErrNotFound
	}

	return *record.language, nil
}

// SetLanguage stores the language for a user.
func (s *MemoryStore) SetLanguage(_ context.Context, userID string, language usersettings.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.users[userID]
	if !ok {
		record = &memoryRecord{}
		s.users[userID] = record
	}

	record.language = &language
	return nil
}

// ClearSettings removes all stored settings for a user. Clearing a user with
// no stored settings is not an error.
func (s *MemoryStore) ClearSettings(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, userID)
	return nil
}

// Close is a no-op for MemoryStore as there are no external resources to release.
func (s *MemoryStore) Close() error {
	return nil
}
