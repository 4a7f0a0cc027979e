package usersettings

import (
	"context"
	"fmt"
	"sync"
)

// MockStore implements the Store interface for testing. Tests can seed values,
// inject per-operation errors, configure post-clear defaults and gate the read
// operations to hold calls in flight.
type MockStore struct {
	mu       sync.Mutex
	display  map[string]DisplaySettings
	language map[string]Language
	closed   bool

	// Provider-side defaults reported for users without stored rows.
	// When nil, reads of absent values return ErrNotFound.
	defaultDisplay  *DisplaySettings
	defaultLanguage *Language

	getDisplayErr  error
	setDisplayErr  error
	getLanguageErr error
	setLanguageErr error
	clearErr       error

	// When non-nil, the corresponding Get blocks until the channel is closed.
	displayGate  chan struct{}
	languageGate chan struct{}

	GetDisplayCalls  int
	GetLanguageCalls int
	ClearCalls       int
}

func NewMockStore() *MockStore {
	return &MockStore{
		display:  make(map[string]DisplaySettings),
		language: make(map[string]Language),
	}
}

// SeedDisplay preloads a stored display settings row without going through Set.
func (m *MockStore) SeedDisplay(userID string, settings DisplaySettings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.display[userID] = settings
}

// SeedLanguage preloads a stored language row without going through Set.
func (m *MockStore) SeedLanguage(userID string, language Language) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.language[userID] = language
}

// SetStoreDefaults configures the provider-side defaults returned for users
// with no stored rows, e.g. after a clear.
func (m *MockStore) SetStoreDefaults(settings *DisplaySettings, language *Language) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultDisplay = settings
	m.defaultLanguage = language
}

func (m *MockStore) SetGetDisplayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getDisplayErr = err
}

func (m *MockStore) SetSetDisplayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setDisplayErr = err
}

func (m *MockStore) SetGetLanguageError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getLanguageErr = err
}

func (m *MockStore) SetSetLanguageError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLanguageErr = err
}

func (m *MockStore) SetClearError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearErr = err
}

// GateReads makes both Get operations block until gate is closed, keeping
// store calls in flight for as long as the test needs.
func (m *MockStore) GateReads(gate chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.displayGate = gate
	m.languageGate = gate
}

func (m *MockStore) GetDisplaySettings(ctx context.Context, userID string) (DisplaySettings, error) {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	gate := m.displayGate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetDisplayCalls++

	if m.closed {
		return DisplaySettings{}, ErrStoreUnavailable
	}
	if m.getDisplayErr != nil {
		return DisplaySettings{}, m.getDisplayErr
	}
	if settings, exists := m.display[userID]; exists {
		return settings, nil
	}
	if m.defaultDisplay != nil {
		return *m.defaultDisplay, nil
	}
	return DisplaySettings{}, fmt.Errorf("%w: no display settings for user %s", ErrNotFound, userID)
}

func (m *MockStore) SetDisplaySettings(ctx context.Context, userID string, settings DisplaySettings) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreUnavailable
	}
	if m.setDisplayErr != nil {
		return m.setDisplayErr
	}
	m.display[userID] = settings
	return nil
}

func (m *MockStore) GetLanguage(ctx context.Context, userID string) (Language, error) {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	gate := m.languageGate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetLanguageCalls++

	if m.closed {
		return "", ErrStoreUnavailable
	}
	if m.getLanguageErr != nil {
		return "", m.getLanguageErr
	}
	if language, exists := m.language[userID]; exists {
		return language, nil
	}
	if m.defaultLanguage != nil {
		return *m.defaultLanguage, nil
	}
	return "", fmt.Errorf("%w: no language for user %s", ErrNotFound, userID)
}

func (m *MockStore) SetLanguage(ctx context.Context, userID string, language Language) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreUnavailable
	}
	if m.setLanguageErr != nil {
		return m.setLanguageErr
	}
	m.language[userID] = language
	return nil
}

func (m *MockStore) ClearSettings(ctx context.Context, userID string) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++

	if m.closed {
		return ErrStoreUnavailable
	}
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.display, userID)
	delete(m.language, userID)
	return nil
}

func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (m *MockLogger) Debug(msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, formatMessage("DEBUG", msg, args...))
}

func (m *MockLogger) Info(msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, formatMessage("INFO", msg, args...))
}

func (m *MockLogger) Warn(msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, formatMessage("WARN", msg, args...))
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, formatMessage("ERROR", msg, args...))
}

// WarnCount returns how many warnings have been recorded.
func (m *MockLogger) WarnCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.Messages {
		if len(msg) >= 4 && msg[:4] == "WARN" {
			n++
		}
	}
	return n
}

func formatMessage(level, msg string, args ...any) string {
	if len(args) > 0 {
		return fmt.Sprintf("%s: %s %v", level, msg, args)
	}
	return fmt.Sprintf("%s: %s", level, msg)
}
