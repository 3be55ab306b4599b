// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"time"

	"github.com/labtrack/labtrack/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward and returns the new time.
func (m *MockClock) Advance(d time.Duration) time.Time {
	m.NowTime = m.NowTime.Add(d)
	return m.NowTime
}

// MemStore is an in-memory test double for domain.DocumentStore.
// Fields are ordered to minimize memory padding.
type MemStore struct {
	SaveErr error // returned by Save when non-nil
	LoadErr error // returned by Load when non-nil
	Tasks   []*domain.Task
	Saves   int // number of successful Save calls
}

var _ domain.DocumentStore = (*MemStore)(nil)

// Load returns the stored tasks.
func (m *MemStore) Load() ([]*domain.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Tasks, nil
}

// Save replaces the stored tasks.
func (m *MemStore) Save(tasks []*domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks = make([]*domain.Task, len(tasks))
	copy(m.Tasks, tasks)
	m.Saves++
	return nil
}

// NopLogger is a domain.Logger that discards everything.
type NopLogger struct{}

var _ domain.Logger = NopLogger{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}
