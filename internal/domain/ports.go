package domain

import "time"

// DocumentStore persists the full task collection as a single document.
type DocumentStore interface {
	// Load reads the backing document. A missing file yields an empty
	// collection; an unreadable or corrupt document also yields an empty
	// collection rather than an error (fail soft).
	Load() ([]*Task, error)

	// Save serializes the full task collection, replacing the document.
	Save(tasks []*Task) error
}

// Logger is the minimal logging port used by the database layer and store.
type Logger interface {
	// Debug logs a debug message under a category.
	Debug(category, msg string)

	// Info logs an info message under a category.
	Info(category, msg string)

	// Warn logs a warning message under a category.
	Warn(category, msg string)

	// Error logs an error message under a category.
	Error(category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
