package domain

import "strings"

// Status represents the lifecycle state of a task or subtask.
// Values are the symbolic names persisted in the document.
type Status string

const (
	StatusPending    Status = "PENDING"     // Created, no work started
	StatusInProgress Status = "IN_PROGRESS" // Actively worked on
	StatusExploring  Status = "EXPLORING"   // Method unknown, collecting notes
	StatusCompleted  Status = "COMPLETED"   // Done
	StatusPaused     Status = "PAUSED"      // Set aside
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusInProgress,
		StatusExploring,
		StatusCompleted,
		StatusPaused,
	}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusExploring, StatusCompleted, StatusPaused:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusExploring:
		return "Exploring"
	case StatusCompleted:
		return "Completed"
	case StatusPaused:
		return "Paused"
	default:
		return string(s)
	}
}

// ParseStatus maps a persisted name to a Status.
// Case is ignored and unknown names fall back to PENDING so that old or
// hand-edited documents still load.
func ParseStatus(name string) Status {
	s := Status(strings.ToUpper(name))
	if !s.IsValid() {
		return StatusPending
	}
	return s
}

// Mode determines which child collection of a task is semantically active.
type Mode string

const (
	ModePlanning  Mode = "PLANNING"  // Goal and method known, work decomposed into subtasks
	ModeExploring Mode = "EXPLORING" // Goal known, method unknown, tracked via notes
)

// IsValid returns true if the mode is a known value.
func (m Mode) IsValid() bool {
	return m == ModePlanning || m == ModeExploring
}

// Display returns a human-readable representation of the mode.
func (m Mode) Display() string {
	switch m {
	case ModePlanning:
		return "Planning"
	case ModeExploring:
		return "Exploring"
	default:
		return string(m)
	}
}

// ParseMode maps a persisted name to a Mode, defaulting to PLANNING.
// Case is ignored.
func ParseMode(name string) Mode {
	m := Mode(strings.ToUpper(name))
	if !m.IsValid() {
		return ModePlanning
	}
	return m
}

// Knowledge describes how well the goal and method of a task are understood.
// It is descriptive only; transitions set it alongside mode switches but
// nothing enforces it.
type Knowledge string

const (
	KnowledgeKnownWhatKnownHow   Knowledge = "KNOWN_WHAT_KNOWN_HOW"
	KnowledgeKnownWhatUnknownHow Knowledge = "KNOWN_WHAT_UNKNOWN_HOW"
	KnowledgeUnknownWhat         Knowledge = "UNKNOWN_WHAT"
)

// IsValid returns true if the knowledge state is a known value.
func (k Knowledge) IsValid() bool {
	switch k {
	case KnowledgeKnownWhatKnownHow, KnowledgeKnownWhatUnknownHow, KnowledgeUnknownWhat:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the knowledge state.
func (k Knowledge) Display() string {
	switch k {
	case KnowledgeKnownWhatKnownHow:
		return "Clear goal, clear method"
	case KnowledgeKnownWhatUnknownHow:
		return "Clear goal, exploring method"
	case KnowledgeUnknownWhat:
		return "Goal not yet clear"
	default:
		return string(k)
	}
}

// ParseKnowledge maps a persisted name to a Knowledge state, defaulting to
// KNOWN_WHAT_KNOWN_HOW. Case is ignored.
func ParseKnowledge(name string) Knowledge {
	k := Knowledge(strings.ToUpper(name))
	if !k.IsValid() {
		return KnowledgeKnownWhatKnownHow
	}
	return k
}
