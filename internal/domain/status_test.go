package domain

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect Status
	}{
		{"pending", "PENDING", StatusPending},
		{"in_progress", "IN_PROGRESS", StatusInProgress},
		{"exploring", "EXPLORING", StatusExploring},
		{"completed", "COMPLETED", StatusCompleted},
		{"paused", "PAUSED", StatusPaused},
		{"unknown defaults to pending", "DONE", StatusPending},
		{"empty defaults to pending", "", StatusPending},
		{"lowercase accepted", "paused", StatusPaused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseStatus(tt.input); got != tt.expect {
				t.Errorf("ParseStatus(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect Mode
	}{
		{"planning", "PLANNING", ModePlanning},
		{"exploring", "EXPLORING", ModeExploring},
		{"lowercase accepted", "exploring", ModeExploring},
		{"unknown defaults to planning", "DOING", ModePlanning},
		{"empty defaults to planning", "", ModePlanning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMode(tt.input); got != tt.expect {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestParseKnowledge(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect Knowledge
	}{
		{"known/known", "KNOWN_WHAT_KNOWN_HOW", KnowledgeKnownWhatKnownHow},
		{"known/unknown", "KNOWN_WHAT_UNKNOWN_HOW", KnowledgeKnownWhatUnknownHow},
		{"unknown what", "UNKNOWN_WHAT", KnowledgeUnknownWhat},
		{"lowercase accepted", "unknown_what", KnowledgeUnknownWhat},
		{"garbage defaults", "???", KnowledgeKnownWhatKnownHow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseKnowledge(tt.input); got != tt.expect {
				t.Errorf("ParseKnowledge(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.IsValid() {
			t.Errorf("IsValid(%s) = false, want true", s)
		}
	}
	if Status("CANCELLED").IsValid() {
		t.Error("IsValid(CANCELLED) = true, want false")
	}
}
