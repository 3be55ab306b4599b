// Package jsonstore provides a JSON file-based implementation of
// domain.DocumentStore. The whole task collection lives in a single
// document that is rewritten on every save.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/labtrack/labtrack/internal/domain"
)

// document represents the JSON file structure.
type document struct {
	Tasks       []taskJSON `json:"tasks"`
	LastUpdated string     `json:"last_updated"`
}

// taskJSON is the wire representation of a task. Pointer and string-typed
// fields keep decoding tolerant: missing optional fields get documented
// defaults instead of failing the load.
// Fields are ordered to minimize memory padding.
type taskJSON struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Mode        string        `json:"mode"`
	Knowledge   string        `json:"knowledge"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Conclusion  string        `json:"conclusion"`
	Order       *int          `json:"order,omitempty"`
	CompletedAt *string       `json:"completed_at"`
	SubTasks    []subTaskJSON `json:"subtasks"`
	Notes       []noteJSON    `json:"exploration_notes"`
	// Legacy field, folded into exploration_notes on load and never
	// written back.
	History  []noteJSON `json:"exploration_history,omitempty"`
	Tags     []string   `json:"tags"`
	Priority int        `json:"priority"`
}

// subTaskJSON is the wire representation of a subtask.
type subTaskJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
	Notes       string  `json:"notes"`
	Order       int     `json:"order"`
}

// noteJSON is the wire representation of an exploration note. UpdatedAt may
// be absent in legacy data, in which case it defaults to CreatedAt.
type noteJSON struct {
	ID             string `json:"id"`
	Content        string `json:"content"`
	Insight        string `json:"insight"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at,omitempty"`
	IsBreakthrough bool   `json:"is_breakthrough"`
}

// Store implements domain.DocumentStore using a JSON file.
type Store struct {
	log  domain.Logger
	path string
}

// New creates a new Store for the given file path. The file does not need
// to exist; it will be created on first save. logger may be nil.
func New(path string, logger domain.Logger) *Store {
	return &Store{path: path, log: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing document. A missing file yields an empty
// collection. A corrupt document also yields an empty collection: the
// broken file is moved aside with a .corrupt suffix and the recovery is
// logged, so a damaged store never crashes the application.
func (s *Store) Load() ([]*domain.Task, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.warnf("load", "read %s: %v", s.path, err)
		return nil, nil
	}

	var doc document
	if err := json.Unmarshal(content, &doc); err != nil {
		s.warnf("load", "corrupt document %s: %v", s.path, err)
		s.backupCorrupt()
		return nil, nil
	}

	tasks := make([]*domain.Task, 0, len(doc.Tasks))
	for i, tj := range doc.Tasks {
		tasks = append(tasks, decodeTask(tj, i))
	}
	return tasks, nil
}

// Save serializes the full task collection, replacing the document.
// The write goes to a temp file first and is renamed into place so a
// failed write never leaves a truncated document behind.
func (s *Store) Save(tasks []*domain.Task) error {
	doc := document{
		Tasks:       make([]taskJSON, 0, len(tasks)),
		LastUpdated: formatTime(time.Now()),
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, encodeTask(t))
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// backupCorrupt moves a corrupt document aside so its contents are still
// recoverable by hand.
func (s *Store) backupCorrupt() {
	backup := s.path + ".corrupt"
	if err := os.Rename(s.path, backup); err != nil {
		s.warnf("load", "backup corrupt document: %v", err)
		return
	}
	s.warnf("load", "corrupt document moved to %s, starting with an empty store", backup)
}

func (s *Store) warnf(category, format string, args ...any) {
	if s.log != nil {
		s.log.Warn(category, fmt.Sprintf(format, args...))
	}
}

// encodeTask converts a task to its wire representation.
func encodeTask(t *domain.Task) taskJSON {
	order := t.Order
	tj := taskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Order:       &order,
		Status:      string(t.Status),
		Mode:        string(t.Mode),
		Knowledge:   string(t.Knowledge),
		SubTasks:    make([]subTaskJSON, 0, len(t.SubTasks)),
		Notes:       make([]noteJSON, 0, len(t.Notes)),
		CreatedAt:   formatTime(t.Created),
		UpdatedAt:   formatTime(t.Updated),
		CompletedAt: formatTimePtr(t.Completed),
		Priority:    t.Priority,
		Tags:        append([]string{}, t.Tags...),
		Conclusion:  t.Conclusion,
	}
	for _, st := range t.SubTasks {
		tj.SubTasks = append(tj.SubTasks, subTaskJSON{
			ID:          st.ID,
			Title:       st.Title,
			Description: st.Description,
			Status:      string(st.Status),
			Order:       st.Order,
			CreatedAt:   formatTime(st.Created),
			CompletedAt: formatTimePtr(st.Completed),
			Notes:       st.Notes,
		})
	}
	for _, n := range t.Notes {
		tj.Notes = append(tj.Notes, noteJSON{
			ID:             n.ID,
			Content:        n.Content,
			Insight:        n.Insight,
			CreatedAt:      formatTime(n.Created),
			UpdatedAt:      formatTime(n.Updated),
			IsBreakthrough: n.Breakthrough,
		})
	}
	return tj
}

// decodeTask converts a wire task back to the domain entity, substituting
// defaults for missing fields. index provides the order default for
// documents written before the order field existed.
func decodeTask(tj taskJSON, index int) *domain.Task {
	order := index
	if tj.Order != nil {
		order = *tj.Order
	}
	t := &domain.Task{
		ID:          tj.ID,
		Title:       tj.Title,
		Description: tj.Description,
		Order:       order,
		Status:      domain.ParseStatus(tj.Status),
		Mode:        domain.ParseMode(tj.Mode),
		Knowledge:   domain.ParseKnowledge(tj.Knowledge),
		Created:     parseTime(tj.CreatedAt),
		Updated:     parseTime(tj.UpdatedAt),
		Completed:   parseTimePtr(tj.CompletedAt),
		Priority:    tj.Priority,
		Tags:        append([]string{}, tj.Tags...),
		Conclusion:  tj.Conclusion,
	}
	for _, stj := range tj.SubTasks {
		t.SubTasks = append(t.SubTasks, &domain.SubTask{
			ID:          stj.ID,
			Title:       stj.Title,
			Description: stj.Description,
			Status:      domain.ParseStatus(stj.Status),
			Order:       stj.Order,
			Created:     parseTime(stj.CreatedAt),
			Completed:   parseTimePtr(stj.CompletedAt),
			Notes:       stj.Notes,
		})
	}
	// Current notes first, then any legacy history entries in their own
	// order with their own timestamps.
	for _, nj := range tj.Notes {
		t.Notes = append(t.Notes, decodeNote(nj))
	}
	for _, nj := range tj.History {
		t.Notes = append(t.Notes, decodeNote(nj))
	}
	return t
}

func decodeNote(nj noteJSON) *domain.ExplorationNote {
	created := parseTime(nj.CreatedAt)
	updated := created
	if nj.UpdatedAt != "" {
		updated = parseTime(nj.UpdatedAt)
	}
	return &domain.ExplorationNote{
		ID:           nj.ID,
		Content:      nj.Content,
		Insight:      nj.Insight,
		Created:      created,
		Updated:      updated,
		Breakthrough: nj.IsBreakthrough,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func formatTimePtr(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimePtr(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	return parseTime(*s)
}

// Ensure Store implements DocumentStore.
var _ domain.DocumentStore = (*Store)(nil)
