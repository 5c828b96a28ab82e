package reminder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Store persists reminders.
type Store interface {
	// Add saves r unless a reminder for the same scheme exists. It returns
	// the stored reminder and whether it was newly added.
	Add(r Reminder) (Reminder, bool, error)

	// Remove deletes the reminder for a scheme.
	Remove(schemeID string) error

	// Get returns the reminder for a scheme.
	Get(schemeID string) (Reminder, error)

	// List returns all reminders ordered by deadline.
	List() []Reminder

	// Due returns the reminders inside the due window at now.
	Due(now time.Time) []Notification
}

// JSONStore implements Store with a JSON file.
type JSONStore struct {
	path      string
	reminders map[string]Reminder
	mu        sync.RWMutex
}

type storeData struct {
	Version   int        `json:"version"`
	UpdatedAt string     `json:"updated_at"`
	Reminders []Reminder `json:"reminders"`
}

const currentVersion = 1

// NewJSONStore opens the store at path. The file is created on first save.
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{
		path:      path,
		reminders: make(map[string]Reminder),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := s.load(); err != nil {
			return nil, fmt.Errorf("load reminders: %w", err)
		}
	}
	return s, nil
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var stored storeData
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	for _, r := range stored.Reminders {
		s.reminders[r.SchemeID] = r
	}
	return nil
}

// save writes the store atomically. Callers hold s.mu.
func (s *JSONStore) save() error {
	stored := storeData{
		Version:   currentVersion,
		UpdatedAt: time.Now().Format(time.RFC3339),
		Reminders: s.sorted(),
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (s *JSONStore) sorted() []Reminder {
	out := make([]Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Deadline.Equal(out[j].Deadline) {
			return out[i].SchemeID < out[j].SchemeID
		}
		return out[i].Deadline.Before(out[j].Deadline)
	})
	return out
}

// Add saves a reminder, keeping the existing one for a repeated scheme.
func (s *JSONStore) Add(r Reminder) (Reminder, bool, error) {
	if err := r.Validate(); err != nil {
		return Reminder{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.reminders[r.SchemeID]; ok {
		return existing, false, nil
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.reminders[r.SchemeID] = r
	if err := s.save(); err != nil {
		delete(s.reminders, r.SchemeID)
		return Reminder{}, false, err
	}
	return r, true, nil
}

// Remove deletes the reminder for schemeID.
func (s *JSONStore) Remove(schemeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[schemeID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, schemeID)
	}
	delete(s.reminders, schemeID)
	if err := s.save(); err != nil {
		s.reminders[schemeID] = r
		return err
	}
	return nil
}

// Get returns the reminder for schemeID.
func (s *JSONStore) Get(schemeID string) (Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reminders[schemeID]
	if !ok {
		return Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, schemeID)
	}
	return r, nil
}

// List returns all reminders ordered by deadline.
func (s *JSONStore) List() []Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted()
}

// Count returns the number of saved reminders.
func (s *JSONStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reminders)
}

// Due returns the saved reminders inside the due window at now.
func (s *JSONStore) Due(now time.Time) []Notification {
	return Due(s.List(), now)
}

var _ Store = (*JSONStore)(nil)
