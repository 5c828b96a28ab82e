package voice

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-voxtend/internal/metrics"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the conversation log.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	SchemeID  string    `json:"scheme_id,omitempty"`
	Language  string    `json:"language"`
}

// Log is the append-only conversation history of a session.
type Log struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a turn, assigning its ID and timestamp when unset.
func (l *Log) Append(t Turn) (Turn, error) {
	if strings.TrimSpace(t.Text) == "" {
		return Turn{}, ErrEmptyText
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}

	l.mu.Lock()
	l.turns = append(l.turns, t)
	l.mu.Unlock()

	metrics.TurnsTotal.WithLabelValues(string(t.Role)).Inc()
	return t, nil
}

// Recent returns up to n most recent turns, oldest first.
func (l *Log) Recent(n int) []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	start := len(l.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(l.turns)-start)
	copy(out, l.turns[start:])
	return out
}

// All returns a copy of every turn.
func (l *Log) All() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

// LatestAssistant returns the most recent assistant turn.
func (l *Log) LatestAssistant() (Turn, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.turns) - 1; i >= 0; i-- {
		if l.turns[i].Role == RoleAssistant {
			return l.turns[i], true
		}
	}
	return Turn{}, false
}

// LatestAssistantText returns the text of the most recent assistant turn,
// or "" when there is none.
func (l *Log) LatestAssistantText() string {
	t, _ := l.LatestAssistant()
	return t.Text
}
