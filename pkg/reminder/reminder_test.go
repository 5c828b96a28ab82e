package reminder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-voxtend/pkg/scheme"
)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestDue(t *testing.T) {
	reminders := []Reminder{
		{SchemeID: "pm-kisan", SchemeName: "PM-KISAN", Deadline: day(2025, time.August, 30, 0)},
		{SchemeID: "ujjwala", SchemeName: "Ujjwala Yojana", Deadline: day(2025, time.July, 31, 0)},
		{SchemeID: "ayushman-bharat", SchemeName: "Ayushman Bharat", Deadline: day(2025, time.September, 15, 0)},
	}

	tests := []struct {
		name string
		now  time.Time
		want map[string]int
	}{
		{"a week out", day(2025, time.August, 23, 0), map[string]int{"pm-kisan": 7}},
		{"three days", day(2025, time.August, 27, 0), map[string]int{"pm-kisan": 3}},
		{"later today rounds up", day(2025, time.August, 29, 12), map[string]int{"pm-kisan": 1}},
		{"deadline day", day(2025, time.August, 30, 0), map[string]int{"pm-kisan": 0}},
		{"passed", day(2025, time.August, 31, 1), map[string]int{}},
		{"too early", day(2025, time.June, 1, 0), map[string]int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := map[string]int{}
			for _, n := range Due(reminders, tt.now) {
				got[n.Reminder.SchemeID] = n.DaysLeft
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "PM-KISAN deadline in 1 day. Apply soon!", Message("PM-KISAN", 1))
	assert.Equal(t, "PM-KISAN deadline in 3 days. Apply soon!", Message("PM-KISAN", 3))
	assert.Equal(t, "PM-KISAN deadline in 0 days. Apply soon!", Message("PM-KISAN", 0))
}

func TestFromScheme(t *testing.T) {
	catalog := scheme.Default()

	s, err := catalog.Get("pm-kisan")
	require.NoError(t, err)
	r, err := FromScheme(s)
	require.NoError(t, err)
	assert.Equal(t, "pm-kisan", r.SchemeID)
	assert.Equal(t, s.Name, r.SchemeName)

	s, err = catalog.Get("pension-scheme")
	require.NoError(t, err)
	_, err = FromScheme(s)
	assert.ErrorIs(t, err, ErrMissingDeadline)
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "reminders.json")
	store, err := NewJSONStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.List())

	kisan := Reminder{SchemeID: "pm-kisan", SchemeName: "PM-KISAN", Deadline: day(2025, time.August, 30, 0)}
	gas := Reminder{SchemeID: "ujjwala", SchemeName: "Ujjwala Yojana", Deadline: day(2025, time.July, 31, 0)}

	got, added, err := store.Add(kisan)
	require.NoError(t, err)
	assert.True(t, added)
	assert.False(t, got.CreatedAt.IsZero())

	_, added, err = store.Add(Reminder{SchemeID: "pm-kisan", SchemeName: "changed", Deadline: day(2026, 1, 1, 0)})
	require.NoError(t, err)
	assert.False(t, added, "duplicate scheme must not be added")

	_, _, err = store.Add(gas)
	require.NoError(t, err)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, "ujjwala", list[0].SchemeID, "ordered by deadline")
	assert.Equal(t, "PM-KISAN", list[1].SchemeName)

	reopened, err := NewJSONStore(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Count())

	require.NoError(t, reopened.Remove("ujjwala"))
	assert.ErrorIs(t, reopened.Remove("ujjwala"), ErrNotFound)
	_, err = reopened.Get("ujjwala")
	assert.ErrorIs(t, err, ErrNotFound)

	due := reopened.Due(day(2025, time.August, 28, 0))
	require.Len(t, due, 1)
	assert.Equal(t, "PM-KISAN deadline in 2 days. Apply soon!", due[0].Message)
}

func TestJSONStoreFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	store, err := NewJSONStore(path)
	require.NoError(t, err)

	_, _, err = store.Add(Reminder{SchemeID: "pm-kisan", SchemeName: "PM-KISAN", Deadline: day(2025, time.August, 30, 0)})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var file struct {
		Version   int              `json:"version"`
		Reminders []map[string]any `json:"reminders"`
	}
	require.NoError(t, json.Unmarshal(raw, &file))
	assert.Equal(t, 1, file.Version)
	require.Len(t, file.Reminders, 1)
	assert.Equal(t, "pm-kisan", file.Reminders[0]["scheme_id"])
	assert.Equal(t, "PM-KISAN", file.Reminders[0]["scheme_name"])
	assert.Equal(t, "2025-08-30T00:00:00Z", file.Reminders[0]["deadline"])
}

func TestJSONStoreValidation(t *testing.T) {
	store, err := NewJSONStore(filepath.Join(t.TempDir(), "reminders.json"))
	require.NoError(t, err)

	_, _, err = store.Add(Reminder{Deadline: time.Now()})
	assert.ErrorIs(t, err, ErrMissingScheme)

	_, _, err = store.Add(Reminder{SchemeID: "pm-kisan"})
	assert.ErrorIs(t, err, ErrMissingDeadline)
}
