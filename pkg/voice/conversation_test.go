package voice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-voxtend/pkg/voice"
)

func TestLogAppend(t *testing.T) {
	l := voice.NewLog()

	_, err := l.Append(voice.Turn{Role: voice.RoleUser, Text: "   "})
	assert.ErrorIs(t, err, voice.ErrEmptyText)
	assert.Equal(t, 0, l.Len())

	turn, err := l.Append(voice.Turn{Role: voice.RoleUser, Text: "hello", Language: "en"})
	require.NoError(t, err)
	assert.NotEmpty(t, turn.ID)
	assert.False(t, turn.Timestamp.IsZero())

	at := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	kept, err := l.Append(voice.Turn{ID: "fixed", Role: voice.RoleAssistant, Text: "hi", Timestamp: at, SchemeID: "ujjwala"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", kept.ID)
	assert.Equal(t, at, kept.Timestamp)
	assert.Equal(t, 2, l.Len())
}

func TestLogRecent(t *testing.T) {
	l := voice.NewLog()
	for _, text := range []string{"a", "b", "c", "d"} {
		_, err := l.Append(voice.Turn{Role: voice.RoleUser, Text: text})
		require.NoError(t, err)
	}

	texts := func(turns []voice.Turn) []string {
		var out []string
		for _, t := range turns {
			out = append(out, t.Text)
		}
		return out
	}

	assert.Equal(t, []string{"c", "d"}, texts(l.Recent(2)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, texts(l.Recent(10)))
	assert.Empty(t, l.Recent(0))
	assert.Equal(t, []string{"a", "b", "c", "d"}, texts(l.All()))

	// Returned slices are copies.
	recent := l.Recent(1)
	recent[0].Text = "mutated"
	assert.Equal(t, "d", l.All()[3].Text)
}

func TestLogLatestAssistantText(t *testing.T) {
	l := voice.NewLog()
	assert.Equal(t, "", l.LatestAssistantText())

	_, _ = l.Append(voice.Turn{Role: voice.RoleAssistant, Text: "first"})
	_, _ = l.Append(voice.Turn{Role: voice.RoleUser, Text: "question"})
	assert.Equal(t, "first", l.LatestAssistantText())

	_, _ = l.Append(voice.Turn{Role: voice.RoleAssistant, Text: "second"})
	assert.Equal(t, "second", l.LatestAssistantText())
}
