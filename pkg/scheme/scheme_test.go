package scheme

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 10, c.Len())

	s, err := c.Get("pm-kisan")
	require.NoError(t, err)
	assert.Equal(t, "PM-KISAN (Pradhan Mantri Kisan Samman Nidhi)", s.Name)
	assert.Contains(t, s.Keywords, "pm kisan")
	assert.Equal(t, []string{"Aadhaar Card", "PAN Card", "Income Certificate"}, s.DocumentNames())

	_, err = c.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestByCategory(t *testing.T) {
	c := Default()

	assert.Len(t, c.ByCategory(""), 10)
	assert.Len(t, c.ByCategory(CategoryAll), 10)

	health := c.ByCategory("healthcare")
	require.Len(t, health, 1)
	assert.Equal(t, "ayushman-bharat", health[0].ID)

	assert.Empty(t, c.ByCategory("Space Travel"))

	cats := c.Categories()
	assert.Equal(t, CategoryAll, cats[0])
	assert.Contains(t, cats, CategoryAgriculture)
}

func TestMatch(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"scheme name with hyphen", "Tell me about PM-KISAN", "pm-kisan"},
		{"keyword phrase", "what is pm kisan", "pm-kisan"},
		{"description word", "I need help with toilet construction", "swachh-bharat"},
		{"catalog order breaks ties", "farmer health", "pm-kisan"},
		{"trailing punctuation", "LPG?", "ujjwala"},
		{"keyword only", "my mother is expecting", "maternity-benefit"},
		{"short tokens ignored", "pm is ok", ""},
		{"no match", "weather tomorrow", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Match(tt.query)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	c := Default()
	first := c.Match("insurance")
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.ID, c.Match("insurance").ID)
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"tell", "about", "pm-kisan"}, Tokens("Tell me about PM-KISAN"))
	assert.Equal(t, []string{"पीएम", "किसान"}, Tokens("पीएम किसान"))
	assert.Empty(t, Tokens("a an to"))
}

func TestDeadlines(t *testing.T) {
	c := Default()
	s, err := c.Get("ujjwala")
	require.NoError(t, err)

	now := time.Date(2025, time.July, 20, 12, 0, 0, 0, time.UTC)
	days, ok := s.DaysLeft(now)
	require.True(t, ok)
	assert.Equal(t, 11, days)
	assert.True(t, s.IsUrgent(now))

	assert.False(t, s.IsUrgent(now.AddDate(0, 2, 0)))

	noDeadline, err := c.Get("jandhan")
	require.NoError(t, err)
	_, ok = noDeadline.DaysLeft(now)
	assert.False(t, ok)
	assert.False(t, noDeadline.IsUrgent(now))
}
