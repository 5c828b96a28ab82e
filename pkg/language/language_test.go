package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		code   string
		want   string
		wantOK bool
	}{
		{"en", English, true},
		{"hi-IN", Hindi, true},
		{"TE", Telugu, true},
		{" ur_PK ", Urdu, true},
		{"or", Odia, true},
		{"fr", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			l, ok := Lookup(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, l.Code)
		})
	}
}

func TestAllHasTwelveLanguages(t *testing.T) {
	langs := All()
	require.Len(t, langs, 12)
	assert.Equal(t, English, langs[0].Code)

	// Callers cannot mutate the catalog
	langs[0].Name = "changed"
	assert.Equal(t, "English", MustGet(English).Name)
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("xx")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestDetectScript(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"devanagari", "पीएम किसान क्या है", Hindi, true},
		{"telugu", "రైతు పథకం", Telugu, true},
		{"tamil", "விவசாயி திட்டம்", Tamil, true},
		{"bengali", "কৃষক প্রকল্প", Bengali, true},
		{"arabic", "کسان اسکیم", Urdu, true},
		{"odia", "କୃଷକ ଯୋଜନା", Odia, true},
		{"mixed latin and devanagari", "Tell me about किसान", Hindi, true},
		{"latin", "Tell me about PM-KISAN", "", false},
		{"digits only", "12345", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, ok := DetectScript(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, l.Code)
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "क्षमा करें, मुझे आपकी बात समझने में समस्या हुई। कृपया फिर से कोशिश करें।", Fallback(Hindi))
	assert.Equal(t, "Sorry, I had trouble understanding. Please try again.", Fallback(English))

	// Gujarati has no fallback translation and uses English
	assert.Equal(t, Fallback(English), Fallback(Gujarati))

	// Unknown language code uses English
	assert.Equal(t, Welcome(English), Welcome("xx"))

	// Unknown key echoes the key
	assert.Equal(t, "nope", Text(Key("nope"), English))

	for _, l := range All() {
		assert.NotEmpty(t, Welcome(l.Code), l.Code)
		assert.NotEmpty(t, Fallback(l.Code), l.Code)
	}
}
