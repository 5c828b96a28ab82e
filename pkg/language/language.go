// Package language holds the supported conversation languages, script-based
// detection and the localized strings spoken or shown by the assistant.
package language

import (
	"errors"
	"strings"
)

// ErrUnknown is returned when a language code is not supported.
var ErrUnknown = errors.New("language: unknown code")

// Language describes one selectable conversation language.
type Language struct {
	Code         string `json:"code"`          // ISO 639-1
	Name         string `json:"name"`          // English name
	NativeName   string `json:"native_name"`   // Name in its own script
	SpeechLocale string `json:"speech_locale"` // Recognition/synthesis locale
}

// Codes of the supported languages.
const (
	English   = "en"
	Hindi     = "hi"
	Telugu    = "te"
	Tamil     = "ta"
	Bengali   = "bn"
	Marathi   = "mr"
	Gujarati  = "gu"
	Kannada   = "kn"
	Malayalam = "ml"
	Punjabi   = "pa"
	Odia      = "or"
	Urdu      = "ur"
)

// Default is the language a new session starts in.
const Default = English

var all = []Language{
	{Code: English, Name: "English", NativeName: "English", SpeechLocale: "en-IN"},
	{Code: Hindi, Name: "Hindi", NativeName: "हिंदी", SpeechLocale: "hi-IN"},
	{Code: Telugu, Name: "Telugu", NativeName: "తెలుగు", SpeechLocale: "te-IN"},
	{Code: Tamil, Name: "Tamil", NativeName: "தமிழ்", SpeechLocale: "ta-IN"},
	{Code: Bengali, Name: "Bengali", NativeName: "বাংলা", SpeechLocale: "bn-IN"},
	{Code: Marathi, Name: "Marathi", NativeName: "मराठी", SpeechLocale: "mr-IN"},
	{Code: Gujarati, Name: "Gujarati", NativeName: "ગુજરાતી", SpeechLocale: "gu-IN"},
	{Code: Kannada, Name: "Kannada", NativeName: "ಕನ್ನಡ", SpeechLocale: "kn-IN"},
	{Code: Malayalam, Name: "Malayalam", NativeName: "മലയാളം", SpeechLocale: "ml-IN"},
	{Code: Punjabi, Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ", SpeechLocale: "pa-IN"},
	{Code: Odia, Name: "Odia", NativeName: "ଓଡ଼ିଆ", SpeechLocale: "or-IN"},
	{Code: Urdu, Name: "Urdu", NativeName: "اردو", SpeechLocale: "ur-PK"},
}

// All returns the supported languages in display order.
func All() []Language {
	out := make([]Language, len(all))
	copy(out, all)
	return out
}

// Lookup returns the language for a code. Region suffixes such as
// "hi-IN" are accepted and matched on the base code.
func Lookup(code string) (Language, bool) {
	base := strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(base, "-_"); i > 0 {
		base = base[:i]
	}
	for _, l := range all {
		if l.Code == base {
			return l, true
		}
	}
	return Language{}, false
}

// Get is Lookup returning ErrUnknown for unsupported codes.
func Get(code string) (Language, error) {
	l, ok := Lookup(code)
	if !ok {
		return Language{}, ErrUnknown
	}
	return l, nil
}

// MustGet panics if the code is unsupported. Intended for package-level defaults.
func MustGet(code string) Language {
	l, err := Get(code)
	if err != nil {
		panic(err)
	}
	return l
}
