package tts

// GoogleVoices maps speech locales to a Google Cloud voice that reads them well.
// Locales without an entry let Google pick a default voice for the language.
var GoogleVoices = map[string]string{
	"en-IN": "en-IN-Standard-A",
	"hi-IN": "hi-IN-Standard-A",
	"te-IN": "te-IN-Standard-A",
	"ta-IN": "ta-IN-Standard-A",
	"bn-IN": "bn-IN-Standard-A",
	"mr-IN": "mr-IN-Standard-A",
	"gu-IN": "gu-IN-Standard-A",
	"kn-IN": "kn-IN-Standard-A",
	"ml-IN": "ml-IN-Standard-A",
	"pa-IN": "pa-IN-Standard-A",
}

// GoogleVoice returns the preset voice name for a locale.
func GoogleVoice(locale string) (string, bool) {
	v, ok := GoogleVoices[locale]
	return v, ok
}

// ElevenLabsVoices maps friendly preset names to ElevenLabs voice IDs that
// work with the multilingual model.
var ElevenLabsVoices = map[string]string{
	"aria":    "9BWtsMINqrJLrRacOk9x",
	"sarah":   "EXAVITQu4vr4xnSDxMaL",
	"rachel":  "21m00Tcm4TlvDq8ikWAM",
	"charlie": "IKne3meq5aSn9XLyUdCD",
	"adam":    "pNInz6obpgDQGcFmaJgB",
}

// DefaultElevenLabsVoice is the default voice preset.
const DefaultElevenLabsVoice = "aria"

// ResolveElevenLabsVoice returns the voice ID for a preset name,
// or the input unchanged if it's already a voice ID.
func ResolveElevenLabsVoice(name string) string {
	if id, ok := ElevenLabsVoices[name]; ok {
		return id
	}
	return name
}
