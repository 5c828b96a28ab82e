package voice

import (
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-voxtend/pkg/language"
)

// Notice levels.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Notice is a transient, localized message shown to the user.
type Notice struct {
	ID    string       `json:"id"`
	Key   language.Key `json:"key"`
	Text  string       `json:"text"`
	Level string       `json:"level"`
	At    time.Time    `json:"at"`
}

// NewNotice localizes key into lang.
func NewNotice(key language.Key, lang string) Notice {
	level := LevelError
	if key == language.KeyUnsupported {
		level = LevelInfo
	}
	return Notice{
		ID:    uuid.NewString(),
		Key:   key,
		Text:  language.Text(key, lang),
		Level: level,
		At:    time.Now(),
	}
}

// recognitionNoticeKey maps a platform recognition error code to the notice
// shown to the user. ok is false for codes that end silently.
func recognitionNoticeKey(code string) (language.Key, bool) {
	switch code {
	case "aborted":
		return "", false
	case "not-allowed", "service-not-allowed", "audio-capture":
		return language.KeyMicPermission, true
	case "no-speech":
		return language.KeyNoSpeech, true
	case "timeout":
		return language.KeyRecognitionTimeout, true
	default:
		return language.KeyRecognitionFailed, true
	}
}
