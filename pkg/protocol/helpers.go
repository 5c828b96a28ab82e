package protocol

import (
	"encoding/base64"
)

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewRecognizeMessage creates a recognition start command.
func NewRecognizeMessage(id, locale string) (*Message, error) {
	return NewMessage(TypeRecognize, RecognizeCommand{
		ID:     id,
		Locale: locale,
	})
}

// NewCancelMessage creates a cancel command of the given type.
func NewCancelMessage(msgType MessageType, id string) (*Message, error) {
	return NewMessage(msgType, CancelCommand{ID: id})
}

// NewSpeakMessage creates a speak command. audio may be nil for on-device
// synthesis.
func NewSpeakMessage(id, text, locale string, rate, pitch float64, audio []byte, mime string) (*Message, error) {
	cmd := SpeakCommand{
		ID:     id,
		Text:   text,
		Locale: locale,
		Rate:   rate,
		Pitch:  pitch,
	}
	if len(audio) > 0 {
		cmd.MIME = mime
		cmd.Data = base64.StdEncoding.EncodeToString(audio)
	}
	return NewMessage(TypeSpeak, cmd)
}

// NewErrorMessage creates an error reply to a request.
func NewErrorMessage(request MessageType, err error) (*Message, error) {
	return NewMessage(TypeError, ErrorData{Request: request, Message: err.Error()})
}

// NewPingMessage creates a ping message
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{ID: id})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}

// =============================================================================
// Helper functions for parsing messages
// =============================================================================

// GetHelloData extracts the capability announcement from a message.
func (m *Message) GetHelloData() (*HelloData, error) {
	var data HelloData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetAskData extracts a typed question from a message.
func (m *Message) GetAskData() (*AskData, error) {
	var data AskData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetLanguageData extracts a language selection from a message.
func (m *Message) GetLanguageData() (*LanguageData, error) {
	var data LanguageData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetRecognitionEvent extracts a recognition event from a message.
func (m *Message) GetRecognitionEvent() (*RecognitionEvent, error) {
	var data RecognitionEvent
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPlaybackEvent extracts a playback event from a message.
func (m *Message) GetPlaybackEvent() (*PlaybackEvent, error) {
	var data PlaybackEvent
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetRecognizeCommand extracts a recognition command from a message.
func (m *Message) GetRecognizeCommand() (*RecognizeCommand, error) {
	var data RecognizeCommand
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetCancelCommand extracts a cancel command from a message.
func (m *Message) GetCancelCommand() (*CancelCommand, error) {
	var data CancelCommand
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetSpeakCommand extracts a speak command from a message.
func (m *Message) GetSpeakCommand() (*SpeakCommand, error) {
	var data SpeakCommand
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DecodeAudio decodes the base64 audio data
func (s *SpeakCommand) DecodeAudio() ([]byte, error) {
	return base64.StdEncoding.DecodeString(s.Data)
}

// GetReminderData extracts a reminder from a message.
func (m *Message) GetReminderData() (*ReminderData, error) {
	var data ReminderData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetErrorData extracts an error reply from a message.
func (m *Message) GetErrorData() (*ErrorData, error) {
	var data ErrorData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPingData extracts ping data from a message
func (m *Message) GetPingData() (*PingData, error) {
	var data PingData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPongData extracts pong data from a message
func (m *Message) GetPongData() (*PongData, error) {
	var data PongData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
