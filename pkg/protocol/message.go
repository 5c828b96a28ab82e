// Package protocol defines the WebSocket messages exchanged between the
// browser front end and the voxtend server.
//
// The browser is the speech platform: it runs recognition and plays audio
// when asked, and reports what happened. The server owns the conversation
// state and pushes status, turns and notices back.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Browser → Server messages
	TypeHello         MessageType = "hello"          // Capabilities and initial language
	TypeListen        MessageType = "listen"         // User pressed the microphone
	TypeStopListening MessageType = "stop_listening" // User released the microphone
	TypeAsk           MessageType = "ask"            // Typed question
	TypeSetLanguage   MessageType = "set_language"   // Language selector changed
	TypeStopSpeaking  MessageType = "stop_speaking"  // User stopped playback
	TypeRecognition   MessageType = "recognition"    // Recognition event for a session
	TypePlayback      MessageType = "playback"       // Playback event for a session

	// Server → Browser messages
	TypeRecognize         MessageType = "recognize"          // Start a recognition session
	TypeCancelRecognition MessageType = "cancel_recognition" // Abort a recognition session
	TypeSpeak             MessageType = "speak"              // Speak text or play audio
	TypeCancelSpeech      MessageType = "cancel_speech"      // Stop a playback session
	TypeStatus            MessageType = "status"             // Session status snapshot
	TypeTurn              MessageType = "turn"               // Conversation turn appended
	TypeNotice            MessageType = "notice"             // Transient user notice
	TypeReminder          MessageType = "reminder"           // Deadline reminder is due
	TypeError             MessageType = "error"              // Request could not be handled

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("failed to parse message: missing type")
	}
	return &msg, nil
}

// =============================================================================
// Browser → Server Message Types
// =============================================================================

// HelloData announces the browser's speech capabilities.
type HelloData struct {
	Language    string `json:"language,omitempty"`
	Recognition bool   `json:"recognition"`
	Synthesis   bool   `json:"synthesis"`
	// RemoteAudio asks the server to synthesize audio instead of relying on
	// the browser's own voices.
	RemoteAudio bool `json:"remote_audio,omitempty"`
}

// AskData carries a typed question.
type AskData struct {
	Text string `json:"text"`
}

// LanguageData selects a language by code.
type LanguageData struct {
	Code string `json:"code"`
}

// Recognition and playback event names.
const (
	EventStart  = "start"
	EventResult = "result"
	EventEnd    = "end"
	EventError  = "error"
)

// RecognitionEvent reports what the browser recognizer did for session ID.
type RecognitionEvent struct {
	ID         string `json:"id"`
	Event      string `json:"event"`
	Transcript string `json:"transcript,omitempty"`
	Final      bool   `json:"final,omitempty"`
	Error      string `json:"error,omitempty"` // not-allowed, no-speech, aborted, ...
}

// PlaybackEvent reports what the browser audio did for session ID.
type PlaybackEvent struct {
	ID      string `json:"id"`
	Event   string `json:"event"`
	Error   string `json:"error,omitempty"`
	Blocked bool   `json:"blocked,omitempty"` // Autoplay was refused
}

// =============================================================================
// Server → Browser Message Types
// =============================================================================

// RecognizeCommand starts a recognition session in the browser.
type RecognizeCommand struct {
	ID             string `json:"id"`
	Locale         string `json:"locale"`
	Continuous     bool   `json:"continuous"`
	InterimResults bool   `json:"interim_results"`
}

// CancelCommand stops the recognition or playback session ID.
type CancelCommand struct {
	ID string `json:"id"`
}

// SpeakCommand asks the browser to play audio, or to synthesize Text
// itself when Data is empty.
type SpeakCommand struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Locale string  `json:"locale"`
	Rate   float64 `json:"rate,omitempty"`
	Pitch  float64 `json:"pitch,omitempty"`
	MIME   string  `json:"mime,omitempty"`
	Data   string  `json:"data,omitempty"` // base64 encoded
}

// ReminderData is broadcast when a saved reminder is close to its deadline.
type ReminderData struct {
	SchemeID   string `json:"scheme_id"`
	SchemeName string `json:"scheme_name"`
	Deadline   string `json:"deadline"` // YYYY-MM-DD
	DaysLeft   int    `json:"days_left"`
	Message    string `json:"message"`
}

// ErrorData describes a rejected request.
type ErrorData struct {
	Request MessageType `json:"request,omitempty"`
	Message string      `json:"message"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
