package voice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-voxtend/internal/metrics"
	"github.com/teslashibe/go-voxtend/pkg/language"
)

// EventType identifies a session event.
type EventType string

const (
	EventStatus EventType = "status"
	EventTurn   EventType = "turn"
	EventNotice EventType = "notice"
)

// Event is delivered to session subscribers. Exactly one payload is set.
type Event struct {
	Type   EventType
	Status *Status
	Turn   *Turn
	Notice *Notice
}

// Status is a snapshot of the session for display.
type Status struct {
	SessionID    string            `json:"session_id"`
	Language     language.Language `json:"language"`
	Capabilities Capabilities      `json:"capabilities"`
	Recognition  RecognitionState  `json:"recognition"`
	Playback     PlaybackState     `json:"playback"`
	Processing   bool              `json:"processing"`
	Notice       *Notice           `json:"notice,omitempty"`
	Turns        int               `json:"turns"`
}

// Session coordinates recognition, orchestration, playback and the
// conversation log for one user.
type Session struct {
	id          string
	cfg         *Config
	logger      *slog.Logger
	log         *Log
	orch        *Orchestrator
	recognition *RecognitionController
	playback    *PlaybackController
	metrics     *MetricsCollector
	caps        Capabilities

	processing atomic.Bool
	started    atomic.Bool
	closed     atomic.Bool
	wg         sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	lang        language.Language
	lastSpoken  string
	notice      *Notice
	noticeTimer *time.Timer
	subs        map[int]func(Event)
	nextSub     int
}

// NewSession wires a session around the platform adapters. Either adapter
// may be nil when the platform lacks it.
func NewSession(rec Recognizer, spk Speaker, orch *Orchestrator, opts ...Option) (*Session, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if orch == nil {
		orch = NewOrchestrator(nil, nil, opts...)
	}

	id := uuid.NewString()
	s := &Session{
		id:          id,
		cfg:         cfg,
		logger:      cfg.Logger.With("component", "voice.session", "session", id),
		log:         NewLog(),
		orch:        orch,
		recognition: NewRecognitionController(rec, opts...),
		playback:    NewPlaybackController(spk, opts...),
		metrics:     NewMetricsCollector(),
		caps:        DetectCapabilities(rec, spk),
		lang:        language.MustGet(cfg.Language),
		subs:        make(map[int]func(Event)),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.recognition.SetGate(func() bool {
		return s.processing.Load() || s.playback.Active()
	})
	s.recognition.OnStateChange(func(RecognitionState) { s.emitStatus() })
	s.recognition.OnNotice(s.postNotice)
	s.recognition.OnFinal(s.onTranscript)

	s.playback.OnStateChange(s.onPlaybackState)
	s.playback.OnNotice(s.postNotice)

	s.metrics.OnUpdate(s.onMetrics)

	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Log returns the conversation log.
func (s *Session) Log() *Log { return s.log }

// Metrics returns the per-turn latency collector.
func (s *Session) Metrics() *MetricsCollector { return s.metrics }

// Capabilities returns the detected platform capabilities.
func (s *Session) Capabilities() Capabilities { return s.caps }

// Language returns the selected language.
func (s *Session) Language() language.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// Start greets the user and reports missing capabilities.
func (s *Session) Start(ctx context.Context) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}
	metrics.ActiveSessions.Inc()

	if !s.caps.RecognitionAvailable {
		s.postNotice(NewNotice(language.KeyUnsupported, s.Language().Code))
	}
	s.appendWelcome(s.Language())

	s.logger.Info("session started",
		"lang", s.Language().Code,
		"recognition", s.caps.RecognitionAvailable,
		"synthesis", s.caps.SynthesisAvailable,
	)
	return nil
}

// StartListening opens a recognition session in the selected language.
func (s *Session) StartListening() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if !s.caps.RecognitionAvailable {
		return ErrRecognitionUnavailable
	}
	return s.recognition.Start(s.Language())
}

// StopListening ends the recognition session, if any.
func (s *Session) StopListening() {
	s.recognition.Stop()
}

// StopSpeaking cancels playback, if any.
func (s *Session) StopSpeaking() {
	s.playback.Stop()
}

// Submit answers a transcript or typed question. It appends the user turn,
// orchestrates, applies any detected language switch, appends the assistant
// turn and then speaks it.
func (s *Session) Submit(ctx context.Context, transcript string) (Turn, error) {
	if s.closed.Load() {
		return Turn{}, ErrSessionClosed
	}
	text := strings.TrimSpace(transcript)
	if text == "" {
		return Turn{}, ErrEmptyText
	}
	if !s.processing.CompareAndSwap(false, true) {
		return Turn{}, ErrBusy
	}
	s.recognition.Stop()

	lang := s.Language()
	history := s.log.Recent(s.cfg.HistoryTurns)

	user, err := s.log.Append(Turn{Role: RoleUser, Text: text, Language: lang.Code})
	if err != nil {
		s.processing.Store(false)
		return Turn{}, err
	}
	s.metrics.MarkTranscript(lang.Code)
	s.emit(Event{Type: EventTurn, Turn: &user})
	s.emitStatus()

	resp := s.orch.Handle(ctx, Request{Transcript: text, Language: lang, History: history})
	s.metrics.MarkResponse(resp.Fallback)

	if resp.Switched {
		// A language chosen by the user while the answer was pending wins.
		s.mu.Lock()
		applied := s.lang.Code == lang.Code
		if applied {
			s.lang = resp.Language
		}
		s.mu.Unlock()
		if applied {
			s.logger.Info("language switched", "from", lang.Code, "to", resp.Language.Code)
		}
	}

	answer := Turn{Role: RoleAssistant, Text: resp.Text, Language: resp.Language.Code}
	if resp.Scheme != nil {
		answer.SchemeID = resp.Scheme.ID
	}
	answer, err = s.log.Append(answer)
	s.processing.Store(false)
	if err != nil {
		s.emitStatus()
		return Turn{}, fmt.Errorf("voice: append answer: %w", err)
	}
	s.emit(Event{Type: EventTurn, Turn: &answer})
	s.emitStatus()

	if !s.autoSpeak() {
		s.metrics.MarkResponseDone()
	}
	return answer, nil
}

// SetLanguage selects a new language. History is kept and a welcome turn in
// the new language is appended. Playback in the old language stops and an
// active recognition session restarts in the new locale.
func (s *Session) SetLanguage(code string) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	lang, ok := language.Lookup(code)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}

	s.mu.Lock()
	if s.lang.Code == lang.Code {
		s.mu.Unlock()
		return nil
	}
	s.lang = lang
	s.mu.Unlock()

	s.playback.Stop()
	if s.recognition.Listening() {
		if err := s.recognition.Restart(lang); err != nil {
			s.logger.Warn("restart recognition", "error", err, "lang", lang.Code)
		}
	}
	s.appendWelcome(lang)
	s.logger.Info("language changed", "lang", lang.Code)
	return nil
}

// Status returns a snapshot of the session.
func (s *Session) Status() Status {
	s.mu.Lock()
	lang := s.lang
	notice := s.notice
	s.mu.Unlock()

	return Status{
		SessionID:    s.id,
		Language:     lang,
		Capabilities: s.caps,
		Recognition:  s.recognition.State(),
		Playback:     s.playback.State(),
		Processing:   s.processing.Load(),
		Notice:       notice,
		Turns:        s.log.Len(),
	}
}

// Subscribe registers fn for session events and returns a function that
// removes it. Events may be delivered from different goroutines.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close stops all audio, waits for in-flight transcripts and rejects
// further operations.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.recognition.Stop()
	s.playback.Stop()
	s.cancel()
	s.wg.Wait()

	s.mu.Lock()
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}
	s.subs = make(map[int]func(Event))
	s.mu.Unlock()

	if s.started.Load() {
		metrics.ActiveSessions.Dec()
	}
	s.logger.Info("session closed", "turns", s.log.Len())
	return nil
}

// autoSpeak speaks the latest assistant text in the language it was written
// in, unless it was already spoken or the session is listening or
// processing. It reports whether playback was started.
func (s *Session) autoSpeak() bool {
	turn, _ := s.log.LatestAssistant()
	text := turn.Text

	s.mu.Lock()
	if text == "" || text == s.lastSpoken || s.processing.Load() || s.recognition.Listening() {
		s.mu.Unlock()
		return false
	}
	s.lastSpoken = text
	lang, ok := language.Lookup(turn.Language)
	if !ok {
		lang = s.lang
	}
	s.mu.Unlock()

	if !s.caps.SynthesisAvailable {
		return false
	}
	if err := s.playback.Speak(s.ctx, text, lang); err != nil {
		s.logger.Warn("auto speak failed", "error", err)
		return false
	}
	return true
}

func (s *Session) appendWelcome(lang language.Language) {
	welcome, err := s.log.Append(Turn{
		Role:     RoleAssistant,
		Text:     language.Welcome(lang.Code),
		Language: lang.Code,
	})
	if err != nil {
		return
	}
	s.mu.Lock()
	s.lastSpoken = welcome.Text
	s.mu.Unlock()

	s.emit(Event{Type: EventTurn, Turn: &welcome})
	s.emitStatus()
}

// onTranscript runs the final transcript off the platform goroutine so the
// adapter can keep delivering events.
func (s *Session) onTranscript(transcript string, _ language.Language) {
	if s.closed.Load() {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.Submit(s.ctx, transcript); err != nil {
			s.logger.Warn("submit transcript", "error", err)
		}
	}()
}

func (s *Session) onPlaybackState(st PlaybackState) {
	switch st {
	case PlaybackSpeaking:
		s.metrics.MarkFirstAudio()
	case PlaybackIdle, PlaybackErrored:
		s.metrics.MarkResponseDone()
	}
	s.emitStatus()
}

// onMetrics records a finished turn.
func (s *Session) onMetrics(m Metrics) {
	if m.ResponseDoneTime.IsZero() {
		return
	}
	metrics.TurnLatency.Observe(m.TotalLatency.Seconds())
	s.logger.Debug("turn latency", "lang", m.Language, "fallback", m.Fallback, "latency", m.FormatLatency())
}

func (s *Session) postNotice(n Notice) {
	s.mu.Lock()
	s.notice = &n
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}
	s.noticeTimer = time.AfterFunc(s.cfg.NoticeTTL, func() { s.clearNotice(n.ID) })
	s.mu.Unlock()

	s.emit(Event{Type: EventNotice, Notice: &n})
	s.emitStatus()
}

func (s *Session) clearNotice(id string) {
	s.mu.Lock()
	if s.notice == nil || s.notice.ID != id {
		s.mu.Unlock()
		return
	}
	s.notice = nil
	s.mu.Unlock()
	s.emitStatus()
}

func (s *Session) emitStatus() {
	st := s.Status()
	s.emit(Event{Type: EventStatus, Status: &st})
}

func (s *Session) emit(e Event) {
	s.mu.Lock()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}
