// Package bridge connects browsers to voice sessions over WebSocket.
//
// Each connection gets its own voice.Session. The browser acts as the speech
// platform: the session's recognizer and speaker are remote adapters that
// send commands over the socket and receive the browser's events back.
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/teslashibe/go-voxtend/pkg/language"
	"github.com/teslashibe/go-voxtend/pkg/protocol"
	"github.com/teslashibe/go-voxtend/pkg/voice"
)

const writeWait = 10 * time.Second

// Errors returned to the browser.
var (
	ErrNoSession      = errors.New("bridge: no session, send hello first")
	ErrSessionStarted = errors.New("bridge: session already started")
	ErrUnknownType    = errors.New("bridge: unknown message type")
)

// Config configures the bridge.
type Config struct {
	// Orchestrator answers transcripts. Nil answers with the fallback text.
	Orchestrator *voice.Orchestrator

	// Synthesizer produces audio on the server for browsers that ask for it
	// or that have no voices of their own.
	Synthesizer voice.Synthesizer

	// VoiceOptions are applied to every session.
	VoiceOptions []voice.Option

	Logger *slog.Logger
}

// Option is a functional option for configuring the bridge.
type Option func(*Config)

// WithOrchestrator sets the orchestrator shared by all sessions.
func WithOrchestrator(o *voice.Orchestrator) Option {
	return func(c *Config) { c.Orchestrator = o }
}

// WithSynthesizer enables server-side speech synthesis.
func WithSynthesizer(s voice.Synthesizer) Option {
	return func(c *Config) { c.Synthesizer = s }
}

// WithVoiceOptions sets options applied to each session.
func WithVoiceOptions(opts ...voice.Option) Option {
	return func(c *Config) { c.VoiceOptions = append(c.VoiceOptions, opts...) }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// Client is one connected browser.
type Client struct {
	ID        string
	Conn      *websocket.Conn
	Connected time.Time

	mu       sync.Mutex
	lastSeen time.Time

	session atomic.Pointer[voice.Session]
	rec     *remoteRecognizer
	spk     *remoteSpeaker
	unsub   func()

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	hub *Hub
}

// Send writes a message to the browser.
func (c *Client) Send(msg *protocol.Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	c.hub.messagesSent.Add(1)
	return nil
}

// Session returns the client's voice session, or nil before hello.
func (c *Client) Session() *voice.Session {
	return c.session.Load()
}

// LastSeen returns when the browser last sent a message.
func (c *Client) LastSeen() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

func (c *Client) sendError(request protocol.MessageType, err error) {
	msg, merr := protocol.NewErrorMessage(request, err)
	if merr != nil {
		return
	}
	if serr := c.Send(msg); serr != nil {
		c.hub.logger.Debug("send error reply", "client", c.ID, "error", serr)
	}
}

// Hub manages browser connections and their sessions.
type Hub struct {
	cfg    *Config
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client

	// Stats
	messagesReceived atomic.Uint64
	messagesSent     atomic.Uint64
	sessionsStarted  atomic.Uint64
}

// NewHub creates a bridge hub.
func NewHub(opts ...Option) *Hub {
	cfg := &Config{Logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Hub{
		cfg:     cfg,
		logger:  cfg.Logger.With("component", "bridge"),
		clients: make(map[string]*Client),
	}
}

// RegisterRoutes registers the voice WebSocket route on a Fiber app.
func (h *Hub) RegisterRoutes(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/voice", websocket.New(h.handleClient))
	app.Get("/ws/voice/:id", websocket.New(h.handleClient))
}

// handleClient runs one browser connection until it closes.
func (h *Hub) handleClient(conn *websocket.Conn) {
	clientID := conn.Params("id")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		ID:        clientID,
		Conn:      conn,
		Connected: time.Now(),
		lastSeen:  time.Now(),
		ctx:       ctx,
		cancel:    cancel,
		hub:       h,
	}

	h.mu.Lock()
	h.clients[clientID] = c
	count := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("browser connected", "client", clientID, "total", count)

	defer h.disconnect(c)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.logger.Debug("read error", "client", clientID, "error", err)
			return
		}

		c.mu.Lock()
		c.lastSeen = time.Now()
		c.mu.Unlock()

		h.messagesReceived.Add(1)
		h.handleMessage(c, data)
	}
}

func (h *Hub) disconnect(c *Client) {
	h.mu.Lock()
	delete(h.clients, c.ID)
	count := len(h.clients)
	h.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	if c.unsub != nil {
		c.unsub()
	}
	if sess := c.Session(); sess != nil {
		sess.Close()
	}
	h.logger.Info("browser disconnected", "client", c.ID, "total", count)
}

// handleMessage processes one message from a browser.
func (h *Hub) handleMessage(c *Client, data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		h.logger.Debug("parse error", "client", c.ID, "error", err)
		c.sendError("", err)
		return
	}

	if msg.Type == protocol.TypePing {
		h.sendPong(c, msg.Timestamp)
		return
	}
	if msg.Type == protocol.TypeHello {
		hello, err := msg.GetHelloData()
		if err == nil {
			err = h.startSession(c, hello)
		}
		if err != nil {
			c.sendError(msg.Type, err)
		}
		return
	}

	sess := c.Session()
	if sess == nil {
		c.sendError(msg.Type, ErrNoSession)
		return
	}

	switch msg.Type {
	case protocol.TypeListen:
		err = sess.StartListening()

	case protocol.TypeStopListening:
		sess.StopListening()

	case protocol.TypeStopSpeaking:
		sess.StopSpeaking()

	case protocol.TypeSetLanguage:
		var ld *protocol.LanguageData
		if ld, err = msg.GetLanguageData(); err == nil {
			err = sess.SetLanguage(ld.Code)
		}

	case protocol.TypeAsk:
		var ask *protocol.AskData
		if ask, err = msg.GetAskData(); err == nil {
			c.wg.Add(1)
			go func() {
				defer c.wg.Done()
				if _, err := sess.Submit(c.ctx, ask.Text); err != nil {
					c.sendError(protocol.TypeAsk, err)
				}
			}()
		}

	case protocol.TypeRecognition:
		var ev *protocol.RecognitionEvent
		if ev, err = msg.GetRecognitionEvent(); err == nil {
			c.rec.dispatch(ev)
		}

	case protocol.TypePlayback:
		var ev *protocol.PlaybackEvent
		if ev, err = msg.GetPlaybackEvent(); err == nil {
			c.spk.dispatch(ev)
		}

	default:
		err = ErrUnknownType
	}

	if err != nil {
		h.logger.Debug("request failed", "client", c.ID, "type", msg.Type, "error", err)
		c.sendError(msg.Type, err)
	}
}

// startSession creates the client's voice session from its hello.
func (h *Hub) startSession(c *Client, hello *protocol.HelloData) error {
	if c.Session() != nil {
		return ErrSessionStarted
	}

	lang := hello.Language
	if lang == "" {
		lang = language.Default
	}

	logger := h.cfg.Logger.With("client", c.ID)
	remoteAudio := h.cfg.Synthesizer != nil && (hello.RemoteAudio || !hello.Synthesis)

	c.rec = newRemoteRecognizer(c, hello.Recognition, logger)
	c.spk = newRemoteSpeaker(c, hello.Synthesis || remoteAudio, logger)

	opts := append([]voice.Option{}, h.cfg.VoiceOptions...)
	opts = append(opts, voice.WithLanguage(lang), voice.WithLogger(logger))
	if remoteAudio {
		opts = append(opts, voice.WithSynthesizer(h.cfg.Synthesizer))
	}

	sess, err := voice.NewSession(c.rec, c.spk, h.cfg.Orchestrator, opts...)
	if err != nil {
		return err
	}
	c.unsub = sess.Subscribe(func(e voice.Event) { h.forward(c, e) })
	c.session.Store(sess)

	if err := sess.Start(c.ctx); err != nil {
		return err
	}
	h.sessionsStarted.Add(1)
	h.logger.Info("session started",
		"client", c.ID,
		"session", sess.ID(),
		"lang", lang,
		"remote_audio", remoteAudio,
	)
	return nil
}

// forward relays a session event to the browser.
func (h *Hub) forward(c *Client, e voice.Event) {
	var (
		msg *protocol.Message
		err error
	)
	switch e.Type {
	case voice.EventStatus:
		msg, err = protocol.NewMessage(protocol.TypeStatus, e.Status)
	case voice.EventTurn:
		msg, err = protocol.NewMessage(protocol.TypeTurn, e.Turn)
	case voice.EventNotice:
		msg, err = protocol.NewMessage(protocol.TypeNotice, e.Notice)
	default:
		return
	}
	if err != nil {
		h.logger.Warn("encode event", "error", err)
		return
	}
	if err := c.Send(msg); err != nil {
		h.logger.Debug("forward event", "client", c.ID, "error", err)
	}
}

func (h *Hub) sendPong(c *Client, pingTS int64) {
	msg, err := protocol.NewPongMessage("", pingTS, time.Now().UnixMilli())
	if err != nil {
		return
	}
	if err := c.Send(msg); err != nil {
		h.logger.Debug("send pong", "client", c.ID, "error", err)
	}
}

// GetClient returns a client by ID.
func (h *Hub) GetClient(id string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[id]
}

// ClientCount returns the number of connected browsers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FindSession returns the session with the given session ID.
func (h *Hub) FindSession(sessionID string) (*voice.Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if sess := c.Session(); sess != nil && sess.ID() == sessionID {
			return sess, true
		}
	}
	return nil, false
}

// SessionInfo summarizes a connected session.
type SessionInfo struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Language  string    `json:"language"`
	Turns     int       `json:"turns"`
	Connected time.Time `json:"connected"`
	LastSeen  time.Time `json:"last_seen"`
}

// Sessions returns info about all started sessions.
func (h *Hub) Sessions() []SessionInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(h.clients))
	for _, c := range h.clients {
		sess := c.Session()
		if sess == nil {
			continue
		}
		infos = append(infos, SessionInfo{
			ID:        sess.ID(),
			ClientID:  c.ID,
			Language:  sess.Language().Code,
			Turns:     sess.Log().Len(),
			Connected: c.Connected,
			LastSeen:  c.LastSeen(),
		})
	}
	return infos
}

// Stats contains hub statistics
type Stats struct {
	ClientCount      int    `json:"client_count"`
	MessagesReceived uint64 `json:"messages_received"`
	MessagesSent     uint64 `json:"messages_sent"`
	SessionsStarted  uint64 `json:"sessions_started"`
}

// GetStats returns hub statistics
func (h *Hub) GetStats() Stats {
	return Stats{
		ClientCount:      h.ClientCount(),
		MessagesReceived: h.messagesReceived.Load(),
		MessagesSent:     h.messagesSent.Load(),
		SessionsStarted:  h.sessionsStarted.Load(),
	}
}

// RegisterAPIRoutes registers session inspection routes.
func (h *Hub) RegisterAPIRoutes(api fiber.Router) {
	sessions := api.Group("/sessions")

	sessions.Get("/", func(c *fiber.Ctx) error {
		infos := h.Sessions()
		return c.JSON(fiber.Map{
			"sessions": infos,
			"count":    len(infos),
		})
	})

	sessions.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(h.GetStats())
	})

	sessions.Get("/:id", func(c *fiber.Ctx) error {
		sess, ok := h.FindSession(c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		}
		return c.JSON(sess.Status())
	})

	sessions.Get("/:id/conversation", func(c *fiber.Ctx) error {
		sess, ok := h.FindSession(c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		}
		return c.JSON(fiber.Map{
			"session_id": sess.ID(),
			"turns":      sess.Log().All(),
		})
	})
}
