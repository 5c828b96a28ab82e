package bridge

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-voxtend/pkg/inference"
	"github.com/teslashibe/go-voxtend/pkg/language"
	"github.com/teslashibe/go-voxtend/pkg/protocol"
	"github.com/teslashibe/go-voxtend/pkg/scheme"
	"github.com/teslashibe/go-voxtend/pkg/tts"
	"github.com/teslashibe/go-voxtend/pkg/voice"
)

func startServer(t *testing.T, hub *Hub, port int) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	hub.RegisterRoutes(app)
	hub.RegisterAPIRoutes(app.Group("/api"))

	go app.Listen(fmt.Sprintf(":%d", port))
	t.Cleanup(func() { _ = app.Shutdown() })
	time.Sleep(100 * time.Millisecond)
	return app
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func send(t *testing.T, ws *websocket.Conn, typ protocol.MessageType, data interface{}) {
	t.Helper()
	msg, err := protocol.NewMessage(typ, data)
	require.NoError(t, err)
	b, err := msg.Bytes()
	require.NoError(t, err)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, b))
}

// readUntil reads messages until one of type typ arrives.
func readUntil(t *testing.T, ws *websocket.Conn, typ protocol.MessageType) *protocol.Message {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := ws.ReadMessage()
		require.NoError(t, err, "waiting for %s", typ)
		msg, err := protocol.ParseMessage(data)
		require.NoError(t, err)
		if msg.Type == typ {
			return msg
		}
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.ClientCount())
	assert.Empty(t, hub.Sessions())
	assert.Nil(t, hub.GetClient("missing"))

	_, ok := hub.FindSession("missing")
	assert.False(t, ok)
}

func TestVoiceRoundTrip(t *testing.T) {
	orch := voice.NewOrchestrator(inference.NewMock("The pension scheme pays ₹3,000 a month."), scheme.Default())
	hub := NewHub(WithOrchestrator(orch))
	app := startServer(t, hub, 18180)

	ws := dial(t, "ws://localhost:18180/ws/voice/browser-1")

	send(t, ws, protocol.TypeHello, protocol.HelloData{Language: "en", Recognition: true, Synthesis: true})

	var welcome voice.Turn
	require.NoError(t, readUntil(t, ws, protocol.TypeTurn).ParseData(&welcome))
	assert.Equal(t, language.Welcome("en"), welcome.Text)

	send(t, ws, protocol.TypeListen, nil)
	cmd, err := readUntil(t, ws, protocol.TypeRecognize).GetRecognizeCommand()
	require.NoError(t, err)
	assert.Equal(t, "en-IN", cmd.Locale)
	assert.False(t, cmd.InterimResults)

	send(t, ws, protocol.TypeRecognition, protocol.RecognitionEvent{ID: cmd.ID, Event: protocol.EventStart})
	send(t, ws, protocol.TypeRecognition, protocol.RecognitionEvent{
		ID: cmd.ID, Event: protocol.EventResult, Transcript: "pension", Final: true,
	})

	var user, answer voice.Turn
	require.NoError(t, readUntil(t, ws, protocol.TypeTurn).ParseData(&user))
	require.NoError(t, readUntil(t, ws, protocol.TypeTurn).ParseData(&answer))
	assert.Equal(t, voice.RoleUser, user.Role)
	assert.Equal(t, "pension", user.Text)
	assert.Equal(t, "pension-scheme", answer.SchemeID)

	speak, err := readUntil(t, ws, protocol.TypeSpeak).GetSpeakCommand()
	require.NoError(t, err)
	assert.Equal(t, answer.Text, speak.Text)
	assert.Empty(t, speak.Data, "browser has its own voices")

	require.Equal(t, 1, hub.ClientCount())
	sessions := hub.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "browser-1", sessions[0].ClientID)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/sessions/"+sessions[0].ID+"/conversation", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var conv struct {
		Turns []voice.Turn `json:"turns"`
	}
	require.NoError(t, json.Unmarshal(body, &conv))
	assert.Len(t, conv.Turns, 3)

	ws.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestRemoteAudio(t *testing.T) {
	orch := voice.NewOrchestrator(inference.NewMock("answer"), scheme.Default())
	hub := NewHub(WithOrchestrator(orch), WithSynthesizer(tts.NewMock()))
	startServer(t, hub, 18181)

	ws := dial(t, "ws://localhost:18181/ws/voice")
	send(t, ws, protocol.TypeHello, protocol.HelloData{Language: "hi", Recognition: false, Synthesis: false})

	notice := readUntil(t, ws, protocol.TypeNotice)
	var n voice.Notice
	require.NoError(t, notice.ParseData(&n))
	assert.Equal(t, language.KeyUnsupported, n.Key)

	send(t, ws, protocol.TypeAsk, protocol.AskData{Text: "pm kisan"})

	speak, err := readUntil(t, ws, protocol.TypeSpeak).GetSpeakCommand()
	require.NoError(t, err)
	audio, err := speak.DecodeAudio()
	require.NoError(t, err)
	assert.Equal(t, []byte("answer"), audio)
	assert.Equal(t, "hi-IN", speak.Locale)
}

func TestRequestsBeforeHello(t *testing.T) {
	hub := NewHub()
	startServer(t, hub, 18182)

	ws := dial(t, "ws://localhost:18182/ws/voice")
	send(t, ws, protocol.TypeListen, nil)

	data, err := readUntil(t, ws, protocol.TypeError).GetErrorData()
	require.NoError(t, err)
	assert.Equal(t, protocol.TypeListen, data.Request)
	assert.Equal(t, ErrNoSession.Error(), data.Message)
}

func TestBusyListenRejected(t *testing.T) {
	orch := voice.NewOrchestrator(inference.NewMock("answer"), scheme.Default())
	hub := NewHub(WithOrchestrator(orch))
	startServer(t, hub, 18183)

	ws := dial(t, "ws://localhost:18183/ws/voice")
	send(t, ws, protocol.TypeHello, protocol.HelloData{Recognition: true, Synthesis: true})
	readUntil(t, ws, protocol.TypeTurn)

	send(t, ws, protocol.TypeAsk, protocol.AskData{Text: "housing"})
	speak, err := readUntil(t, ws, protocol.TypeSpeak).GetSpeakCommand()
	require.NoError(t, err)
	send(t, ws, protocol.TypePlayback, protocol.PlaybackEvent{ID: speak.ID, Event: protocol.EventStart})

	send(t, ws, protocol.TypeListen, nil)
	data, err := readUntil(t, ws, protocol.TypeError).GetErrorData()
	require.NoError(t, err)
	assert.Equal(t, voice.ErrBusy.Error(), data.Message)

	send(t, ws, protocol.TypeStopSpeaking, nil)
	cancel, err := readUntil(t, ws, protocol.TypeCancelSpeech).GetCancelCommand()
	require.NoError(t, err)
	assert.Equal(t, speak.ID, cancel.ID)
}

func TestPingPong(t *testing.T) {
	hub := NewHub()
	startServer(t, hub, 18184)

	ws := dial(t, "ws://localhost:18184/ws/voice")
	send(t, ws, protocol.TypePing, nil)

	readUntil(t, ws, protocol.TypePong)
}

func TestAPISessionNotFound(t *testing.T) {
	hub := NewHub()
	app := fiber.New()
	hub.RegisterAPIRoutes(app.Group("/api"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/sessions/nope/conversation", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/sessions/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
