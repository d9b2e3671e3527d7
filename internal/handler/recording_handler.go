package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"

	"vetvox-be/internal/pkg/logger"
	"vetvox-be/internal/pkg/serverutils"
	"vetvox-be/internal/recording"
	"vetvox-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RecordingHandler is the websocket gateway between a browser capture session
// and the server-side recording lifecycle. The browser owns the microphone and
// the speech engine; it forwards audio chunks and recognition callbacks here,
// and the session controller drives state, transcript accumulation, restart
// policy and teardown. Outbound messages mirror every state change back.
type RecordingHandler struct {
	sessions *memory.SessionRepository
	logger   logger.ILogger
}

func NewRecordingHandler(sessions *memory.SessionRepository, log logger.ILogger) *RecordingHandler {
	return &RecordingHandler{
		sessions: sessions,
		logger:   log,
	}
}

// Inbound message envelope. Exactly one payload field is set per type.
type inboundMessage struct {
	Type string `json:"type"`

	// type == "recognition"
	Event *recording.RecognitionEvent `json:"event,omitempty"`

	// type == "engine_error" / "mic_error"
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	// type == "audio"
	Data     string `json:"data,omitempty"` // base64
	MimeType string `json:"mimeType,omitempty"`
}

// gatewayStream is the audio leg of the socket: inbound "audio" messages are
// decoded into the chunks channel until the stream closes.
type gatewayStream struct {
	chunks    chan []byte
	mimeType  string
	closeOnce sync.Once
	closed    chan struct{}
}

func newGatewayStream(mimeType string) *gatewayStream {
	if mimeType == "" {
		mimeType = "audio/webm"
	}
	return &gatewayStream{
		chunks:   make(chan []byte, 32),
		mimeType: mimeType,
		closed:   make(chan struct{}),
	}
}

func (s *gatewayStream) Chunks() <-chan []byte { return s.chunks }
func (s *gatewayStream) MimeType() string      { return s.mimeType }

func (s *gatewayStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		close(s.chunks)
	})
	return nil
}

func (s *gatewayStream) push(chunk []byte) {
	select {
	case <-s.closed:
	case s.chunks <- chunk:
	default:
		// Backpressure: drop the chunk rather than stall the socket reader.
	}
}

// gatewayMicrophone hands out the stream the socket feeds. The browser reports
// capture failures before the first audio chunk ever arrives, so Open fails
// when the client already announced one.
type gatewayMicrophone struct {
	mu       sync.Mutex
	micErr   error
	mimeType string
	stream   *gatewayStream
}

func (m *gatewayMicrophone) Open(ctx context.Context) (recording.AudioStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.micErr != nil {
		return nil, m.micErr
	}
	m.stream = newGatewayStream(m.mimeType)
	return m.stream, nil
}

func (m *gatewayMicrophone) setError(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch code {
	case "permission_denied":
		m.micErr = recording.ErrPermissionDenied
	default:
		m.micErr = recording.ErrDeviceUnavailable
	}
}

func (m *gatewayMicrophone) current() *gatewayStream {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stream
}

// gatewayEngine relays the browser's recognition callbacks. Start/Stop only
// gate whether signals pass through; the channel survives restarts, matching
// the engine contract.
type gatewayEngine struct {
	mu      sync.Mutex
	running bool
	signals chan recording.Signal
}

func newGatewayEngine() *gatewayEngine {
	return &gatewayEngine{signals: make(chan recording.Signal, 32)}
}

func (e *gatewayEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()
	return nil
}

func (e *gatewayEngine) Stop() error {
	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
	return nil
}

func (e *gatewayEngine) Signals() <-chan recording.Signal { return e.signals }

func (e *gatewayEngine) push(sig recording.Signal) {
	e.mu.Lock()
	running := e.running
	e.mu.Unlock()
	if !running {
		return
	}
	select {
	case e.signals <- sig:
	default:
	}
}

// socketSink serializes session output back over the websocket. One write
// mutex; the session controller may emit from several goroutines.
type socketSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *socketSink) send(v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *socketSink) StateChanged(state recording.State, reason recording.StateReason) {
	s.send(fiber.Map{"type": "state", "state": state, "reason": reason})
}

func (s *socketSink) TranscriptUpdated(text string) {
	s.send(fiber.Map{"type": "transcript", "text": text})
}

func (s *socketSink) Waveform(levels []float64) {
	s.send(fiber.Map{"type": "waveform", "levels": levels})
}

func (s *socketSink) Elapsed(seconds int) {
	s.send(fiber.Map{"type": "elapsed", "seconds": seconds})
}

func (s *socketSink) SessionError(code recording.ErrorCode, detail string) {
	s.send(fiber.Map{"type": "error", "code": code, "detail": detail})
}

// ServeWs upgrades the connection and runs the session loop until the client
// disconnects. Disconnecting mid-recording abandons the take.
func (h *RecordingHandler) ServeWs(c *fiber.Ctx) error {
	if _, err := serverutils.UserIdFromWsRequest(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("RecordingHandler", "Recording socket opened", nil)
		h.serveSession(conn)
		h.logger.Info("RecordingHandler", "Recording socket closed", nil)
	})(c)
}

func (h *RecordingHandler) serveSession(conn *websocket.Conn) {
	mic := &gatewayMicrophone{}
	engine := newGatewayEngine()
	sink := &socketSink{conn: conn}
	controller := recording.NewSessionController(mic, engine, sink, recording.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var registeredId string
	defer func() {
		_ = controller.Reset()
		if registeredId != "" {
			h.sessions.Delete(registeredId)
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Warn("RecordingHandler", "Malformed inbound message", map[string]interface{}{"error": err.Error()})
			continue
		}

		switch msg.Type {
		case "start":
			mic.mu.Lock()
			mic.mimeType = msg.MimeType
			mic.mu.Unlock()
			if err := controller.Start(ctx); err != nil {
				// The sink already reported the failure to the client.
				continue
			}
			snap := controller.Snapshot()
			if registeredId != "" {
				h.sessions.Delete(registeredId)
			}
			registeredId = snap.Id
			h.sessions.Save(snap.Id, controller)
			sink.send(fiber.Map{"type": "session", "id": snap.Id})

		case "stop":
			take, err := controller.Stop(ctx)
			if err != nil {
				sink.SessionError(recording.ErrorCodeEngine, err.Error())
				continue
			}
			if take != nil {
				sink.send(fiber.Map{
					"type":            "take",
					"transcript":      take.Transcript,
					"mimeType":        take.MimeType,
					"durationSeconds": int(take.Duration.Seconds()),
					"audioBytes":      len(take.Audio),
				})
			}

		case "reset":
			_ = controller.Reset()

		case "recognition":
			if msg.Event != nil {
				engine.push(recording.Signal{Kind: recording.SignalResult, Event: *msg.Event})
			}

		case "engine_error":
			engine.push(recording.Signal{Kind: recording.SignalError, Code: msg.Code, Message: msg.Message})

		case "engine_ended":
			engine.push(recording.Signal{Kind: recording.SignalEnded})

		case "mic_error":
			mic.setError(msg.Code)

		case "audio":
			stream := mic.current()
			if stream == nil {
				continue
			}
			chunk, err := base64.StdEncoding.DecodeString(msg.Data)
			if err != nil {
				continue
			}
			stream.push(chunk)

		default:
			h.logger.Warn("RecordingHandler", "Unknown message type", map[string]interface{}{"type": msg.Type})
		}
	}
}

// GetStatus reports a live session's state for the dashboard.
func (h *RecordingHandler) GetStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	controller, found := h.sessions.Get(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "recording session not found"))
	}

	snap := controller.Snapshot()
	return c.JSON(serverutils.SuccessResponse("Recording session status", snap))
}

// RegisterRoutes registers the recording gateway routes.
func (h *RecordingHandler) RegisterRoutes(router fiber.Router) {
	rec := router.Group("/recordings")
	rec.Get("/ws", h.ServeWs)
	rec.Get("/:id/status", serverutils.JwtMiddleware, h.GetStatus)
}
