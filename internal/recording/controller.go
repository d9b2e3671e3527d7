package recording

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionActive is returned when Start is called while a session is
	// already open. One session owns the microphone and engine at a time.
	ErrSessionActive = errors.New("a recording session is already active")
)

// Config controls session behavior.
type Config struct {
	// RestartDelay is how long to wait before restarting the recognition
	// engine after a non-transient error.
	RestartDelay time.Duration
	// WaveformBars is the number of level buckets pushed per audio chunk.
	WaveformBars int
	// TickInterval is the elapsed-counter resolution.
	TickInterval time.Duration
}

func (c *Config) applyDefaults() {
	if c.RestartDelay <= 0 {
		c.RestartDelay = time.Second
	}
	if c.WaveformBars <= 0 {
		c.WaveformBars = 48
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
}

type session struct {
	id        string
	cancel    context.CancelFunc
	stream    AudioStream
	engine    Engine
	startedAt time.Time

	transcript *Accumulator
	audio      bytes.Buffer

	elapsed atomic.Int64
	fatal   atomic.Bool
	done    chan struct{}

	textMu sync.Mutex
	text   string

	releaseOnce sync.Once
}

func (s *session) setText(text string) {
	s.textMu.Lock()
	s.text = text
	s.textMu.Unlock()
}

func (s *session) getText() string {
	s.textMu.Lock()
	defer s.textMu.Unlock()
	return s.text
}

// release tears down everything the session owns. Safe to call from any exit
// path, any number of times.
func (s *session) release() {
	s.releaseOnce.Do(func() {
		_ = s.engine.Stop()
		_ = s.stream.Close()
		s.cancel()
	})
}

// SessionController owns the microphone stream, the audio-level tap, and the
// recognition engine for at most one recording session at a time. Whichever
// operation opens a resource guarantees its release, including on error paths.
type SessionController struct {
	mic    Microphone
	engine Engine
	sink   EventSink
	cfg    Config

	mu       sync.Mutex
	current  *session
	lastTake *Take
}

func NewSessionController(mic Microphone, engine Engine, sink EventSink, cfg Config) *SessionController {
	cfg.applyDefaults()
	return &SessionController{
		mic:    mic,
		engine: engine,
		sink:   sink,
		cfg:    cfg,
	}
}

// Start opens the microphone, starts the recognition engine and the elapsed
// counter, clears any previous transcript, and transitions to Recording.
func (c *SessionController) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.current != nil {
		c.mu.Unlock()
		c.sink.SessionError(ErrorCodeSessionActive, ErrSessionActive.Error())
		return ErrSessionActive
	}
	c.mu.Unlock()

	sessionCtx, cancel := context.WithCancel(ctx)

	stream, err := c.mic.Open(sessionCtx)
	if err != nil {
		cancel()
		switch {
		case errors.Is(err, ErrPermissionDenied):
			c.sink.SessionError(ErrorCodePermissionDenied, err.Error())
		case errors.Is(err, ErrDeviceUnavailable):
			c.sink.SessionError(ErrorCodeDeviceUnavailable, err.Error())
		default:
			c.sink.SessionError(ErrorCodeDeviceUnavailable, err.Error())
		}
		return err
	}

	if err := c.engine.Start(sessionCtx); err != nil {
		_ = stream.Close()
		cancel()
		c.sink.SessionError(ErrorCodeEngine, err.Error())
		return err
	}

	s := &session{
		id:         uuid.NewString(),
		cancel:     cancel,
		stream:     stream,
		engine:     c.engine,
		startedAt:  time.Now(),
		transcript: NewAccumulator(),
		done:       make(chan struct{}),
	}

	c.mu.Lock()
	c.current = s
	c.lastTake = nil
	c.mu.Unlock()

	c.sink.TranscriptUpdated("")
	c.sink.StateChanged(StateRecording, ReasonStarted)

	go func() {
		c.run(sessionCtx, s)
		close(s.done)
		if s.fatal.Load() {
			c.finish(s, ReasonEngineFailed)
		}
	}()

	return nil
}

// Stop finalizes the session: the engine and stream are torn down, captured
// audio becomes a Take, and the transcript is preserved for review. Calling
// Stop with no open session returns the last take and has no side effects.
func (c *SessionController) Stop(ctx context.Context) (*Take, error) {
	c.mu.Lock()
	s := c.current
	if s == nil {
		take := c.lastTake
		c.mu.Unlock()
		return take, nil
	}
	c.mu.Unlock()

	c.sink.StateChanged(StateProcessing, ReasonProcessing)
	s.release()
	<-s.done

	take := &Take{
		Audio:      s.audio.Bytes(),
		MimeType:   s.stream.MimeType(),
		Transcript: s.transcript.Text(),
		Duration:   time.Duration(s.elapsed.Load()) * time.Second,
	}

	c.mu.Lock()
	if c.current == s {
		c.current = nil
	}
	c.lastTake = take
	c.mu.Unlock()

	c.sink.StateChanged(StateIdle, ReasonStopped)
	return take, nil
}

// Reset abandons the take: same teardown as Stop, but the transcript is
// cleared and captured audio discarded. A no-op when nothing is recording.
func (c *SessionController) Reset() error {
	c.mu.Lock()
	s := c.current
	c.current = nil
	c.lastTake = nil
	c.mu.Unlock()

	if s == nil {
		return nil
	}

	s.release()
	<-s.done

	s.transcript.Reset()
	c.sink.TranscriptUpdated("")
	c.sink.StateChanged(StateIdle, ReasonDiscarded)
	return nil
}

// Transcript returns the live transcript while recording, or the preserved
// transcript of the last stopped take.
func (c *SessionController) Transcript() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		return c.current.getText()
	}
	if c.lastTake != nil {
		return c.lastTake.Transcript
	}
	return ""
}

// Snapshot reports the session for the status endpoint and registry.
func (c *SessionController) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		snap := Snapshot{State: StateIdle}
		if c.lastTake != nil {
			snap.Transcript = c.lastTake.Transcript
		}
		return snap
	}
	s := c.current
	return Snapshot{
		Id:         s.id,
		State:      StateRecording,
		Transcript: s.getText(),
		Elapsed:    int(s.elapsed.Load()),
		StartedAt:  s.startedAt,
	}
}

// run is the session's single thread of control: recognition signals, audio
// chunks and ticker fire strictly one at a time, so the accumulator needs no
// lock. Returns when the session context is cancelled or the engine fails
// beyond recovery.
func (c *SessionController) run(ctx context.Context, s *session) {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	chunks := s.stream.Chunks()
	signals := s.engine.Signals()

	for {
		select {
		case <-ctx.Done():
			return

		case sig, ok := <-signals:
			if !ok {
				return
			}
			switch sig.Kind {
			case SignalResult:
				s.transcript.Apply(sig.Event)
				text := s.transcript.Text()
				s.setText(text)
				c.sink.TranscriptUpdated(text)

			case SignalError:
				if sig.Code == EngineErrorNoSpeech {
					// Common during pauses; keep listening.
					continue
				}
				if !c.restartEngine(ctx, s) {
					return
				}

			case SignalEnded:
				// Platform engines stop after a silence timeout; bring the
				// engine back while the session is still recording.
				if !c.restartEngine(ctx, s) {
					return
				}
			}

		case chunk, ok := <-chunks:
			if !ok {
				chunks = nil
				continue
			}
			s.audio.Write(chunk)
			c.sink.Waveform(WaveformBuckets(chunk, c.cfg.WaveformBars))

		case <-ticker.C:
			c.sink.Elapsed(int(s.elapsed.Add(1)))
		}
	}
}

// restartEngine performs the one automatic recovery attempt. Reports false
// when the session must end.
func (c *SessionController) restartEngine(ctx context.Context, s *session) bool {
	timer := time.NewTimer(c.cfg.RestartDelay)
	select {
	case <-timer.C:
	case <-ctx.Done():
		timer.Stop()
		return false
	}

	_ = s.engine.Stop()
	if err := s.engine.Start(ctx); err != nil {
		c.sink.SessionError(ErrorCodeEngine, err.Error())
		s.fatal.Store(true)
		return false
	}
	c.sink.StateChanged(StateRecording, ReasonEngineRestarted)
	return true
}

// finish tears down a session that died on its own (engine restart failure).
func (c *SessionController) finish(s *session, reason StateReason) {
	s.release()

	c.mu.Lock()
	if c.current == s {
		c.current = nil
	}
	c.mu.Unlock()

	c.sink.StateChanged(StateIdle, reason)
}
