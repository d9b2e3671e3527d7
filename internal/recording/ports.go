package recording

import (
	"context"
	"errors"
)

// Microphone acquisition failures, mapped from whatever the platform reports.
var (
	ErrPermissionDenied  = errors.New("microphone permission denied")
	ErrDeviceUnavailable = errors.New("no audio input device available")
)

// AudioStream is a live microphone capture. Chunks carries raw captured bytes
// until the stream is closed; Close stops the underlying tracks and is
// idempotent.
type AudioStream interface {
	Chunks() <-chan []byte
	MimeType() string
	Close() error
}

// Microphone opens capture streams. Open fails with ErrPermissionDenied or
// ErrDeviceUnavailable when the platform denies or lacks audio input.
type Microphone interface {
	Open(ctx context.Context) (AudioStream, error)
}

// SignalKind discriminates engine signals.
type SignalKind string

const (
	SignalResult SignalKind = "result"
	SignalError  SignalKind = "error"
	SignalEnded  SignalKind = "ended"
)

// EngineErrorNoSpeech is the transient "nothing heard" code engines emit during
// pauses; the controller ignores it.
const EngineErrorNoSpeech = "no-speech"

// Signal is one engine callback: a recognition result, an error with the
// engine's error code, or an unprompted end of recognition.
type Signal struct {
	Kind    SignalKind
	Event   RecognitionEvent // valid when Kind == SignalResult
	Code    string           // valid when Kind == SignalError
	Message string
}

// Engine is a speech-recognition engine instance. Start may be called again
// after Stop (or after the engine ended on its own) to restart recognition;
// Stop on a stopped engine is a no-op. Signals stays open for the lifetime of
// the engine, across restarts.
type Engine interface {
	Start(ctx context.Context) error
	Stop() error
	Signals() <-chan Signal
}

// EventSink receives session output for the client UI.
type EventSink interface {
	StateChanged(state State, reason StateReason)
	TranscriptUpdated(text string)
	Waveform(levels []float64)
	Elapsed(seconds int)
	SessionError(code ErrorCode, detail string)
}
