package recording

import "time"

// State models the recording lifecycle: Idle -> Recording -> (Processing) -> Idle.
type State string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateProcessing State = "processing"
)

// StateReason gives a structured reason for a state transition.
type StateReason string

const (
	ReasonStarted          StateReason = "recording_started"
	ReasonStopped          StateReason = "recording_stopped"
	ReasonDiscarded        StateReason = "recording_discarded"
	ReasonProcessing       StateReason = "processing"
	ReasonEngineRestarted  StateReason = "engine_restarted"
	ReasonEngineFailed     StateReason = "engine_failed"
	ReasonMicrophoneFailed StateReason = "microphone_failed"
)

// ErrorCode identifies recording-session errors surfaced to the client.
type ErrorCode string

const (
	ErrorCodePermissionDenied  ErrorCode = "permission_denied"
	ErrorCodeDeviceUnavailable ErrorCode = "device_unavailable"
	ErrorCodeEngine            ErrorCode = "engine"
	ErrorCodeSessionActive     ErrorCode = "session_active"
)

// Segment is one recognition alternative's current-best text.
type Segment struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"isFinal"`
}

// RecognitionEvent carries the segments of one engine callback, starting at
// ResultIndex within the engine's running result list.
type RecognitionEvent struct {
	ResultIndex int       `json:"resultIndex"`
	Segments    []Segment `json:"segments"`
}

// Take is the finalized artifact of one recording: whatever audio bytes were
// captured plus the preserved transcript.
type Take struct {
	Audio      []byte
	MimeType   string
	Transcript string
	Duration   time.Duration
}

// Snapshot is a point-in-time view of a session, safe to hand to other
// components (status endpoint, session registry).
type Snapshot struct {
	Id         string    `json:"id"`
	State      State     `json:"state"`
	Transcript string    `json:"transcript"`
	Elapsed    int       `json:"elapsedSeconds"`
	StartedAt  time.Time `json:"startedAt"`
}
