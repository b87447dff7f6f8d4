package domain

import "errors"

// RecorderState models the voice-feedback recording lifecycle.
type RecorderState string

const (
	RecorderStateIdle      RecorderState = "idle"
	RecorderStateRecording RecorderState = "recording"
	RecorderStatePaused    RecorderState = "paused"
	RecorderStateStopped   RecorderState = "stopped"
)

// StateReason provides a structured reason for state transitions.
type StateReason string

const (
	ReasonMicReady           StateReason = "mic_ready"
	ReasonRecordingStarted   StateReason = "recording_started"
	ReasonRecordingRestarted StateReason = "recording_restarted"
	ReasonRecordingPaused    StateReason = "recording_paused"
	ReasonRecordingResumed   StateReason = "recording_resumed"
	ReasonRecordingStopped   StateReason = "recording_stopped"
	ReasonMaxDurationReached StateReason = "max_duration_reached"
	ReasonRecordingDeleted   StateReason = "recording_deleted"
	ReasonEncodingFailed     StateReason = "encoding_failed"
)

// ErrorCode identifies backend errors surfaced to the UI.
type ErrorCode string

const (
	ErrorCodeStartup          ErrorCode = "startup"
	ErrorCodePermissionDenied ErrorCode = "permission_denied"
	ErrorCodeDeviceUnavail    ErrorCode = "device_unavailable"
	ErrorCodeEncoding         ErrorCode = "encoding"
	ErrorCodeRelease          ErrorCode = "release"
)

// Sentinel errors for microphone acquisition and encoding failures.
// Capture adapters wrap their platform errors with these so callers can
// classify with errors.Is.
var (
	ErrPermissionDenied  = errors.New("microphone access denied")
	ErrDeviceUnavailable = errors.New("microphone unavailable")
	ErrEncodingFailure   = errors.New("audio encoding failed")
)

// Clip is one finished, assembled recording.
type Clip struct {
	ID              string
	MimeType        string
	Data            []byte
	DurationSeconds float64
}

// ClipInfo is the clip metadata exposed to the UI; the bytes stay behind
// the preview URL.
type ClipInfo struct {
	ID              string  `json:"id"`
	MimeType        string  `json:"mimeType"`
	SizeBytes       int     `json:"sizeBytes"`
	DurationSeconds float64 `json:"durationSeconds"`
	PreviewURL      string  `json:"previewUrl"`
}

// Status summarizes the current recorder state for the UI.
type Status struct {
	State              RecorderState `json:"state"`
	IsRecording        bool          `json:"isRecording"`
	IsPaused           bool          `json:"isPaused"`
	ElapsedSeconds     float64       `json:"elapsedSeconds"`
	MinDurationSeconds float64       `json:"minDurationSeconds"`
	MaxDurationSeconds float64       `json:"maxDurationSeconds"`
	Clip               *ClipInfo     `json:"clip,omitempty"`
	Message            string        `json:"message,omitempty"`
}
