package ports

import (
	"context"
	"time"

	"voicenote/internal/domain"
)

// CaptureConfig describes how the microphone should be captured and encoded.
type CaptureConfig struct {
	SampleRate    int
	Channels      int
	InputFormat   string
	InputDevice   string
	MimeType      string
	ChunkInterval time.Duration
}

// CaptureSession is a live, exclusive microphone capture session.
//
// Chunks delivers encoded audio fragments in emission order and is closed
// once the encoder has flushed its final fragment after Stop. Err reports
// a mid-stream encoder failure, if any, once Chunks is closed.
type CaptureSession interface {
	Chunks() <-chan []byte
	Pause() error
	Resume() error
	Stop() error
	Release() error
	Err() error
}

// MediaCapture acquires microphone capture sessions. Acquisition failures
// wrap domain.ErrPermissionDenied or domain.ErrDeviceUnavailable and leave
// no resources held.
type MediaCapture interface {
	Acquire(ctx context.Context, cfg CaptureConfig) (CaptureSession, error)
}

// PreviewPublisher derives transient, revocable playback URLs for finished
// clips. Revoke is idempotent.
type PreviewPublisher interface {
	Publish(clip *domain.Clip) (string, error)
	Revoke(url string)
}

// EventSink emits recorder state and events to the UI.
type EventSink interface {
	RecorderStateChanged(state domain.RecorderState, reason domain.StateReason)
	ElapsedTick(seconds float64)
	ClipReady(info domain.ClipInfo)
	RecorderError(code domain.ErrorCode, detail string)
}
