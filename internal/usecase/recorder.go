package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"voicenote/internal/domain"
	"voicenote/internal/ports"
)

var ErrNotRecording = errors.New("recorder is not recording")

// Config controls capture, timing limits and tick resolution.
type Config struct {
	Capture      ports.CaptureConfig
	MaxDuration  time.Duration
	MinDuration  time.Duration
	TickInterval time.Duration
}

// RecorderController orchestrates the Idle/Recording/Paused/Stopped
// lifecycle of voice-feedback capture. It owns the microphone session,
// the chunk collector and the duration clock of the current attempt, and
// the finished clip plus its preview URL after a stop.
type RecorderController struct {
	capture   ports.MediaCapture
	preview   ports.PreviewPublisher
	events    ports.EventSink
	finalizer clipFinalizer
	cfg       Config
	now       func() time.Time

	mu          sync.Mutex
	state       domain.RecorderState
	current     *recordingSession
	clip        *domain.Clip
	previewURL  string
	lastElapsed float64
}

func NewRecorderController(
	capture ports.MediaCapture,
	preview ports.PreviewPublisher,
	events ports.EventSink,
	cfg Config,
) *RecorderController {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 250 * time.Millisecond
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = 2 * time.Minute
	}
	return &RecorderController{
		capture:   capture,
		preview:   preview,
		events:    events,
		finalizer: newClipFinalizer(preview, events),
		cfg:       cfg,
		now:       time.Now,
		state:     domain.RecorderStateIdle,
	}
}

// Start acquires the microphone and begins a new recording attempt. Any
// previous attempt's device handle is fully released before re-acquiring.
// On acquisition failure no state changes and no clock is started.
func (c *RecorderController) Start(ctx context.Context) error {
	c.mu.Lock()
	previous := c.current
	c.current = nil
	c.mu.Unlock()

	if previous != nil {
		c.teardown(previous)
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	captureSession, err := c.capture.Acquire(sessionCtx, c.cfg.Capture)
	if err != nil {
		cancel()
		if previous != nil {
			c.settleAfterFailedRestart()
		}
		return err
	}

	session := &recordingSession{
		cancel:    cancel,
		capture:   captureSession,
		collector: newChunkCollector(),
		pumpDone:  make(chan struct{}),
		startedAt: c.now(),
	}
	session.clock = newDurationClock(
		c.cfg.TickInterval,
		c.cfg.MaxDuration,
		func() time.Duration { return session.elapsed(c.now()) },
		c.events.ElapsedTick,
		func() { c.autoStop(session) },
	)

	c.mu.Lock()
	c.current = session
	c.state = domain.RecorderStateRecording
	c.mu.Unlock()

	go pumpChunks(captureSession, session.collector, session.pumpDone, func() { c.captureDrained(session) })
	go session.clock.run()

	reason := domain.ReasonRecordingStarted
	if previous != nil {
		reason = domain.ReasonRecordingRestarted
	}
	c.events.RecorderStateChanged(domain.RecorderStateRecording, reason)
	return nil
}

// Pause freezes the encoder and the visible duration. Only legal while
// recording.
func (c *RecorderController) Pause() error {
	c.mu.Lock()
	if c.state != domain.RecorderStateRecording || c.current == nil {
		c.mu.Unlock()
		return ErrNotRecording
	}
	session := c.current
	c.state = domain.RecorderStatePaused
	c.mu.Unlock()

	session.markPaused(c.now())
	session.collector.setAccepting(false)
	if err := session.capture.Pause(); err != nil {
		c.events.RecorderError(domain.ErrorCodeEncoding, "failed to pause encoder: "+err.Error())
	}
	c.events.RecorderStateChanged(domain.RecorderStatePaused, domain.ReasonRecordingPaused)
	return nil
}

// Resume continues a paused recording, folding the pause gap into the
// paused-time accumulator. A no-op outside the Paused state.
func (c *RecorderController) Resume() error {
	c.mu.Lock()
	if c.state != domain.RecorderStatePaused || c.current == nil {
		c.mu.Unlock()
		return nil
	}
	session := c.current
	c.state = domain.RecorderStateRecording
	c.mu.Unlock()

	session.markResumed(c.now())
	session.collector.setAccepting(true)
	if err := session.capture.Resume(); err != nil {
		c.events.RecorderError(domain.ErrorCodeEncoding, "failed to resume encoder: "+err.Error())
	}
	c.events.RecorderStateChanged(domain.RecorderStateRecording, domain.ReasonRecordingResumed)
	return nil
}

// Stop finalizes the encoder, waits for its terminal chunk, releases the
// microphone and assembles the finished clip. A no-op when nothing is
// recording, so a manual stop racing the auto-stop resolves first-wins.
func (c *RecorderController) Stop() error {
	session, wasPaused, ok := c.takeForStop(nil)
	if !ok {
		return nil
	}
	return c.finishRecording(session, wasPaused, domain.ReasonRecordingStopped)
}

// autoStop is issued by the duration clock at the maximum duration. It only
// wins if the session it was armed for is still the current one.
func (c *RecorderController) autoStop(session *recordingSession) {
	current, wasPaused, ok := c.takeForStop(session)
	if !ok {
		return
	}
	_ = c.finishRecording(current, wasPaused, domain.ReasonMaxDurationReached)
}

// takeForStop atomically claims the active session for a stop transition.
// If expected is non-nil the claim only succeeds for that exact session.
func (c *RecorderController) takeForStop(expected *recordingSession) (session *recordingSession, wasPaused bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || (c.state != domain.RecorderStateRecording && c.state != domain.RecorderStatePaused) {
		return nil, false, false
	}
	if expected != nil && c.current != expected {
		return nil, false, false
	}
	session = c.current
	wasPaused = c.state == domain.RecorderStatePaused
	c.current = nil
	c.state = domain.RecorderStateStopped
	return session, wasPaused, true
}

func (c *RecorderController) finishRecording(session *recordingSession, wasPaused bool, reason domain.StateReason) error {
	session.clock.stop()
	if wasPaused {
		session.markResumed(c.now())
	}

	elapsed := session.elapsed(c.now()).Seconds()
	if max := c.cfg.MaxDuration.Seconds(); elapsed > max {
		elapsed = max
	}

	if err := session.capture.Stop(); err != nil {
		c.events.RecorderError(domain.ErrorCodeEncoding, "failed to finalize encoder cleanly: "+err.Error())
	}
	<-session.pumpDone
	session.collector.seal()

	if err := session.release(); err != nil {
		c.events.RecorderError(domain.ErrorCodeRelease, "failed to release microphone: "+err.Error())
	}
	session.cancel()

	c.mu.Lock()
	c.lastElapsed = elapsed
	c.mu.Unlock()

	if encErr := session.capture.Err(); encErr != nil {
		c.events.RecorderError(domain.ErrorCodeEncoding, encErr.Error())
		c.events.RecorderStateChanged(domain.RecorderStateStopped, domain.ReasonEncodingFailed)
		return encErr
	}

	clip, info, err := c.finalizer.Finalize(session.collector.snapshot(), c.cfg.Capture.MimeType, elapsed)
	if err != nil {
		c.events.RecorderStateChanged(domain.RecorderStateStopped, domain.ReasonEncodingFailed)
		return err
	}

	c.mu.Lock()
	replaced := c.previewURL
	c.clip = clip
	c.previewURL = info.PreviewURL
	c.mu.Unlock()

	// The previous clip's preview is dead the moment a new clip replaces it.
	if replaced != "" {
		c.preview.Revoke(replaced)
	}

	c.events.ClipReady(info)
	c.events.RecorderStateChanged(domain.RecorderStateStopped, reason)
	return nil
}

// captureDrained runs after the chunk stream closes. It turns an encoder
// failure during recording into a best-effort stop-and-release; on a clean
// stop the session has already been claimed and this is a no-op.
func (c *RecorderController) captureDrained(session *recordingSession) {
	if session.capture.Err() == nil {
		return
	}
	current, _, ok := c.takeForStop(session)
	if !ok {
		return
	}

	current.clock.stop()
	current.collector.seal()
	if err := current.release(); err != nil {
		c.events.RecorderError(domain.ErrorCodeRelease, "failed to release microphone: "+err.Error())
	}
	current.cancel()

	c.events.RecorderError(domain.ErrorCodeEncoding, current.capture.Err().Error())
	c.events.RecorderStateChanged(domain.RecorderStateStopped, domain.ReasonEncodingFailed)
}

// Delete discards the finished clip, revokes its preview URL and returns
// to Idle. Safe from every state: an active attempt is aborted first.
func (c *RecorderController) Delete() {
	c.mu.Lock()
	session := c.current
	c.current = nil
	revoked := c.previewURL
	c.previewURL = ""
	c.clip = nil
	c.lastElapsed = 0
	c.state = domain.RecorderStateIdle
	c.mu.Unlock()

	if session != nil {
		c.teardown(session)
	}
	if revoked != "" {
		c.preview.Revoke(revoked)
	}
	c.events.RecorderStateChanged(domain.RecorderStateIdle, domain.ReasonRecordingDeleted)
}

// Close releases the device and preview resources without emitting UI
// events. Intended for application shutdown.
func (c *RecorderController) Close() {
	c.mu.Lock()
	session := c.current
	c.current = nil
	revoked := c.previewURL
	c.previewURL = ""
	c.clip = nil
	c.state = domain.RecorderStateIdle
	c.mu.Unlock()

	if session != nil {
		c.teardown(session)
	}
	if revoked != "" {
		c.preview.Revoke(revoked)
	}
}

// Status returns a read-only snapshot of the recorder.
func (c *RecorderController) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := domain.Status{
		State:              c.state,
		IsRecording:        c.state == domain.RecorderStateRecording,
		IsPaused:           c.state == domain.RecorderStatePaused,
		MinDurationSeconds: c.cfg.MinDuration.Seconds(),
		MaxDurationSeconds: c.cfg.MaxDuration.Seconds(),
	}

	switch {
	case c.current != nil:
		elapsed := c.current.elapsed(c.now()).Seconds()
		if max := c.cfg.MaxDuration.Seconds(); elapsed > max {
			elapsed = max
		}
		status.ElapsedSeconds = elapsed
	default:
		status.ElapsedSeconds = c.lastElapsed
	}

	if c.clip != nil && c.previewURL != "" {
		status.Clip = &domain.ClipInfo{
			ID:              c.clip.ID,
			MimeType:        c.clip.MimeType,
			SizeBytes:       len(c.clip.Data),
			DurationSeconds: c.clip.DurationSeconds,
			PreviewURL:      c.previewURL,
		}
	}
	return status
}

// Clip returns the finished clip metadata, if a clip is held.
func (c *RecorderController) Clip() (domain.ClipInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clip == nil || c.previewURL == "" {
		return domain.ClipInfo{}, false
	}
	return domain.ClipInfo{
		ID:              c.clip.ID,
		MimeType:        c.clip.MimeType,
		SizeBytes:       len(c.clip.Data),
		DurationSeconds: c.clip.DurationSeconds,
		PreviewURL:      c.previewURL,
	}, true
}

// teardown aborts a session without assembly: stop the clock, kill the
// device handle, drain the pump. Used on restart, delete and shutdown.
func (c *RecorderController) teardown(session *recordingSession) {
	session.clock.stop()
	if err := session.release(); err != nil {
		c.events.RecorderError(domain.ErrorCodeRelease, "failed to release microphone: "+err.Error())
	}
	session.cancel()
	<-session.pumpDone
}

// settleAfterFailedRestart picks the resting state when a restart released
// the previous session but the new acquisition failed.
func (c *RecorderController) settleAfterFailedRestart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clip != nil {
		c.state = domain.RecorderStateStopped
	} else {
		c.state = domain.RecorderStateIdle
	}
}
