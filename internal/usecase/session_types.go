package usecase

import (
	"sync"
	"time"

	"voicenote/internal/ports"
)

// recordingSession owns the live resources of one record attempt: the
// capture session, the chunk collector, the duration clock and the pause
// accounting. Timing fields live here, never on package level.
type recordingSession struct {
	cancel    func()
	capture   ports.CaptureSession
	collector *chunkCollector
	clock     *durationClock
	pumpDone  chan struct{}

	mu          sync.Mutex
	startedAt   time.Time
	pausedAt    time.Time // zero unless currently paused
	pausedAccum time.Duration

	releaseOnce sync.Once
	releaseErr  error
}

// elapsed reports recording time excluding paused intervals. While paused
// the value is frozen at the instant the pause began.
func (s *recordingSession) elapsed(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := now
	if !s.pausedAt.IsZero() {
		ref = s.pausedAt
	}
	elapsed := ref.Sub(s.startedAt) - s.pausedAccum
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed
}

func (s *recordingSession) markPaused(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pausedAt.IsZero() {
		s.pausedAt = now
	}
}

// markResumed folds the just-finished pause gap into the accumulator.
// Also used on stop-while-paused so the final elapsed value excludes the
// open pause interval.
func (s *recordingSession) markResumed(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pausedAt.IsZero() {
		return
	}
	s.pausedAccum += now.Sub(s.pausedAt)
	s.pausedAt = time.Time{}
}

// release frees the microphone device exactly once regardless of how many
// exit paths reach it.
func (s *recordingSession) release() error {
	s.releaseOnce.Do(func() {
		s.releaseErr = s.capture.Release()
	})
	return s.releaseErr
}
