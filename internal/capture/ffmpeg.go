package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"voicenote/internal/domain"
	"voicenote/internal/ports"
)

// FFmpegCapture acquires the microphone through an ffmpeg subprocess that
// stream-encodes captured audio into an Opus/WebM container on stdout.
// Each stdout read becomes one encoded chunk on the session's channel.
type FFmpegCapture struct {
	command string
}

func NewFFmpegCapture(command string) *FFmpegCapture {
	if command == "" {
		command = "ffmpeg"
	}
	return &FFmpegCapture{command: command}
}

func (c *FFmpegCapture) Acquire(ctx context.Context, cfg ports.CaptureConfig) (ports.CaptureSession, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 48000
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}
	if cfg.InputFormat == "" {
		cfg.InputFormat = "pulse"
	}
	if cfg.InputDevice == "" {
		cfg.InputDevice = "default"
	}

	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "warning",
		"-f", cfg.InputFormat,
		"-i", cfg.InputDevice,
		"-ac", strconv.Itoa(cfg.Channels),
		"-ar", strconv.Itoa(cfg.SampleRate),
		"-c:a", "libopus",
		"-f", "webm",
		"-",
	}

	cmd := exec.CommandContext(ctx, c.command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create ffmpeg stdout pipe: %v", domain.ErrDeviceUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: failed to start ffmpeg: %v", domain.ErrDeviceUnavailable, err)
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
		close(waitErr)
	}()

	// ffmpeg exits within the grace window when the device is missing,
	// busy, or access is refused.
	select {
	case err := <-waitErr:
		return nil, classifyAcquireFailure(err, stderr.String())
	case <-time.After(250 * time.Millisecond):
	}

	session := &ffmpegSession{
		stdout:  stdout,
		stderr:  &stderr,
		process: cmd.Process,
		waitErr: waitErr,
		chunks:  make(chan []byte, 32),
	}
	go session.readChunks(chunkSizeFor(cfg))
	return session, nil
}

func chunkSizeFor(cfg ports.CaptureConfig) int {
	// Roughly one chunk interval of encoded audio; the exact size only
	// affects chunk granularity, never correctness.
	if cfg.ChunkInterval <= 0 {
		return 4096
	}
	size := int(cfg.ChunkInterval.Seconds() * float64(cfg.SampleRate) / 4)
	if size < 1024 {
		size = 1024
	}
	return size
}

func classifyAcquireFailure(waitErr error, stderr string) error {
	detail := strings.TrimSpace(stderr)
	lower := strings.ToLower(detail)
	switch {
	case strings.Contains(lower, "permission denied"), strings.Contains(lower, "access denied"):
		return fmt.Errorf("%w: %s", domain.ErrPermissionDenied, detail)
	case detail != "":
		return fmt.Errorf("%w: %s", domain.ErrDeviceUnavailable, detail)
	case waitErr != nil:
		return fmt.Errorf("%w: ffmpeg exited before capture started: %v", domain.ErrDeviceUnavailable, waitErr)
	default:
		return fmt.Errorf("%w: ffmpeg exited before capture started", domain.ErrDeviceUnavailable)
	}
}

type ffmpegSession struct {
	stdout io.ReadCloser
	stderr *bytes.Buffer

	process *os.Process
	waitErr <-chan error

	chunks chan []byte

	errMu sync.Mutex
	err   error

	stopOnce    sync.Once
	releaseOnce sync.Once
	releaseErr  error
}

func (s *ffmpegSession) Chunks() <-chan []byte { return s.chunks }

// readChunks slices stdout into encoded chunks until the encoder exits.
// Closing the channel is the completion signal consumers wait on.
func (s *ffmpegSession) readChunks(chunkSize int) {
	defer close(s.chunks)

	buf := make([]byte, chunkSize)
	for {
		n, err := s.stdout.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.chunks <- chunk
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				s.setErr(fmt.Errorf("%w: %v", domain.ErrEncodingFailure, err))
			}
			return
		}
	}
}

// Pause suspends the encoder process so no audio is captured or encoded
// until Resume.
func (s *ffmpegSession) Pause() error {
	if s.process == nil {
		return nil
	}
	if err := s.process.Signal(syscall.SIGSTOP); err != nil {
		return fmt.Errorf("failed to suspend encoder: %w", err)
	}
	return nil
}

func (s *ffmpegSession) Resume() error {
	if s.process == nil {
		return nil
	}
	if err := s.process.Signal(syscall.SIGCONT); err != nil {
		return fmt.Errorf("failed to resume encoder: %w", err)
	}
	return nil
}

// Stop asks ffmpeg to finalize the container. The muxer flushes its last
// fragment to stdout before exiting, so the chunk channel drains and then
// closes.
func (s *ffmpegSession) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		if s.process == nil {
			return
		}
		// A suspended process cannot handle SIGINT.
		_ = s.process.Signal(syscall.SIGCONT)
		if sigErr := s.process.Signal(os.Interrupt); sigErr != nil && !errors.Is(sigErr, os.ErrProcessDone) {
			err = fmt.Errorf("failed to finalize encoder: %w", sigErr)
		}
	})
	return err
}

// Release force-frees the device handle. Idempotent; safe after Stop, and
// kills the process when called without one.
func (s *ffmpegSession) Release() error {
	s.releaseOnce.Do(func() {
		_ = s.Stop()

		select {
		case err, ok := <-s.waitErr:
			if ok {
				s.releaseErr = normalizeExitErr(err)
			}
		case <-time.After(1200 * time.Millisecond):
			if s.process != nil {
				_ = s.process.Kill()
			}
			err, ok := <-s.waitErr
			if ok {
				s.releaseErr = normalizeExitErr(err)
			}
		}

		if closeErr := s.stdout.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			if s.releaseErr == nil {
				s.releaseErr = closeErr
			}
		}

		if s.releaseErr != nil && s.stderr != nil && s.stderr.Len() > 0 {
			s.releaseErr = fmt.Errorf("%w: %s", s.releaseErr, strings.TrimSpace(s.stderr.String()))
		}
	})
	return s.releaseErr
}

func (s *ffmpegSession) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

func (s *ffmpegSession) setErr(err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

func normalizeExitErr(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// An interrupt-driven exit is the normal finalize path.
		return nil
	}
	return err
}
