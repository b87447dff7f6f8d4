package main

import (
	"errors"
	"fmt"
	"testing"

	"voicenote/internal/domain"
)

func TestStateReasonMessage(t *testing.T) {
	t.Parallel()

	cases := map[domain.StateReason]string{
		domain.ReasonMicReady:           "Ready to record",
		domain.ReasonRecordingStarted:   "Recording started",
		domain.ReasonRecordingRestarted: "Recording restarted; previous take discarded",
		domain.ReasonRecordingPaused:    "Recording paused",
		domain.ReasonRecordingResumed:   "Recording resumed",
		domain.ReasonRecordingStopped:   "Recording stopped",
		domain.ReasonMaxDurationReached: "Maximum duration reached; recording stopped",
		domain.ReasonRecordingDeleted:   "Recording deleted",
		domain.ReasonEncodingFailed:     "Recording failed",
	}

	for reason, want := range cases {
		reason := reason
		want := want
		t.Run(string(reason), func(t *testing.T) {
			t.Parallel()
			if got := stateReasonMessage(reason); got != want {
				t.Fatalf("unexpected message: %q", got)
			}
		})
	}

	if got := stateReasonMessage("unknown"); got != "" {
		t.Fatalf("expected empty unknown reason message, got %q", got)
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	cases := map[domain.ErrorCode]string{
		domain.ErrorCodeStartup:          "Startup failed",
		domain.ErrorCodePermissionDenied: "Allow microphone access to record feedback",
		domain.ErrorCodeDeviceUnavail:    "No usable microphone found",
		domain.ErrorCodeEncoding:         "Audio encoding issue",
		domain.ErrorCodeRelease:          "Microphone release issue",
	}
	for code, want := range cases {
		code := code
		want := want
		t.Run(string(code), func(t *testing.T) {
			t.Parallel()
			if got := errorMessage(code, "ignored"); got != want {
				t.Fatalf("unexpected message: %q", got)
			}
		})
	}

	if got := errorMessage("unknown", "detail"); got != "detail" {
		t.Fatalf("expected detail fallback, got %q", got)
	}
	if got := errorMessage("unknown", ""); got != "Unknown error" {
		t.Fatalf("expected unknown fallback, got %q", got)
	}
}

func TestAcquireErrorCode(t *testing.T) {
	t.Parallel()

	denied := fmt.Errorf("%w: user refused", domain.ErrPermissionDenied)
	if got := acquireErrorCode(denied); got != domain.ErrorCodePermissionDenied {
		t.Fatalf("unexpected code: %s", got)
	}
	if got := acquireErrorCode(domain.ErrDeviceUnavailable); got != domain.ErrorCodeDeviceUnavail {
		t.Fatalf("unexpected code: %s", got)
	}
	if got := acquireErrorCode(errors.New("anything else")); got != domain.ErrorCodeDeviceUnavail {
		t.Fatalf("unexpected code: %s", got)
	}
}

func TestRequireReady(t *testing.T) {
	t.Parallel()

	app := &App{}
	if err := app.requireReady(); err == nil {
		t.Fatalf("expected uninitialized error")
	}

	bootErr := errors.New("boot")
	app.bootErr = bootErr
	if err := app.requireReady(); !errors.Is(err, bootErr) {
		t.Fatalf("expected boot error, got %v", err)
	}
}

func TestGetStatusWhenNotInitialized(t *testing.T) {
	t.Parallel()

	app := &App{}
	status := app.GetStatus()
	if status.State != domain.RecorderStateIdle || status.IsRecording {
		t.Fatalf("unexpected status: %+v", status)
	}

	app.bootErr = errors.New("boot")
	status = app.GetStatus()
	if status.Message != "boot" {
		t.Fatalf("unexpected boot status: %+v", status)
	}
}

func TestFormatDurationBinding(t *testing.T) {
	t.Parallel()

	app := &App{}
	if got := app.FormatDuration(125); got != "02:05" {
		t.Fatalf("unexpected formatting: %q", got)
	}
}
