package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"voicenote/internal/bootstrap"
	"voicenote/internal/config"
	"voicenote/internal/domain"
	"voicenote/internal/preview"
	"voicenote/internal/usecase"
)

const (
	eventState = "voicenote:state"
	eventTick  = "voicenote:tick"
	eventClip  = "voicenote:clip"
	eventError = "voicenote:error"
)

// App is the Wails application root.
type App struct {
	ctx context.Context

	recorder *usecase.RecorderController
	previews *preview.Store
	cfg      config.Config
	bootErr  error
}

func NewApp() *App {
	return &App{previews: preview.NewStore()}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(a, a.previews)
	if err != nil {
		a.bootErr = err
		a.RecorderError(domain.ErrorCodeStartup, err.Error())
		return
	}

	a.cfg = services.Config
	a.recorder = services.Recorder
	a.RecorderStateChanged(domain.RecorderStateIdle, domain.ReasonMicReady)
}

func (a *App) shutdown(_ context.Context) {
	if a.recorder != nil {
		a.recorder.Close()
	}
}

// StartRecording acquires the microphone and begins recording.
func (a *App) StartRecording() (domain.Status, error) {
	if err := a.requireReady(); err != nil {
		return domain.Status{}, err
	}
	if err := a.recorder.Start(a.ctx); err != nil {
		a.RecorderError(acquireErrorCode(err), err.Error())
		return domain.Status{}, err
	}
	return a.recorder.Status(), nil
}

// StopRecording finalizes the current recording into a playable clip.
func (a *App) StopRecording() (domain.Status, error) {
	if err := a.requireReady(); err != nil {
		return domain.Status{}, err
	}
	if err := a.recorder.Stop(); err != nil {
		return domain.Status{}, err
	}
	return a.recorder.Status(), nil
}

// PauseRecording freezes the recording and its timer.
func (a *App) PauseRecording() (domain.Status, error) {
	if err := a.requireReady(); err != nil {
		return domain.Status{}, err
	}
	if err := a.recorder.Pause(); err != nil {
		return domain.Status{}, err
	}
	return a.recorder.Status(), nil
}

// ResumeRecording continues a paused recording.
func (a *App) ResumeRecording() (domain.Status, error) {
	if err := a.requireReady(); err != nil {
		return domain.Status{}, err
	}
	if err := a.recorder.Resume(); err != nil {
		return domain.Status{}, err
	}
	return a.recorder.Status(), nil
}

// DeleteRecording discards the clip and returns to idle.
func (a *App) DeleteRecording() (domain.Status, error) {
	if err := a.requireReady(); err != nil {
		return domain.Status{}, err
	}
	a.recorder.Delete()
	return a.recorder.Status(), nil
}

// GetStatus returns the current recorder status.
func (a *App) GetStatus() domain.Status {
	if a.recorder == nil {
		status := domain.Status{State: domain.RecorderStateIdle}
		if a.bootErr != nil {
			status.Message = a.bootErr.Error()
		}
		return status
	}
	return a.recorder.Status()
}

// GetClip returns the finished clip's metadata, or nil when no clip is
// held. The caller may submit the clip to the feedback backend once its
// duration meets the configured minimum.
func (a *App) GetClip() *domain.ClipInfo {
	if a.recorder == nil {
		return nil
	}
	info, ok := a.recorder.Clip()
	if !ok {
		return nil
	}
	return &info
}

// FormatDuration renders seconds as "MM:SS" for the recording timer.
func (a *App) FormatDuration(seconds float64) string {
	return domain.FormatDuration(seconds)
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}

	return map[string]string{
		"audioInput":         a.cfg.Audio.InputDevice,
		"audioInputFormat":   a.cfg.Audio.InputFormat,
		"mimeType":           a.cfg.Audio.MimeType,
		"maxDurationSeconds": fmt.Sprintf("%.0f", a.cfg.Session.MaxDuration.Seconds()),
		"minDurationSeconds": fmt.Sprintf("%.0f", a.cfg.Session.MinDuration.Seconds()),
	}
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.recorder == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// RecorderStateChanged emits recorder lifecycle updates to the frontend.
func (a *App) RecorderStateChanged(state domain.RecorderState, reason domain.StateReason) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventState, map[string]string{
		"state":   string(state),
		"reason":  string(reason),
		"message": stateReasonMessage(reason),
	})
}

// ElapsedTick emits the current recording duration for the UI timer.
func (a *App) ElapsedTick(seconds float64) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventTick, map[string]interface{}{
		"seconds":   seconds,
		"formatted": domain.FormatDuration(seconds),
	})
}

// ClipReady emits the finished clip's metadata and preview URL.
func (a *App) ClipReady(info domain.ClipInfo) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventClip, info)
}

// RecorderError emits backend errors to the UI.
func (a *App) RecorderError(code domain.ErrorCode, detail string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func acquireErrorCode(err error) domain.ErrorCode {
	if errors.Is(err, domain.ErrPermissionDenied) {
		return domain.ErrorCodePermissionDenied
	}
	return domain.ErrorCodeDeviceUnavail
}

func stateReasonMessage(reason domain.StateReason) string {
	switch reason {
	case domain.ReasonMicReady:
		return "Ready to record"
	case domain.ReasonRecordingStarted:
		return "Recording started"
	case domain.ReasonRecordingRestarted:
		return "Recording restarted; previous take discarded"
	case domain.ReasonRecordingPaused:
		return "Recording paused"
	case domain.ReasonRecordingResumed:
		return "Recording resumed"
	case domain.ReasonRecordingStopped:
		return "Recording stopped"
	case domain.ReasonMaxDurationReached:
		return "Maximum duration reached; recording stopped"
	case domain.ReasonRecordingDeleted:
		return "Recording deleted"
	case domain.ReasonEncodingFailed:
		return "Recording failed"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodePermissionDenied:
		return "Allow microphone access to record feedback"
	case domain.ErrorCodeDeviceUnavail:
		return "No usable microphone found"
	case domain.ErrorCodeEncoding:
		return "Audio encoding issue"
	case domain.ErrorCodeRelease:
		return "Microphone release issue"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}
