package bootstrap

import (
	"voicenote/internal/capture"
	"voicenote/internal/config"
	"voicenote/internal/ports"
	"voicenote/internal/preview"
	"voicenote/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Recorder *usecase.RecorderController
	Preview  *preview.Store
	Config   config.Config
}

// Build wires all backend dependencies for the current runtime.
func Build(eventSink ports.EventSink, previews *preview.Store) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}

	recorder := usecase.NewRecorderController(
		capture.NewFFmpegCapture(cfg.Audio.RecorderCommand),
		previews,
		eventSink,
		usecase.Config{
			Capture: ports.CaptureConfig{
				SampleRate:    cfg.Audio.SampleRate,
				Channels:      cfg.Audio.Channels,
				InputFormat:   cfg.Audio.InputFormat,
				InputDevice:   cfg.Audio.InputDevice,
				MimeType:      cfg.Audio.MimeType,
				ChunkInterval: cfg.Audio.ChunkInterval,
			},
			MaxDuration:  cfg.Session.MaxDuration,
			MinDuration:  cfg.Session.MinDuration,
			TickInterval: cfg.Session.TickInterval,
		},
	)

	return Services{Recorder: recorder, Preview: previews, Config: cfg}, nil
}
