package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config stores runtime configuration for the voice-feedback recorder.
type Config struct {
	Audio   AudioConfig
	Session SessionConfig
}

type AudioConfig struct {
	RecorderCommand string
	InputFormat     string
	InputDevice     string
	SampleRate      int
	Channels        int
	MimeType        string
	ChunkInterval   time.Duration
}

type SessionConfig struct {
	MaxDuration  time.Duration
	MinDuration  time.Duration
	TickInterval time.Duration
}

// Load resolves configuration from environment variables and sensible
// defaults. The only hard validation is that the duration window makes
// sense; everything else falls back quietly.
func Load() (Config, error) {
	cfg := Config{
		Audio: AudioConfig{
			RecorderCommand: envOrDefault("VOICENOTE_FFMPEG_COMMAND", "ffmpeg"),
			InputFormat:     envOrDefault("VOICENOTE_AUDIO_INPUT_FORMAT", "pulse"),
			InputDevice:     envOrDefault("VOICENOTE_AUDIO_INPUT_DEVICE", "default"),
			SampleRate:      envOrDefaultInt("VOICENOTE_SAMPLE_RATE", 48000),
			Channels:        envOrDefaultInt("VOICENOTE_CHANNELS", 1),
			MimeType:        envOrDefault("VOICENOTE_MIME_TYPE", "audio/webm;codecs=opus"),
			ChunkInterval:   time.Duration(envOrDefaultInt("VOICENOTE_CHUNK_INTERVAL_MS", 250)) * time.Millisecond,
		},
		Session: SessionConfig{
			MaxDuration:  time.Duration(envOrDefaultInt("VOICENOTE_MAX_DURATION_SECONDS", 120)) * time.Second,
			MinDuration:  time.Duration(envOrDefaultInt("VOICENOTE_MIN_DURATION_SECONDS", 3)) * time.Second,
			TickInterval: time.Duration(envOrDefaultInt("VOICENOTE_TICK_INTERVAL_MS", 250)) * time.Millisecond,
		},
	}

	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 48000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Audio.ChunkInterval <= 0 {
		cfg.Audio.ChunkInterval = 250 * time.Millisecond
	}
	if cfg.Session.TickInterval <= 0 {
		cfg.Session.TickInterval = 250 * time.Millisecond
	}

	if cfg.Session.MaxDuration <= 0 {
		return Config{}, fmt.Errorf("maximum recording duration must be positive, got %s", cfg.Session.MaxDuration)
	}
	if cfg.Session.MinDuration < 0 {
		cfg.Session.MinDuration = 0
	}
	if cfg.Session.MinDuration >= cfg.Session.MaxDuration {
		return Config{}, fmt.Errorf(
			"minimum recording duration %s must be below the maximum %s",
			cfg.Session.MinDuration, cfg.Session.MaxDuration,
		)
	}

	return cfg, nil
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
