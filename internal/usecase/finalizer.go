package usecase

import (
	"bytes"
	"errors"

	"github.com/google/uuid"

	"voicenote/internal/domain"
	"voicenote/internal/ports"
)

var errNoAudioCaptured = errors.New("no audio captured")

// clipFinalizer turns a sealed chunk sequence into one playable clip:
// concatenate in order, tag with the session MIME type, publish a preview
// URL. Invoked exactly once per stop, after the encoder has flushed.
type clipFinalizer struct {
	preview ports.PreviewPublisher
	events  ports.EventSink
}

func newClipFinalizer(preview ports.PreviewPublisher, events ports.EventSink) clipFinalizer {
	return clipFinalizer{preview: preview, events: events}
}

func (f clipFinalizer) Finalize(chunks [][]byte, mimeType string, durationSeconds float64) (*domain.Clip, domain.ClipInfo, error) {
	clip, err := assembleClip(chunks, mimeType, durationSeconds)
	if err != nil {
		f.events.RecorderError(domain.ErrorCodeEncoding, err.Error())
		return nil, domain.ClipInfo{}, err
	}

	url, err := f.preview.Publish(clip)
	if err != nil {
		f.events.RecorderError(domain.ErrorCodeEncoding, "clip ready but preview publish failed: "+err.Error())
		return nil, domain.ClipInfo{}, err
	}

	info := domain.ClipInfo{
		ID:              clip.ID,
		MimeType:        clip.MimeType,
		SizeBytes:       len(clip.Data),
		DurationSeconds: clip.DurationSeconds,
		PreviewURL:      url,
	}
	return clip, info, nil
}

func assembleClip(chunks [][]byte, mimeType string, durationSeconds float64) (*domain.Clip, error) {
	if len(chunks) == 0 {
		return nil, errNoAudioCaptured
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	if total == 0 {
		return nil, errNoAudioCaptured
	}

	buf := bytes.NewBuffer(make([]byte, 0, total))
	for _, chunk := range chunks {
		buf.Write(chunk)
	}

	return &domain.Clip{
		ID:              uuid.NewString(),
		MimeType:        mimeType,
		Data:            buf.Bytes(),
		DurationSeconds: durationSeconds,
	}, nil
}
