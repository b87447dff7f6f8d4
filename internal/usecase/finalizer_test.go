package usecase

import (
	"errors"
	"testing"
)

func TestAssembleClipConcatenatesInOrder(t *testing.T) {
	t.Parallel()

	clip, err := assembleClip([][]byte{[]byte("head"), []byte("mid"), []byte("tail")}, "audio/webm;codecs=opus", 7.5)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if string(clip.Data) != "headmidtail" {
		t.Fatalf("unexpected data: %q", clip.Data)
	}
	if clip.MimeType != "audio/webm;codecs=opus" {
		t.Fatalf("unexpected mime type: %q", clip.MimeType)
	}
	if clip.DurationSeconds != 7.5 {
		t.Fatalf("unexpected duration: %v", clip.DurationSeconds)
	}
	if clip.ID == "" {
		t.Fatalf("expected a clip ID")
	}
}

func TestAssembleClipRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := assembleClip(nil, "audio/webm", 0); !errors.Is(err, errNoAudioCaptured) {
		t.Fatalf("expected errNoAudioCaptured, got %v", err)
	}
	if _, err := assembleClip([][]byte{{}}, "audio/webm", 0); !errors.Is(err, errNoAudioCaptured) {
		t.Fatalf("expected errNoAudioCaptured for zero bytes, got %v", err)
	}
}

func TestClipFinalizerPublishesPreview(t *testing.T) {
	t.Parallel()

	preview := newFakePreview()
	events := newFakeEventSink()
	finalizer := newClipFinalizer(preview, events)

	clip, info, err := finalizer.Finalize([][]byte{[]byte("bytes")}, "audio/webm", 2)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if info.PreviewURL == "" || info.SizeBytes != 5 || info.ID != clip.ID {
		t.Fatalf("unexpected clip info: %+v", info)
	}
	if got := preview.snapshotPublished(); len(got) != 1 || got[0] != info.PreviewURL {
		t.Fatalf("unexpected published previews: %v", got)
	}
}

func TestClipFinalizerEmitsErrorOnEmptyRecording(t *testing.T) {
	t.Parallel()

	preview := newFakePreview()
	events := newFakeEventSink()
	finalizer := newClipFinalizer(preview, events)

	if _, _, err := finalizer.Finalize(nil, "audio/webm", 0); err == nil {
		t.Fatalf("expected finalize error")
	}
	if got := events.snapshotErrors(); len(got) != 1 {
		t.Fatalf("expected one error event, got %d", len(got))
	}
	if len(preview.snapshotPublished()) != 0 {
		t.Fatalf("empty recording published a preview")
	}
}

func TestClipFinalizerSurfacesPublishFailure(t *testing.T) {
	t.Parallel()

	preview := newFakePreview()
	preview.err = errors.New("store full")
	events := newFakeEventSink()
	finalizer := newClipFinalizer(preview, events)

	if _, _, err := finalizer.Finalize([][]byte{[]byte("bytes")}, "audio/webm", 1); err == nil {
		t.Fatalf("expected publish error")
	}
	if got := events.snapshotErrors(); len(got) != 1 {
		t.Fatalf("expected one error event, got %d", len(got))
	}
}
