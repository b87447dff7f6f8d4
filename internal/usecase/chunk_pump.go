package usecase

import "voicenote/internal/ports"

// pumpChunks drains the capture session's chunk stream into the collector.
// The stream closing is the encoder's completion signal: done is closed
// first so a stop path waiting on it cannot deadlock, then onDrained runs
// so the controller can inspect the session for a mid-stream failure.
func pumpChunks(session ports.CaptureSession, collector *chunkCollector, done chan struct{}, onDrained func()) {
	for chunk := range session.Chunks() {
		collector.append(chunk)
	}
	close(done)
	if onDrained != nil {
		onDrained()
	}
}
