package usecase

import (
	"bytes"
	"testing"
)

func TestChunkCollectorPreservesOrder(t *testing.T) {
	t.Parallel()

	c := newChunkCollector()
	c.append([]byte("one"))
	c.append([]byte("two"))
	c.append([]byte("three"))

	chunks := c.snapshot()
	if len(chunks) != 3 {
		t.Fatalf("unexpected chunk count: %d", len(chunks))
	}
	joined := bytes.Join(chunks, nil)
	if string(joined) != "onetwothree" {
		t.Fatalf("chunks out of order: %q", joined)
	}
	if c.byteSize() != len("onetwothree") {
		t.Fatalf("unexpected byte size: %d", c.byteSize())
	}
}

func TestChunkCollectorDropsEmptyBuffers(t *testing.T) {
	t.Parallel()

	c := newChunkCollector()
	c.append(nil)
	c.append([]byte{})
	if c.count() != 0 {
		t.Fatalf("empty buffers were stored")
	}
}

func TestChunkCollectorDropsWhileNotAccepting(t *testing.T) {
	t.Parallel()

	c := newChunkCollector()
	c.append([]byte("kept"))
	c.setAccepting(false)
	c.append([]byte("paused"))
	c.setAccepting(true)
	c.append([]byte("resumed"))

	joined := bytes.Join(c.snapshot(), nil)
	if string(joined) != "keptresumed" {
		t.Fatalf("paused chunk was stored: %q", joined)
	}
}

func TestChunkCollectorRejectsAppendsAfterSeal(t *testing.T) {
	t.Parallel()

	c := newChunkCollector()
	c.append([]byte("final"))
	c.seal()
	c.append([]byte("late"))

	if c.count() != 1 {
		t.Fatalf("chunk stored after seal")
	}
}

func TestChunkCollectorCopiesBuffers(t *testing.T) {
	t.Parallel()

	c := newChunkCollector()
	buf := []byte("abc")
	c.append(buf)
	buf[0] = 'x'

	if got := string(c.snapshot()[0]); got != "abc" {
		t.Fatalf("collector aliased the caller's buffer: %q", got)
	}
}
