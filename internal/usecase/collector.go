package usecase

import "sync"

// chunkCollector accumulates encoded audio fragments in emission order.
// Fragments are only accepted while the session is actively recording;
// anything arriving while paused or after sealing is dropped.
type chunkCollector struct {
	mu        sync.Mutex
	chunks    [][]byte
	size      int
	sealed    bool
	accepting bool
}

func newChunkCollector() *chunkCollector {
	return &chunkCollector{accepting: true}
}

func (c *chunkCollector) setAccepting(accepting bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accepting = accepting
}

// append stores a copy of buf. The capture adapter reuses its read buffer,
// so the collector must own its bytes.
func (c *chunkCollector) append(buf []byte) {
	if len(buf) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sealed || !c.accepting {
		return
	}
	owned := make([]byte, len(buf))
	copy(owned, buf)
	c.chunks = append(c.chunks, owned)
	c.size += len(owned)
}

// seal closes the sequence for assembly once the encoder has flushed its
// final fragment.
func (c *chunkCollector) seal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sealed = true
}

func (c *chunkCollector) snapshot() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.chunks))
	copy(out, c.chunks)
	return out
}

func (c *chunkCollector) byteSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *chunkCollector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.chunks)
}
