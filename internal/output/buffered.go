package output

import (
	"strings"
	"sync"
)

// BufferedOutput collects messages in memory.
type BufferedOutput struct {
	*Output

	mu  sync.Mutex
	buf strings.Builder
}

// NewBufferedOutput returns an empty, undecorated buffer unless opts say otherwise.
func NewBufferedOutput(opts ...BaseOption) *BufferedOutput {
	b := &BufferedOutput{}
	b.Output = NewOutput(b.write, opts...)
	return b
}

// Fetch returns the buffered text and empties the buffer.
func (b *BufferedOutput) Fetch() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.buf.String()
	b.buf.Reset()
	return s
}

// Clear empties the buffer.
func (b *BufferedOutput) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// SupportsUTF8 always reports true; the buffer holds Go strings.
func (b *BufferedOutput) SupportsUTF8() bool {
	return true
}

func (b *BufferedOutput) write(message string, newLine bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.WriteString(message)
	if newLine {
		b.buf.WriteByte('\n')
	}
	return nil
}
