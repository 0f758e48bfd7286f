package output

import (
	"io"

	"golang.org/x/text/encoding"

	"github.com/griffithind/termout/internal/errors"
	"github.com/griffithind/termout/internal/termcap"
)

// EncodingWriter transcodes UTF-8 text into another encoding and declares
// that encoding. Characters the encoding cannot represent are replaced.
type EncodingWriter struct {
	w       io.Writer
	name    string
	encoder *encoding.Encoder
}

// NewEncodingWriter returns a writer that encodes into the named encoding.
func NewEncodingWriter(w io.Writer, name string) (*EncodingWriter, error) {
	enc, canonical, err := termcap.LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, errors.EncodingUnknown(name, nil)
	}
	return &EncodingWriter{
		w:       w,
		name:    canonical,
		encoder: encoding.ReplaceUnsupported(enc.NewEncoder()),
	}, nil
}

// Write encodes p and writes it. p must hold complete UTF-8 sequences.
func (e *EncodingWriter) Write(p []byte) (int, error) {
	out, err := e.encoder.Bytes(p)
	if err != nil {
		return 0, err
	}
	if _, err := e.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Encoding returns the canonical name of the target encoding.
func (e *EncodingWriter) Encoding() string {
	return e.name
}

// Fd exposes the descriptor of the wrapped writer, if any.
func (e *EncodingWriter) Fd() uintptr {
	if fd, ok := termcap.DescriptorOf(e.w); ok {
		return fd
	}
	return ^uintptr(0)
}

// Flush flushes the wrapped writer if it buffers.
func (e *EncodingWriter) Flush() error {
	if f, ok := e.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
