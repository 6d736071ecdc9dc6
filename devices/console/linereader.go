// Package console turns a byte-stream serial port into a line-oriented
// command console.
package console

import (
	"context"
	"sync"

	"ledconsole-go/errcode"
	"ledconsole-go/types"
	"ledconsole-go/x/mathx"
)

const (
	DefaultMaxLine = 256
	minLine        = 16
	maxLine        = 1024
	chunk          = 64
)

// LineReader implements types.Console on top of a types.SerialPort.
// ReadLine is meant for a single consumer goroutine.
type LineReader struct {
	mu      sync.Mutex
	port    types.SerialPort
	portErr error
	max     int

	initialised bool
	buf         []byte // raw receive chunk
	pending     []byte // received but not yet consumed
	line        []byte
	afterCR     bool // swallow one LF following a CR terminator
}

var _ types.Console = (*LineReader)(nil)

// New wraps port. portErr is the result of configuring or opening the port;
// a non-nil value leaves the console permanently not ready.
func New(port types.SerialPort, portErr error, maxLineLen int) *LineReader {
	return &LineReader{
		port:    port,
		portErr: portErr,
		max:     mathx.OrDefault(maxLineLen, DefaultMaxLine, minLine, maxLine),
	}
}

// Ready reports whether the underlying port came up.
func (r *LineReader) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.port != nil && r.portErr == nil
}

// InitLineReader allocates the receive buffers. Repeated calls are no-ops.
func (r *LineReader) InitLineReader() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.port == nil || r.portErr != nil {
		return errcode.NoDevice
	}
	if r.initialised {
		return nil
	}
	r.buf = make([]byte, chunk)
	r.line = make([]byte, 0, r.max)
	r.initialised = true
	return nil
}

// ReadLine blocks until a CR or LF is received and returns the line without
// its terminator. A CRLF pair ends a single line. Backspace and DEL erase the
// previous byte. Bytes beyond the max line length are discarded until the next
// terminator. Port errors (including io.EOF) are returned as-is and any
// partial line is discarded.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if err := r.InitLineReader(); err != nil {
		return "", err
	}
	for {
		if s, ok := r.scan(); ok {
			return s, nil
		}
		n, err := r.port.RecvSomeContext(ctx, r.buf)
		if n > 0 {
			r.pending = append(r.pending, r.buf[:n]...)
			continue
		}
		if err != nil {
			r.line = r.line[:0]
			r.afterCR = false
			return "", err
		}
	}
}

// scan consumes pending bytes up to and including the first terminator.
func (r *LineReader) scan() (string, bool) {
	for i, b := range r.pending {
		afterCR := r.afterCR
		r.afterCR = false
		switch b {
		case '\n':
			if afterCR {
				continue
			}
		case '\r':
			r.afterCR = true
		case '\b', 0x7f:
			if n := len(r.line); n > 0 {
				r.line = r.line[:n-1]
			}
			continue
		default:
			if len(r.line) < r.max {
				r.line = append(r.line, b)
			}
			continue
		}
		s := string(r.line)
		r.line = r.line[:0]
		r.pending = r.pending[i+1:]
		return s, true
	}
	r.pending = r.pending[:0]
	return "", false
}
