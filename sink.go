package pinotest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
)

// Sink decodes the JSON lines a logger writes to it and republishes each
// one as a Record on the channel returned by Records. A Sink is the
// destination stream for exactly one logger and is created per test case.
type Sink struct {
	records chan Record
	errs    chan error

	destroyOnError bool
	emitErrors     bool

	mu     sync.Mutex
	buf    []byte
	closed bool
}

// NewSink returns a Sink ready to be used as a logger destination.
func NewSink(opts ...SinkOption) *Sink {
	o := sinkOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	return &Sink{
		records:        make(chan Record, recordBuffer),
		errs:           make(chan error, errorBuffer),
		destroyOnError: o.destroyOnError,
		emitErrors:     o.emitErrors,
	}
}

// Write implements io.Writer for the producing logger. Complete lines are
// decoded immediately; a trailing partial line is buffered until the next
// write or Close. Write never fails on a bad line — decode failures follow
// the sink's configured error handling.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSinkClosed
	}

	s.buf = append(s.buf, p...)
	for {
		i := bytes.IndexByte(s.buf, '\n')
		if i < 0 {
			break
		}
		line := s.buf[:i]
		s.buf = s.buf[i+1:]
		if s.dispatchLocked(line) {
			// Destroyed; swallow whatever remains of this write.
			break
		}
	}

	return len(p), nil
}

// Close signals end-of-stream. A buffered partial line is decoded first,
// then the record channel is closed. Closing twice returns ErrSinkClosed.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}
	if len(bytes.TrimSpace(s.buf)) > 0 {
		s.dispatchLocked(s.buf)
		s.buf = nil
		if s.closed {
			return nil
		}
	}
	s.closeLocked()
	return nil
}

// Records returns the channel of decoded records. The channel is closed
// when the sink is closed or destroyed.
func (s *Sink) Records() <-chan Record {
	return s.records
}

// Errors returns the channel decode failures are published on when the
// sink was created with WithErrorEvents.
func (s *Sink) Errors() <-chan error {
	return s.errs
}

// dispatchLocked decodes one line and publishes the outcome. It reports
// whether the sink destroyed itself. Callers must hold mu.
func (s *Sink) dispatchLocked(line []byte) (destroyed bool) {
	if len(bytes.TrimSpace(line)) == 0 {
		return false
	}

	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		if s.emitErrors {
			s.errs <- fmt.Errorf("decode log line %q: %w", line, err)
		}
		if s.destroyOnError {
			s.closeLocked()
			return true
		}
		// Neither flag set: the bad line is dropped silently.
		return false
	}

	s.records <- rec
	return false
}

func (s *Sink) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.records)
}
