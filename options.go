package pinotest

import (
	"log/slog"
	"time"
)

const (
	defaultTimeout     = time.Second
	defaultMaxMessages = 100

	recordBuffer = 1024
	errorBuffer  = 16
)

type sinkOptions struct {
	destroyOnError bool
	emitErrors     bool
}

// SinkOption configures a Sink created by NewSink.
type SinkOption func(*sinkOptions)

// WithDestroyOnError closes the sink when a line fails to decode.
func WithDestroyOnError() SinkOption {
	return func(o *sinkOptions) {
		o.destroyOnError = true
	}
}

// WithErrorEvents publishes decode failures on Sink.Errors.
func WithErrorEvents() SinkOption {
	return func(o *sinkOptions) {
		o.emitErrors = true
	}
}

type options struct {
	equal       EqualFunc
	timeout     time.Duration
	maxMessages int
	debug       *slog.Logger
}

// Option configures a single Once, Consecutive, or WaitFor call.
type Option func(*options)

// WithEqual overrides the equality function used for Fields expectations.
func WithEqual(fn EqualFunc) Option {
	return func(o *options) {
		o.equal = fn
	}
}

// WithTimeout overrides WaitFor's timeout.
// A value of 0 means "use defaults". Negative values fail the call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMaxMessages overrides how many non-matching records WaitFor
// tolerates before giving up.
// A value of 0 means "use defaults". Negative values fail the call.
func WithMaxMessages(n int) Option {
	return func(o *options) {
		o.maxMessages = n
	}
}

// WithDebugLogger makes WaitFor log every incoming record before matching.
func WithDebugLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.debug = l
	}
}

func newOptions(opts []Option) options {
	o := options{
		equal:       DeepEqual,
		timeout:     defaultTimeout,
		maxMessages: defaultMaxMessages,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
