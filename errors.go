package pinotest

import "errors"

var (
	// ErrSinkClosed is returned by writes to, and double closes of, a
	// closed Sink.
	ErrSinkClosed = errors.New("sink is closed")

	// ErrSinkEnded is returned when the sink closes before a waiter has
	// matched all of its expectations.
	ErrSinkEnded = errors.New("stream ended before all expectations were matched")

	// ErrWaitTimeout is returned by WaitFor when no matching record
	// arrives within the configured timeout.
	ErrWaitTimeout = errors.New("timed out waiting for a matching record")

	// ErrMaxMessages is returned by WaitFor when more non-matching
	// records arrive than the configured budget tolerates.
	ErrMaxMessages = errors.New("max message count reached")

	// Envelope validation failures.
	ErrTimestamp = errors.New("invalid record timestamp")
	ErrPid       = errors.New("record pid mismatch")
	ErrHostname  = errors.New("record hostname mismatch")
)
