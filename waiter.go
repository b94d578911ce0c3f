package pinotest

import (
	"fmt"
	"log/slog"
	"time"
)

// Once waits for the next record the sink decodes and validates it against
// the expectation. It settles exactly once: on the first record (matching
// or not) or on the first stream error, whichever arrives first.
//
// Once has no timeout. If the sink never decodes a record and is never
// closed, the call blocks.
func Once(s *Sink, exp Expectation, opts ...Option) error {
	o := newOptions(opts)

	select {
	case rec, ok := <-s.records:
		if !ok {
			return fmt.Errorf("once: %w", ErrSinkEnded)
		}
		return check(rec, exp, o.equal)
	case err := <-s.errs:
		return err
	}
}

// Consecutive consumes records in strict arrival order, validating the
// i-th record against expectations[i]. The first validation failure aborts
// the whole call. Consumption stops as soon as every expectation has
// matched; later records stay available to other waiters. If the sink
// closes first, Consecutive fails with ErrSinkEnded.
func Consecutive(s *Sink, expectations []Expectation, opts ...Option) error {
	o := newOptions(opts)

	for i, exp := range expectations {
		select {
		case rec, ok := <-s.records:
			if !ok {
				return fmt.Errorf("%w: matched %d of %d", ErrSinkEnded, i, len(expectations))
			}
			if err := check(rec, exp, o.equal); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
		case err := <-s.errs:
			return err
		}
	}

	return nil
}

// WaitFor scans arriving records, skipping the ones that fail validation,
// until one matches the expectation. Exactly one of four outcomes occurs:
// a match (nil), ErrWaitTimeout when the timeout expires first,
// ErrMaxMessages when more non-matching records arrive than the budget
// tolerates, or the stream error that arrived first.
func WaitFor(s *Sink, exp Expectation, opts ...Option) error {
	o := newOptions(opts)
	if o.timeout < 0 {
		return fmt.Errorf("wait-for: negative timeout: %v", o.timeout)
	}
	if o.maxMessages < 0 {
		return fmt.Errorf("wait-for: negative max messages: %d", o.maxMessages)
	}
	if o.timeout == 0 {
		o.timeout = defaultTimeout
	}
	if o.maxMessages == 0 {
		o.maxMessages = defaultMaxMessages
	}

	timer := time.NewTimer(o.timeout)
	defer timer.Stop()

	// Nilled out once the sink closes; a closed sink is not terminal for
	// WaitFor, the timer still decides.
	records := s.records
	misses := 0

	for {
		select {
		case rec, ok := <-records:
			if !ok {
				records = nil
				continue
			}
			if o.debug != nil {
				o.debug.Debug("received record", slog.Any("record", rec))
			}
			if err := check(rec, exp, o.equal); err != nil {
				misses++
				if misses > o.maxMessages {
					return fmt.Errorf("%w waiting for %q: %d non-matching records",
						ErrMaxMessages, expectationMsg(exp), misses)
				}
				continue
			}
			return nil
		case err := <-s.errs:
			return err
		case <-timer.C:
			return fmt.Errorf("%w: %q did not arrive within %v",
				ErrWaitTimeout, expectationMsg(exp), o.timeout)
		}
	}
}
