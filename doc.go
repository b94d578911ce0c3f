// Package pinotest provides assertions on structured log output.
//
// pinotest wraps the destination stream of a pino-style JSON logger in a
// [Sink], decodes each written line into a [Record], and offers three
// waiting primitives over the decoded record stream: [Once] matches the
// next record, [Consecutive] matches an ordered run of records, and
// [WaitFor] polls until a matching record appears within a time and
// message budget.
//
// # Quick Start
//
//	func TestMyApp(t *testing.T) {
//		sink := pinotest.NewSink()
//		logger := newAppLogger(sink) // any logger writing pino-shaped JSON lines
//
//		logger.Info("user created")
//		err := pinotest.Once(sink, pinotest.Fields(map[string]any{
//			"msg":   "user created",
//			"level": 30,
//		}))
//		if err != nil {
//			t.Fatal(err)
//		}
//	}
//
// # Records and Envelope Checks
//
// A [Record] is one decoded JSON log line. Every waiter validates the
// envelope fields before comparing anything else:
//
//   - time must not be in the future
//   - pid must equal the current process id
//   - hostname must equal the current host name
//
// The envelope fields are then stripped, and only the remaining body is
// compared against the expectation.
//
// # Expectations
//
// An [Expectation] is either a literal body built with [Fields], compared
// through an [EqualFunc] (default [DeepEqual]), or an arbitrary inspection
// function built with [Inspect], which fails the match by returning an
// error.
//
// # Waiting
//
// [Once] settles on the next record or stream error, whichever arrives
// first. [Consecutive] consumes records in strict arrival order and stops
// as soon as every expectation has matched; if the sink closes early it
// fails with [ErrSinkEnded]. [WaitFor] skips non-matching records until a
// match arrives, the timeout expires ([ErrWaitTimeout]), or the
// non-matching budget is exceeded ([ErrMaxMessages]).
//
// WaitFor behavior:
//
//   - Defaults: 1s timeout, 100 tolerated non-matching records
//   - Per-call overrides: [WithTimeout], [WithMaxMessages]
//   - A zero override means "use defaults"; negative values fail the call
//   - [WithDebugLogger] surfaces every incoming record before matching
//
// # Decode Failures
//
// A line that is not valid JSON is silently dropped by default. Configure
// the sink with [WithErrorEvents] to surface decode failures on
// [Sink.Errors], with [WithDestroyOnError] to close the sink on the first
// bad line, or with both; the two effects are independent.
//
// # Concurrency
//
// Waiters receive from the sink's record channel, so each delivered record
// is observed by exactly one waiter. Running several waiters against one
// sink at the same time makes them compete for records and is not
// supported.
package pinotest
