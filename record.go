package pinotest

import (
	"fmt"
	"os"
	"time"
)

// Keys of the envelope fields every pino record carries.
const (
	timeKey     = "time"
	pidKey      = "pid"
	hostnameKey = "hostname"
	msgKey      = "msg"
	levelKey    = "level"
)

// Record is one decoded structured log entry.
type Record map[string]any

// Msg returns the record's message field, or "" if absent.
func (r Record) Msg() string {
	msg, _ := r[msgKey].(string)
	return msg
}

// Level returns the record's numeric level.
// ok is false when the field is absent or not a number.
func (r Record) Level() (level Level, ok bool) {
	n, ok := r[levelKey].(float64)
	return Level(n), ok
}

// Body returns a copy of the record without the envelope fields.
// The copy is shallow; nested values are shared with the Record.
func (r Record) Body() map[string]any {
	body := make(map[string]any, len(r))
	for k, v := range r {
		switch k {
		case timeKey, pidKey, hostnameKey:
			continue
		}
		body[k] = v
	}
	return body
}

// checkEnvelope validates the time, pid and hostname fields against the
// current process. It runs before any body comparison, for every waiter.
func (r Record) checkEnvelope(now time.Time) error {
	ts, ok := r[timeKey].(float64)
	if !ok {
		return fmt.Errorf("%w: missing or non-numeric %q field", ErrTimestamp, timeKey)
	}
	if int64(ts) > now.UnixMilli() {
		return fmt.Errorf("%w: %d is in the future", ErrTimestamp, int64(ts))
	}

	pid, ok := r[pidKey].(float64)
	if !ok || int(pid) != os.Getpid() {
		return fmt.Errorf("%w: got %v, want %d", ErrPid, r[pidKey], os.Getpid())
	}

	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("resolve hostname: %w", err)
	}
	if host, ok := r[hostnameKey].(string); !ok || host != hostname {
		return fmt.Errorf("%w: got %v, want %q", ErrHostname, r[hostnameKey], hostname)
	}

	return nil
}
