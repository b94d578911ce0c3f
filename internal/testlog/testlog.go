// Package testlog builds pino-shaped JSON log lines for the pinotest test
// suite. It provides a raw line builder for records that need exact field
// control, and a slog.Logger whose JSON output matches the pino envelope
// for end-to-end fixtures.
package testlog

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"
)

// Line returns one pino-shaped log line, newline terminated. The envelope
// fields are filled in from the current process; extra fields are merged
// into the body.
func Line(level int, msg string, extra map[string]any) []byte {
	rec := map[string]any{
		"time":     time.Now().UnixMilli(),
		"pid":      os.Getpid(),
		"hostname": hostname(),
		"level":    level,
		"msg":      msg,
	}
	for k, v := range extra {
		rec[k] = v
	}

	b, err := json.Marshal(rec)
	if err != nil {
		panic("testlog: marshal record: " + err.Error())
	}
	return append(b, '\n')
}

// New returns a slog.Logger that writes pino-shaped lines to w: epoch
// millisecond time, numeric level, and the pid and hostname of the current
// process on every record.
func New(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: pinoAttr,
	})
	return slog.New(handler).With(
		slog.Int("pid", os.Getpid()),
		slog.String("hostname", hostname()),
	)
}

func pinoAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.Int64(slog.TimeKey, a.Value.Time().UnixMilli())
	case slog.LevelKey:
		level, _ := a.Value.Any().(slog.Level)
		return slog.Int(slog.LevelKey, pinoLevel(level))
	}
	return a
}

// pinoLevel maps slog levels onto pino's numeric scale.
func pinoLevel(l slog.Level) int {
	switch {
	case l < slog.LevelInfo:
		return 20
	case l < slog.LevelWarn:
		return 30
	case l < slog.LevelError:
		return 40
	default:
		return 50
	}
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return ""
	}
	return h
}
