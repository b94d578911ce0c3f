package pinotest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stretchr/testify/assert"
)

// An Expectation describes what the body of a decoded record should look
// like, after the envelope fields have been stripped. Build one with
// [Fields] or [Inspect].
type Expectation interface {
	expectation()
}

type fieldsExpectation struct {
	want map[string]any
}

func (fieldsExpectation) expectation() {}

// Fields expects the record body to equal want, compared with the waiter's
// EqualFunc.
func Fields(want map[string]any) Expectation {
	return fieldsExpectation{want: want}
}

type inspectExpectation struct {
	fn func(body map[string]any) error
}

func (inspectExpectation) expectation() {}

// Inspect expects fn to return nil for the record body. Any error fn
// returns propagates unchanged as the waiter's failure.
func Inspect(fn func(body map[string]any) error) Expectation {
	return inspectExpectation{fn: fn}
}

// EqualFunc compares a record body against an expected body and returns a
// descriptive error on mismatch.
type EqualFunc func(got, want map[string]any) error

// DeepEqual is the default EqualFunc. The expected body is normalized
// through a JSON round trip first, so literal values like int(30) compare
// equal to the float64 the decoder produces.
func DeepEqual(got, want map[string]any) error {
	normalized, err := normalize(want)
	if err != nil {
		return fmt.Errorf("normalize expected fields: %w", err)
	}
	if assert.ObjectsAreEqual(got, normalized) {
		return nil
	}
	return fmt.Errorf("record fields mismatch\n     got: %#v\n  wanted: %#v", got, normalized)
}

func normalize(want map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(want)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// check validates the envelope and then dispatches the expectation against
// the remaining body. Every waiter funnels each record through here.
func check(r Record, exp Expectation, equal EqualFunc) error {
	if err := r.checkEnvelope(time.Now()); err != nil {
		return err
	}
	switch e := exp.(type) {
	case fieldsExpectation:
		return equal(r.Body(), e.want)
	case inspectExpectation:
		return e.fn(r.Body())
	default:
		return fmt.Errorf("unsupported expectation type %T", exp)
	}
}

// expectationMsg identifies an expectation in timeout and budget errors:
// the msg field for a literal expectation that carries one, otherwise a
// generic placeholder.
func expectationMsg(exp Expectation) string {
	if e, ok := exp.(fieldsExpectation); ok {
		if msg, ok := e.want[msgKey].(string); ok {
			return msg
		}
	}
	return "unknown"
}
