package llm

import "fmt"

// ErrUnavailable wraps transport, auth and quota failures reaching the
// oracle. Callers map it to a retry-later response; no partial result is
// ever returned alongside it.
var ErrUnavailable = fmt.Errorf("oracle unavailable")

// MalformedResponseError indicates the oracle returned text that could not
// be parsed as the expected JSON shape, even after the repair pass. Callers
// treat it like an availability failure; the distinction is not actionable
// for the user.
type MalformedResponseError struct {
	Reason string
	Cause  error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed oracle response: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed oracle response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
