package check

import "fmt"

// MalformedResponseError indicates a remote model returned a payload that
// does not match the expected shape for its kind. The orchestrator treats
// it like a failed call and escalates to the next model.
type MalformedResponseError struct {
	Kind    ModelKind
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed %s response: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed %s response: %s", e.Kind, e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
