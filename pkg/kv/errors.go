package kv

import "fmt"

// SessionLogicError reports that a caller violated a session-level
// invariant, such as removing a key twice within the same open session.
// The offending operation is rejected without side effect; the stack and
// live state remain consistent.
type SessionLogicError struct {
	Key string
	Msg string
}

func (e *SessionLogicError) Error() string {
	return fmt.Sprintf("session logic error: %s (key %q)", e.Msg, e.Key)
}

func newDoubleRemoveError(key string) *SessionLogicError {
	return &SessionLogicError{Key: key, Msg: "key already removed within this session"}
}
