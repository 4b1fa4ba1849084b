package pufu

import "errors"

// ErrInvalidLength covers every size- or offset-related decode failure:
// a buffer shorter than the header, offsets outside the payload, u32
// overflow during finalize, fixed-region or var-entry overruns, and Var2
// fields used outside the last-variable-field position.
var ErrInvalidLength = errors.New("invalid length")

// ErrValidationFailed covers magic mismatch, version mismatch when a
// caller chooses to enforce one, and caller-defined structural checks.
var ErrValidationFailed = errors.New("validation failed")

// MessageError is a diagnostic escape hatch for callers; the core paths in
// this package never produce one.
type MessageError struct {
	Msg string
}

func (e *MessageError) Error() string { return e.Msg }
