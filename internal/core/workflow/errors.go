package workflow

import "errors"

var (
	ErrInFlight     = errors.New("operation already in flight")
	ErrWrongStage   = errors.New("operation not allowed in current stage")
	ErrStale        = errors.New("response arrived for a record that is no longer shown")
	ErrNotConfirmed = errors.New("delete was not confirmed")
)
