package eventstream

import "errors"

// ErrNilRoutineEvent indicates a nil routine event payload was provided to a publisher.
var ErrNilRoutineEvent = errors.New("nil routine event")
