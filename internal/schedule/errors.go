package schedule

import "errors"

// ErrInvalidSchedule is returned when a schedule fails validation.
var ErrInvalidSchedule = errors.New("invalid schedule")
