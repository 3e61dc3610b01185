package collection

import "time"

// Option configures a collection.
type Option func(*settings)

type settings struct {
	now func() time.Time
}

// WithClock overrides the time source used for routine ids, creation times
// and export timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

func applyOptions(opts []Option) settings {
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
