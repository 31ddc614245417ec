package service

import "time"

// Clock returns the current time in the business timezone
type Clock func() time.Time

// NewClock returns a clock reading the wall time in loc
func NewClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}
