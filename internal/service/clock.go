package service

import "time"

// Clock abstracts "now" so time-boundary guards are testable.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }
