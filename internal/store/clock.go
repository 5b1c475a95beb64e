package store

import "time"

// Clock provides the current time. Tests pin it to a fixed day.
type Clock interface {
	Now() time.Time
}

// RealClock provides actual system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports Time.
type FixedClock struct {
	Time time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.Time
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.Time = c.Time.Add(d)
}
