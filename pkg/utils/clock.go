// Package utils provides utility functions and types.
package utils

import "time"

// Clock provides an interface for time operations, making code testable.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the duration since the given time.
	Since(t time.Time) time.Duration
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// NewRealClock creates a new RealClock instance.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the duration since the given time.
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// ManualClock implements Clock for testing; time only moves when
// advanced explicitly.
type ManualClock struct {
	currentTime time.Time
}

// NewManualClock creates a new ManualClock at the given start time.
func NewManualClock(startTime time.Time) *ManualClock {
	return &ManualClock{currentTime: startTime}
}

// Now returns the manual current time.
func (c *ManualClock) Now() time.Time {
	return c.currentTime
}

// Since returns the duration since the given time using manual time.
func (c *ManualClock) Since(t time.Time) time.Duration {
	return c.currentTime.Sub(t)
}

// Advance moves the clock forward by the given duration.
func (c *ManualClock) Advance(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}
