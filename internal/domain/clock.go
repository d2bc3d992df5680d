package domain

import "time"

// Clock abstracts wall-clock reads so duration math is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now func
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now func
func (f ClockFunc) Now() time.Time {
	return f()
}

// ElapsedSeconds returns floor(end - start) in whole seconds, never negative.
func ElapsedSeconds(start, end time.Time) int64 {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
