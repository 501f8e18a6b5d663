package shared

import "time"

// Clock supplies the current instant and the current UTC calendar date
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns the current time in UTC
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Today returns midnight UTC of the current date
func (c SystemClock) Today() time.Time {
	return DateOf(c.Now())
}

// FixedClock always returns the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant in UTC
func (c FixedClock) Now() time.Time {
	return c.At.UTC()
}

// Today returns midnight UTC of the fixed instant's date
func (c FixedClock) Today() time.Time {
	return DateOf(c.At)
}

// DateOf truncates t to midnight UTC of its UTC calendar date
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC date at midnight
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
