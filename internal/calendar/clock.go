package calendar

import (
	"fmt"
	"time"
)

// Clock resolves "today" in one configured location.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

// NewClock returns a Clock for the named IANA location. "" and "Local"
// select the host's local zone.
func NewClock(name string) (Clock, error) {
	loc := time.Local
	if name != "" && name != "Local" {
		var err error
		loc, err = time.LoadLocation(name)
		if err != nil {
			return Clock{}, fmt.Errorf("loading timezone %q: %w", name, err)
		}
	}
	return Clock{Location: loc, Now: time.Now}, nil
}

// Fixed returns a Clock frozen at t, in t's location.
func Fixed(t time.Time) Clock {
	return Clock{Location: t.Location(), Now: func() time.Time { return t }}
}

func (c Clock) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Time returns the current instant in the clock's location.
func (c Clock) Time() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.loc())
}

// Today returns the current calendar day.
func (c Clock) Today() Date {
	return dateOf(c.Time())
}

// DateOf returns the calendar day t falls on in the clock's location.
func (c Clock) DateOf(t time.Time) Date {
	return In(t, c.loc())
}

// ParseDate reads a "YYYY-MM-DD" date, or an RFC3339 timestamp converted to
// the day it falls on in the clock's location.
func (c Clock) ParseDate(s string) (Date, error) {
	if d, err := Parse(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return c.DateOf(t), nil
}

// Loc exposes the location for callers that format timestamps.
func (c Clock) Loc() *time.Location {
	return c.loc()
}
