// Package timewindow applies a fixed hour offset to UTC instants and computes
// the boundaries of "next N days" and "last N days" windows.
//
// Local instants produced here are still time.Time values in UTC; the offset
// is folded into the instant so calendar fields read as local wall time. No
// time zone database is consulted.
package timewindow

import "time"

const day = 24 * time.Hour

// ToLocal shifts a UTC instant by a fixed, possibly fractional, hour offset.
func ToLocal(instant time.Time, offsetHours float64) time.Time {
	return instant.UTC().Add(time.Duration(offsetHours * float64(time.Hour)))
}

// ForwardCutoff is the far edge of a window that looks days ahead of now.
func ForwardCutoff(nowLocal time.Time, days int) time.Time {
	return nowLocal.Add(time.Duration(days) * day)
}

// BackwardCutoff is the far edge of a window that looks days behind now.
func BackwardCutoff(nowLocal time.Time, days int) time.Time {
	return nowLocal.Add(-time.Duration(days) * day)
}

// InForward reports now < t <= cutoff.
func InForward(t, nowLocal, cutoff time.Time) bool {
	return t.After(nowLocal) && !t.After(cutoff)
}

// InBackward reports cutoff <= t <= now.
func InBackward(t, nowLocal, cutoff time.Time) bool {
	return !t.Before(cutoff) && !t.After(nowLocal)
}

// Frame pins a reference instant and offset so every classifier in a run
// agrees on what "now" is.
type Frame struct {
	Now         time.Time
	OffsetHours float64
}

// NewFrame builds a frame from a UTC reference instant.
func NewFrame(now time.Time, offsetHours float64) Frame {
	return Frame{Now: now.UTC(), OffsetHours: offsetHours}
}

// NowLocal is the reference instant with the offset applied.
func (f Frame) NowLocal() time.Time {
	return ToLocal(f.Now, f.OffsetHours)
}

// Local converts a UTC instant into the frame's local time.
func (f Frame) Local(instant time.Time) time.Time {
	return ToLocal(instant, f.OffsetHours)
}
