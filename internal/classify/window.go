package classify

import (
	"time"

	"tssk/internal/timewindow"
)

// Window configures one classifier run.
type Window struct {
	Frame           timewindow.Frame
	Days            int
	SkipUnmonitored bool
}

// NewWindow builds a window anchored at now (UTC) with a fixed hour offset.
func NewWindow(now time.Time, offsetHours float64, days int, skipUnmonitored bool) Window {
	return Window{
		Frame:           timewindow.NewFrame(now, offsetHours),
		Days:            days,
		SkipUnmonitored: skipUnmonitored,
	}
}

// WithDays returns a copy using a different span.
func (w Window) WithDays(days int) Window {
	w.Days = days
	return w
}

func (w Window) nowLocal() time.Time {
	return w.Frame.NowLocal()
}

func (w Window) forwardCutoff() time.Time {
	return timewindow.ForwardCutoff(w.nowLocal(), w.Days)
}

func (w Window) backwardCutoff() time.Time {
	return timewindow.BackwardCutoff(w.nowLocal(), w.Days)
}
