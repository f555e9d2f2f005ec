package timewindow

import (
	"testing"
	"time"
)

func TestToLocalAppliesFractionalOffset(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got := ToLocal(base, -3.5)
	want := time.Date(2024, 12, 31, 20, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToLocal = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", got.Location())
	}
}

func TestToLocalNormalizesInputZone(t *testing.T) {
	zone := time.FixedZone("X", 5*3600)
	instant := time.Date(2025, 6, 1, 5, 0, 0, 0, zone)
	got := ToLocal(instant, 2)
	if got.Hour() != 2 || got.Day() != 1 {
		t.Fatalf("unexpected local time %v", got)
	}
}

func TestCutoffs(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := ForwardCutoff(now, 14); !got.Equal(now.AddDate(0, 0, 14)) {
		t.Fatalf("ForwardCutoff = %v", got)
	}
	if got := BackwardCutoff(now, 7); !got.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("BackwardCutoff = %v", got)
	}
}

func TestWindowBoundaries(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	fwd := ForwardCutoff(now, 1)
	back := BackwardCutoff(now, 1)

	tests := []struct {
		name     string
		at       time.Time
		forward  bool
		backward bool
	}{
		{name: "now", at: now, forward: false, backward: true},
		{name: "forward edge", at: fwd, forward: true, backward: false},
		{name: "past forward edge", at: fwd.Add(time.Second), forward: false, backward: false},
		{name: "backward edge", at: back, forward: false, backward: true},
		{name: "before backward edge", at: back.Add(-time.Second), forward: false, backward: false},
		{name: "one hour ahead", at: now.Add(time.Hour), forward: true, backward: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InForward(tt.at, now, fwd); got != tt.forward {
				t.Fatalf("InForward = %v, want %v", got, tt.forward)
			}
			if got := InBackward(tt.at, now, back); got != tt.backward {
				t.Fatalf("InBackward = %v, want %v", got, tt.backward)
			}
		})
	}
}

func TestFrameLocal(t *testing.T) {
	frame := NewFrame(time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC), -3)
	if got := frame.NowLocal(); got.Day() != 31 || got.Hour() != 22 {
		t.Fatalf("NowLocal = %v", got)
	}
	air := time.Date(2025, 1, 2, 2, 0, 0, 0, time.UTC)
	if got := frame.Local(air); got.Day() != 1 || got.Hour() != 23 {
		t.Fatalf("Local = %v", got)
	}
}
