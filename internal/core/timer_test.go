package core

import (
	"testing"
	"time"
)

func TestFrameClockHonoursDelay(t *testing.T) {
	now := time.Unix(100, 0)
	fc := NewFrameClock(50 * time.Millisecond)
	fc.now = func() time.Time { return now }

	if !fc.Due() {
		t.Fatal("first poll should be due")
	}
	now = now.Add(20 * time.Millisecond)
	if fc.Due() {
		t.Fatal("poll inside the delay window should not be due")
	}
	now = now.Add(30 * time.Millisecond)
	if !fc.Due() {
		t.Fatal("poll after the delay should be due")
	}

	fc.Reset()
	if !fc.Due() {
		t.Fatal("poll after Reset should be due")
	}
}

func TestFrameClockNegativeDelay(t *testing.T) {
	fc := NewFrameClock(-time.Second)
	if fc.Delay() != 0 {
		t.Fatalf("negative delay should clamp to zero, got %v", fc.Delay())
	}
	if !fc.Due() || !fc.Due() {
		t.Fatal("zero delay should let every poll through")
	}
}
