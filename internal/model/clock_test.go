package model

import (
	"testing"
	"time"
)

func TestClockCountsOnlyWhileRunning(t *testing.T) {
	c := NewClock(time.Second)

	if got := c.GetTimeLeft(); got != time.Second {
		t.Fatalf("fresh clock has %v, want 1s", got)
	}

	c.Start()
	time.Sleep(20 * time.Millisecond)
	c.Stop()

	after := c.GetTimeLeft()
	if after >= time.Second {
		t.Errorf("running clock did not count down: %v", after)
	}

	time.Sleep(20 * time.Millisecond)
	if got := c.GetTimeLeft(); got != after {
		t.Errorf("stopped clock moved from %v to %v", after, got)
	}
}

func TestClockStartStopIdempotent(t *testing.T) {
	c := NewClock(time.Second)

	c.Start()
	c.Start()
	c.Stop()
	c.Stop()

	if got := c.GetTimeLeft(); got > time.Second {
		t.Errorf("time left grew to %v", got)
	}
}
