package core

import (
	"testing"
	"time"
)

func TestTimeFpsTicker(t *testing.T) {
	timeService := NewTime(TimeConfiguration{FramesPerSecond: 60})
	if timeService.Fps() != 60 {
		t.Errorf("unexpected fps %d", timeService.Fps())
	}

	ticker := timeService.FpsTicker()
	if ticker == nil {
		t.Fatal("nil ticker")
	}
	defer ticker.Stop()

	select {
	case <-ticker.C:
	case <-time.After(time.Second):
		t.Error("ticker never fired at 60fps")
	}
}

func TestTimeUncappedTicker(t *testing.T) {
	timeService := NewTime(TimeConfiguration{})
	ticker := timeService.FpsTicker()
	defer ticker.Stop()

	select {
	case <-ticker.C:
	case <-time.After(time.Second):
		t.Error("uncapped ticker never fired")
	}
}
