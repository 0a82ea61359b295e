package ui

import (
	"testing"
	"time"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	s := NewSpinner("Thinking")
	s.Start()
	// Let it spin briefly
	time.Sleep(50 * time.Millisecond)
	// Should stop cleanly and print success
	s.StopWithSuccess("done")
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	s := NewSpinner("Thinking")
	s.Start()
	time.Sleep(30 * time.Millisecond)
	// Should stop cleanly on error (no panic)
	s.StopWithError()
}

func TestSpinnerLifecycle_DoubleStop(t *testing.T) {
	s := NewSpinner("Thinking")
	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	// Second stop must not panic on the closed channel
	s.Stop()
}

func TestSpinnerSetMessage(t *testing.T) {
	s := NewSpinner("Thinking")
	s.Start()
	for i := 0; i < 5; i++ {
		s.SetMessage("Generating")
		time.Sleep(10 * time.Millisecond)
	}
	s.Stop()
}
