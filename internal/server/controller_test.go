package server

import "testing"

func TestControllerRecordDispatchStopsAtThreshold(t *testing.T) {
	c := NewController(3)

	// RecordDispatch compares the count from before the increment, so the
	// first three dispatches leave the controller running and the fourth,
	// which finds the count already at the threshold, stops it.
	for i := 0; i < 4; i++ {
		if c.Stopped() {
			t.Fatalf("controller stopped early at dispatch %d", i)
		}
		c.RecordDispatch()
	}
	if !c.Stopped() {
		t.Fatalf("expected controller to be stopped once a dispatch found the count at the threshold")
	}
	if got := c.PackagesServed(); got != 4 {
		t.Fatalf("PackagesServed() = %d, want 4", got)
	}
}

func TestControllerDoneClosesWhenThresholdCrossed(t *testing.T) {
	c := NewController(2)
	select {
	case <-c.Done():
		t.Fatalf("Done() closed before the threshold was reached")
	default:
	}

	// Two dispatches bring the count to the threshold; the third crosses it.
	c.RecordDispatch()
	c.RecordDispatch()
	c.RecordDispatch()

	select {
	case <-c.Done():
	default:
		t.Fatalf("Done() should be closed once the threshold is crossed")
	}
}

func TestControllerDoneClosedImmediatelyForZeroThreshold(t *testing.T) {
	c := NewController(0)
	select {
	case <-c.Done():
	default:
		t.Fatalf("Done() should already be closed for a zero threshold")
	}
}

func TestControllerZeroThresholdStartsStopped(t *testing.T) {
	c := NewController(0)
	if !c.Stopped() {
		t.Fatalf("expected a zero threshold to start the controller stopped")
	}
	if c.PackagesServed() != 0 {
		t.Fatalf("expected no packages served before any dispatch")
	}
}

func TestControllerSessionJoinLeave(t *testing.T) {
	c := NewController(10)
	c.SessionJoined()
	c.SessionJoined()
	if got := c.ActiveSessions(); got != 2 {
		t.Fatalf("ActiveSessions() = %d, want 2", got)
	}
	c.SessionLeft()
	if got := c.ActiveSessions(); got != 1 {
		t.Fatalf("ActiveSessions() = %d, want 1", got)
	}
}

func TestControllerSessionLeftPastZeroPanics(t *testing.T) {
	c := NewController(10)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected SessionLeft to panic when active sessions would go negative")
		}
	}()
	c.SessionLeft()
}
