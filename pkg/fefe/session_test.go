package fefe

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeSender records frames handed to the transport.
type fakeSender struct {
	frames [][]byte
	err    error
}

func (f *fakeSender) SendFrame(data []byte) error {
	if f.err != nil {
		return f.err
	}
	frame := make([]byte, len(data))
	copy(frame, data)
	f.frames = append(f.frames, frame)
	return nil
}

// recordingLogger captures session diagnostics.
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestSession_FirstContact(t *testing.T) {
	sender := &fakeSender{}
	s := NewSession(sender)

	if s.Phase() != PhaseDisconnected {
		t.Fatalf("initial phase: got %s, want DISCONNECTED", s.Phase())
	}

	s.HandleEvent(EventDeviceFound)
	if s.Phase() != PhaseConnecting {
		t.Fatalf("after DeviceFound: got %s, want CONNECTING", s.Phase())
	}
	if len(sender.frames) != 0 {
		t.Fatal("no frame may be sent before endpoints resolve")
	}

	s.HandleEvent(EventConnected)
	if s.Phase() != PhaseConnecting {
		t.Fatalf("after Connected: got %s, want CONNECTING", s.Phase())
	}

	s.HandleEvent(EventEndpointsResolved)
	if s.Phase() != PhaseBound {
		t.Fatalf("after EndpointsResolved: got %s, want BOUND", s.Phase())
	}
	if len(sender.frames) != 1 {
		t.Fatalf("got %d frames after binding, want exactly 1", len(sender.frames))
	}
	if !bytes.Equal(sender.frames[0], BuildBind()) {
		t.Errorf("bound with % X, want BIND bytes", sender.frames[0])
	}

	// The query timer is armed "due now": the very next tick queries.
	now := time.Now()
	s.Tick(now)
	if len(sender.frames) != 2 {
		t.Fatalf("got %d frames after first tick, want 2", len(sender.frames))
	}
	if !bytes.Equal(sender.frames[1], BuildQuery()) {
		t.Errorf("first tick sent % X, want QUERY bytes", sender.frames[1])
	}
	if s.Phase() != PhasePolling {
		t.Errorf("after first query: got %s, want POLLING", s.Phase())
	}
}

func TestSession_QueryInterval(t *testing.T) {
	sender := &fakeSender{}
	s := NewSession(sender, WithQueryInterval(time.Minute))

	s.HandleEvent(EventDeviceFound)
	s.HandleEvent(EventEndpointsResolved)

	base := time.Now()
	s.Tick(base) // bind + immediate first query
	sent := len(sender.frames)

	// Within the interval: nothing new
	s.Tick(base.Add(30 * time.Second))
	s.Tick(base.Add(59 * time.Second))
	if len(sender.frames) != sent {
		t.Fatalf("query sent before interval elapsed (%d frames)", len(sender.frames))
	}

	// Interval measured from last issue, not connection time
	s.Tick(base.Add(60 * time.Second))
	if len(sender.frames) != sent+1 {
		t.Fatalf("got %d frames at interval, want %d", len(sender.frames), sent+1)
	}
	if !bytes.Equal(sender.frames[sent], BuildQuery()) {
		t.Error("interval tick did not send QUERY bytes")
	}

	// Next query is due a full interval after the second one
	s.Tick(base.Add(90 * time.Second))
	if len(sender.frames) != sent+1 {
		t.Fatal("query re-issued too early after the second query")
	}
	s.Tick(base.Add(120 * time.Second))
	if len(sender.frames) != sent+2 {
		t.Fatal("third query not issued a full interval after the second")
	}
}

func TestSession_ConnectFailed(t *testing.T) {
	sender := &fakeSender{}
	s := NewSession(sender)

	s.HandleEvent(EventDeviceFound)
	s.HandleEvent(EventConnectFailed)

	if s.Phase() != PhaseDisconnected {
		t.Errorf("after ConnectFailed: got %s, want DISCONNECTED", s.Phase())
	}
	if len(sender.frames) != 0 {
		t.Error("frames sent despite connect failure")
	}

	// No queries fire while disconnected
	s.Tick(time.Now())
	if len(sender.frames) != 0 {
		t.Error("tick sent a frame while disconnected")
	}
}

func TestSession_DisconnectFromPolling(t *testing.T) {
	sender := &fakeSender{}
	s := NewSession(sender)

	s.HandleEvent(EventDeviceFound)
	s.HandleEvent(EventEndpointsResolved)
	s.Tick(time.Now())
	if s.Phase() != PhasePolling {
		t.Fatalf("setup: got %s, want POLLING", s.Phase())
	}

	s.HandleEvent(EventDisconnected)
	if s.Phase() != PhaseDisconnected {
		t.Errorf("after Disconnected: got %s, want DISCONNECTED", s.Phase())
	}

	sent := len(sender.frames)
	s.Tick(time.Now().Add(2 * time.Hour))
	if len(sender.frames) != sent {
		t.Error("tick sent a frame after disconnect")
	}
}

func TestSession_OutOfPhaseEventLogged(t *testing.T) {
	sender := &fakeSender{}
	logger := &recordingLogger{}
	s := NewSession(sender, WithLogger(logger))

	// EndpointsResolved without a preceding DeviceFound is nonsense;
	// the phase must hold and the event must be reported.
	s.HandleEvent(EventEndpointsResolved)

	if s.Phase() != PhaseDisconnected {
		t.Errorf("phase changed on out-of-phase event: %s", s.Phase())
	}
	if len(sender.frames) != 0 {
		t.Error("out-of-phase event triggered a send")
	}
	if len(logger.lines) == 0 {
		t.Error("out-of-phase event was not logged")
	}
}

func TestSession_SendFailureKeepsPhase(t *testing.T) {
	sender := &fakeSender{err: errors.New("gatt write rejected")}
	logger := &recordingLogger{}
	s := NewSession(sender, WithLogger(logger))

	s.HandleEvent(EventDeviceFound)
	s.HandleEvent(EventEndpointsResolved)

	// The bind write failed, but sends are fire-and-forget: the phase
	// advances anyway and the failure is logged.
	if s.Phase() != PhaseBound {
		t.Errorf("got %s, want BOUND despite send failure", s.Phase())
	}
	if len(logger.lines) == 0 {
		t.Error("send failure was not logged")
	}
}

func TestSession_SingleSlotOverwrite(t *testing.T) {
	s := NewSession(&fakeSender{})

	s.OnNotification([]byte{0x01, 0x02})
	s.OnNotification([]byte{0x03, 0x04})

	data, ok := s.DrainPending()
	if !ok {
		t.Fatal("drain returned nothing after two notifications")
	}
	if !bytes.Equal(data, []byte{0x03, 0x04}) {
		t.Errorf("drained % X, want the second notification", data)
	}

	if _, ok := s.DrainPending(); ok {
		t.Error("second drain returned data; slot must be cleared")
	}
}

func TestSession_NotificationStoredInAnyPhase(t *testing.T) {
	s := NewSession(&fakeSender{})

	// Unsolicited notification while disconnected is still buffered
	s.OnNotification([]byte{0xFE, 0xFE, 0x00})

	data, ok := s.DrainPending()
	if !ok || len(data) != 3 {
		t.Error("out-of-phase notification was dropped")
	}
}

func TestSession_NotificationCopiesBytes(t *testing.T) {
	s := NewSession(&fakeSender{})

	buf := []byte{0xAA, 0xBB}
	s.OnNotification(buf)
	buf[0] = 0x00 // caller reuses its buffer

	data, _ := s.DrainPending()
	if data[0] != 0xAA {
		t.Error("notification aliased the caller's buffer")
	}
}
