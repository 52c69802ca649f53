// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package fefe

import (
	"sync"
	"time"
)

// Session is the connection/session state machine. It owns the phase,
// gates when BIND and QUERY frames may be sent, and buffers the most
// recent notification in a single overwrite slot.
//
// HandleEvent and Tick are called from the driver-loop goroutine.
// OnNotification may be called from any goroutine (BLE stacks deliver
// notifications from callback context); it only touches the pending
// slot, which is mutex-guarded against DrainPending. Timer state is
// driver-loop-only and needs no lock.
type Session struct {
	sender Sender
	logger Logger

	queryInterval time.Duration

	phase     Phase
	lastQuery time.Time
	queryDue  bool // forces a query on the next tick regardless of lastQuery

	mu         sync.Mutex
	pending    []byte
	hasPending bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithQueryInterval overrides the 60 second default between status
// queries.
func WithQueryInterval(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.queryInterval = d
		}
	}
}

// WithLogger sets a diagnostics logger. Without one the session stays
// silent.
func WithLogger(l Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession creates a session in the Disconnected phase. The sender is
// the transport's write endpoint; it must not be nil.
func NewSession(sender Sender, opts ...SessionOption) *Session {
	if sender == nil {
		panic("fefe: sender cannot be nil")
	}
	s := &Session{
		sender:        sender,
		queryInterval: DefaultQueryInterval,
		phase:         PhaseDisconnected,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the current session phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// HandleEvent runs the transition function for a transport lifecycle
// event. Transitions never return errors: malformed or out-of-phase
// events leave the phase unchanged and are logged.
func (s *Session) HandleEvent(ev EventType) {
	switch ev {
	case EventDeviceFound:
		if s.phase == PhaseDisconnected {
			s.phase = PhaseConnecting
			return
		}

	case EventConnected:
		// Connected alone is not enough to talk: wait for the write and
		// notify characteristics to resolve.
		if s.phase == PhaseConnecting {
			return
		}

	case EventEndpointsResolved:
		if s.phase == PhaseConnecting {
			s.phase = PhaseBound
			s.send(BuildBind(), "BIND")
			// Arm the timer so the very next tick issues a query
			// instead of waiting out a full interval.
			s.queryDue = true
			return
		}

	case EventConnectFailed:
		if s.phase == PhaseConnecting {
			// No retry is scheduled here; the driver loop re-enters
			// scanning on its next tick.
			s.phase = PhaseDisconnected
			return
		}

	case EventDisconnected:
		if s.phase != PhaseDisconnected {
			s.phase = PhaseDisconnected
			s.queryDue = false
			return
		}
	}

	s.logf("ignoring %s in phase %s", ev, s.phase)
}

// Tick drives the query timer. Call it once per driver-loop iteration
// with the current wall-clock time; when a query is due it is sent and
// the timer restarts from now (not from connection time).
func (s *Session) Tick(now time.Time) {
	if s.phase != PhaseBound && s.phase != PhasePolling {
		return
	}
	if !s.queryDue && now.Sub(s.lastQuery) < s.queryInterval {
		return
	}
	s.queryDue = false
	s.lastQuery = now
	s.phase = PhasePolling
	s.send(BuildQuery(), "QUERY")
}

// OnNotification stores raw notification bytes in the pending slot,
// overwriting anything undrained. Notifications are stored regardless
// of phase; the fridge occasionally pushes unsolicited frames.
func (s *Session) OnNotification(data []byte) {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.pending = buf
	s.hasPending = true
	s.mu.Unlock()
}

// DrainPending takes and clears the pending notification. The second
// return is false when nothing new arrived since the last drain.
func (s *Session) DrainPending() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasPending {
		return nil, false
	}
	data := s.pending
	s.pending = nil
	s.hasPending = false
	return data, true
}

func (s *Session) send(frame []byte, name string) {
	if err := s.sender.SendFrame(frame); err != nil {
		// Fire-and-forget: a failed write is logged, never retried.
		// A dead transport surfaces as a Disconnected event.
		s.logf("%s send failed: %v", name, err)
	}
}

func (s *Session) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
