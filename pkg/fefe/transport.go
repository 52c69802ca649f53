// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package fefe

// Sender is the outbound half of the transport boundary. SendFrame is
// fire-and-forget: the session never tracks completion, and any reply
// arrives later as a separate notification.
type Sender interface {
	SendFrame(data []byte) error
}

// EventType tags the lifecycle signals a transport raises into the
// session. These replace the callback classes a BLE stack would hand
// us with a small closed set the transition function can switch on.
type EventType int

// Transport lifecycle events
const (
	EventDeviceFound EventType = iota
	EventConnected
	EventEndpointsResolved
	EventConnectFailed
	EventDisconnected
)

// String returns the event name for logs.
func (e EventType) String() string {
	switch e {
	case EventDeviceFound:
		return "DEVICE_FOUND"
	case EventConnected:
		return "CONNECTED"
	case EventEndpointsResolved:
		return "ENDPOINTS_RESOLVED"
	case EventConnectFailed:
		return "CONNECT_FAILED"
	case EventDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// Logger receives diagnostics from the session. Transitions never fail;
// anything worth knowing about (send errors, out-of-phase events) goes
// here instead.
type Logger interface {
	Printf(format string, args ...interface{})
}
