// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

// Package fefe provides a client-side Go implementation of the FEFE
// protocol spoken by BLE-connected compressor fridges.
//
// The package covers the frame codec (checksum, encode, decode), the
// connection/session state machine that sequences bind and query
// traffic, and helpers for rendering decoded status reports.
package fefe

import "time"

// Protocol framing
const (
	SyncByte = 0xFE

	// CmdQueryResponse is the only inbound command this driver decodes.
	// Other command codes (dual-zone telemetry, set acknowledgements)
	// are rejected rather than misparsed.
	CmdQueryResponse = 0x01
)

// Frame size limits
const (
	// MinFrameSize is the smallest valid single-zone response:
	// 2 sync + 1 length + 1 command + 18 payload + 2 checksum.
	MinFrameSize = 24

	// MaxFrameSize bounds the streaming scanner's accumulation window.
	// Dual-zone variants send larger frames; 64 leaves headroom without
	// letting a missed sync run away.
	MaxFrameSize = 64

	PayloadSize  = 18
	ChecksumSize = 2
)

// BLE identity of the fridge controller. The transport layer matches
// advertisements and resolves characteristics against these.
const (
	DeviceName      = "WT-0001"
	ServiceUUID     = 0x1234
	WriteCharUUID   = 0x1235
	NotifyCharUUID  = 0x1236
)

// DefaultQueryInterval is how often a status query is re-issued,
// measured from the last issue time.
const DefaultQueryInterval = 60 * time.Second

// RunMode is the compressor power mode.
type RunMode uint8

// Run mode values
const (
	RunModeMax RunMode = 0
	RunModeEco RunMode = 1
)

// BatSaver is the low-voltage cutoff profile protecting the supply
// battery.
type BatSaver uint8

// Battery saver levels
const (
	BatSaverLow  BatSaver = 0
	BatSaverMid  BatSaver = 1
	BatSaverHigh BatSaver = 2
)

// TempUnit is the display unit reported by the fridge.
type TempUnit uint8

// Temperature unit values
const (
	UnitCelsius    TempUnit = 0
	UnitFahrenheit TempUnit = 1
)

// Session phases
type Phase int

const (
	PhaseDisconnected Phase = iota
	PhaseConnecting
	PhaseBound
	PhasePolling
)

// String returns the phase name for logs and the TUI.
func (p Phase) String() string {
	switch p {
	case PhaseDisconnected:
		return "DISCONNECTED"
	case PhaseConnecting:
		return "CONNECTING"
	case PhaseBound:
		return "BOUND"
	case PhasePolling:
		return "POLLING"
	default:
		return "UNKNOWN"
	}
}
