// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package fefe

import "time"

// StatusReport is the decoded single-zone query response. Fields map
// 1:1 onto the 18 payload bytes at fixed offsets; "left" refers to the
// single compartment (the naming the dual-zone firmware family uses).
type StatusReport struct {
	Locked    bool
	PoweredOn bool
	RunMode   RunMode
	BatSaver  BatSaver

	LeftTarget  int8  // target temperature
	TempMax     int8  // configured temperature ceiling
	TempMin     int8  // configured temperature floor
	LeftRetDiff uint8 // return differential
	StartDelay  uint8 // compressor start delay
	Unit        TempUnit

	// Thermal compensation curve points
	LeftTCHot  int8
	LeftTCMid  int8
	LeftTCCold int8
	LeftTCHalt int8

	LeftCurrent int8  // measured temperature
	BatPercent  uint8 // battery percentage
	BatVolInt   uint8 // battery voltage, integer part
	BatVolDec   uint8 // battery voltage, tenths

	// DeclaredLength is the frame's length byte, kept for validation.
	// The firmware's value does not match any obvious interpretation of
	// the actual frame size, so Decode does not check it.
	DeclaredLength uint8

	Timestamp time.Time
}

// BatteryVoltage combines the integer and tenths parts into volts.
func (s *StatusReport) BatteryVoltage() float64 {
	return float64(s.BatVolInt) + float64(s.BatVolDec)/10.0
}
