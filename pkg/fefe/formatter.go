// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package fefe

import (
	"fmt"
	"strings"
)

// FormatRunMode returns the human-readable run mode label.
func FormatRunMode(m RunMode) string {
	switch m {
	case RunModeMax:
		return "MAX"
	case RunModeEco:
		return "ECO"
	default:
		return "UNKNOWN"
	}
}

// FormatBatSaver returns the human-readable battery saver label.
func FormatBatSaver(b BatSaver) string {
	switch b {
	case BatSaverLow:
		return "Low"
	case BatSaverMid:
		return "Mid"
	case BatSaverHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// UnitSuffix returns the temperature suffix for the report's unit.
func UnitSuffix(u TempUnit) string {
	if u == UnitFahrenheit {
		return "°F"
	}
	return "°C"
}

// FormatVoltage renders the battery voltage from its integer and tenths
// parts, e.g. 12, 8 → "12.80 V".
func FormatVoltage(volInt, volDec uint8) string {
	return fmt.Sprintf("%.2f V", float64(volInt)+float64(volDec)/10.0)
}

// FormatStatus formats a decoded report into a multi-line block for the
// monitor log.
func FormatStatus(s *StatusReport) string {
	timestamp := s.Timestamp.Format("15:04:05.000")
	unit := UnitSuffix(s.Unit)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] STATUS (single-zone)\n", timestamp)
	fmt.Fprintf(&b, "  Power: %s, Lock: %s\n", OnOff(s.PoweredOn), YesNo(s.Locked))
	fmt.Fprintf(&b, "  Mode: %s, Battery saver: %s\n", FormatRunMode(s.RunMode), FormatBatSaver(s.BatSaver))
	fmt.Fprintf(&b, "  Current: %d%s, Target: %d%s (range %d%s to %d%s)\n",
		s.LeftCurrent, unit, s.LeftTarget, unit, s.TempMin, unit, s.TempMax, unit)
	fmt.Fprintf(&b, "  Return diff: %d%s, Start delay: %d min\n", s.LeftRetDiff, unit, s.StartDelay)
	fmt.Fprintf(&b, "  TC curve: hot=%d mid=%d cold=%d halt=%d\n",
		s.LeftTCHot, s.LeftTCMid, s.LeftTCCold, s.LeftTCHalt)
	fmt.Fprintf(&b, "  Battery: %d%%, %s\n", s.BatPercent, FormatVoltage(s.BatVolInt, s.BatVolDec))
	return b.String()
}

// FormatRawFrame hex-dumps a frame for decode-failure diagnostics.
func FormatRawFrame(data []byte) string {
	var b strings.Builder
	b.WriteString("  Raw: ")
	for i, by := range data {
		if i > 0 && i%16 == 0 {
			b.WriteString("\n       ")
		}
		fmt.Fprintf(&b, "%02X ", by)
	}
	return b.String()
}

func OnOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func YesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}
