// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package fefe

import "fmt"

// AnomalyType classifies suspicious values in frames that decoded
// cleanly. Anomalies never block decoding; they exist so the monitor
// can highlight data the firmware should not be producing.
type AnomalyType int

const (
	AnomalyLengthMismatch AnomalyType = iota
	AnomalyInvalidPercent
	AnomalyInvalidTenths
	AnomalyTargetOutOfRange
	AnomalyInvertedRange
)

// ValidationError describes one detected anomaly.
type ValidationError struct {
	Type    AnomalyType
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	return v.Message
}

// ValidateStatus checks a decoded report for anomalous values.
// Returns an empty slice for a clean report.
func ValidateStatus(s *StatusReport, frameLen int) []ValidationError {
	errors := []ValidationError{}

	// The length byte matches no consistent interpretation of the frame
	// size in observed firmware, so Decode accepts anything. Flag it
	// when it disagrees with both plausible readings: bytes after the
	// length byte, and payload plus checksum.
	afterLength := frameLen - 3
	payloadPlusSum := PayloadSize + ChecksumSize
	if int(s.DeclaredLength) != afterLength && int(s.DeclaredLength) != payloadPlusSum {
		errors = append(errors, ValidationError{
			Type:    AnomalyLengthMismatch,
			Message: fmt.Sprintf("Declared length %d matches neither %d nor %d", s.DeclaredLength, afterLength, payloadPlusSum),
			Details: map[string]interface{}{"declared": s.DeclaredLength, "frame_len": frameLen},
		})
	}

	if s.BatPercent > 100 {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidPercent,
			Message: fmt.Sprintf("Battery percentage %d exceeds 100", s.BatPercent),
			Details: map[string]interface{}{"percent": s.BatPercent},
		})
	}

	if s.BatVolDec > 9 {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidTenths,
			Message: fmt.Sprintf("Voltage tenths %d out of range 0-9", s.BatVolDec),
			Details: map[string]interface{}{"tenths": s.BatVolDec},
		})
	}

	if s.TempMin > s.TempMax {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvertedRange,
			Message: fmt.Sprintf("Temperature range inverted (min %d > max %d)", s.TempMin, s.TempMax),
			Details: map[string]interface{}{"min": s.TempMin, "max": s.TempMax},
		})
	} else if s.LeftTarget < s.TempMin || s.LeftTarget > s.TempMax {
		errors = append(errors, ValidationError{
			Type:    AnomalyTargetOutOfRange,
			Message: fmt.Sprintf("Target %d outside configured range %d to %d", s.LeftTarget, s.TempMin, s.TempMax),
			Details: map[string]interface{}{"target": s.LeftTarget, "min": s.TempMin, "max": s.TempMax},
		})
	}

	return errors
}
