// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package fefe

import (
	"errors"
	"fmt"
	"time"
)

// Statistics tracks frame counts and error rates for a monitoring run.
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalFrames      uint64
	ValidFrames      uint64
	TooShort         uint64
	BadSync          uint64
	UnsupportedCmd   uint64
	ChecksumErrors   uint64
	AnomalousFrames  uint64
	LengthMismatches uint64

	// Rates (calculated)
	FrameRate float64 // frames/sec
	ErrorRate float64 // errors/sec
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update records one decode attempt and its validation outcome.
func (s *Statistics) Update(decodeErr error, validationErrors []ValidationError) {
	s.TotalFrames++
	s.LastUpdateTime = time.Now()

	if decodeErr != nil {
		switch {
		case errors.Is(decodeErr, ErrTooShort):
			s.TooShort++
		case errors.Is(decodeErr, ErrBadSync):
			s.BadSync++
		case errors.Is(decodeErr, ErrUnsupportedCommand):
			s.UnsupportedCmd++
		case errors.Is(decodeErr, ErrChecksumMismatch):
			s.ChecksumErrors++
		}
		s.recalculate()
		return
	}

	s.ValidFrames++
	if len(validationErrors) > 0 {
		s.AnomalousFrames++
		for _, err := range validationErrors {
			if err.Type == AnomalyLengthMismatch {
				s.LengthMismatches++
			}
		}
	}
	s.recalculate()
}

func (s *Statistics) recalculate() {
	elapsed := s.LastUpdateTime.Sub(s.StartTime).Seconds()
	if elapsed <= 0 {
		return
	}
	s.FrameRate = float64(s.TotalFrames) / elapsed
	s.ErrorRate = float64(s.errorCount()) / elapsed
}

func (s *Statistics) errorCount() uint64 {
	return s.TooShort + s.BadSync + s.UnsupportedCmd + s.ChecksumErrors
}

// SuccessRate returns the fraction of frames that decoded cleanly, as a
// percentage. 100 when no frames have been seen yet.
func (s *Statistics) SuccessRate() float64 {
	if s.TotalFrames == 0 {
		return 100.0
	}
	return float64(s.ValidFrames) / float64(s.TotalFrames) * 100.0
}

// Summary renders a multi-line statistics block.
func (s *Statistics) Summary() string {
	uptime := s.LastUpdateTime.Sub(s.StartTime).Round(time.Second)
	return fmt.Sprintf(
		"--- Statistics (running %s) ---\n"+
			"  Frames: %d total, %d valid (%.1f%%)\n"+
			"  Errors: %d checksum, %d short, %d bad sync, %d unsupported cmd\n"+
			"  Anomalies: %d frames (%d length mismatches)\n"+
			"  Rates: %.2f frames/s, %.2f errors/s\n",
		uptime,
		s.TotalFrames, s.ValidFrames, s.SuccessRate(),
		s.ChecksumErrors, s.TooShort, s.BadSync, s.UnsupportedCmd,
		s.AnomalousFrames, s.LengthMismatches,
		s.FrameRate, s.ErrorRate,
	)
}
