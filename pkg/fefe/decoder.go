// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package fefe

import (
	"bytes"
	"encoding/binary"
	"time"
)

// Decode validates a complete notification frame and maps it into a
// StatusReport. The expected shape is:
//
//	[FE][FE][length][0x01][18-byte payload][checksum hi][checksum lo]
//
// where the trailing checksum is the big-endian additive sum of every
// preceding byte. Decode is total and side-effect-free: the same input
// always yields the same report or the same failure kind, and no
// partial report is ever returned.
//
// The declared length byte is deliberately not cross-checked against
// the actual frame size; observed firmware emits values that match no
// consistent interpretation. ValidateStatus flags the mismatch as an
// anomaly instead.
func Decode(data []byte) (*StatusReport, error) {
	if len(data) < MinFrameSize {
		return nil, decodeErrorf(ErrTooShort, "%d bytes (minimum %d)", len(data), MinFrameSize)
	}
	if data[0] != SyncByte || data[1] != SyncByte {
		return nil, decodeErrorf(ErrBadSync, "got %02X %02X", data[0], data[1])
	}
	if data[3] != CmdQueryResponse {
		return nil, decodeErrorf(ErrUnsupportedCommand, "0x%02X", data[3])
	}

	sumOffset := len(data) - ChecksumSize
	wantSum := binary.BigEndian.Uint16(data[sumOffset:])
	gotSum := Checksum(data[:sumOffset])
	if gotSum != wantSum {
		return nil, decodeErrorf(ErrChecksumMismatch, "frame 0x%04X, calculated 0x%04X", wantSum, gotSum)
	}

	payload := data[4 : 4+PayloadSize]

	return &StatusReport{
		Locked:    payload[0] == 1,
		PoweredOn: payload[1] == 1,
		RunMode:   RunMode(payload[2]),
		BatSaver:  BatSaver(payload[3]),

		LeftTarget:  int8(payload[4]),
		TempMax:     int8(payload[5]),
		TempMin:     int8(payload[6]),
		LeftRetDiff: payload[7],
		StartDelay:  payload[8],
		Unit:        TempUnit(payload[9]),

		LeftTCHot:  int8(payload[10]),
		LeftTCMid:  int8(payload[11]),
		LeftTCCold: int8(payload[12]),
		LeftTCHalt: int8(payload[13]),

		LeftCurrent: int8(payload[14]),
		BatPercent:  payload[15],
		BatVolInt:   payload[16],
		BatVolDec:   payload[17],

		DeclaredLength: data[2],
		Timestamp:      time.Now(),
	}, nil
}

// Scanner recovers frame boundaries from a byte stream. BLE delivers
// notifications as complete frames, but bridge transports (a UART
// module in transparent mode, a WebSocket relay that rechunks) can
// split or merge them, so the monitor feeds raw reads through here.
//
// FEFE frames carry no end delimiter and the declared length byte is
// unreliable, so the scanner treats the trailing checksum as the frame
// terminator: once at least MinFrameSize bytes are buffered after a
// sync pair, the frame is complete at the first length whose trailing
// two bytes checksum the preceding ones.
type Scanner struct {
	buf    []byte
	synced bool
}

// NewScanner creates a scanner hunting for the first sync pair. The
// zero value is also ready to use.
func NewScanner() *Scanner {
	return &Scanner{buf: make([]byte, 0, MaxFrameSize)}
}

// Reset discards any partially accumulated frame.
func (s *Scanner) Reset() {
	s.buf = s.buf[:0]
	s.synced = false
}

// Scan consumes a chunk of stream bytes and returns any complete frames
// recovered from it. Unsyncable garbage is dropped silently; the caller
// sees only checksum-valid frames.
func (s *Scanner) Scan(data []byte) [][]byte {
	var frames [][]byte
	for _, b := range data {
		if f := s.scanByte(b); f != nil {
			frames = append(frames, f)
		}
	}
	return frames
}

func (s *Scanner) scanByte(b byte) []byte {
	if !s.synced {
		if b != SyncByte {
			s.buf = s.buf[:0]
			return nil
		}
		s.buf = append(s.buf, b)
		if len(s.buf) == 2 {
			s.synced = true
		}
		return nil
	}

	s.buf = append(s.buf, b)

	if len(s.buf) >= MinFrameSize {
		sumOffset := len(s.buf) - ChecksumSize
		if Checksum(s.buf[:sumOffset]) == binary.BigEndian.Uint16(s.buf[sumOffset:]) {
			frame := make([]byte, len(s.buf))
			copy(frame, s.buf)
			s.Reset()
			return frame
		}
	}

	if len(s.buf) >= MaxFrameSize {
		s.resync()
	}
	return nil
}

// resync drops bytes up to the next sync pair after the current frame
// start, or everything if none is buffered.
func (s *Scanner) resync() {
	idx := bytes.Index(s.buf[2:], []byte{SyncByte, SyncByte})
	if idx < 0 {
		s.Reset()
		return
	}
	kept := s.buf[idx+2:]
	n := copy(s.buf[:cap(s.buf)], kept)
	s.buf = s.buf[:n]
	s.synced = true
}
