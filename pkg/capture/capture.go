// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

// Package capture reads and writes FEFE frame capture files.
//
// A capture file is a CBOR stream: one Header followed by any number of
// Records. Files store raw frame bytes, not decoded reports, so a
// capture taken with an older build can be re-decoded by a newer one.
package capture

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// FormatVersion identifies the capture file layout.
const FormatVersion = 1

// Header opens every capture file.
type Header struct {
	Version   int       `cbor:"1,keyasint"`
	SessionID string    `cbor:"2,keyasint"`
	StartTime time.Time `cbor:"3,keyasint"`
	Source    string    `cbor:"4,keyasint"` // connection description, informational
}

// Record is one captured frame with its arrival offset from the
// session start.
type Record struct {
	OffsetMs int64  `cbor:"1,keyasint"`
	Raw      []byte `cbor:"2,keyasint"`
}

// Writer appends capture records to an underlying stream.
type Writer struct {
	enc   *cbor.Encoder
	start time.Time
}

// NewWriter writes a header to w and returns a Writer for records.
func NewWriter(w io.Writer, source string) (*Writer, error) {
	start := time.Now()
	enc := cbor.NewEncoder(w)
	header := Header{
		Version:   FormatVersion,
		SessionID: uuid.NewString(),
		StartTime: start,
		Source:    source,
	}
	if err := enc.Encode(header); err != nil {
		return nil, fmt.Errorf("failed to write capture header: %w", err)
	}
	return &Writer{enc: enc, start: start}, nil
}

// WriteFrame appends one raw frame stamped with the current offset.
func (w *Writer) WriteFrame(raw []byte) error {
	rec := Record{
		OffsetMs: time.Since(w.start).Milliseconds(),
		Raw:      raw,
	}
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to write capture record: %w", err)
	}
	return nil
}

// Reader iterates the records of a capture file.
type Reader struct {
	dec    *cbor.Decoder
	header Header
}

// NewReader reads and validates the header from r.
func NewReader(r io.Reader) (*Reader, error) {
	dec := cbor.NewDecoder(r)
	var header Header
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("failed to read capture header: %w", err)
	}
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported capture version %d (want %d)", header.Version, FormatVersion)
	}
	return &Reader{dec: dec, header: header}, nil
}

// Header returns the capture file header.
func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next record, or io.EOF at end of file.
func (r *Reader) Next() (*Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read capture record: %w", err)
	}
	return &rec, nil
}
