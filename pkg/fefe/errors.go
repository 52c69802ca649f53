// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package fefe

import (
	"errors"
	"fmt"
)

// Decode failure kinds. A failed decode is reported as a value and
// recovered by the caller; no frame is ever partially decoded.
var (
	ErrTooShort           = errors.New("frame too short")
	ErrBadSync            = errors.New("bad sync bytes")
	ErrUnsupportedCommand = errors.New("unsupported command")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
)

// DecodeError carries the failure kind plus the detail needed for a
// useful log line. Use errors.Is against the Err* sentinels to branch
// on the kind.
type DecodeError struct {
	Kind   error
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func decodeErrorf(kind error, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
