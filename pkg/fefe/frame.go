// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package fefe

// Outbound commands are fixed byte templates, not generated payloads.
// The fridge firmware accepts them without a trailing checksum, and the
// observed traffic never varies them, so the builders return copies of
// literal sequences.

var (
	bindTemplate  = []byte{0xFE, 0xFE, 0x03, 0x01, 0x02, 0x00, 0xFF}
	queryTemplate = []byte{0xFE, 0xFE, 0x03, 0x01, 0x02, 0x00}
)

// BuildBind returns the BIND frame sent once after the write and notify
// characteristics are resolved. Whether the fridge strictly requires it
// is unconfirmed; the known-good client sends it, so we do too.
func BuildBind() []byte {
	frame := make([]byte, len(bindTemplate))
	copy(frame, bindTemplate)
	return frame
}

// BuildQuery returns the periodic status QUERY frame.
func BuildQuery() []byte {
	frame := make([]byte, len(queryTemplate))
	copy(frame, queryTemplate)
	return frame
}
