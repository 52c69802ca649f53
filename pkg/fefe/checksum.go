// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package fefe

// Checksum computes the additive 16-bit checksum used by FEFE frames:
// the arithmetic sum of every byte, truncated to the low 16 bits.
// An empty input sums to 0.
func Checksum(data []byte) uint16 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return uint16(sum & 0xFFFF)
}
