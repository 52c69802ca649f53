// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte
//
// fefemon - FEFE Fridge Protocol Monitor
//
// A CLI tool for monitoring and decoding the FEFE binary protocol
// spoken by BLE-connected compressor fridges, via a serial or
// WebSocket BLE bridge.

package main

import (
	"os"

	"github.com/polarbyte/fefemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
