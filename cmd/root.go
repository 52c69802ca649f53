// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/polarbyte/fefemon/pkg/fefe"
)

var (
	// Serial bridge flags
	portName string
	baudRate int

	// WebSocket bridge flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Config file
	configPath string

	// Query re-issue interval, overridable from flag or config
	queryInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "fefemon",
	Short: "FEFE fridge protocol monitor",
	Long: `fefemon - A CLI tool for talking to FEFE-protocol compressor fridges.

The fridge itself speaks BLE (device ` + fefe.DeviceName + `, service 0x1234); fefemon
connects through a bridge that relays the notify/write characteristics:

  Serial:    --port /dev/ttyUSB0 [--baud 115200]   (UART BLE bridge module)
  WebSocket: --url ws://host/path [--username user] (network BLE gateway)

After connecting, fefemon binds to the fridge controller, queries the
status periodically, and decodes the notification frames it receives.

For WebSocket authentication, the password is read from the FEFEMON_PASSWORD
environment variable, or prompted interactively if not set. There is no
--password flag, so credentials never land in shell history.

Connection defaults can be placed in ~/.fefemon.yaml.`,
	Version:           "1.0.0",
	PersistentPreRunE: loadConfigDefaults,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.fefemon.yaml)")
	rootCmd.PersistentFlags().DurationVar(&queryInterval, "query-interval", fefe.DefaultQueryInterval, "Status query re-issue interval")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
