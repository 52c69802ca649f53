// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/polarbyte/fefemon/pkg/fefe"
	"github.com/spf13/cobra"
)

var (
	probeTimeout int
	probeCount   int
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test the fridge link by sending QUERY frames and timing the responses",
	Long: `Send QUERY frames to the fridge and wait for a decodable status response.

This is useful for verifying:
  - The serial or WebSocket bridge connection is established
  - The fridge is awake and answering queries
  - Round-trip latency over the bridge

Exit codes:
  0 - All probes answered
  1 - One or more probes failed/timed out
  2 - Connection error`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 5, "Timeout in seconds for each probe")
	probeCmd.Flags().IntVar(&probeCount, "count", 3, "Number of probes to send")
}

func runProbe(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("fefemon - link probe\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds per probe\n", probeTimeout)
	fmt.Printf("Count: %d probes\n\n", probeCount)

	successCount := 0
	failCount := 0

	for i := 1; i <= probeCount; i++ {
		fmt.Printf("Probe %d/%d: ", i, probeCount)

		startTime := time.Now()
		if _, err := conn.Write(fefe.BuildQuery()); err != nil {
			fmt.Printf("SEND FAILED: %v\n", err)
			failCount++
			continue
		}

		responseChan := make(chan *fefe.StatusReport, 1)
		errChan := make(chan error, 1)

		go func() {
			var scanner fefe.Scanner
			buf := make([]byte, 128)
			for {
				n, err := conn.Read(buf)
				if err != nil {
					errChan <- err
					return
				}
				for _, frame := range scanner.Scan(buf[:n]) {
					report, decodeErr := fefe.Decode(frame)
					if decodeErr != nil {
						// Corrupt frames do not fail the probe; keep waiting
						continue
					}
					responseChan <- report
					return
				}
			}
		}()

		select {
		case report := <-responseChan:
			rtt := time.Since(startTime)
			fmt.Printf("STATUS current=%d%s battery=%s, rtt=%v\n",
				report.LeftCurrent, fefe.UnitSuffix(report.Unit),
				fefe.FormatVoltage(report.BatVolInt, report.BatVolDec),
				rtt.Round(time.Millisecond))
			successCount++

		case err := <-errChan:
			fmt.Printf("READ FAILED: %v\n", err)
			failCount++

		case <-time.After(time.Duration(probeTimeout) * time.Second):
			fmt.Printf("TIMEOUT (no status in %ds)\n", probeTimeout)
			failCount++
		}

		if i < probeCount {
			time.Sleep(100 * time.Millisecond)
		}
	}

	fmt.Printf("\n--- Probe statistics ---\n")
	fmt.Printf("%d probes sent, %d answered, %.0f%% loss\n",
		probeCount, successCount, float64(failCount)/float64(probeCount)*100)

	if failCount > 0 {
		os.Exit(1)
	}
	return nil
}
