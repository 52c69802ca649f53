// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/polarbyte/fefemon/pkg/capture"
	"github.com/polarbyte/fefemon/pkg/fefe"
)

var replayErrorsOnly bool

var replayCmd = &cobra.Command{
	Use:   "replay <capture file>",
	Short: "Decode frames from a capture file",
	Long: `Replay a capture file written by 'monitor --record' through the decoder.

Every stored frame is decoded with the current build, so captures taken
in the field can be re-examined after codec fixes. A statistics summary
is printed at the end.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayErrorsOnly, "errors-only", false, "Only print frames that fail to decode")
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	reader, err := capture.NewReader(f)
	if err != nil {
		return err
	}

	header := reader.Header()
	fmt.Printf("fefemon - Capture Replay\n")
	fmt.Printf("Session: %s\n", header.SessionID)
	fmt.Printf("Captured: %s from %s\n\n", header.StartTime.Format(time.RFC3339), header.Source)

	stats := fefe.NewStatistics()

	for {
		rec, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		report, decodeErr := fefe.Decode(rec.Raw)
		if decodeErr != nil {
			stats.Update(decodeErr, nil)
			fmt.Printf("[+%8dms] DECODE ERROR: %v\n", rec.OffsetMs, decodeErr)
			fmt.Println(fefe.FormatRawFrame(rec.Raw))
			continue
		}

		anomalies := fefe.ValidateStatus(report, len(rec.Raw))
		stats.Update(nil, anomalies)

		if replayErrorsOnly && len(anomalies) == 0 {
			continue
		}

		fmt.Printf("[+%8dms]\n", rec.OffsetMs)
		fmt.Print(fefe.FormatStatus(report))
		for _, a := range anomalies {
			fmt.Printf("  ANOMALY: %s\n", a.Message)
		}
		fmt.Println()
	}

	fmt.Print(stats.Summary())
	return nil
}
