// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polarbyte/fefemon/pkg/fefe"
)

var (
	decodeShowBind  bool
	decodeShowQuery bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [hex frame]",
	Short: "Decode a FEFE frame given as hex",
	Long: `Decode a single frame from a hex string and print the status report.

Whitespace and 0x prefixes in the hex input are ignored, so bytes can be
pasted straight from a sniffer log:

  fefemon decode "FE FE 14 01 00 01 00 02 ..."

--bind and --query print the outbound command templates instead.

Exit codes:
  0 - Frame decoded successfully
  1 - Decode failed`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().BoolVar(&decodeShowBind, "bind", false, "Print the BIND command bytes")
	decodeCmd.Flags().BoolVar(&decodeShowQuery, "query", false, "Print the QUERY command bytes")
}

func runDecode(cmd *cobra.Command, args []string) error {
	if decodeShowBind {
		fmt.Printf("BIND:  %X\n", fefe.BuildBind())
	}
	if decodeShowQuery {
		fmt.Printf("QUERY: %X\n", fefe.BuildQuery())
	}
	if decodeShowBind || decodeShowQuery {
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("expected one hex frame argument")
	}

	data, err := parseHexFrame(args[0])
	if err != nil {
		return err
	}

	report, err := fefe.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DECODE ERROR: %v\n", err)
		fmt.Fprintln(os.Stderr, fefe.FormatRawFrame(data))
		os.Exit(1)
	}

	fmt.Print(fefe.FormatStatus(report))
	for _, a := range fefe.ValidateStatus(report, len(data)) {
		fmt.Printf("  ANOMALY: %s\n", a.Message)
	}
	return nil
}

// parseHexFrame tolerates spaces, commas, and 0x prefixes in hex input.
func parseHexFrame(s string) ([]byte, error) {
	cleaned := strings.NewReplacer(" ", "", "\t", "", ",", "", "0x", "", "0X", "").Replace(s)
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %v", err)
	}
	return data, nil
}
