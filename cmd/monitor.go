// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/polarbyte/fefemon/pkg/capture"
	"github.com/polarbyte/fefemon/pkg/fefe"
)

var (
	monitorStatsInterval int
	monitorRecordPath    string
	monitorShowRaw       bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Bind to the fridge and log decoded status frames",
	Long: `Connect to the fridge through a bridge, send BIND, then issue a status
QUERY on the configured interval and decode every notification frame.

Each valid frame is printed as a human-readable status block; frames
that fail to decode are reported with a hex dump of the raw bytes.
Anomalous values in otherwise valid frames (impossible battery
percentage, inconsistent declared length) are flagged inline.

On connection loss the monitor drops back to the disconnected state and
retries the bridge once per tick until it comes back.

Use --record to also write every recovered frame to a capture file that
the replay command can decode offline.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().IntVar(&monitorStatsInterval, "stats-interval", 60, "Statistics summary interval in seconds (0 disables)")
	monitorCmd.Flags().StringVar(&monitorRecordPath, "record", "", "Write recovered frames to a capture file")
	monitorCmd.Flags().BoolVar(&monitorShowRaw, "raw", false, "Hex dump every frame, valid or not")
}

// bridge holds the current connection so the reader goroutine and the
// session's sends survive a reconnect swap.
type bridge struct {
	mu   sync.RWMutex
	conn Connection
}

func (b *bridge) get() Connection {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.conn
}

func (b *bridge) set(conn Connection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conn = conn
}

// SendFrame implements fefe.Sender.
func (b *bridge) SendFrame(data []byte) error {
	conn := b.get()
	if conn == nil {
		return fmt.Errorf("no connection")
	}
	_, err := conn.Write(data)
	return err
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}

	var recorder *capture.Writer
	var recordFile *os.File
	if monitorRecordPath != "" {
		recordFile, err = os.Create(monitorRecordPath)
		if err != nil {
			return fmt.Errorf("failed to create capture file: %w", err)
		}
		recorder, err = capture.NewWriter(recordFile, connInfo)
		if err != nil {
			recordFile.Close()
			return err
		}
		defer recordFile.Close()
	}

	fmt.Printf("fefemon - Fridge Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Query interval: %s\n", queryInterval)
	if recorder != nil {
		fmt.Printf("Recording to: %s\n", monitorRecordPath)
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	br := &bridge{conn: conn}
	defer func() {
		if c := br.get(); c != nil {
			c.Close()
		}
	}()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	session := fefe.NewSession(br,
		fefe.WithQueryInterval(queryInterval),
		fefe.WithLogger(logger),
	)

	// A bridge link has no scan phase: a successful open means the
	// target was reachable and both characteristics are mapped, so the
	// lifecycle events collapse into one burst.
	session.HandleEvent(fefe.EventDeviceFound)
	session.HandleEvent(fefe.EventConnected)
	session.HandleEvent(fefe.EventEndpointsResolved)
	logger.Printf("bound, phase=%s", session.Phase())

	frameCh := make(chan []byte, 8)
	errCh := make(chan error, 1)
	go readFrames(br.get(), frameCh, errCh)

	stats := fefe.NewStatistics()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	var statsCh <-chan time.Time
	if monitorStatsInterval > 0 {
		statsTick := time.NewTicker(time.Duration(monitorStatsInterval) * time.Second)
		defer statsTick.Stop()
		statsCh = statsTick.C
	}

	disconnected := false

	for {
		select {
		case frame := <-frameCh:
			session.OnNotification(frame)

		case err := <-errCh:
			logger.Printf("connection lost: %v", err)
			if c := br.get(); c != nil {
				c.Close()
			}
			session.HandleEvent(fefe.EventDisconnected)
			disconnected = true

		case <-tick.C:
			if disconnected {
				// At most one reconnect attempt per tick
				newConn, _, err := OpenConnection()
				session.HandleEvent(fefe.EventDeviceFound)
				if err != nil {
					session.HandleEvent(fefe.EventConnectFailed)
					break
				}
				br.set(newConn)
				session.HandleEvent(fefe.EventConnected)
				session.HandleEvent(fefe.EventEndpointsResolved)
				logger.Printf("reconnected, phase=%s", session.Phase())
				disconnected = false
				go readFrames(newConn, frameCh, errCh)
			}

			session.Tick(time.Now())

			if data, ok := session.DrainPending(); ok {
				processFrame(data, stats, recorder)
			}

		case <-statsCh:
			fmt.Print(stats.Summary())

		case <-sigCh:
			fmt.Printf("\n%s", stats.Summary())
			return nil
		}
	}
}

// readFrames pumps bridge bytes through a frame scanner until the
// connection dies. Each recovered frame lands on frameCh.
func readFrames(conn Connection, frameCh chan<- []byte, errCh chan<- error) {
	scanner := fefe.NewScanner()
	buf := make([]byte, 128)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		for _, frame := range scanner.Scan(buf[:n]) {
			frameCh <- frame
		}
	}
}

// processFrame decodes, validates, records, and prints one frame.
func processFrame(data []byte, stats *fefe.Statistics, recorder *capture.Writer) {
	if recorder != nil {
		if err := recorder.WriteFrame(data); err != nil {
			fmt.Fprintf(os.Stderr, "capture write failed: %v\n", err)
		}
	}

	report, err := fefe.Decode(data)
	if err != nil {
		stats.Update(err, nil)
		timestamp := time.Now().Format("15:04:05.000")
		fmt.Printf("[%s] DECODE ERROR: %v\n", timestamp, err)
		fmt.Println(fefe.FormatRawFrame(data))
		return
	}

	anomalies := fefe.ValidateStatus(report, len(data))
	stats.Update(nil, anomalies)

	fmt.Print(fefe.FormatStatus(report))
	for _, a := range anomalies {
		fmt.Printf("  ANOMALY: %s\n", a.Message)
	}
	if monitorShowRaw {
		fmt.Println(fefe.FormatRawFrame(data))
	}
	fmt.Println()
}
