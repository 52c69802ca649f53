// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Polarbyte

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/polarbyte/fefemon/pkg/fefe"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Live fridge status dashboard",
	Long: `Monitor the fridge in an interactive terminal UI.

Shows the current session phase, the most recent decoded status report,
running statistics, and an event log. The session drives the same
bind/query cycle as the monitor command underneath.

Press 'q' to quit.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// Event log entry
type logEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// Messages from the session driver goroutines
type phaseMsg fefe.Phase
type frameMsg struct {
	report    *fefe.StatusReport
	decodeErr error
	anomalies []fefe.ValidationError
	raw       []byte
}
type connLostMsg struct{ err error }
type connRestoredMsg struct{}
type sessionLogMsg string

type tuiModel struct {
	connInfo string
	phase    fefe.Phase

	spin       spinner.Model
	lastReport *fefe.StatusReport
	anomalies  []fefe.ValidationError
	stats      *fefe.Statistics

	eventLog      []logEntry
	maxLogEntries int

	width    int
	height   int
	quitting bool
}

func initialTUIModel(connInfo string) tuiModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	return tuiModel{
		connInfo:      connInfo,
		phase:         fefe.PhaseDisconnected,
		spin:          sp,
		stats:         fefe.NewStatistics(),
		eventLog:      make([]logEntry, 0),
		maxLogEntries: 100,
		width:         80,
		height:        24,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tea.EnterAltScreen)
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case phaseMsg:
		m.phase = fefe.Phase(msg)
		m.addLogEntry(fmt.Sprintf("phase: %s", m.phase), false)

	case connLostMsg:
		m.addLogEntry(fmt.Sprintf("connection lost: %v", msg.err), true)

	case connRestoredMsg:
		m.addLogEntry("reconnected", false)

	case sessionLogMsg:
		m.addLogEntry(string(msg), true)

	case frameMsg:
		if msg.decodeErr != nil {
			m.stats.Update(msg.decodeErr, nil)
			m.addLogEntry(fmt.Sprintf("DECODE ERROR: %v (%d bytes)", msg.decodeErr, len(msg.raw)), true)
			break
		}
		m.stats.Update(nil, msg.anomalies)
		m.lastReport = msg.report
		m.anomalies = msg.anomalies
		for _, a := range msg.anomalies {
			m.addLogEntry("ANOMALY: "+a.Message, true)
		}
	}

	return m, nil
}

func (m *tuiModel) addLogEntry(message string, isError bool) {
	m.eventLog = append(m.eventLog, logEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

func (m tuiModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("FEFEMON - FRIDGE STATUS"))
	s.WriteString("\n")

	phaseStr := m.phase.String()
	if m.phase == fefe.PhaseDisconnected || m.phase == fefe.PhaseConnecting {
		phaseStr = m.spin.View() + " " + phaseStr
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | %s | Press 'q' to quit", m.connInfo, phaseStr)))
	s.WriteString("\n\n")

	// Status panel
	if m.lastReport != nil {
		r := m.lastReport
		unit := fefe.UnitSuffix(r.Unit)
		var status strings.Builder
		status.WriteString(labelStyle.Render("Current: "))
		status.WriteString(valueStyle.Render(fmt.Sprintf("%d%s", r.LeftCurrent, unit)))
		status.WriteString(labelStyle.Render("  Target: "))
		status.WriteString(valueStyle.Render(fmt.Sprintf("%d%s", r.LeftTarget, unit)))
		status.WriteString("\n")
		status.WriteString(labelStyle.Render("Power: "))
		status.WriteString(valueStyle.Render(fefe.OnOff(r.PoweredOn)))
		status.WriteString(labelStyle.Render("  Lock: "))
		status.WriteString(valueStyle.Render(fefe.YesNo(r.Locked)))
		status.WriteString(labelStyle.Render("  Mode: "))
		status.WriteString(valueStyle.Render(fefe.FormatRunMode(r.RunMode)))
		status.WriteString("\n")
		status.WriteString(labelStyle.Render("Battery: "))
		status.WriteString(valueStyle.Render(fmt.Sprintf("%d%% (%s)", r.BatPercent, fefe.FormatVoltage(r.BatVolInt, r.BatVolDec))))
		status.WriteString(labelStyle.Render("  Saver: "))
		status.WriteString(valueStyle.Render(fefe.FormatBatSaver(r.BatSaver)))
		status.WriteString("\n")
		status.WriteString(headerStyle.Render(fmt.Sprintf("Updated %s", r.Timestamp.Format("15:04:05"))))
		s.WriteString(boxStyle.Render(status.String()))
	} else {
		s.WriteString(boxStyle.Render(headerStyle.Render("Waiting for first status frame...")))
	}
	s.WriteString("\n\n")

	// Statistics line
	s.WriteString(labelStyle.Render("Frames: "))
	s.WriteString(valueStyle.Render(fmt.Sprintf("%d valid / %d total (%.1f%%)",
		m.stats.ValidFrames, m.stats.TotalFrames, m.stats.SuccessRate())))
	s.WriteString(labelStyle.Render("  Checksum errors: "))
	s.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.stats.ChecksumErrors)))
	s.WriteString("\n\n")

	// Event log, newest at the bottom, sized to remaining rows
	logRows := m.height - 14
	if logRows < 3 {
		logRows = 3
	}
	start := 0
	if len(m.eventLog) > logRows {
		start = len(m.eventLog) - logRows
	}
	var logView strings.Builder
	for _, e := range m.eventLog[start:] {
		line := fmt.Sprintf("[%s] %s", e.timestamp.Format("15:04:05"), e.message)
		if e.isError {
			line = errorStyle.Render(line)
		}
		logView.WriteString(line)
		logView.WriteString("\n")
	}
	if logView.Len() == 0 {
		logView.WriteString(headerStyle.Render("(no events yet)"))
	}
	s.WriteString(boxStyle.Width(m.width - 4).Render(strings.TrimRight(logView.String(), "\n")))
	s.WriteString("\n")

	return s.String()
}

func runTUI(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}

	br := &bridge{conn: conn}
	defer func() {
		if c := br.get(); c != nil {
			c.Close()
		}
	}()

	m := initialTUIModel(connInfo)
	p := tea.NewProgram(m, tea.WithAltScreen())

	session := fefe.NewSession(br,
		fefe.WithQueryInterval(queryInterval),
		fefe.WithLogger(teaLogger{p}),
	)

	done := make(chan struct{})
	go driveSession(session, br, p, done)

	_, err = p.Run()
	close(done)
	return err
}

// teaLogger forwards session diagnostics into the event log.
type teaLogger struct {
	p *tea.Program
}

func (l teaLogger) Printf(format string, args ...interface{}) {
	l.p.Send(sessionLogMsg(fmt.Sprintf(format, args...)))
}

// driveSession runs the driver loop and feeds results to the TUI.
func driveSession(session *fefe.Session, br *bridge, p *tea.Program, done <-chan struct{}) {
	frameCh := make(chan []byte, 8)
	errCh := make(chan error, 1)

	session.HandleEvent(fefe.EventDeviceFound)
	session.HandleEvent(fefe.EventConnected)
	session.HandleEvent(fefe.EventEndpointsResolved)
	p.Send(phaseMsg(session.Phase()))

	go readFrames(br.get(), frameCh, errCh)

	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	disconnected := false

	for {
		select {
		case <-done:
			return

		case frame := <-frameCh:
			session.OnNotification(frame)

		case err := <-errCh:
			if c := br.get(); c != nil {
				c.Close()
			}
			session.HandleEvent(fefe.EventDisconnected)
			disconnected = true
			p.Send(connLostMsg{err: err})
			p.Send(phaseMsg(session.Phase()))

		case <-tick.C:
			if disconnected {
				newConn, _, err := OpenConnection()
				session.HandleEvent(fefe.EventDeviceFound)
				if err != nil {
					session.HandleEvent(fefe.EventConnectFailed)
					break
				}
				br.set(newConn)
				session.HandleEvent(fefe.EventConnected)
				session.HandleEvent(fefe.EventEndpointsResolved)
				disconnected = false
				p.Send(connRestoredMsg{})
				p.Send(phaseMsg(session.Phase()))
				go readFrames(newConn, frameCh, errCh)
			}

			before := session.Phase()
			session.Tick(time.Now())
			if after := session.Phase(); after != before {
				p.Send(phaseMsg(after))
			}

			if data, ok := session.DrainPending(); ok {
				report, err := fefe.Decode(data)
				var anomalies []fefe.ValidationError
				if err == nil {
					anomalies = fefe.ValidateStatus(report, len(data))
				}
				p.Send(frameMsg{report: report, decodeErr: err, anomalies: anomalies, raw: data})
			}
		}
	}
}
