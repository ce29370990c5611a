// Package monitor is a live terminal view of a playing stream.
package monitor

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-adpstream/adpstream/sink"
	"github.com/valerio/go-adpstream/adpstream/stream"
)

const (
	minWidth  = 60
	minHeight = 16
	statusTop = 1
	meterTop  = 8
	logsTop   = 11
	barWidth  = 40
)

// Controller is the playback surface the monitor drives.
type Controller interface {
	Snapshot() stream.Snapshot
	Start(start, size uint32) error
	End()
	Underruns() uint64
	OutputRate() int
}

// Monitor renders stream state and recent logs and maps keys to stream
// operations. Update must be called from the playback loop; Observe may be
// called from anywhere.
type Monitor struct {
	screen tcell.Screen
	ctrl   Controller
	logs   *LogBuffer

	track    [2]uint32
	logLevel slog.Level
	running  bool

	mu   sync.Mutex
	peak sink.Frame
}

// New creates a monitor for ctrl. start and size identify the track restarted
// by the r key.
func New(ctrl Controller, logs *LogBuffer, start, size uint32) *Monitor {
	return &Monitor{
		ctrl:     ctrl,
		logs:     logs,
		track:    [2]uint32{start, size},
		logLevel: slog.LevelInfo,
	}
}

// Init takes over screen, which must not be initialized yet.
func (m *Monitor) Init(screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	m.screen = screen
	m.running = true
	return nil
}

// Running is false once the user asked to quit.
func (m *Monitor) Running() bool {
	return m.running
}

// Observe feeds played frames into the level meters.
func (m *Monitor) Observe(frames []int16) {
	p := sink.Peak(frames)
	m.mu.Lock()
	m.peak.L = max(m.peak.L, p.L)
	m.peak.R = max(m.peak.R, p.R)
	m.mu.Unlock()
}

// Update handles pending key events and redraws the screen.
func (m *Monitor) Update() {
	for m.screen.HasPendingEvent() {
		switch ev := m.screen.PollEvent().(type) {
		case *tcell.EventKey:
			m.handleKey(ev)
		case *tcell.EventResize:
			m.screen.Sync()
		}
	}
	if !m.running {
		return
	}

	m.render()
	m.screen.Show()
}

// Close restores the terminal.
func (m *Monitor) Close() {
	if m.screen != nil {
		m.screen.Fini()
	}
}

func (m *Monitor) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		m.running = false
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'q':
		m.running = false
	case 's':
		m.ctrl.End()
	case 'l':
		if err := m.ctrl.Start(0, 0); err != nil {
			slog.Error("Failed to disable loop", "error", err)
		}
	case 'r':
		if err := m.ctrl.Start(m.track[0], m.track[1]); err != nil {
			slog.Error("Failed to restart track", "error", err)
		}
	case '+', '=':
		m.changeLogLevel(-4)
	case '-', '_':
		m.changeLogLevel(4)
	}
}

// changeLogLevel moves the log pane filter by delta, within debug..error.
func (m *Monitor) changeLogLevel(delta slog.Level) {
	level := min(max(m.logLevel+delta, slog.LevelDebug), slog.LevelError)
	if level != m.logLevel {
		slog.Info("Log filter changed", "from", m.logLevel, "to", level)
		m.logLevel = level
	}
}

func (m *Monitor) render() {
	m.screen.Clear()
	width, height := m.screen.Size()
	if width < minWidth || height < minHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minWidth, minHeight)
		m.drawText(0, height/2, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	text := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	snap := m.ctrl.Snapshot()
	st := snap.State

	m.drawText(1, 0, " ADP Stream ", title)
	m.drawText(1, statusTop, fmt.Sprintf("Phase:   %-9s Loop: %-5v Output: %d Hz", snap.Phase, st.Loop, m.ctrl.OutputRate()), text)
	m.drawText(1, statusTop+1, fmt.Sprintf("Mode:    %-13s Chunk: %#x", snap.Chunk.Mode, snap.Chunk.Size), text)
	m.drawText(1, statusTop+2, fmt.Sprintf("Track:   0x%08X-0x%08X", st.Start, st.EndOffset), text)
	m.drawText(1, statusTop+3, fmt.Sprintf("Next:    0x%08X", st.Current), text)
	m.drawText(1, statusTop+4, fmt.Sprintf("%s %3.0f%%", bar(snap.Progress(), barWidth), snap.Progress()*100), text)
	m.drawText(1, statusTop+5, fmt.Sprintf("Region:  %d   Chunks: %d   Loops: %d   Underruns: %d",
		snap.ActiveRegion, snap.Published, snap.Loops, m.ctrl.Underruns()), text)

	m.mu.Lock()
	peak := m.peak
	m.peak = sink.Frame{}
	m.mu.Unlock()
	m.drawText(1, meterTop, "L "+bar(float64(peak.L)/32767, barWidth), text)
	m.drawText(1, meterTop+1, "R "+bar(float64(peak.R)/32767, barWidth), text)

	m.drawText(1, logsTop-1, fmt.Sprintf(" Logs [%s] (-/+ filter) ", m.logLevel), title)
	if m.logs != nil {
		rows := height - logsTop - 1
		for i, e := range m.logs.Recent(rows, m.logLevel) {
			m.drawText(1, logsTop+i, FormatLogEntry(e), text)
		}
	}

	m.drawText(0, height-1, " q=quit s=stop l=loop off r=restart +/-=log filter ", text)
}

func (m *Monitor) drawText(x, y int, s string, style tcell.Style) {
	width, _ := m.screen.Size()
	for i, ch := range s {
		if x+i >= width {
			return
		}
		m.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// bar renders fraction f of a fixed-width bar.
func bar(f float64, width int) string {
	f = min(max(f, 0), 1)
	filled := int(f*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
