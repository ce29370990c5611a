package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"
	"github.com/valerio/go-adpstream/adpstream/monitor"
	"github.com/valerio/go-adpstream/adpstream/sink"
	"github.com/valerio/go-adpstream/adpstream/timing"
)

var playFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "backend",
		Usage: "Audio backend: " + strings.Join(sink.Backends, ", "),
		Value: "sdl2",
	},
	cli.BoolFlag{
		Name:  "monitor",
		Usage: "Show a live terminal view of the stream",
	},
}

const (
	// queueTicks is how many poll intervals of audio are kept queued on the device.
	queueTicks = 8
	// monitorTicks is how many poll intervals pass between monitor redraws.
	monitorTicks = 8
)

func runPlay(c *cli.Context) error {
	t, err := parseTrack(c)
	if err != nil {
		return err
	}

	var logs *monitor.LogBuffer
	if c.Bool("monitor") {
		// tcell owns the terminal, so logs go to the monitor's pane
		prev := slog.Default()
		logs = monitor.NewLogBuffer(200)
		level := slog.LevelInfo
		if c.GlobalBool("debug") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(monitor.NewLogBufferHandler(logs, level)))
		defer slog.SetDefault(prev)
	}

	console, err := openTrack(t)
	if err != nil {
		return err
	}
	defer console.Close()

	dev, err := sink.Open(c.String("backend"), console.OutputRate())
	if err != nil {
		return err
	}
	defer dev.Close()

	var mon *monitor.Monitor
	if logs != nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		mon = monitor.New(console, logs, t.start, t.size)
		if err := mon.Init(screen); err != nil {
			return err
		}
		defer mon.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rate := console.OutputRate()
	perTick := timing.FramesPerTick(rate, timing.PollInterval)
	buf := make([]int16, 2*perTick)
	limiter := timing.NewAdaptiveLimiter(timing.PollInterval)

	slog.Info("Playing", "backend", c.String("backend"), "rate", rate, "headroom_polls", timing.Headroom(rate, timing.PollInterval))

	// with the monitor open, a stopped track can be restarted from the keyboard
	for ctx.Err() == nil && (console.Streaming() || mon != nil) {
		limiter.WaitForNextTick()

		if dev.Queued() < queueTicks*perTick {
			n, err := console.Step(buf)
			if err != nil {
				return err
			}
			if err := dev.Queue(buf[:2*n]); err != nil {
				return err
			}
			if mon != nil {
				mon.Observe(buf[:2*n])
			}
		}

		if mon != nil && limiter.Ticks()%monitorTicks == 0 {
			mon.Update()
			if !mon.Running() {
				console.End()
				break
			}
		}
	}

	slog.Info("Playback finished", "frames", console.Frames(), "underruns", console.Underruns())
	return nil
}
