package main

import (
	"errors"
	"log/slog"

	"github.com/urfave/cli"
	"github.com/valerio/go-adpstream/adpstream/sink"
	"github.com/valerio/go-adpstream/adpstream/timing"
)

var dumpFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "out",
		Usage: "Output WAV path",
		Value: "stream.wav",
	},
	cli.Float64Flag{
		Name:  "seconds",
		Usage: "Maximum seconds to render (required for looping tracks)",
	},
	cli.BoolFlag{
		Name:  "realtime",
		Usage: "Pace polls at the hardware rate instead of rendering flat out",
	},
}

func runDump(c *cli.Context) error {
	t, err := parseTrack(c)
	if err != nil {
		return err
	}
	seconds := c.Float64("seconds")
	if t.loop && seconds <= 0 {
		return errors.New("a looping track never ends, pass --seconds or --no-loop")
	}

	console, err := openTrack(t)
	if err != nil {
		return err
	}
	defer console.Close()

	out, err := sink.CreateWAV(c.String("out"), console.OutputRate())
	if err != nil {
		return err
	}

	limit := uint64(seconds * float64(console.OutputRate()))
	limiter := timing.NewNoOpLimiter()
	if c.Bool("realtime") {
		ticker := timing.NewTickerLimiter(timing.PollInterval)
		defer ticker.Stop()
		limiter = ticker
	}
	buf := make([]int16, 2*timing.FramesPerTick(console.OutputRate(), timing.PollInterval))

	slog.Info("Rendering", "out", c.String("out"), "rate", console.OutputRate(), "loop", t.loop)

	for console.Streaming() && (limit == 0 || console.Frames() < limit) {
		limiter.WaitForNextTick()
		n, err := console.Step(buf)
		if err != nil {
			out.Close()
			return err
		}
		if err := out.Write(buf[:2*n]); err != nil {
			out.Close()
			return err
		}
	}

	if err := out.Close(); err != nil {
		return err
	}
	slog.Info("Render completed", "frames", out.Frames(), "underruns", console.Underruns())
	return nil
}
