package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/urfave/cli"
	"github.com/valerio/go-adpstream/adpstream"
	"github.com/valerio/go-adpstream/adpstream/hw"
)

func main() {
	app := cli.NewApp()
	app.Name = "adpstream"
	app.Description = "Streams ADP compressed disc audio through an emulated audio DMA engine"
	app.Usage = "adpstream <command> [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		level := slog.LevelInfo
		if c.Bool("debug") {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "dump",
			Usage:  "Render a track to a WAV file as fast as possible",
			Flags:  append(trackFlags(), dumpFlags...),
			Action: runDump,
		},
		{
			Name:   "play",
			Usage:  "Play a track in real time",
			Flags:  append(trackFlags(), playFlags...),
			Action: runPlay,
		},
		{
			Name:   "encode",
			Usage:  "Encode a 48 kHz stereo WAV file into an ADP disc image",
			Flags:  encodeFlags,
			Action: runEncode,
		},
		{
			Name:   "info",
			Usage:  "Show chunking and timing for a track",
			Flags:  infoFlags,
			Action: runInfo,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running adpstream", "error", err)
		os.Exit(1)
	}
}

func trackFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "image",
			Usage: "Path to the disc image",
		},
		cli.StringFlag{
			Name:  "start",
			Usage: "Track start offset on disc (decimal or 0x hex)",
		},
		cli.StringFlag{
			Name:  "size",
			Usage: "Track size in bytes (decimal or 0x hex)",
		},
		cli.BoolFlag{
			Name:  "32k",
			Usage: "Clock the audio DMA at 32 kHz (3:2 downsampling)",
		},
		cli.BoolFlag{
			Name:  "no-loop",
			Usage: "Stop after the last chunk instead of looping",
		},
	}
}

type trackArgs struct {
	image       string
	start, size uint32
	rate        int
	loop        bool
}

func parseTrack(c *cli.Context) (trackArgs, error) {
	t := trackArgs{
		image: c.String("image"),
		rate:  hw.Rate48K,
		loop:  !c.Bool("no-loop"),
	}
	if t.image == "" {
		if c.NArg() == 0 {
			return t, fmt.Errorf("no disc image provided")
		}
		t.image = c.Args().Get(0)
	}
	if c.Bool("32k") {
		t.rate = hw.Rate32K
	}

	var err error
	if t.start, err = parseOffset(c.String("start")); err != nil {
		return t, fmt.Errorf("invalid --start: %w", err)
	}
	if t.size, err = parseOffset(c.String("size")); err != nil {
		return t, fmt.Errorf("invalid --size: %w", err)
	}
	if t.start == 0 || t.size == 0 {
		return t, fmt.Errorf("--start and --size must be non-zero")
	}
	return t, nil
}

// parseOffset accepts decimal, 0x hex or 0o octal byte offsets.
func parseOffset(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// openTrack opens the console and starts the track.
func openTrack(t trackArgs) (*adpstream.Console, error) {
	console, err := adpstream.NewWithFile(t.image, adpstream.WithOutputRate(t.rate))
	if err != nil {
		return nil, err
	}

	if err := console.Start(t.start, t.size); err != nil {
		console.Close()
		return nil, err
	}
	if !t.loop {
		console.Start(0, 0)
	}
	return console, nil
}
