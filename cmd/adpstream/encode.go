package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-audio/wav"
	"github.com/urfave/cli"
	"github.com/valerio/go-adpstream/adpstream/adp"
	"github.com/valerio/go-adpstream/adpstream/hw"
	"github.com/valerio/go-adpstream/adpstream/stream"
	"github.com/valerio/go-adpstream/adpstream/timing"
)

var encodeFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "in",
		Usage: "Input WAV file (48 kHz, 16-bit stereo)",
	},
	cli.StringFlag{
		Name:  "out",
		Usage: "Output disc image path",
		Value: "stream.img",
	},
	cli.StringFlag{
		Name:  "start",
		Usage: "Track offset inside the image",
		Value: "0x8000",
	},
}

var infoFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "size",
		Usage: "Track size in bytes (decimal or 0x hex)",
	},
	cli.BoolFlag{
		Name:  "32k",
		Usage: "Show chunking for 32 kHz output",
	},
}

var errBadWAV = errors.New("unsupported wav input")

func runEncode(c *cli.Context) error {
	in := c.String("in")
	if in == "" {
		if c.NArg() == 0 {
			return errors.New("no input wav provided")
		}
		in = c.Args().Get(0)
	}
	start, err := parseOffset(c.String("start"))
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	frames, err := readWAV(f)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	out, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	size, err := writeImage(out, start, frames)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	slog.Info("Encoded track", "out", c.String("out"), "frames", len(frames)/2)
	fmt.Printf("start=%#x size=%#x\n", start, size)
	return nil
}

// readWAV returns the interleaved samples of a 48 kHz 16-bit stereo WAV file.
func readWAV(r io.ReadSeeker) ([]int16, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a wav file", errBadWAV)
	}
	if dec.NumChans != 2 || dec.BitDepth != 16 || dec.SampleRate != adp.SampleRate {
		return nil, fmt.Errorf("%w: %d ch %d bit %d Hz, need 2 ch 16 bit %d Hz",
			errBadWAV, dec.NumChans, dec.BitDepth, dec.SampleRate, adp.SampleRate)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	frames := make([]int16, len(buf.Data)&^1)
	for i := range frames {
		frames[i] = int16(buf.Data[i])
	}
	return frames, nil
}

// writeImage writes a disc image holding frames as one ADP track at start and
// returns the track size. The image is padded past the track so tail chunk
// reads stay on disc.
func writeImage(w io.Writer, start uint32, frames []int16) (uint32, error) {
	if start == 0 || start%adp.BlockSize != 0 {
		return 0, fmt.Errorf("track start %#x must be a non-zero multiple of %d", start, adp.BlockSize)
	}

	track := adp.Encode(frames)
	if _, err := w.Write(make([]byte, start)); err != nil {
		return 0, err
	}
	if _, err := w.Write(track); err != nil {
		return 0, err
	}
	if _, err := w.Write(make([]byte, stream.ChunkDownsample)); err != nil {
		return 0, err
	}
	return uint32(len(track)), nil
}

func runInfo(c *cli.Context) error {
	size, err := parseOffset(c.String("size"))
	if err != nil || size == 0 {
		return fmt.Errorf("invalid --size %q", c.String("size"))
	}

	cfg := stream.DefaultConfig()
	chunk := stream.ChunkConfig{Mode: stream.FullRate, Size: cfg.FullRateChunk}
	rate := hw.Rate48K
	if c.Bool("32k") {
		chunk = stream.ChunkConfig{Mode: stream.Downsample, Size: cfg.DownsampleChunk}
		rate = hw.Rate32K
	}

	blocks := size / adp.BlockSize
	pairs := blocks * adp.SamplesPerBlock
	chunks := (int(size) + chunk.Size - 1) / chunk.Size

	fmt.Printf("mode:        %s\n", chunk.Mode)
	fmt.Printf("chunk:       %#x bytes (%d blocks, %d output frames)\n", chunk.Size, chunk.Size/adp.BlockSize, chunk.OutputBytes()/4)
	fmt.Printf("chunks:      %d (last padded by %#x bytes)\n", chunks, chunks*chunk.Size-int(size))
	fmt.Printf("duration:    %.2fs\n", float64(pairs)/adp.SampleRate)
	fmt.Printf("region:      %s per refill, %d polls of headroom\n",
		timing.RegionDuration(rate), timing.Headroom(rate, timing.PollInterval))
	return nil
}
