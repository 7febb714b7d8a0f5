package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-audio/wav"
)

// wavInput holds a validated WAV source.
type wavInput struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
}

// openWAVInput opens and validates a WAV file, returning format
// information.
func openWAVInput(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		_ = f.Close()

		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := dec.Format()
	if format.NumChannels < 1 {
		_ = f.Close()

		return nil, fmt.Errorf("invalid channel count %d: %s", format.NumChannels, path)
	}

	return &wavInput{
		file:     f,
		decoder:  dec,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(dec.BitDepth),
	}, nil
}

// Close closes the input file.
func (w *wavInput) Close() error {
	return w.file.Close()
}

// maxSampleValue returns the full-scale PCM value for a bit depth.
func maxSampleValue(bitDepth int) float64 {
	switch bitDepth {
	case 24:
		return 8388607
	case 32:
		return 2147483647
	default:
		return 32767
	}
}

// deinterleaveStereo splits interleaved stereo PCM frames into two
// normalized channel buffers of equal length.
func deinterleaveStereo(left, right []float64, data []int, invMax float64) {
	for i := range left {
		left[i] = float64(data[2*i]) * invMax
		right[i] = float64(data[2*i+1]) * invMax
	}
}

// mixToMono averages interleaved PCM frames of any channel count into a
// normalized mono buffer.
func mixToMono(dst []float64, data []int, channels int, invMax float64) {
	scale := invMax / float64(channels)

	for i := range dst {
		sum := 0
		base := i * channels

		for ch := range channels {
			sum += data[base+ch]
		}

		dst[i] = float64(sum) * scale
	}
}

// bandOrder returns band indices in display order: ascending frequency,
// or the top loudest in descending level when top > 0.
func bandOrder(levels []float64, top int) []int {
	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}

	if top <= 0 || top >= len(levels) {
		return order
	}

	sort.SliceStable(order, func(a, b int) bool {
		return levels[order[a]] > levels[order[b]]
	})

	return order[:top]
}

// levelBar renders a level in [floorDB, 0] dB as a bar of at most width
// characters.
func levelBar(db, floorDB float64, width int) string {
	if floorDB >= 0 || width <= 0 {
		return ""
	}

	frac := (db - floorDB) / -floorDB
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}

	return strings.Repeat("#", int(frac*float64(width)+0.5))
}
