// Command bandscan prints the perceptual band energy profile of a WAV
// file. It feeds the samples through a gammatone filterbank and reports
// the smoothed envelope of every band in dB, with a text bar per band.
//
// Usage:
//
//	bandscan [flags] input.wav
//
// Flags:
//
//	-scale string   band spacing scale: linear, log, bark, erb, mel (default "erb")
//	-bands int      number of bands (default 40)
//	-min float      lowest band edge in Hz (default 20)
//	-max float      highest band edge in Hz, 0 = auto from sample rate (default 0)
//	-smoothing float envelope smoothing time constant in ms (default 5)
//	-floor float    dB floor for the level column (default -100)
//	-top int        print only the N loudest bands, 0 = all (default 0)
//	-v              verbose output
//
// Examples:
//
//	bandscan recording.wav
//	bandscan -scale bark -bands 24 recording.wav
//	bandscan -top 5 recording.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-auditory/auditory/analyser"
	"github.com/cwbudde/algo-auditory/auditory/scale"
)

const (
	chunkFrames = 8192
	barWidth    = 40
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		scaleName   = flag.String("scale", "erb", "band spacing scale: linear, log, bark, erb, mel")
		numBands    = flag.Int("bands", 40, "number of bands")
		minHz       = flag.Float64("min", 20, "lowest band edge in Hz")
		maxHz       = flag.Float64("max", 0, "highest band edge in Hz, 0 = auto from sample rate")
		smoothingMs = flag.Float64("smoothing", 5, "envelope smoothing time constant in ms")
		floorDB     = flag.Float64("floor", analyser.DefaultFloorDB, "dB floor for the level column")
		top         = flag.Int("top", 0, "print only the N loudest bands, 0 = all")
		verbose     = flag.Bool("v", false, "verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] input.wav\n\nFlags:\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()

		return errors.New("expected exactly one input file")
	}

	path := flag.Arg(0)

	in, err := openWAVInput(path)
	if err != nil {
		return err
	}
	defer in.Close()

	if *verbose {
		log.Printf("input: %d Hz, %d channels, %d-bit", in.rate, in.channels, in.bitDepth)
	}

	high := *maxHz
	if high <= 0 {
		high = min(20000, float64(in.rate)/2)
	}

	spacing, err := scale.ParseType(*scaleName)
	if err != nil {
		return err
	}

	a, err := analyser.New(
		analyser.WithScale(spacing),
		analyser.WithBands(*numBands),
		analyser.WithRange(*minHz, high),
		analyser.WithSampleRate(float64(in.rate)),
		analyser.WithSmoothing(*smoothingMs),
	)
	if err != nil {
		return err
	}

	totalFrames, err := scanFile(a, in)
	if err != nil {
		return err
	}

	seconds := float64(totalFrames) / float64(in.rate)
	fmt.Printf("%s: %d Hz, %d channels, %d-bit, %.2f s\n", filepath.Base(path), in.rate, in.channels, in.bitDepth, seconds)
	fmt.Printf("%d %s bands, %.0f-%.0f Hz, smoothing %g ms\n\n", a.NumBands(), a.Scale(), *minHz, high, *smoothingMs)

	printLevels(a, *floorDB, *top)

	return nil
}

// scanFile streams the whole file through the analyser and returns the
// number of frames processed.
func scanFile(a *analyser.Analyser, in *wavInput) (int64, error) {
	buf := &audio.IntBuffer{
		Data:   make([]int, chunkFrames*in.channels),
		Format: in.decoder.Format(),
	}
	left := make([]float64, chunkFrames)
	right := make([]float64, chunkFrames)
	invMax := 1 / maxSampleValue(in.bitDepth)

	var totalFrames int64

	for {
		n, err := in.decoder.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return totalFrames, fmt.Errorf("read PCM data: %w", err)
		}

		if n == 0 {
			break
		}

		// PCMBuffer reports interleaved samples, not frames.
		frames := n / in.channels
		if frames == 0 {
			break
		}

		data := buf.Data[:frames*in.channels]

		if in.channels == 2 {
			deinterleaveStereo(left[:frames], right[:frames], data, invMax)
			a.ProcessStereo(left[:frames], right[:frames])
		} else {
			mixToMono(left[:frames], data, in.channels, invMax)
			a.Process(left[:frames])
		}

		totalFrames += int64(frames)
	}

	return totalFrames, nil
}

// printLevels writes the per-band level table and the peak summary.
func printLevels(a *analyser.Analyser, floorDB float64, top int) {
	db := a.EnvelopeDBFloor(floorDB)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Band\tCenter [Hz]\tLevel [dB]\t")

	for _, i := range bandOrder(db, top) {
		fmt.Fprintf(w, "%d\t%.1f\t%+.1f\t%s\n", i, a.CenterHz(i), db[i], levelBar(db[i], floorDB, barWidth))
	}

	w.Flush()

	peak := a.PeakBand()
	fmt.Printf("\npeak: band %d at %.0f Hz (%+.1f dB)\n", peak, a.CenterHz(peak), db[peak])
}
