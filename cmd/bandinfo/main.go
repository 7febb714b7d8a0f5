// Command bandinfo prints the band layout of a perceptual filterbank
// configuration.
//
// Usage:
//
//	bandinfo [flags]
//
// Examples:
//
//	bandinfo
//	bandinfo -scale bark -bands 24
//	bandinfo -scale mel -bands 32 -min 50 -max 8000 -rate 44100
//	bandinfo -list
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-auditory/auditory/filter/gammatone"
	"github.com/cwbudde/algo-auditory/auditory/scale"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	scaleName := flag.String("scale", "erb", "band spacing scale (use -list for names)")
	bands := flag.Int("bands", 40, "number of bands")
	minHz := flag.Float64("min", 20, "lowest band edge in Hz")
	maxHz := flag.Float64("max", 20000, "highest band edge in Hz")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	list := flag.Bool("list", false, "list available scale names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bandinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the band layout of a perceptual filterbank configuration:\n")
		fmt.Fprintf(os.Stderr, "band edges, centers, and the gammatone filter parameters per band.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bandinfo -scale bark -bands 24\n")
		fmt.Fprintf(os.Stderr, "  bandinfo -scale mel -min 50 -max 8000 -rate 44100\n")
		fmt.Fprintf(os.Stderr, "  bandinfo -list\n")
	}
	flag.Parse()

	if *list {
		for _, typ := range scale.Types() {
			fmt.Println(typ)
		}

		return nil
	}

	typ, err := scale.ParseType(*scaleName)
	if err != nil {
		return err
	}

	layout, err := scale.Bands(typ, *bands, *minHz, *maxHz)
	if err != nil {
		return err
	}

	return printLayout(layout, typ, *rate)
}

func printLayout(layout []scale.Band, typ scale.Type, rate float64) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "Band\tCenter [Hz]\tLow [Hz]\tHigh [Hz]\tWidth [Hz]\tERB [Hz]\tPole radius\t\n")
	fmt.Fprintf(tw, "----\t-----------\t--------\t---------\t----------\t--------\t-----------\t\n")

	for i, band := range layout {
		// The filter bandwidth is the ERB at the center regardless of the
		// spacing scale, so derive the pole from an actual filter.
		f, err := gammatone.NewFilter(band.CenterHz, scale.ERBBandwidth(band.CenterHz), rate)
		if err != nil {
			return fmt.Errorf("band %d (%s spacing): %w", i, typ, err)
		}

		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.6f\t\n",
			i,
			band.CenterHz,
			band.LowHz,
			band.HighHz,
			band.BandwidthHz,
			f.BandwidthHz(),
			f.PoleRadius(),
		)
	}

	return tw.Flush()
}
