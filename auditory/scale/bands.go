package scale

import (
	"fmt"
	"math"
)

// Band describes one frequency band produced by [Bands].
type Band struct {
	CenterHz    float64 // center frequency in Hz
	LowHz       float64 // lower band edge in Hz
	HighHz      float64 // upper band edge in Hz
	BandwidthHz float64 // band width in Hz (HighHz - LowHz)
}

// Bands divides the frequency range [minHz, maxHz] into numBands bands of
// equal width on the coordinate axis of the given scale. Adjacent bands
// share their edge frequencies, so the bands tile the range exactly.
//
// The center frequency rule depends on the scale: Linear uses the
// arithmetic mean of the edges, Log the geometric mean, and the perceptual
// scales (Bark, ERB, Mel) map the midpoint of the band's scale coordinates
// back to Hz.
//
// The returned bands are ordered by ascending center frequency.
func Bands(t Type, numBands int, minHz, maxHz float64) ([]Band, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("scale: unknown type: %d", t)
	}

	if numBands < 1 {
		return nil, fmt.Errorf("scale: number of bands must be >= 1: %d", numBands)
	}

	if math.IsNaN(minHz) || math.IsInf(minHz, 0) || math.IsNaN(maxHz) || math.IsInf(maxHz, 0) {
		return nil, fmt.Errorf("scale: frequency range must be finite: [%v, %v]", minHz, maxHz)
	}

	if minHz <= 0 || maxHz <= minHz {
		return nil, fmt.Errorf("scale: frequency range must satisfy 0 < min < max: [%g, %g]", minHz, maxHz)
	}

	coordMin := t.FromHz(minHz)
	coordMax := t.FromHz(maxHz)
	step := (coordMax - coordMin) / float64(numBands)

	bands := make([]Band, numBands)

	for i := range numBands {
		coordLow := coordMin + float64(i)*step
		coordHigh := coordMin + float64(i+1)*step
		low := t.ToHz(coordLow)
		high := t.ToHz(coordHigh)

		var center float64

		switch t {
		case TypeLinear:
			center = (low + high) / 2
		case TypeLog:
			center = math.Sqrt(low * high)
		default:
			center = t.ToHz((coordLow + coordHigh) / 2)
		}

		bands[i] = Band{
			CenterHz:    center,
			LowHz:       low,
			HighHz:      high,
			BandwidthHz: high - low,
		}
	}

	return bands, nil
}
