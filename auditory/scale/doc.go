// Package scale provides psychoacoustic frequency scale conversions and
// band layout generation.
//
// Three perceptual scales are supported alongside linear and logarithmic
// spacing:
//
//   - Bark: critical-band rate per Traunmüller (1990), used for masking
//     and loudness models.
//   - ERB: equivalent-rectangular-bandwidth rate per Glasberg & Moore
//     (1990), matching cochlear frequency resolution.
//   - Mel: pitch scale per O'Shaughnessy (1987), common in speech
//     analysis front ends.
//
// Each scale has a pair of conversion functions (for example [HzToBark]
// and [BarkToHz]) that invert each other, plus bandwidth estimators
// ([ERBBandwidth], [CriticalBandwidth]).
//
// [Bands] turns a scale, a band count, and a frequency range into a tiling
// of bands with equal width on the scale's coordinate axis:
//
//	bands, err := scale.Bands(scale.TypeERB, 40, 20, 20000)
//	if err != nil {
//	    // invalid configuration
//	}
//	for _, b := range bands {
//	    fmt.Printf("%.0f Hz (%.0f - %.0f)\n", b.CenterHz, b.LowHz, b.HighHz)
//	}
package scale
