// Package analyser provides a perceptual spectrum analyser for real-time
// audio visualization and level analysis.
//
// An [Analyser] wraps one analysis method behind a [Mode] tag; the only
// method implemented today is the gammatone filterbank, which decomposes
// the signal into auditory frequency bands with per-sample time
// resolution. Transform-based methods can be added as further modes
// without changing the facade.
//
// Input can be mono, two separate stereo channels, or interleaved stereo
// frames; stereo is mixed to mono by plain averaging before analysis:
//
//	a, err := analyser.New(
//	    analyser.WithBands(40),
//	    analyser.WithScale(scale.TypeERB),
//	    analyser.WithSampleRate(48000),
//	)
//	if err != nil {
//	    // invalid configuration
//	}
//	env := a.ProcessStereo(left, right)
//	db := a.EnvelopeDB()
//
// All per-band outputs are indexed 0..NumBands-1 in ascending-frequency
// order, matching the band metadata returned by [Analyser.Bands].
package analyser
