package gammatone

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) of the filter
// at the given frequency in Hz.
//
// The cascade transfer function is
//
//	H(z) = g / (1 - p*z^-1)^4
//
// with pole p = r*e^(j*omega_c) and input gain g.
func (f *Filter) Response(freqHz float64) complex128 {
	w := 2 * math.Pi * freqHz / f.sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	pole := complex(f.r*f.cosOmega, f.r*f.sinOmega)

	d := 1 - pole*ejw
	den := d * d * d * d

	return complex(f.gain, 0) / den
}

// MagnitudeDB returns 20*log10(|H(f)|) at the given frequency in Hz.
//
// At the center frequency the normalized cascade peaks at +6.02 dB, which
// makes the envelope of a full-scale sine at the center read as 1.0.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz)))
}

// Phase returns the phase response in radians at the given frequency.
// The result is in [-pi, pi].
func (f *Filter) Phase(freqHz float64) float64 {
	return cmplx.Phase(f.Response(freqHz))
}

// ImpulseResponse computes n samples of the filter's envelope response to
// a unit impulse. The filter state is saved and restored, so this method
// does not disturb ongoing processing.
//
// The returned sequence follows the gammatone envelope t^3*exp(-2*pi*b*t)
// up to normalization; its peak falls near 3/(2*pi*b) seconds.
func (f *Filter) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := f.state
	f.Reset()

	ir := make([]float64, n)
	ir[0] = f.ProcessSample(1)

	for i := 1; i < n; i++ {
		ir[i] = f.ProcessSample(0)
	}

	f.state = saved

	return ir
}
