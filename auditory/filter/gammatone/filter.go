package gammatone

import (
	"fmt"
	"math"
)

const numStages = 4

// State contains the complex resonator states of a [Filter] for
// save/restore workflows.
type State struct {
	Real [numStages]float64
	Imag [numStages]float64
}

// Filter is a single gammatone auditory filter.
//
// It implements the 4th-order all-pole gammatone approximation
// (Slaney 1993, Lyon 1997) as a cascade of four identical complex
// one-pole resonators. The impulse response envelope follows the
// gammatone shape
//
//	g(t) = t^3 * exp(-2*pi*b*t) * cos(2*pi*f*t)
//
// where f is the center frequency and b the bandwidth. Processing a
// sample returns the instantaneous envelope, the magnitude of the final
// resonator state, rather than the band-passed waveform. This makes the
// filter directly usable for level analysis without a separate detector.
type Filter struct {
	centerHz    float64
	bandwidthHz float64
	sampleRate  float64

	r        float64 // pole radius, exp(-2*pi*b/sr)
	cosOmega float64
	sinOmega float64
	gain     float64 // input normalization (1-r)^4 * 2

	state State
}

// NewFilter constructs a gammatone filter for one auditory band.
//
// All three parameters must be finite and greater than zero. For
// perceptually spaced banks the bandwidth is typically
// [scale.ERBBandwidth] of the center frequency.
func NewFilter(centerHz, bandwidthHz, sampleRate float64) (*Filter, error) {
	if err := validatePositive(centerHz, "center frequency"); err != nil {
		return nil, err
	}

	if err := validatePositive(bandwidthHz, "bandwidth"); err != nil {
		return nil, err
	}

	if err := validatePositive(sampleRate, "sample rate"); err != nil {
		return nil, err
	}

	f := &Filter{
		centerHz:    centerHz,
		bandwidthHz: bandwidthHz,
		sampleRate:  sampleRate,
	}
	f.updateCoefficients()

	return f, nil
}

// updateCoefficients derives the resonator coefficients from the current
// center frequency, bandwidth, and sample rate, and clears the state.
func (f *Filter) updateCoefficients() {
	omega := 2 * math.Pi * f.centerHz / f.sampleRate
	bw := 2 * math.Pi * f.bandwidthHz / f.sampleRate

	f.r = math.Exp(-bw)
	f.cosOmega = math.Cos(omega)
	f.sinOmega = math.Sin(omega)

	oneMinusR := 1 - f.r
	f.gain = oneMinusR * oneMinusR * oneMinusR * oneMinusR * 2

	f.Reset()
}

// Reset clears the resonator states.
func (f *Filter) Reset() {
	f.state = State{}
}

// ProcessSample advances the filter by one input sample and returns the
// instantaneous envelope of the band.
func (f *Filter) ProcessSample(input float64) float64 {
	re := input * f.gain
	im := 0.0

	for i := range numStages {
		newRe := re + f.r*(f.cosOmega*f.state.Real[i]-f.sinOmega*f.state.Imag[i])
		newIm := im + f.r*(f.sinOmega*f.state.Real[i]+f.cosOmega*f.state.Imag[i])

		f.state.Real[i] = newRe
		f.state.Imag[i] = newIm

		re = newRe
		im = newIm
	}

	return math.Sqrt(re*re + im*im)
}

// ProcessInPlace replaces each sample in buf with the band envelope.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

// ProcessTo writes the band envelope of src into dst.
// Both slices must have the same length.
func (f *Filter) ProcessTo(dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	_ = dst[n-1]
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// State returns a copy of the current resonator states.
func (f *Filter) State() State {
	return f.state
}

// SetState restores externally saved resonator states.
func (f *Filter) SetState(state State) error {
	for i := range numStages {
		if !isFinite(state.Real[i]) || !isFinite(state.Imag[i]) {
			return fmt.Errorf("gammatone: state contains NaN or Inf")
		}
	}

	f.state = state

	return nil
}

// CenterHz returns the center frequency in Hz.
func (f *Filter) CenterHz() float64 { return f.centerHz }

// BandwidthHz returns the filter bandwidth in Hz.
func (f *Filter) BandwidthHz() float64 { return f.bandwidthHz }

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// PoleRadius returns the resonator pole radius. Values below 1 guarantee
// a stable filter.
func (f *Filter) PoleRadius() float64 { return f.r }

// InputGain returns the input normalization factor.
func (f *Filter) InputGain() float64 { return f.gain }

// SetCenterHz retunes the filter to a new center frequency.
// Updating coefficients clears the filter state.
func (f *Filter) SetCenterHz(centerHz float64) error {
	if err := validatePositive(centerHz, "center frequency"); err != nil {
		return err
	}

	f.centerHz = centerHz
	f.updateCoefficients()

	return nil
}

// SetBandwidthHz updates the filter bandwidth.
// Updating coefficients clears the filter state.
func (f *Filter) SetBandwidthHz(bandwidthHz float64) error {
	if err := validatePositive(bandwidthHz, "bandwidth"); err != nil {
		return err
	}

	f.bandwidthHz = bandwidthHz
	f.updateCoefficients()

	return nil
}

// SetSampleRate updates the sample rate.
// Updating coefficients clears the filter state.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if err := validatePositive(sampleRate, "sample rate"); err != nil {
		return err
	}

	f.sampleRate = sampleRate
	f.updateCoefficients()

	return nil
}

func validatePositive(value float64, name string) error {
	if !isFinite(value) {
		return fmt.Errorf("gammatone: %s must be finite: %v", name, value)
	}

	if value <= 0 {
		return fmt.Errorf("gammatone: %s must be > 0: %v", name, value)
	}

	return nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
