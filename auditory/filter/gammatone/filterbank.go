package gammatone

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-auditory/auditory/scale"
	"github.com/cwbudde/algo-vecmath"
)

// Filterbank is a bank of gammatone filters for perceptual spectrum
// analysis.
//
// Band centers are spaced on a configurable frequency scale while each
// filter's bandwidth follows the ERB at its center, so every band models
// one cochlear channel. The bank maintains two per-band buffers: the
// instantaneous magnitudes of the current sample and a smoothed envelope
// tracking them through a one-pole lowpass.
//
// The resonator states are stored stage-major (all bands of one cascade
// stage contiguous), which lets the per-sample magnitude pass run as a
// single vectorized operation over the final stage.
type Filterbank struct {
	bands       []scale.Band
	scaleType   scale.Type
	sampleRate  float64
	smoothingMs float64
	smoothCoeff float64

	// per-band resonator coefficients
	r        []float64
	cosOmega []float64
	sinOmega []float64
	gain     []float64

	// resonator states, stage-major: stageRe[s][band]
	stageRe [numStages][]float64
	stageIm [numStages][]float64

	magnitudes []float64
	envelope   []float64
}

// New constructs a gammatone filterbank.
//
// Without options the bank has 40 ERB-spaced bands covering 20 Hz to
// 20 kHz at 48 kHz with 5 ms envelope smoothing.
func New(opts ...Option) (*Filterbank, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	bands, err := scale.Bands(cfg.scale, cfg.bands, cfg.minHz, cfg.maxHz)
	if err != nil {
		return nil, fmt.Errorf("gammatone: band layout: %w", err)
	}

	n := len(bands)
	fb := &Filterbank{
		bands:       bands,
		scaleType:   cfg.scale,
		sampleRate:  cfg.sampleRate,
		smoothingMs: cfg.smoothingMs,
		r:           make([]float64, n),
		cosOmega:    make([]float64, n),
		sinOmega:    make([]float64, n),
		gain:        make([]float64, n),
		magnitudes:  make([]float64, n),
		envelope:    make([]float64, n),
	}

	for s := range numStages {
		fb.stageRe[s] = make([]float64, n)
		fb.stageIm[s] = make([]float64, n)
	}

	for i, band := range bands {
		f, err := NewFilter(band.CenterHz, scale.ERBBandwidth(band.CenterHz), cfg.sampleRate)
		if err != nil {
			return nil, fmt.Errorf("gammatone: band %d (%.2f Hz): %w", i, band.CenterHz, err)
		}

		fb.r[i] = f.r
		fb.cosOmega[i] = f.cosOmega
		fb.sinOmega[i] = f.sinOmega
		fb.gain[i] = f.gain
	}

	if cfg.smoothingMs > 0 {
		tau := cfg.smoothingMs / 1000
		fb.smoothCoeff = math.Exp(-1 / (tau * cfg.sampleRate))
	}

	return fb, nil
}

// Reset clears all resonator states and both result buffers.
// A reset bank behaves exactly like a freshly constructed one.
func (fb *Filterbank) Reset() {
	for s := range numStages {
		clear(fb.stageRe[s])
		clear(fb.stageIm[s])
	}

	clear(fb.magnitudes)
	clear(fb.envelope)
}

// ProcessSample advances every band by one input sample, updating the
// magnitude and envelope buffers.
func (fb *Filterbank) ProcessSample(input float64) {
	n := len(fb.magnitudes)

	// Stage 0 takes the gain-scaled input with zero imaginary part.
	re0, im0 := fb.stageRe[0], fb.stageIm[0]
	for i := range n {
		newRe := input*fb.gain[i] + fb.r[i]*(fb.cosOmega[i]*re0[i]-fb.sinOmega[i]*im0[i])
		newIm := fb.r[i] * (fb.sinOmega[i]*re0[i] + fb.cosOmega[i]*im0[i])

		re0[i] = newRe
		im0[i] = newIm
	}

	// Later stages take the previous stage's fresh output as input.
	for s := 1; s < numStages; s++ {
		prevRe, prevIm := fb.stageRe[s-1], fb.stageIm[s-1]
		curRe, curIm := fb.stageRe[s], fb.stageIm[s]

		for i := range n {
			newRe := prevRe[i] + fb.r[i]*(fb.cosOmega[i]*curRe[i]-fb.sinOmega[i]*curIm[i])
			newIm := prevIm[i] + fb.r[i]*(fb.sinOmega[i]*curRe[i]+fb.cosOmega[i]*curIm[i])

			curRe[i] = newRe
			curIm[i] = newIm
		}
	}

	vecmath.Magnitude(fb.magnitudes, fb.stageRe[numStages-1], fb.stageIm[numStages-1])

	c := fb.smoothCoeff
	if c > 0 {
		for i, mag := range fb.magnitudes {
			fb.envelope[i] = c*fb.envelope[i] + (1-c)*mag
		}
	} else {
		copy(fb.envelope, fb.magnitudes)
	}
}

// ProcessBlock advances the bank over a block of samples and returns the
// envelope buffer. The returned slice is owned by the bank and is updated
// on each processing call.
func (fb *Filterbank) ProcessBlock(input []float64) []float64 {
	for _, x := range input {
		fb.ProcessSample(x)
	}

	return fb.envelope
}

// NumBands returns the number of bands.
func (fb *Filterbank) NumBands() int { return len(fb.bands) }

// SampleRate returns the sample rate in Hz.
func (fb *Filterbank) SampleRate() float64 { return fb.sampleRate }

// Scale returns the frequency scale used to space the band centers.
func (fb *Filterbank) Scale() scale.Type { return fb.scaleType }

// SmoothingMs returns the envelope smoothing time constant in
// milliseconds. Zero means the envelope tracks the magnitudes exactly.
func (fb *Filterbank) SmoothingMs() float64 { return fb.smoothingMs }

// Bands returns metadata for each band, ordered by ascending center
// frequency.
func (fb *Filterbank) Bands() []scale.Band {
	out := make([]scale.Band, len(fb.bands))
	copy(out, fb.bands)

	return out
}

// CenterHz returns the center frequency of the given band in Hz.
func (fb *Filterbank) CenterHz(band int) float64 {
	return fb.bands[band].CenterHz
}

// Magnitudes returns the per-band instantaneous magnitudes of the most
// recently processed sample. The returned slice is owned by the bank.
func (fb *Filterbank) Magnitudes() []float64 {
	return fb.magnitudes
}

// Magnitude returns the instantaneous magnitude of the given band.
func (fb *Filterbank) Magnitude(band int) float64 {
	return fb.magnitudes[band]
}

// EnvelopeValue returns the smoothed envelope of the given band.
func (fb *Filterbank) EnvelopeValue(band int) float64 {
	return fb.envelope[band]
}

// Envelope returns the per-band smoothed envelope. The returned slice is
// owned by the bank and is updated on each processing call.
func (fb *Filterbank) Envelope() []float64 {
	return fb.envelope
}

// EnvelopeDB returns the envelope converted to decibels. Bands at or
// below zero map to exactly minDB; all others map to 20*log10(value).
func (fb *Filterbank) EnvelopeDB(minDB float64) []float64 {
	out := make([]float64, len(fb.envelope))
	fb.EnvelopeDBTo(out, minDB)

	return out
}

// EnvelopeDBTo writes the envelope in decibels into dst, which must have
// one element per band. This is the allocation-free variant of
// [Filterbank.EnvelopeDB].
func (fb *Filterbank) EnvelopeDBTo(dst []float64, minDB float64) {
	_ = dst[len(fb.envelope)-1]

	for i, v := range fb.envelope {
		if v > 0 {
			dst[i] = 20 * math.Log10(v)
		} else {
			dst[i] = minDB
		}
	}
}
