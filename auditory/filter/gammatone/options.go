package gammatone

import (
	"fmt"

	"github.com/cwbudde/algo-auditory/auditory/scale"
)

const (
	defaultBands       = 40
	defaultMinHz       = 20.0
	defaultMaxHz       = 20000.0
	defaultSampleRate  = 48000.0
	defaultSmoothingMs = 5.0
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	bands       int
	minHz       float64
	maxHz       float64
	sampleRate  float64
	scale       scale.Type
	smoothingMs float64
}

func defaultConfig() config {
	return config{
		bands:       defaultBands,
		minHz:       defaultMinHz,
		maxHz:       defaultMaxHz,
		sampleRate:  defaultSampleRate,
		scale:       scale.TypeERB,
		smoothingMs: defaultSmoothingMs,
	}
}

// WithBands sets the number of frequency bands. Must be at least 1.
func WithBands(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("gammatone: number of bands must be >= 1: %d", n)
		}

		cfg.bands = n

		return nil
	}
}

// WithRange sets the analysis frequency range in Hz.
// Both edges must be finite and satisfy 0 < min < max. Choosing a maximum
// above the Nyquist frequency is not rejected but yields bands the input
// cannot excite.
func WithRange(minHz, maxHz float64) Option {
	return func(cfg *config) error {
		if !isFinite(minHz) || !isFinite(maxHz) {
			return fmt.Errorf("gammatone: frequency range must be finite: [%v, %v]", minHz, maxHz)
		}

		if minHz <= 0 || maxHz <= minHz {
			return fmt.Errorf("gammatone: frequency range must satisfy 0 < min < max: [%g, %g]", minHz, maxHz)
		}

		cfg.minHz = minHz
		cfg.maxHz = maxHz

		return nil
	}
}

// WithSampleRate sets the sample rate in Hz. Must be finite and > 0.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if err := validatePositive(sampleRate, "sample rate"); err != nil {
			return err
		}

		cfg.sampleRate = sampleRate

		return nil
	}
}

// WithScale selects the frequency scale used to space the band centers.
// The per-band filter bandwidth is always the ERB at the band center,
// independent of the spacing scale.
func WithScale(t scale.Type) Option {
	return func(cfg *config) error {
		if !t.IsValid() {
			return fmt.Errorf("gammatone: unknown scale type: %d", t)
		}

		cfg.scale = t

		return nil
	}
}

// WithSmoothing sets the envelope smoothing time constant in
// milliseconds. Values <= 0 disable smoothing, so the envelope tracks the
// instantaneous magnitudes exactly.
func WithSmoothing(ms float64) Option {
	return func(cfg *config) error {
		if !isFinite(ms) {
			return fmt.Errorf("gammatone: smoothing must be finite: %v", ms)
		}

		cfg.smoothingMs = ms

		return nil
	}
}
