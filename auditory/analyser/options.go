package analyser

import (
	"fmt"
	"math"

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
	mode        Mode
	scale       scale.Type
	bands       int
	minHz       float64
	maxHz       float64
	sampleRate  float64
	smoothingMs float64
}

func defaultConfig() config {
	return config{
		mode:        ModeGammatone,
		scale:       scale.TypeERB,
		bands:       defaultBands,
		minHz:       defaultMinHz,
		maxHz:       defaultMaxHz,
		sampleRate:  defaultSampleRate,
		smoothingMs: defaultSmoothingMs,
	}
}

// WithMode selects the analysis method.
func WithMode(m Mode) Option {
	return func(cfg *config) error {
		if !m.IsValid() {
			return fmt.Errorf("analyser: unknown mode: %d", m)
		}

		cfg.mode = m

		return nil
	}
}

// WithScale selects the frequency scale used to space the band centers.
func WithScale(t scale.Type) Option {
	return func(cfg *config) error {
		if !t.IsValid() {
			return fmt.Errorf("analyser: unknown scale type: %d", t)
		}

		cfg.scale = t

		return nil
	}
}

// WithBands sets the number of frequency bands. Must be at least 1.
func WithBands(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("analyser: number of bands must be >= 1: %d", n)
		}

		cfg.bands = n

		return nil
	}
}

// WithRange sets the analysis frequency range in Hz.
// Both edges must be finite and satisfy 0 < min < max.
func WithRange(minHz, maxHz float64) Option {
	return func(cfg *config) error {
		if !isFinite(minHz) || !isFinite(maxHz) {
			return fmt.Errorf("analyser: frequency range must be finite: [%v, %v]", minHz, maxHz)
		}

		if minHz <= 0 || maxHz <= minHz {
			return fmt.Errorf("analyser: frequency range must satisfy 0 < min < max: [%g, %g]", minHz, maxHz)
		}

		cfg.minHz = minHz
		cfg.maxHz = maxHz

		return nil
	}
}

// WithSampleRate sets the sample rate in Hz. Must be finite and > 0.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if !isFinite(sampleRate) || sampleRate <= 0 {
			return fmt.Errorf("analyser: sample rate must be > 0: %v", sampleRate)
		}

		cfg.sampleRate = sampleRate

		return nil
	}
}

// WithSmoothing sets the envelope smoothing time constant in
// milliseconds. Values <= 0 disable smoothing.
func WithSmoothing(ms float64) Option {
	return func(cfg *config) error {
		if !isFinite(ms) {
			return fmt.Errorf("analyser: smoothing must be finite: %v", ms)
		}

		cfg.smoothingMs = ms

		return nil
	}
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
