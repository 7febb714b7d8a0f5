package analyser

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-auditory/auditory/filter/gammatone"
	"github.com/cwbudde/algo-auditory/auditory/scale"
)

// DefaultFloorDB is the silence floor used by [Analyser.EnvelopeDB].
const DefaultFloorDB = -100.0

// Mode identifies the analysis method driving an [Analyser].
//
// The set is closed; processing and accessor paths dispatch on it, so a
// future transform-based method extends the enum and the dispatch without
// touching the filter math.
type Mode int

const (
	// ModeGammatone analyses the signal with a gammatone filterbank, the
	// auditory model with the lowest latency.
	ModeGammatone Mode = iota
)

// String returns a human-readable name for the analysis mode.
func (m Mode) String() string {
	switch m {
	case ModeGammatone:
		return "gammatone"
	default:
		return "unknown"
	}
}

// IsValid reports whether m is one of the defined analysis modes.
func (m Mode) IsValid() bool {
	return m == ModeGammatone
}

// Analyser computes a perceptually scaled band energy profile from a
// stream of audio samples.
//
// Construct with [New]; feed samples through [Analyser.Process],
// [Analyser.ProcessStereo], or [Analyser.ProcessInterleaved]; read the
// result through [Analyser.Envelope] or [Analyser.EnvelopeDB]. Instances
// are independent of each other, but a single instance must not be used
// from multiple goroutines at once.
type Analyser struct {
	mode Mode
	bank *gammatone.Filterbank
	mono []float64 // stereo mix-down scratch, grown on demand
}

// New constructs an analyser.
//
// Without options the analyser runs a gammatone filterbank with 40
// ERB-spaced bands covering 20 Hz to 20 kHz at 48 kHz with 5 ms envelope
// smoothing.
func New(opts ...Option) (*Analyser, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	a := &Analyser{mode: cfg.mode}

	switch cfg.mode {
	case ModeGammatone:
		bank, err := gammatone.New(
			gammatone.WithBands(cfg.bands),
			gammatone.WithRange(cfg.minHz, cfg.maxHz),
			gammatone.WithSampleRate(cfg.sampleRate),
			gammatone.WithScale(cfg.scale),
			gammatone.WithSmoothing(cfg.smoothingMs),
		)
		if err != nil {
			return nil, fmt.Errorf("analyser: %w", err)
		}

		a.bank = bank
	}

	return a, nil
}

// Reset clears all analysis state. A reset analyser behaves exactly like
// a freshly constructed one.
func (a *Analyser) Reset() {
	switch a.mode {
	case ModeGammatone:
		a.bank.Reset()
	}
}

// ProcessSample advances the analysis by one mono sample.
func (a *Analyser) ProcessSample(input float64) {
	switch a.mode {
	case ModeGammatone:
		a.bank.ProcessSample(input)
	}
}

// Process advances the analysis over a block of mono samples and returns
// the per-band envelope. The returned slice is owned by the analyser and
// is updated on each processing call.
func (a *Analyser) Process(input []float64) []float64 {
	switch a.mode {
	case ModeGammatone:
		return a.bank.ProcessBlock(input)
	default:
		return nil
	}
}

// ProcessStereo mixes the two channels by plain averaging and analyses
// the result. Channels of unequal length are truncated to the shorter
// one. No loudness compensation is applied, so out-of-phase content
// cancels in the mix.
func (a *Analyser) ProcessStereo(left, right []float64) []float64 {
	n := min(len(left), len(right))
	a.growMono(n)

	floats.AddTo(a.mono, left[:n], right[:n])
	floats.Scale(0.5, a.mono)

	return a.Process(a.mono)
}

// ProcessInterleaved analyses interleaved stereo frames (L0 R0 L1 R1 ...),
// mixing each frame to mono. A trailing half frame is ignored.
func (a *Analyser) ProcessInterleaved(frames []float64) []float64 {
	n := len(frames) / 2
	a.growMono(n)

	for i := range n {
		a.mono[i] = (frames[2*i] + frames[2*i+1]) * 0.5
	}

	return a.Process(a.mono)
}

func (a *Analyser) growMono(n int) {
	if cap(a.mono) < n {
		a.mono = make([]float64, n)
	} else {
		a.mono = a.mono[:n]
	}
}

// Mode returns the active analysis mode.
func (a *Analyser) Mode() Mode { return a.mode }

// NumBands returns the number of bands.
func (a *Analyser) NumBands() int { return a.bank.NumBands() }

// SampleRate returns the sample rate in Hz.
func (a *Analyser) SampleRate() float64 { return a.bank.SampleRate() }

// Scale returns the frequency scale used to space the band centers.
func (a *Analyser) Scale() scale.Type { return a.bank.Scale() }

// CenterHz returns the center frequency of the given band in Hz.
func (a *Analyser) CenterHz(band int) float64 { return a.bank.CenterHz(band) }

// Bands returns metadata for each band, ordered by ascending center
// frequency.
func (a *Analyser) Bands() []scale.Band { return a.bank.Bands() }

// Envelope returns the per-band smoothed envelope. The returned slice is
// owned by the analyser and is updated on each processing call.
func (a *Analyser) Envelope() []float64 {
	switch a.mode {
	case ModeGammatone:
		return a.bank.Envelope()
	default:
		return nil
	}
}

// Magnitudes returns the per-band instantaneous magnitudes of the most
// recently processed sample. The returned slice is owned by the analyser.
func (a *Analyser) Magnitudes() []float64 {
	switch a.mode {
	case ModeGammatone:
		return a.bank.Magnitudes()
	default:
		return nil
	}
}

// Magnitude returns the instantaneous magnitude of the given band.
func (a *Analyser) Magnitude(band int) float64 {
	return a.Magnitudes()[band]
}

// EnvelopeDB returns the envelope in decibels with the [DefaultFloorDB]
// silence floor.
func (a *Analyser) EnvelopeDB() []float64 {
	return a.EnvelopeDBFloor(DefaultFloorDB)
}

// EnvelopeDBFloor returns the envelope in decibels. Bands at or below
// zero map to exactly minDB; all others map to 20*log10(value).
func (a *Analyser) EnvelopeDBFloor(minDB float64) []float64 {
	switch a.mode {
	case ModeGammatone:
		return a.bank.EnvelopeDB(minDB)
	default:
		return nil
	}
}

// PeakBand returns the index of the band with the strongest envelope.
// With no samples processed yet, it returns 0.
func (a *Analyser) PeakBand() int {
	return floats.MaxIdx(a.Envelope())
}
