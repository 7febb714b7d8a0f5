package gammatone

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-auditory/auditory/scale"
	"github.com/cwbudde/algo-auditory/internal/testutil"
)

func TestNewDefaults(t *testing.T) {
	fb, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if fb.NumBands() != 40 {
		t.Errorf("NumBands() = %d, want 40", fb.NumBands())
	}

	if fb.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %g, want 48000", fb.SampleRate())
	}

	if fb.Scale() != scale.TypeERB {
		t.Errorf("Scale() = %v, want erb", fb.Scale())
	}

	if fb.SmoothingMs() != 5 {
		t.Errorf("SmoothingMs() = %g, want 5", fb.SmoothingMs())
	}

	bands := fb.Bands()
	if len(bands) != 40 {
		t.Fatalf("len(Bands()) = %d, want 40", len(bands))
	}

	if d := math.Abs(bands[0].LowHz - 20); d > 1e-6 {
		t.Errorf("first band low = %g, want ~20", bands[0].LowHz)
	}

	if d := math.Abs(bands[39].HighHz - 20000); d > 1e-6 {
		t.Errorf("last band high = %g, want ~20000", bands[39].HighHz)
	}
}

func TestNewOptionValidation(t *testing.T) {
	cases := []struct {
		name string
		opt  Option
	}{
		{"zero bands", WithBands(0)},
		{"negative bands", WithBands(-3)},
		{"min above max", WithRange(2000, 100)},
		{"zero min", WithRange(0, 100)},
		{"infinite max", WithRange(20, math.Inf(1))},
		{"zero sample rate", WithSampleRate(0)},
		{"NaN sample rate", WithSampleRate(math.NaN())},
		{"unknown scale", WithScale(scale.Type(99))},
		{"NaN smoothing", WithSmoothing(math.NaN())},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.opt); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}

func TestNewNilOptionIgnored(t *testing.T) {
	fb, err := New(nil, WithBands(8))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if fb.NumBands() != 8 {
		t.Fatalf("NumBands() = %d, want 8", fb.NumBands())
	}
}

func TestNewRangeAboveNyquistAccepted(t *testing.T) {
	// Bands above Nyquist cannot be excited, but the layout itself is legal.
	if _, err := New(WithSampleRate(48000), WithRange(20, 40000)); err != nil {
		t.Fatalf("New() error = %v", err)
	}
}

func TestFilterbankPeakBandForSine(t *testing.T) {
	// 100 ms of a 1 kHz sine through the default 40-band ERB layout must
	// put the strongest envelope on the band containing 1 kHz.
	fb, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	env := fb.ProcessBlock(testutil.DeterministicSine(1000, 48000, 1, 4800))
	if len(env) != fb.NumBands() {
		t.Fatalf("envelope length = %d, want %d", len(env), fb.NumBands())
	}

	peak := 0
	for i, v := range env {
		if v > env[peak] {
			peak = i
		}
	}

	if c := fb.CenterHz(peak); c <= 800 || c >= 1200 {
		t.Fatalf("peak band center = %.1f Hz, want in (800, 1200)", c)
	}
}

func TestFilterbankPeakTracksScale(t *testing.T) {
	// The loudest band should sit near the tone for every spacing scale.
	for _, typ := range scale.Types() {
		t.Run(typ.String(), func(t *testing.T) {
			fb, err := New(WithScale(typ), WithBands(32), WithRange(50, 16000))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			env := fb.ProcessBlock(testutil.DeterministicSine(2000, 48000, 1, 4800))

			peak := 0
			for i, v := range env {
				if v > env[peak] {
					peak = i
				}
			}

			band := fb.Bands()[peak]
			if 2000 < band.LowHz-band.BandwidthHz || 2000 > band.HighHz+band.BandwidthHz {
				t.Fatalf("peak band [%.1f, %.1f] Hz not near 2 kHz", band.LowHz, band.HighHz)
			}
		})
	}
}

func TestFilterbankMatchesScalarFilters(t *testing.T) {
	const sr = 44100.0

	fb, err := New(WithBands(12), WithRange(100, 8000), WithSampleRate(sr), WithSmoothing(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Reference: one scalar filter per band with the same ERB bandwidth.
	filters := make([]*Filter, fb.NumBands())
	for i, band := range fb.Bands() {
		f, err := NewFilter(band.CenterHz, scale.ERBBandwidth(band.CenterHz), sr)
		if err != nil {
			t.Fatalf("NewFilter(band %d) error = %v", i, err)
		}

		filters[i] = f
	}

	input := testutil.DeterministicNoise(7, 0.8, 512)
	want := make([]float64, fb.NumBands())

	for _, x := range input {
		fb.ProcessSample(x)

		for i, f := range filters {
			want[i] = f.ProcessSample(x)
		}

		// The bank runs the identical recurrence over arrays; only
		// instruction scheduling may perturb the last bits.
		testutil.RequireSliceNearlyEqual(t, fb.Magnitudes(), want, 1e-12)
	}
}

func TestFilterbankProcessBlockMatchesPerSample(t *testing.T) {
	mk := func() *Filterbank {
		fb, err := New(WithBands(10), WithRange(100, 10000))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		return fb
	}

	input := testutil.DeterministicNoise(3, 1, 256)

	blockwise := mk()
	env := blockwise.ProcessBlock(input)

	samplewise := mk()
	for _, x := range input {
		samplewise.ProcessSample(x)
	}

	diff, err := testutil.MaxAbsDiff(env, samplewise.Envelope())
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}

	if diff != 0 {
		t.Fatalf("block and per-sample paths diverge by %g", diff)
	}
}

func TestFilterbankResetMatchesFresh(t *testing.T) {
	opts := []Option{WithBands(16), WithRange(50, 12000), WithSmoothing(3)}

	fb, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	fresh, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	fb.ProcessBlock(testutil.DeterministicNoise(11, 1, 1000))
	fb.Reset()

	for s := range numStages {
		for i := range fb.stageRe[s] {
			if fb.stageRe[s][i] != 0 || fb.stageIm[s][i] != 0 {
				t.Fatalf("stage %d band %d state not cleared", s, i)
			}
		}
	}

	for i := range fb.magnitudes {
		if fb.magnitudes[i] != 0 || fb.envelope[i] != 0 {
			t.Fatalf("band %d buffers not cleared", i)
		}
	}

	// After reset the bank must be bit-for-bit equivalent to a fresh one.
	input := testutil.DeterministicNoise(12, 1, 300)

	for _, x := range input {
		fb.ProcessSample(x)
		fresh.ProcessSample(x)

		for i := range fb.envelope {
			if fb.envelope[i] != fresh.envelope[i] || fb.magnitudes[i] != fresh.magnitudes[i] {
				t.Fatalf("reset bank diverges from fresh bank at band %d", i)
			}
		}
	}
}

func TestFilterbankSmoothingDisabled(t *testing.T) {
	fb, err := New(WithBands(8), WithRange(100, 8000), WithSmoothing(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, x := range testutil.DeterministicSine(1000, 48000, 1, 400) {
		fb.ProcessSample(x)

		for i := range fb.envelope {
			if fb.envelope[i] != fb.magnitudes[i] {
				t.Fatalf("envelope diverges from magnitudes at band %d with smoothing off", i)
			}
		}
	}
}

func TestFilterbankNegativeSmoothingDisables(t *testing.T) {
	fb, err := New(WithSmoothing(-4))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if fb.smoothCoeff != 0 {
		t.Fatalf("smoothing coefficient = %g, want 0 for negative smoothing", fb.smoothCoeff)
	}
}

// samplesToHalf feeds a center-band sine and returns how many samples the
// band's envelope needs to first reach half its steady-state value.
func samplesToHalf(t *testing.T, smoothingMs float64) int {
	t.Helper()

	fb, err := New(WithBands(16), WithRange(200, 8000), WithSmoothing(smoothingMs))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	band := 0
	for i, b := range fb.Bands() {
		if math.Abs(b.CenterHz-1000) < math.Abs(fb.CenterHz(band)-1000) {
			band = i
		}
	}

	freq := fb.CenterHz(band)
	input := testutil.DeterministicSine(freq, fb.SampleRate(), 1, 9600)

	for _, x := range input {
		fb.ProcessSample(x)
	}

	target := fb.Envelope()[band] / 2

	fb.Reset()

	for n, x := range input {
		fb.ProcessSample(x)

		if fb.Envelope()[band] >= target {
			return n
		}
	}

	t.Fatalf("envelope never reached half of steady state with smoothing %g ms", smoothingMs)

	return -1
}

func TestFilterbankSmoothingSlowsAttack(t *testing.T) {
	none := samplesToHalf(t, 0)
	short := samplesToHalf(t, 2)
	long := samplesToHalf(t, 10)

	if !(none < short && short < long) {
		t.Fatalf("attack samples = %d (off), %d (2 ms), %d (10 ms), want strictly increasing",
			none, short, long)
	}
}

func TestFilterbankEnvelopeDB(t *testing.T) {
	fb, err := New(WithBands(6), WithRange(100, 8000))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Silence maps every band to exactly the floor.
	for _, db := range fb.EnvelopeDB(-100) {
		if db != -100 {
			t.Fatalf("silent band = %g dB, want exactly -100", db)
		}
	}

	fb.ProcessBlock(testutil.DeterministicSine(1000, 48000, 1, 2400))

	dbs := fb.EnvelopeDB(-100)
	for i, env := range fb.Envelope() {
		if env > 0 {
			want := 20 * math.Log10(env)
			if dbs[i] != want {
				t.Errorf("band %d: %g dB, want %g", i, dbs[i], want)
			}
		} else if dbs[i] != -100 {
			t.Errorf("band %d: %g dB, want floor", i, dbs[i])
		}
	}

	// The in-place variant writes the same values.
	dst := make([]float64, fb.NumBands())
	fb.EnvelopeDBTo(dst, -100)

	for i := range dst {
		if dst[i] != dbs[i] {
			t.Errorf("EnvelopeDBTo band %d = %g, want %g", i, dst[i], dbs[i])
		}
	}
}

func TestFilterbankIndexedAccessors(t *testing.T) {
	fb, err := New(WithBands(8), WithRange(100, 8000))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	fb.ProcessBlock(testutil.DeterministicSine(1000, 48000, 1, 960))

	mags := fb.Magnitudes()
	env := fb.Envelope()

	for i := range fb.NumBands() {
		if fb.Magnitude(i) != mags[i] {
			t.Errorf("Magnitude(%d) = %g, want %g", i, fb.Magnitude(i), mags[i])
		}

		if fb.EnvelopeValue(i) != env[i] {
			t.Errorf("EnvelopeValue(%d) = %g, want %g", i, fb.EnvelopeValue(i), env[i])
		}
	}
}

func TestFilterbankBandsIsCopy(t *testing.T) {
	fb, err := New(WithBands(4), WithRange(100, 1600))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	bands := fb.Bands()
	bands[0].CenterHz = -1

	if fb.Bands()[0].CenterHz == -1 {
		t.Fatal("Bands() exposed internal storage")
	}

	if fb.CenterHz(0) == -1 {
		t.Fatal("CenterHz reads mutated storage")
	}
}

func TestFilterbankSingleBand(t *testing.T) {
	fb, err := New(WithBands(1), WithRange(900, 1100))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if fb.NumBands() != 1 {
		t.Fatalf("NumBands() = %d, want 1", fb.NumBands())
	}

	env := fb.ProcessBlock(testutil.DeterministicSine(1000, 48000, 1, 4800))
	if env[0] <= 0.5 {
		t.Fatalf("single-band envelope = %g, want > 0.5 for a center tone", env[0])
	}
}
