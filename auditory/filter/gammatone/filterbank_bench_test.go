package gammatone

import (
	"math"
	"strconv"
	"testing"
)

func BenchmarkFilter_ProcessSample(b *testing.B) {
	f, err := NewFilter(1000, 132.6, 48000)
	if err != nil {
		b.Fatalf("NewFilter() error = %v", err)
	}

	in := 0.0
	step := 2 * math.Pi * 1000 / 48000

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_ = f.ProcessSample(math.Sin(in))
		in += step
	}
}

func BenchmarkFilterbank_ProcessSample(b *testing.B) {
	for _, bands := range []int{10, 40, 128} {
		b.Run(strconv.Itoa(bands), func(b *testing.B) {
			fb, err := New(WithBands(bands))
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}

			in := 0.0
			step := 2 * math.Pi * 1000 / 48000

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				fb.ProcessSample(math.Sin(in))
				in += step
			}
		})
	}
}

func BenchmarkFilterbank_ProcessBlock1024(b *testing.B) {
	for _, bands := range []int{10, 40, 128} {
		b.Run(strconv.Itoa(bands), func(b *testing.B) {
			fb, err := New(WithBands(bands))
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}

			buf := make([]float64, 1024)
			for i := range buf {
				buf[i] = 0.7*math.Sin(2*math.Pi*1000*float64(i)/48000) + 0.2*math.Sin(2*math.Pi*3000*float64(i)/48000)
			}

			b.SetBytes(int64(len(buf) * 8))
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				fb.ProcessBlock(buf)
			}
		})
	}
}

func BenchmarkFilterbank_EnvelopeDBTo(b *testing.B) {
	fb, err := New()
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	fb.ProcessSample(1)

	dst := make([]float64, fb.NumBands())

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		fb.EnvelopeDBTo(dst, -100)
	}
}
