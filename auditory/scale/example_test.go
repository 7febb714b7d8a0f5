package scale_test

import (
	"fmt"

	"github.com/cwbudde/algo-auditory/auditory/scale"
)

func ExampleBands() {
	// Four linear bands covering 100-500 Hz.
	bands, err := scale.Bands(scale.TypeLinear, 4, 100, 500)
	if err != nil {
		panic(err)
	}

	for _, b := range bands {
		fmt.Printf("%.0f Hz (%.0f - %.0f)\n", b.CenterHz, b.LowHz, b.HighHz)
	}
	// Output:
	// 150 Hz (100 - 200)
	// 250 Hz (200 - 300)
	// 350 Hz (300 - 400)
	// 450 Hz (400 - 500)
}

func ExampleHzToBark() {
	fmt.Printf("%.2f Bark\n", scale.HzToBark(1000))
	// Output:
	// 8.53 Bark
}

func ExampleERBBandwidth() {
	fmt.Printf("%.1f Hz\n", scale.ERBBandwidth(1000))
	// Output:
	// 132.6 Hz
}
