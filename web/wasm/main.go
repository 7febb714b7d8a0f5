//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-auditory/auditory/analyser"
	"github.com/cwbudde/algo-auditory/auditory/scale"
)

var (
	an    *analyser.Analyser
	funcs []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		bands := 40
		if len(args) > 1 {
			bands = args[1].Int()
		}
		spacing := scale.TypeERB
		if len(args) > 2 {
			s, err := scale.ParseType(args[2].String())
			if err != nil {
				return err.Error()
			}
			spacing = s
		}
		smoothing := 5.0
		if len(args) > 3 {
			smoothing = args[3].Float()
		}
		a, err := analyser.New(
			analyser.WithSampleRate(sr),
			analyser.WithBands(bands),
			analyser.WithScale(spacing),
			analyser.WithSmoothing(smoothing),
		)
		if err != nil {
			return err.Error()
		}
		an = a
		return js.Null()
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if an != nil {
			an.Reset()
		}
		return js.Null()
	}))

	api.Set("process", export(func(args []js.Value) any {
		if an == nil || len(args) < 1 {
			return js.Null()
		}
		input := args[0]
		block := make([]float64, input.Length())
		for i := 0; i < input.Length(); i++ {
			block[i] = input.Index(i).Float()
		}
		an.Process(block)
		return js.Null()
	}))

	api.Set("processStereo", export(func(args []js.Value) any {
		if an == nil || len(args) < 1 {
			return js.Null()
		}
		input := args[0]
		frames := make([]float64, input.Length())
		for i := 0; i < input.Length(); i++ {
			frames[i] = input.Index(i).Float()
		}
		an.ProcessInterleaved(frames)
		return js.Null()
	}))

	api.Set("envelope", export(func(args []js.Value) any {
		if an == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		return floatArray(an.Envelope())
	}))

	api.Set("envelopeDb", export(func(args []js.Value) any {
		if an == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		floor := analyser.DefaultFloorDB
		if len(args) > 0 {
			floor = args[0].Float()
		}
		return floatArray(an.EnvelopeDBFloor(floor))
	}))

	api.Set("centerFreqs", export(func(args []js.Value) any {
		if an == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		bands := an.Bands()
		centers := make([]float64, len(bands))
		for i := range bands {
			centers[i] = bands[i].CenterHz
		}
		return floatArray(centers)
	}))

	api.Set("numBands", export(func(args []js.Value) any {
		if an == nil {
			return 0
		}
		return an.NumBands()
	}))

	api.Set("peakBand", export(func(args []js.Value) any {
		if an == nil {
			return -1
		}
		return an.PeakBand()
	}))

	js.Global().Set("AlgoAuditory", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

func floatArray(vals []float64) js.Value {
	arr := js.Global().Get("Float32Array").New(len(vals))
	for i := range vals {
		arr.SetIndex(i, vals[i])
	}
	return arr
}
