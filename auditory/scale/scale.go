package scale

import (
	"fmt"
	"math"
	"strings"
)

// Bark scale constants per the Traunmüller (1990) formula.
const (
	barkSlope  = 26.81
	barkOffset = 1960.0
	barkShift  = 0.53
	barkCeil   = 26.28
)

// ERB scale constants per Glasberg & Moore (1990).
const (
	erbScale = 21.4
	erbQ     = 4.37
	erbMinBW = 24.7
)

// Mel scale constants per O'Shaughnessy (1987).
const (
	melScale = 2595.0
	melBreak = 700.0
)

// HzToBark converts a frequency in Hz to the Bark critical-band scale
// using the Traunmüller (1990) formula.
func HzToBark(hz float64) float64 {
	return barkSlope*hz/(barkOffset+hz) - barkShift
}

// BarkToHz converts a Bark critical-band value back to Hz.
// It is the inverse of [HzToBark].
func BarkToHz(bark float64) float64 {
	return barkOffset * (bark + barkShift) / (barkCeil - bark)
}

// CriticalBandwidth returns the critical bandwidth in Hz at the given
// frequency per Zwicker & Terhardt (1980).
func CriticalBandwidth(hz float64) float64 {
	k := hz / 1000
	return 25 + 75*math.Pow(1+1.4*k*k, 0.69)
}

// ERBBandwidth returns the equivalent rectangular bandwidth in Hz at the
// given frequency per Glasberg & Moore (1990). At 1 kHz this is roughly
// 133 Hz.
func ERBBandwidth(hz float64) float64 {
	return erbMinBW * (erbQ*hz/1000 + 1)
}

// HzToERB converts a frequency in Hz to the ERB-rate scale.
func HzToERB(hz float64) float64 {
	return erbScale * math.Log10(erbQ*hz/1000+1)
}

// ERBToHz converts an ERB-rate value back to Hz.
// It is the inverse of [HzToERB].
func ERBToHz(erb float64) float64 {
	return (math.Pow(10, erb/erbScale) - 1) * 1000 / erbQ
}

// HzToMel converts a frequency in Hz to the Mel pitch scale using the
// O'Shaughnessy (1987) formula. 1000 Hz maps to roughly 1000 Mel.
func HzToMel(hz float64) float64 {
	return melScale * math.Log10(1+hz/melBreak)
}

// MelToHz converts a Mel pitch value back to Hz.
// It is the inverse of [HzToMel].
func MelToHz(mel float64) float64 {
	return melBreak * (math.Pow(10, mel/melScale) - 1)
}

// Type identifies a frequency scale for band spacing.
type Type int

const (
	// TypeLinear spaces bands uniformly in Hz.
	TypeLinear Type = iota

	// TypeLog spaces bands logarithmically (equal octave fractions).
	TypeLog

	// TypeBark spaces bands on the Bark critical-band scale
	// (Traunmüller 1990), approximating auditory masking bands.
	TypeBark

	// TypeERB spaces bands on the ERB-rate scale (Glasberg & Moore 1990),
	// matching the frequency resolution of the cochlea.
	TypeERB

	// TypeMel spaces bands on the Mel pitch scale (O'Shaughnessy 1987),
	// common in speech analysis front ends.
	TypeMel
)

// String returns a human-readable name for the scale type.
func (t Type) String() string {
	switch t {
	case TypeLinear:
		return "linear"
	case TypeLog:
		return "log"
	case TypeBark:
		return "bark"
	case TypeERB:
		return "erb"
	case TypeMel:
		return "mel"
	default:
		return "unknown"
	}
}

// IsValid reports whether t is one of the defined scale types.
func (t Type) IsValid() bool {
	return t >= TypeLinear && t <= TypeMel
}

// FromHz maps a frequency in Hz onto the scale's coordinate axis.
// Linear is the identity, Log uses log2, and the perceptual scales use
// their respective conversion formulas.
//
// Panics if t is not a defined scale type.
func (t Type) FromHz(hz float64) float64 {
	switch t {
	case TypeLinear:
		return hz
	case TypeLog:
		return math.Log2(hz)
	case TypeBark:
		return HzToBark(hz)
	case TypeERB:
		return HzToERB(hz)
	case TypeMel:
		return HzToMel(hz)
	default:
		panic("scale: unknown type")
	}
}

// ToHz maps a coordinate on the scale's axis back to a frequency in Hz.
// It is the inverse of [Type.FromHz].
//
// Panics if t is not a defined scale type.
func (t Type) ToHz(v float64) float64 {
	switch t {
	case TypeLinear:
		return v
	case TypeLog:
		return math.Exp2(v)
	case TypeBark:
		return BarkToHz(v)
	case TypeERB:
		return ERBToHz(v)
	case TypeMel:
		return MelToHz(v)
	default:
		panic("scale: unknown type")
	}
}

// Types returns all defined scale types in declaration order.
func Types() []Type {
	return []Type{TypeLinear, TypeLog, TypeBark, TypeERB, TypeMel}
}

// ParseType resolves a scale name as produced by [Type.String].
// Matching is case-insensitive.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return TypeLinear, nil
	case "log":
		return TypeLog, nil
	case "bark":
		return TypeBark, nil
	case "erb":
		return TypeERB, nil
	case "mel":
		return TypeMel, nil
	default:
		return 0, fmt.Errorf("scale: unknown scale name %q", name)
	}
}
