package testutil

import (
	"math"
	"math/rand"
)

// TimeBase generates a uniformly spaced time vector starting at zero.
func TimeBase(length int, sampleRate float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(i) / sampleRate
	}

	return out
}

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// SineWithHarmonic generates a sine at freqHz plus a single harmonic of the
// given order and relative amplitude (relative to the fundamental).
func SineWithHarmonic(freqHz, sampleRate, amplitude, relHarmonic float64, order, length int) []float64 {
	out := make([]float64, length)

	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		phase := step * float64(i)
		out[i] = amplitude * (math.Sin(phase) + relHarmonic*math.Sin(float64(order)*phase))
	}

	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}
