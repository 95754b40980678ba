// Package sim provides a software stand-in for a generator/scope pair so
// the sweep tooling can run without instruments on the bench. The simulated
// device under test is a first-order band-pass stage with optional
// second-harmonic distortion and additive noise.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-bench/measure/spectral"
	"github.com/cwbudde/algo-bench/measure/sweep"
)

const (
	defaultSampleRate = 48000.0
	defaultLength     = 4096
)

// Bench simulates an instrument pair driving a band-pass device under test.
// The zero value is not usable; construct it with New.
type Bench struct {
	sampleRate float64
	length     int

	lowCorner  float64
	highCorner float64
	distortion float64
	noiseAmp   float64

	rng *rand.Rand

	// Last applied stimulus.
	freqHz float64
	ampVpp float64
}

// Option adjusts a simulated bench.
type Option func(*Bench)

// WithCorners sets the -3 dB corner frequencies of the simulated stage.
func WithCorners(lowHz, highHz float64) Option {
	return func(b *Bench) {
		b.lowCorner = lowHz
		b.highCorner = highHz
	}
}

// WithDistortion sets the second-harmonic amplitude relative to the
// fundamental.
func WithDistortion(rel float64) Option {
	return func(b *Bench) {
		b.distortion = rel
	}
}

// WithNoise sets the peak amplitude of additive uniform noise.
func WithNoise(amp float64) Option {
	return func(b *Bench) {
		b.noiseAmp = amp
	}
}

// WithCapture sets the sample rate and record length of captured waveforms.
func WithCapture(sampleRate float64, length int) Option {
	return func(b *Bench) {
		b.sampleRate = sampleRate
		b.length = length
	}
}

// New creates a simulated bench. Captures are deterministic for a given
// seed and stimulus sequence.
func New(seed int64, opts ...Option) *Bench {
	b := &Bench{
		sampleRate: defaultSampleRate,
		length:     defaultLength,
		lowCorner:  40,
		highCorner: 18000,
		distortion: 0.02,
		rng:        rand.New(rand.NewSource(seed)),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Bench exposes the simulator through the sweep capability struct.
func (b *Bench) Bench() sweep.Bench {
	return sweep.Bench{
		Apply:   b.Apply,
		Capture: b.Capture,
		Measure: b.Measure,
	}
}

// Apply records the stimulus for subsequent captures.
func (b *Bench) Apply(_ context.Context, freqHz, ampVpp float64, _ int) error {
	b.freqHz = freqHz
	b.ampVpp = ampVpp

	return nil
}

// Capture synthesizes a waveform at the last applied stimulus, shaped by
// the band-pass gain of the simulated stage.
func (b *Bench) Capture(_ context.Context, _ int) (spectral.Waveform, error) {
	if b.freqHz <= 0 {
		return spectral.Waveform{}, fmt.Errorf("sim: no stimulus applied")
	}

	gain := b.gain(b.freqHz)
	amp := gain * b.ampVpp / 2

	t := make([]float64, b.length)
	v := make([]float64, b.length)

	dt := 1 / b.sampleRate
	omega := 2 * math.Pi * b.freqHz

	for i := range v {
		ti := float64(i) * dt
		t[i] = ti

		sample := amp * math.Sin(omega*ti)
		sample += amp * b.distortion * math.Sin(2*omega*ti)

		if b.noiseAmp > 0 {
			sample += b.noiseAmp * (2*b.rng.Float64() - 1)
		}

		v[i] = sample
	}

	return spectral.Waveform{Time: t, Volts: v}, nil
}

// Measure returns a scalar reading of the current capture. Supported
// metrics are "vrms" and "vpp".
func (b *Bench) Measure(ctx context.Context, channel int, metric string) (float64, error) {
	wf, err := b.Capture(ctx, channel)
	if err != nil {
		return 0, err
	}

	switch metric {
	case "vrms":
		return spectral.Vrms(wf.Volts), nil
	case "vpp":
		return spectral.Vpp(wf.Volts), nil
	}

	return 0, fmt.Errorf("sim: unknown metric %q", metric)
}

// gain is a first-order high-pass into a first-order low-pass.
func (b *Bench) gain(freqHz float64) float64 {
	hp := 1.0
	if b.lowCorner > 0 {
		r := freqHz / b.lowCorner
		hp = r / math.Sqrt(1+r*r)
	}

	lp := 1.0
	if b.highCorner > 0 {
		r := freqHz / b.highCorner
		lp = 1 / math.Sqrt(1+r*r)
	}

	return hp * lp
}
