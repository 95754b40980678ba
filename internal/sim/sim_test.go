package sim

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bench/measure/knee"
	"github.com/cwbudde/algo-bench/measure/sweep"
)

func TestCaptureRequiresStimulus(t *testing.T) {
	b := New(1)

	_, err := b.Capture(context.Background(), 1)
	require.Error(t, err)
}

func TestCaptureAmplitudeInPassband(t *testing.T) {
	b := New(1, WithCorners(10, 100000), WithDistortion(0), WithNoise(0))

	require.NoError(t, b.Apply(context.Background(), 1000, 2.0, 1))

	wf, err := b.Capture(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, wf.Volts, defaultLength)

	// 2 Vpp in the flat region: RMS near 1/sqrt(2).
	vrms, err := b.Measure(context.Background(), 1, "vrms")
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt2, vrms, 0.02)

	vpp, err := b.Measure(context.Background(), 1, "vpp")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, vpp, 0.05)
}

func TestMeasureUnknownMetric(t *testing.T) {
	b := New(1)
	require.NoError(t, b.Apply(context.Background(), 1000, 1, 1))

	_, err := b.Measure(context.Background(), 1, "snr")
	require.Error(t, err)
}

func TestGainRollsOffOutsideCorners(t *testing.T) {
	b := New(1, WithCorners(100, 10000))

	mid := b.gain(1000)
	assert.Greater(t, mid, b.gain(20), "below the low corner must be attenuated")
	assert.Greater(t, mid, b.gain(40000), "above the high corner must be attenuated")

	// At a corner the response sits 3 dB below the mid-band.
	assert.InDelta(t, mid/math.Sqrt2, b.gain(10000), 0.05*mid)
}

func TestSweepFindsSimulatedCorners(t *testing.T) {
	b := New(7, WithCorners(100, 5000), WithDistortion(0), WithNoise(0))

	freqs, err := sweep.Plan(10, 20000, 25, sweep.ModeLog)
	require.NoError(t, err)

	opts := sweep.Options{
		AmplitudeVpp: 1,
		Channel:      1,
		ScopeChannel: 1,
		Knees:        &sweep.KneeOptions{Mode: knee.RefModeMax, DropDB: 3},
	}

	res, err := sweep.Run(context.Background(), b.Bench(), freqs, opts)
	require.NoError(t, err)
	require.NotNil(t, res.Knees)

	assert.InDelta(t, 100, res.Knees.LowHz, 60)
	assert.InDelta(t, 5000, res.Knees.HighHz, 2000)
}

func TestDeterministicForSeed(t *testing.T) {
	first := New(42, WithNoise(0.01))
	second := New(42, WithNoise(0.01))

	require.NoError(t, first.Apply(context.Background(), 1000, 1, 1))
	require.NoError(t, second.Apply(context.Background(), 1000, 1, 1))

	a, err := first.Capture(context.Background(), 1)
	require.NoError(t, err)

	b, err := second.Capture(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, a.Volts, b.Volts)
}
