package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-bench/measure/knee"
	"github.com/cwbudde/algo-bench/measure/spectral"
)

// StimulusFunc applies a test tone of the given frequency and amplitude on
// a generator channel. Blocking; the sweep owns no retry policy.
type StimulusFunc func(ctx context.Context, freqHz, ampVpp float64, channel int) error

// CaptureFunc acquires a calibrated waveform from a scope channel.
type CaptureFunc func(ctx context.Context, channel int) (spectral.Waveform, error)

// MeasureFunc reads a single scalar metric (e.g. a scope measurement slot)
// from a channel.
type MeasureFunc func(ctx context.Context, channel int, metric string) (float64, error)

// Bench bundles the externally supplied instrument capabilities. A nil
// field means the capability is absent; each sweep entry point validates
// the capabilities it needs up front.
type Bench struct {
	Apply   StimulusFunc
	Capture CaptureFunc
	Measure MeasureFunc
}

// KneeOptions requests bandwidth knee detection over the per-point RMS
// series after the sweep completes.
type KneeOptions struct {
	Mode   knee.RefMode
	RefHz  float64
	DropDB float64
}

// Options holds sweep parameters. The zero value of Logger disables
// logging; metrics beyond RMS and peak-to-peak are opt-in.
type Options struct {
	AmplitudeVpp float64
	Channel      int // generator channel
	ScopeChannel int
	Dwell        time.Duration
	WithTHD      bool
	Spectral     spectral.Config
	Knees        *KneeOptions
	Logger       *zerolog.Logger
}

// Row is the measurement record for one plan frequency. Failed points carry
// NaN values rather than being omitted, so the row count always equals the
// plan length. THD is NaN when not requested.
type Row struct {
	FreqHz float64
	Vrms   float64
	Vpp    float64
	THD    float64
}

// Result holds the per-point rows and, when requested, the detected knees.
type Result struct {
	Rows  []Row
	Knees *knee.Result
}

// Run sweeps the plan frequencies in order. For each point it applies the
// stimulus, waits out the dwell, captures the response, and computes RMS,
// peak-to-peak, and optionally THD. Any per-point error is logged and
// recorded as a NaN row; the sweep continues with the next frequency.
//
// Cancellation is cooperative: the context is checked once per point, and
// a cancellation observed mid-point stops the sweep. The rows accumulated
// so far are returned together with the context error.
func Run(ctx context.Context, bench Bench, freqs []float64, opts Options) (Result, error) {
	if err := validateRun(bench, opts); err != nil {
		return Result{}, err
	}

	log := nopIfNil(opts.Logger)
	res := Result{Rows: make([]Row, 0, len(freqs))}

	for _, f := range freqs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		row, err := measurePoint(ctx, bench, f, opts)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return res, err
			}

			log.Warn().Err(err).Float64("freq_hz", f).Msg("sweep point failed")

			row = nanRow(f)
		}

		res.Rows = append(res.Rows, row)
	}

	if opts.Knees != nil {
		amps := make([]float64, len(res.Rows))
		for i, row := range res.Rows {
			amps[i] = row.Vrms
		}

		k := knee.Find(freqs, amps, opts.Knees.Mode, opts.Knees.RefHz, opts.Knees.DropDB)
		res.Knees = &k
	}

	return res, nil
}

// Point is one scalar measurement of a fixed-metric sweep.
type Point struct {
	FreqHz float64
	Value  float64
}

// RunMetric sweeps the plan frequencies reading a single scalar metric per
// point instead of capturing waveforms. It shares Run's fail-soft policy:
// a failing point yields a NaN value.
func RunMetric(ctx context.Context, bench Bench, freqs []float64, metric string, opts Options) ([]Point, error) {
	if bench.Apply == nil {
		return nil, ErrNilStimulus
	}

	if bench.Measure == nil {
		return nil, ErrNilMeasure
	}

	if err := validateCommon(opts); err != nil {
		return nil, err
	}

	log := nopIfNil(opts.Logger)
	out := make([]Point, 0, len(freqs))

	for _, f := range freqs {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		val, err := measureScalar(ctx, bench, f, metric, opts)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return out, err
			}

			log.Warn().Err(err).Float64("freq_hz", f).Str("metric", metric).Msg("metric sweep point failed")

			val = math.NaN()
		}

		out = append(out, Point{FreqHz: f, Value: val})
	}

	return out, nil
}

func measurePoint(ctx context.Context, bench Bench, freqHz float64, opts Options) (Row, error) {
	err := bench.Apply(ctx, freqHz, opts.AmplitudeVpp, opts.Channel)
	if err != nil {
		return Row{}, fmt.Errorf("apply stimulus: %w", err)
	}

	err = dwell(ctx, opts.Dwell)
	if err != nil {
		return Row{}, err
	}

	wf, err := bench.Capture(ctx, opts.ScopeChannel)
	if err != nil {
		return Row{}, fmt.Errorf("capture response: %w", err)
	}

	row := Row{
		FreqHz: freqHz,
		Vrms:   spectral.Vrms(wf.Volts),
		Vpp:    spectral.Vpp(wf.Volts),
		THD:    math.NaN(),
	}

	if opts.WithTHD {
		cfg := opts.Spectral
		cfg.FundamentalHint = freqHz
		row.THD, _, _ = spectral.THD(wf, cfg)
	}

	return row, nil
}

func measureScalar(ctx context.Context, bench Bench, freqHz float64, metric string, opts Options) (float64, error) {
	err := bench.Apply(ctx, freqHz, opts.AmplitudeVpp, opts.Channel)
	if err != nil {
		return 0, fmt.Errorf("apply stimulus: %w", err)
	}

	err = dwell(ctx, opts.Dwell)
	if err != nil {
		return 0, err
	}

	val, err := bench.Measure(ctx, opts.ScopeChannel, metric)
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", metric, err)
	}

	return val, nil
}

// dwell holds the settle time between stimulus and capture, honoring
// cancellation.
func dwell(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func validateRun(bench Bench, opts Options) error {
	if bench.Apply == nil {
		return ErrNilStimulus
	}

	if bench.Capture == nil {
		return ErrNilCapture
	}

	return validateCommon(opts)
}

func validateCommon(opts Options) error {
	if !(opts.AmplitudeVpp > 0) || math.IsInf(opts.AmplitudeVpp, 0) {
		return ErrAmplitude
	}

	if opts.Dwell < 0 {
		return ErrDwell
	}

	if opts.Knees != nil && !(opts.Knees.DropDB >= 0) {
		return ErrKneeDrop
	}

	return nil
}

func nanRow(freqHz float64) Row {
	nan := math.NaN()
	return Row{FreqHz: freqHz, Vrms: nan, Vpp: nan, THD: nan}
}

var nopLogger = zerolog.Nop()

func nopIfNil(log *zerolog.Logger) *zerolog.Logger {
	if log == nil {
		return &nopLogger
	}

	return log
}
