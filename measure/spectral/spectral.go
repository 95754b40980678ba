package spectral

import (
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-bench/dsp/spectrum"
	"github.com/cwbudde/algo-bench/dsp/window"
)

const (
	// minSamples is the shortest waveform that yields a non-degenerate
	// spectral result.
	minSamples = 16

	// nominalInterval is substituted when the time vector carries no usable
	// spacing information, so a finite sample rate is always available.
	nominalInterval = 1e-6

	defaultTHDHarmonics   = 10
	defaultNoiseHarmonics = 5
)

// Waveform is a calibrated time/voltage series. It is owned by the caller
// and never mutated by this package.
type Waveform struct {
	Time  []float64 // seconds, monotonically non-decreasing
	Volts []float64
}

// Len returns the number of samples.
func (w Waveform) Len() int {
	return len(w.Volts)
}

// Config holds spectral analysis parameters.
type Config struct {
	// FundamentalHint is the expected fundamental frequency in Hz. When
	// zero or negative the strongest non-DC bin is used instead.
	FundamentalHint float64

	// HarmonicCount is the highest harmonic order considered. Zero selects
	// the per-measurement default (10 for THD and harmonic tables, 5 for
	// SNR and noise floor).
	HarmonicCount int

	Window window.Type
}

// Harmonic is one row of a harmonic table. K is the harmonic order, with
// K == 1 being the fundamental.
type Harmonic struct {
	K      int
	FreqHz float64
	Mag    float64
}

// Analyzer performs spectral analysis with a fixed configuration.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer for the given configuration.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Vrms returns the root-mean-square of the voltage samples.
// Returns NaN for an empty slice.
func Vrms(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}

	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(v)))
}

// Vpp returns the peak-to-peak amplitude (max - min) of the voltage samples.
// Returns NaN for an empty slice.
func Vpp(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}

	return floats.Max(v) - floats.Min(v)
}

// analysis holds the one-sided magnitude spectrum of a windowed waveform
// together with the grid needed to interpret it.
type analysis struct {
	mag        []float64
	fftSize    int
	sampleRate float64
	fundBin    int
}

// binFreq returns the center frequency of bin i.
func (a analysis) binFreq(i int) float64 {
	return spectrum.BinFreq(i, a.fftSize, a.sampleRate)
}

// topFreq returns the highest representable frequency (Nyquist bin).
func (a analysis) topFreq() float64 {
	return a.binFreq(len(a.mag) - 1)
}

// nearestBin returns the bin closest to freqHz, clamped to the spectrum.
func (a analysis) nearestBin(freqHz float64) int {
	return spectrum.NearestBin(freqHz, a.fftSize, len(a.mag), a.sampleRate)
}

// analyze windows the waveform, runs a real-input FFT (zero-padded to the
// next power of two), and locates the fundamental bin. ok is false when the
// waveform is too short or malformed.
func (a *Analyzer) analyze(w Waveform) (analysis, bool) {
	n := w.Len()
	if n < minSamples || len(w.Time) != n {
		return analysis{}, false
	}

	dt := sampleInterval(w.Time)
	sampleRate := 1 / dt

	buf := make([]float64, n)
	copy(buf, w.Volts)
	window.Apply(a.cfg.Window, buf)

	fftSize := nextPowerOf2(n)

	in := make([]complex128, fftSize)
	for i, v := range buf {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return analysis{}, false
	}

	out := make([]complex128, fftSize)

	err = plan.Forward(out, in)
	if err != nil {
		return analysis{}, false
	}

	res := analysis{
		mag:        spectrum.Magnitude(spectrum.OneSided(out)),
		fftSize:    fftSize,
		sampleRate: sampleRate,
	}
	res.fundBin = a.fundamentalBin(res)

	return res, true
}

// fundamentalBin selects the fundamental: the bin nearest the configured
// hint, falling back to the strongest non-DC bin when no usable hint is
// given or the hint resolves to DC.
func (a *Analyzer) fundamentalBin(an analysis) int {
	if a.cfg.FundamentalHint > 0 {
		idx := an.nearestBin(a.cfg.FundamentalHint)
		if idx > 0 {
			return idx
		}
	}

	best := 1
	for i := 2; i < len(an.mag); i++ {
		if an.mag[i] > an.mag[best] {
			best = i
		}
	}

	return best
}

// harmonics returns the effective harmonic count, applying the default and
// the floor of 2 so at least the second harmonic is always considered.
func (a *Analyzer) harmonics(def int) int {
	n := a.cfg.HarmonicCount
	if n <= 0 {
		n = def
	}

	if n < 2 {
		n = 2
	}

	return n
}

// sampleInterval estimates the sample spacing as the median of consecutive
// time differences. Non-positive estimates fall back to the mean spacing
// over the full span, then to a fixed nominal interval.
func sampleInterval(t []float64) float64 {
	n := len(t)

	diffs := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diffs[i-1] = t[i] - t[i-1]
	}

	sort.Float64s(diffs)

	dt := stat.Quantile(0.5, stat.LinInterp, diffs, nil)
	if dt > 0 {
		return dt
	}

	span := t[n-1] - t[0]
	if span > 0 {
		return span / float64(n-1)
	}

	return nominalInterval
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
