package spectral

import "math"

// THD computes the total-harmonic-distortion ratio of the waveform.
//
// It returns the THD ratio (harmonic RSS over fundamental magnitude), the
// estimated fundamental frequency, and the fundamental bin magnitude.
// Waveforms shorter than 16 samples yield (NaN, NaN, NaN). A fundamental
// with non-positive magnitude yields (NaN, f0Est, 0) since the ratio cannot
// be normalized.
func (a *Analyzer) THD(w Waveform) (thd, f0Est, fundAmp float64) {
	an, ok := a.analyze(w)
	if !ok {
		return math.NaN(), math.NaN(), math.NaN()
	}

	f0Est = an.binFreq(an.fundBin)

	fundAmp = an.mag[an.fundBin]
	if fundAmp <= 0 {
		return math.NaN(), f0Est, 0
	}

	top := an.topFreq()

	var sumSq float64

	for k := 2; k <= a.harmonics(defaultTHDHarmonics); k++ {
		target := float64(k) * f0Est
		if target > top {
			break
		}

		bin := an.nearestBin(target)
		if bin <= 0 || bin >= len(an.mag) {
			continue
		}

		sumSq += an.mag[bin] * an.mag[bin]
	}

	return math.Sqrt(sumSq) / fundAmp, f0Est, fundAmp
}

// HarmonicTable returns the fundamental and its harmonics as (order,
// frequency, magnitude) entries, fundamental first. The table stops early
// once a harmonic would fall above the Nyquist-limited top frequency.
// Returns nil for waveforms shorter than 16 samples.
func (a *Analyzer) HarmonicTable(w Waveform) []Harmonic {
	an, ok := a.analyze(w)
	if !ok {
		return nil
	}

	baseFreq := an.binFreq(an.fundBin)
	top := an.topFreq()

	out := make([]Harmonic, 0, a.harmonics(defaultTHDHarmonics))

	for k := 1; k <= a.harmonics(defaultTHDHarmonics); k++ {
		target := float64(k) * baseFreq
		if target > top {
			break
		}

		bin := an.nearestBin(target)
		out = append(out, Harmonic{
			K:      k,
			FreqHz: an.binFreq(bin),
			Mag:    an.mag[bin],
		})
	}

	return out
}

// THD is a one-shot helper around [Analyzer.THD].
func THD(w Waveform, cfg Config) (thd, f0Est, fundAmp float64) {
	return NewAnalyzer(cfg).THD(w)
}

// HarmonicTable is a one-shot helper around [Analyzer.HarmonicTable].
func HarmonicTable(w Waveform, cfg Config) []Harmonic {
	return NewAnalyzer(cfg).HarmonicTable(w)
}
