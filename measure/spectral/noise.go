package spectral

import "math"

// noiseRMS computes the RMS over all noise bins: every bin except DC, the
// fundamental, and the harmonic bins up to the configured order. ok is
// false when the waveform is degenerate or no noise bins remain.
func (a *Analyzer) noiseRMS(an analysis) (rms float64, ok bool) {
	exclude := make(map[int]struct{}, a.harmonics(defaultNoiseHarmonics)+1)
	exclude[0] = struct{}{}
	exclude[an.fundBin] = struct{}{}

	baseFreq := an.binFreq(an.fundBin)
	top := an.topFreq()

	for k := 2; k <= a.harmonics(defaultNoiseHarmonics); k++ {
		target := float64(k) * baseFreq
		if target > top {
			break
		}

		bin := an.nearestBin(target)
		if bin > 0 && bin < len(an.mag) {
			exclude[bin] = struct{}{}
		}
	}

	var (
		sumSq float64
		count int
	)

	for i, m := range an.mag {
		if _, skip := exclude[i]; skip {
			continue
		}

		sumSq += m * m
		count++
	}

	if count == 0 {
		return 0, false
	}

	return math.Sqrt(sumSq / float64(count)), true
}

// SNR computes the signal-to-noise ratio in dB: the fundamental bin
// magnitude over the RMS of all non-DC, non-fundamental, non-harmonic bins.
//
// Returns +Inf when the noise RMS is exactly zero, and NaN when the
// waveform is too short, the fundamental is degenerate, or no noise bins
// remain.
func (a *Analyzer) SNR(w Waveform) float64 {
	an, ok := a.analyze(w)
	if !ok {
		return math.NaN()
	}

	fundAmp := an.mag[an.fundBin]
	if fundAmp <= 0 {
		return math.NaN()
	}

	noise, ok := a.noiseRMS(an)
	if !ok {
		return math.NaN()
	}

	if noise <= 0 {
		return math.Inf(1)
	}

	return 20 * math.Log10(fundAmp/noise)
}

// NoiseFloor computes the absolute noise level in dB (20·log10 of the noise
// bin RMS, relative to 1 V). The noise bin set matches [Analyzer.SNR].
//
// Returns -Inf when the noise RMS is exactly zero, and NaN when the
// waveform is too short or no noise bins remain.
func (a *Analyzer) NoiseFloor(w Waveform) float64 {
	an, ok := a.analyze(w)
	if !ok {
		return math.NaN()
	}

	noise, ok := a.noiseRMS(an)
	if !ok {
		return math.NaN()
	}

	if noise <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(noise)
}

// SNR is a one-shot helper around [Analyzer.SNR].
func SNR(w Waveform, cfg Config) float64 {
	return NewAnalyzer(cfg).SNR(w)
}

// NoiseFloor is a one-shot helper around [Analyzer.NoiseFloor].
func NoiseFloor(w Waveform, cfg Config) float64 {
	return NewAnalyzer(cfg).NoiseFloor(w)
}
