// Package knee locates bandwidth knee frequencies: the points where a
// frequency response has dropped by a given number of dB from a reference
// level. Crossings are refined by linear interpolation in dB-vs-frequency
// space.
package knee

import (
	"fmt"
	"math"
	"strings"
)

// RefMode selects how the reference amplitude is chosen.
type RefMode int

const (
	// RefModeMax uses the global amplitude maximum as the reference.
	RefModeMax RefMode = iota
	// RefModeFreq uses the sample nearest a fixed reference frequency.
	RefModeFreq
)

// ParseRefMode resolves a reference-mode name.
func ParseRefMode(name string) (RefMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "max":
		return RefModeMax, nil
	case "freq", "fixed", "fixed-frequency":
		return RefModeFreq, nil
	default:
		return RefModeMax, fmt.Errorf("unknown knee reference mode %q", name)
	}
}

// Result holds the detected knee frequencies. An unresolved crossing is NaN;
// in particular the high knee stays NaN when the response never drops far
// enough within the sampled range.
type Result struct {
	LowHz  float64
	HighHz float64
	RefAmp float64
	RefDB  float64
}

// ampFloor clamps non-positive amplitudes before the log so the dB
// conversion stays in-domain.
const ampFloor = 1e-18

// Find returns the low/high knee frequencies where the response crosses
// refDB - dropDB. The scan is a single linear pass away from the reference
// in each direction, since the curve is not guaranteed monotonic away from
// the reference. NaN amplitudes never satisfy a crossing test and are
// effectively skipped.
//
// Inputs of unequal or insufficient length, or a non-positive reference
// amplitude, yield an all-NaN Result.
func Find(freqs, amps []float64, mode RefMode, refHz, dropDB float64) Result {
	if len(freqs) != len(amps) || len(freqs) < 2 {
		return allNaN()
	}

	refIdx := referenceIndex(freqs, amps, mode, refHz)
	if refIdx < 0 {
		return allNaN()
	}

	refAmp := amps[refIdx]
	if !(refAmp > 0) {
		return allNaN()
	}

	refDB := 20 * math.Log10(refAmp)
	targetDB := refDB - dropDB

	dB := make([]float64, len(amps))
	for i, a := range amps {
		dB[i] = 20 * math.Log10(math.Max(a, ampFloor))
	}

	return Result{
		LowHz:  scanCrossing(freqs, dB, 0, refIdx, targetDB),
		HighHz: scanCrossing(freqs, dB, refIdx, len(freqs)-1, targetDB),
		RefAmp: refAmp,
		RefDB:  refDB,
	}
}

func allNaN() Result {
	nan := math.NaN()
	return Result{LowHz: nan, HighHz: nan, RefAmp: nan, RefDB: nan}
}

// referenceIndex picks the reference sample, skipping NaN values. Returns
// -1 when no usable sample exists.
func referenceIndex(freqs, amps []float64, mode RefMode, refHz float64) int {
	best := -1

	if mode == RefModeFreq {
		bestDiff := math.Inf(1)

		for i, f := range freqs {
			d := math.Abs(f - refHz)
			if d < bestDiff {
				bestDiff = d
				best = i
			}
		}

		return best
	}

	bestVal := math.Inf(-1)

	for i, a := range amps {
		if a > bestVal {
			bestVal = a
			best = i
		}
	}

	return best
}

// scanCrossing walks [from, to] looking for the first adjacent pair that
// straddles targetDB in either direction, and interpolates the crossing
// frequency linearly in dB. An equal-dB pair yields the pair's second
// frequency to avoid a zero division. Returns NaN when no pair straddles.
func scanCrossing(freqs, dB []float64, from, to int, targetDB float64) float64 {
	prevF := freqs[from]
	prevDB := dB[from]

	for i := from + 1; i <= to; i++ {
		curF := freqs[i]
		curDB := dB[i]

		falling := prevDB >= targetDB && curDB <= targetDB
		rising := prevDB <= targetDB && curDB >= targetDB

		if falling || rising {
			if curDB == prevDB {
				return curF
			}

			frac := (targetDB - prevDB) / (curDB - prevDB)

			return prevF + frac*(curF-prevF)
		}

		prevF = curF
		prevDB = curDB
	}

	return math.NaN()
}
