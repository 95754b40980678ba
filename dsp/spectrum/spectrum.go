// Package spectrum provides helpers for working with one-sided FFT spectra:
// magnitude extraction and the mapping between bin indices and frequencies.
package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)

	return out
}

// OneSided returns the non-negative-frequency half of a full complex
// spectrum: bins 0 (DC) through fftSize/2 (Nyquist), inclusive.
func OneSided(full []complex128) []complex128 {
	if len(full) == 0 {
		return nil
	}

	return full[:len(full)/2+1]
}

// BinFreq returns the frequency in Hz of bin i for the given FFT size and
// sample rate.
func BinFreq(i, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return math.NaN()
	}

	return float64(i) * sampleRate / float64(fftSize)
}

// NearestBin returns the one-sided bin index whose center frequency is
// closest to freqHz, clamped to [0, binCount-1].
func NearestBin(freqHz float64, fftSize, binCount int, sampleRate float64) int {
	if fftSize <= 0 || binCount <= 0 || sampleRate <= 0 {
		return 0
	}

	bin := int(math.Round(freqHz * float64(fftSize) / sampleRate))
	if bin < 0 {
		bin = 0
	}

	if bin > binCount-1 {
		bin = binCount - 1
	}

	return bin
}
