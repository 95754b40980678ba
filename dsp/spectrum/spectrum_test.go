package spectrum

import (
	"math"
	"testing"
)

func TestMagnitude(t *testing.T) {
	in := []complex128{complex(3, 4), complex(0, 0), complex(-1, 0), complex(0, 2)}
	want := []float64{5, 0, 1, 2}

	got := Magnitude(in)
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMagnitudeEmpty(t *testing.T) {
	if got := Magnitude(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestOneSided(t *testing.T) {
	full := make([]complex128, 8)
	half := OneSided(full)

	if len(half) != 5 {
		t.Fatalf("one-sided length mismatch: got %d, want 5", len(half))
	}
}

func TestBinFreq(t *testing.T) {
	// 1024-point FFT at 48 kHz: bin spacing 46.875 Hz.
	if f := BinFreq(1, 1024, 48000); math.Abs(f-46.875) > 1e-12 {
		t.Fatalf("bin 1 frequency mismatch: got %v", f)
	}

	if f := BinFreq(512, 1024, 48000); math.Abs(f-24000) > 1e-12 {
		t.Fatalf("nyquist bin frequency mismatch: got %v", f)
	}
}

func TestNearestBin(t *testing.T) {
	cases := []struct {
		freq float64
		want int
	}{
		{0, 0},
		{46.875, 1},
		{60, 1},
		{80, 2},
		{-100, 0},
		{1e9, 512},
	}

	for _, tc := range cases {
		if got := NearestBin(tc.freq, 1024, 513, 48000); got != tc.want {
			t.Fatalf("NearestBin(%v): got %d, want %d", tc.freq, got, tc.want)
		}
	}
}
