package testutil

import (
	"math"
	"testing"
)

// RequireNear fails t if got and want differ by more than eps. A NaN value
// on either side fails unless both are NaN.
func RequireNear(t *testing.T, got, want, eps float64) {
	t.Helper()

	if math.IsNaN(got) && math.IsNaN(want) {
		return
	}

	if !(math.Abs(got-want) <= eps) {
		t.Fatalf("got %v, want %v (eps %v)", got, want, eps)
	}
}

// RequireNaN fails t if v is not NaN.
func RequireNaN(t *testing.T, v float64) {
	t.Helper()

	if !math.IsNaN(v) {
		t.Fatalf("expected NaN, got %v", v)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}
