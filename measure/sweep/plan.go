package sweep

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Errors returned by plan and sweep construction. Anything past parameter
// validation is fail-soft and never surfaces as an error.
var (
	ErrPointCount  = errors.New("sweep: plan needs at least 2 points")
	ErrLogBounds   = errors.New("sweep: log spacing requires positive start and stop")
	ErrAmplitude   = errors.New("sweep: amplitude must be positive and finite")
	ErrDwell       = errors.New("sweep: dwell must not be negative")
	ErrKneeDrop    = errors.New("sweep: knee drop must not be negative")
	ErrNilStimulus = errors.New("sweep: bench has no stimulus capability")
	ErrNilCapture  = errors.New("sweep: bench has no capture capability")
	ErrNilMeasure  = errors.New("sweep: bench has no scalar measure capability")
)

// Mode selects the frequency spacing of a plan.
type Mode int

const (
	ModeLinear Mode = iota
	ModeLog
)

// ParseMode resolves a spacing name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear", "lin":
		return ModeLinear, nil
	case "log", "logarithmic":
		return ModeLog, nil
	default:
		return ModeLinear, fmt.Errorf("sweep: unknown plan mode %q", name)
	}
}

// Plan generates count test frequencies from start to stop with the given
// spacing. All values are rounded to 6 decimal places and the endpoints are
// forced to the rounded start/stop exactly, so a plan reproduces its bounds
// regardless of floating-point drift in the interpolation.
func Plan(start, stop float64, count int, mode Mode) ([]float64, error) {
	if count < 2 {
		return nil, ErrPointCount
	}

	out := make([]float64, count)

	switch mode {
	case ModeLog:
		if start <= 0 || stop <= 0 {
			return nil, ErrLogBounds
		}

		lnStart := math.Log(start)
		lnStop := math.Log(stop)

		for i := range out {
			frac := float64(i) / float64(count-1)
			out[i] = round6(math.Exp(lnStart + (lnStop-lnStart)*frac))
		}
	default:
		step := (stop - start) / float64(count-1)
		for i := range out {
			out[i] = round6(start + step*float64(i))
		}
	}

	out[0] = round6(start)
	out[count-1] = round6(stop)

	return out, nil
}

// round6 rounds to 6 decimal places for deterministic, reproducible plans.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
