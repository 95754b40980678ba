// Command benchsweep runs a frequency-response sweep against a simulated
// generator/scope bench and reports per-point RMS, peak-to-peak, and
// optional THD, plus bandwidth knees over the RMS response.
//
// Usage:
//
//	benchsweep [flags]
//
// Examples:
//
//	benchsweep --start 20 --stop 20000 --points 61
//	benchsweep --mode linear --thd --window hann
//	benchsweep --knees --knee-drop-db 3 --output sweep.csv
//	benchsweep --database runs.db --verbose
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-bench/dsp/window"
	"github.com/cwbudde/algo-bench/internal/config"
	"github.com/cwbudde/algo-bench/internal/logging"
	"github.com/cwbudde/algo-bench/internal/report"
	"github.com/cwbudde/algo-bench/internal/sim"
	"github.com/cwbudde/algo-bench/measure/knee"
	"github.com/cwbudde/algo-bench/measure/sweep"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, cfg.Debug, cfg.Verbose)

	mode, err := sweep.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	win, err := window.Parse(cfg.Window)
	if err != nil {
		return err
	}

	freqs, err := sweep.Plan(cfg.StartHz, cfg.StopHz, cfg.Points, mode)
	if err != nil {
		return err
	}

	opts := sweep.Options{
		AmplitudeVpp: cfg.AmplitudeVpp,
		Channel:      cfg.Channel,
		ScopeChannel: cfg.ScopeChannel,
		Dwell:        time.Duration(cfg.DwellMs) * time.Millisecond,
		WithTHD:      cfg.THD,
		Logger:       &log,
	}
	opts.Spectral.Window = win
	opts.Spectral.HarmonicCount = cfg.Harmonics

	if cfg.Knees {
		refMode, err := knee.ParseRefMode(cfg.KneeRef)
		if err != nil {
			return err
		}

		opts.Knees = &sweep.KneeOptions{
			Mode:   refMode,
			RefHz:  cfg.KneeRefHz,
			DropDB: cfg.KneeDropDB,
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bench := sim.New(time.Now().UnixNano())

	log.Info().
		Float64("start_hz", cfg.StartHz).
		Float64("stop_hz", cfg.StopHz).
		Int("points", len(freqs)).
		Str("mode", cfg.Mode).
		Msg("starting sweep")

	startedAt := time.Now()

	res, err := sweep.Run(ctx, bench.Bench(), freqs, opts)
	if err != nil {
		return err
	}

	err = writeOutput(cfg, res)
	if err != nil {
		return err
	}

	if cfg.THD {
		for _, line := range report.FormatTHDRows(res.Rows) {
			fmt.Fprintln(os.Stderr, line)
		}
	}

	if res.Knees != nil {
		fmt.Fprintf(os.Stderr, "knees: low %.2f Hz, high %.2f Hz (ref %.2f dB)\n",
			res.Knees.LowHz, res.Knees.HighHz, res.Knees.RefDB)
	}

	if cfg.Database != "" {
		err = saveRun(ctx, cfg.Database, startedAt, res, log)
		if err != nil {
			return err
		}
	}

	return nil
}

func writeOutput(cfg *config.Config, res sweep.Result) error {
	if cfg.Output == "" {
		return report.WriteCSV(os.Stdout, res.Rows)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	err = report.WriteCSV(f, res.Rows)
	if err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func saveRun(ctx context.Context, path string, startedAt time.Time, res sweep.Result, log zerolog.Logger) error {
	store, err := report.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.SaveRun(ctx, startedAt, res)
	if err != nil {
		return err
	}

	log.Info().Int64("run_id", runID).Str("database", path).Msg("run recorded")

	return nil
}
