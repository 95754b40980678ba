// Package config loads sweep parameters from command-line flags and an
// optional TOML configuration file, flags taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all user-tunable sweep parameters.
type Config struct {
	StartHz      float64 `mapstructure:"start"`
	StopHz       float64 `mapstructure:"stop"`
	Points       int     `mapstructure:"points"`
	Mode         string  `mapstructure:"mode"`
	AmplitudeVpp float64 `mapstructure:"amplitude"`
	Channel      int     `mapstructure:"channel"`
	ScopeChannel int     `mapstructure:"scope-channel"`
	DwellMs      int     `mapstructure:"dwell-ms"`
	THD          bool    `mapstructure:"thd"`
	Window       string  `mapstructure:"window"`
	Harmonics    int     `mapstructure:"harmonics"`
	Knees        bool    `mapstructure:"knees"`
	KneeRef      string  `mapstructure:"knee-ref"`
	KneeRefHz    float64 `mapstructure:"knee-ref-hz"`
	KneeDropDB   float64 `mapstructure:"knee-drop-db"`
	Output       string  `mapstructure:"output"`
	Database     string  `mapstructure:"database"`
	Debug        bool    `mapstructure:"debug"`
	Verbose      bool    `mapstructure:"verbose"`
}

// Load parses args and merges them over an optional config file. A config
// file is searched in ~/.config/benchsweep unless --config names one
// explicitly; a missing file is not an error.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("benchsweep", pflag.ContinueOnError)

	configFile := fs.String("config", "", "path to a TOML config file")

	fs.Float64("start", 20, "sweep start frequency in Hz")
	fs.Float64("stop", 20000, "sweep stop frequency in Hz")
	fs.Int("points", 61, "number of sweep points")
	fs.String("mode", "log", "frequency spacing: linear or log")
	fs.Float64("amplitude", 0.5, "stimulus amplitude in Vpp")
	fs.Int("channel", 1, "generator channel")
	fs.Int("scope-channel", 1, "scope channel")
	fs.Int("dwell-ms", 150, "settle time after changing stimulus, in ms")
	fs.Bool("thd", false, "compute THD per point")
	fs.String("window", "hann", "FFT window: hann, hamming, or none")
	fs.Int("harmonics", 10, "highest harmonic order for THD")
	fs.Bool("knees", false, "detect bandwidth knees over the RMS response")
	fs.String("knee-ref", "max", "knee reference mode: max or freq")
	fs.Float64("knee-ref-hz", 1000, "reference frequency for knee-ref=freq")
	fs.Float64("knee-drop-db", 3, "knee level drop in dB")
	fs.String("output", "", "CSV output path (default stdout)")
	fs.String("database", "", "optional SQLite file to record the run")
	fs.Bool("debug", false, "enable debug logging")
	fs.Bool("verbose", false, "enable verbose logging")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("toml")

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(defaultConfigDir())
	}

	// A file named with --config must exist; the default search path may
	// come up empty.
	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	err = v.BindPFlags(fs)
	if err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	cfg := &Config{}

	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "benchsweep")
}
