// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/snoop/internal/snoop/eventlog"
	"github.com/kolkov/snoop/internal/snoop/telemetry"
)

// EnvOptions names an options file read by OptionsFromEnv.
const EnvOptions = "SNOOP_OPTIONS"

// DefaultSweepEvery is the number of new goroutine states between two
// background sweeps.
const DefaultSweepEvery = 1024

// ErrInvalidOptions is wrapped by every Options validation error.
var ErrInvalidOptions = errors.New("invalid options")

// Config configures a Dispatcher.
type Config struct {
	// Callbacks is the generator slot. Nil gives the dispatcher a private slot.
	Callbacks *eventlog.Registry

	// Logger receives lifecycle and fault records. Nil means a text logger
	// on stderr at Warn.
	Logger *slog.Logger

	// Metrics records dispatcher metrics. Nil means telemetry.Noop.
	Metrics telemetry.Recorder

	// SweepEvery triggers a background sweep of dead goroutines after this
	// many new goroutine states. Zero uses DefaultSweepEvery; negative
	// disables background sweeps.
	SweepEvery int
}

// Options is the file form of Config.
//
// Example (YAML):
//
//	log_level: debug
//	log_format: json
//	sweep_every: 256
//	metrics: true
type Options struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" json:"log_format"`

	// SweepEvery is Config.SweepEvery, except that 0 disables sweeps.
	SweepEvery int `yaml:"sweep_every" json:"sweep_every"`

	// Metrics enables OpenTelemetry metrics on the global meter provider.
	Metrics bool `yaml:"metrics" json:"metrics"`
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		LogLevel:   "warn",
		LogFormat:  "text",
		SweepEvery: DefaultSweepEvery,
	}
}

// LoadOptions reads options from a file, detecting the format by extension.
// Supported extensions: .yaml, .yml, .json. Fields missing from the file
// keep their defaults.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return ParseOptions(data)
	case ".json":
		return parseJSONOptions(data)
	default:
		return Options{}, fmt.Errorf("unsupported options file extension: %s", ext)
	}
}

// ParseOptions parses YAML (or JSON, which is valid YAML) options.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse yaml: %w", err)
	}
	return opts, opts.Validate()
}

func parseJSONOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := json.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse json: %w", err)
	}
	return opts, opts.Validate()
}

// OptionsFromEnv loads the file named by $SNOOP_OPTIONS, or returns the
// defaults when the variable is unset.
func OptionsFromEnv() (Options, error) {
	path := os.Getenv(EnvOptions)
	if path == "" {
		return DefaultOptions(), nil
	}
	return LoadOptions(path)
}

// Validate checks that all fields hold supported values.
func (o Options) Validate() error {
	if _, err := parseLevel(o.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(o.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q (want text or json)", ErrInvalidOptions, o.LogFormat)
	}
	if o.SweepEvery < 0 {
		return fmt.Errorf("%w: sweep_every %d is negative", ErrInvalidOptions, o.SweepEvery)
	}
	return nil
}

// Config builds a dispatcher configuration logging to w. A nil w means
// stderr.
func (o Options) Config(w io.Writer) (Config, error) {
	if err := o.Validate(); err != nil {
		return Config{}, err
	}
	if w == nil {
		w = os.Stderr
	}

	level, _ := parseLevel(o.LogLevel)
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(o.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	logger := slog.New(handler)

	cfg := Config{
		Logger:     logger,
		SweepEvery: o.SweepEvery,
	}
	if o.SweepEvery == 0 {
		cfg.SweepEvery = -1
	}
	if o.Metrics {
		cfg.Metrics = telemetry.NewOrNoop(nil, logger)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidOptions, s)
	}
}

// defaultLogger is the logger of a Config without one.
func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
