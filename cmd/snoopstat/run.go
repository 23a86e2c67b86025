// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/kolkov/snoop/internal/snoop/api"
	"github.com/kolkov/snoop/snoop"
)

// registerAtExit is atexit.Register; tests wrap it to observe handlers.
var registerAtExit = atexit.Register

// maxDepth bounds --depth; fib(30) already produces tens of millions of
// events.
const maxDepth = 30

// runOptions holds the flags of the run command.
type runOptions struct {
	workers int
	depth   int
	config  string
	format  string
}

func newRunCmd() *cobra.Command {
	o := runOptions{workers: 4, depth: 12, format: "table"}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the instrumented sample program and report event counts",
		Long: `Run the instrumented sample program: a recursive fib on the ` +
			`driver goroutine plus --workers registered threads summing arrays. ` +
			`Every event is counted by entry point and category.`,
		Example: `  snoopstat run
  snoopstat run --workers 8 --depth 16
  snoopstat run --config snoop.yaml --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorkload(cmd.OutOrStdout(), cmd.ErrOrStderr(), o)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&o.workers, "workers", o.workers, "number of registered worker threads")
	flags.IntVar(&o.depth, "depth", o.depth, "argument of the traced fib call")
	flags.StringVar(&o.config, "config", "", "snoop options file (.yaml, .yml or .json); default $"+api.EnvOptions)
	flags.StringVar(&o.format, "format", o.format, "report format: table or csv")
	return cmd
}

func (o runOptions) validate() error {
	if o.workers < 0 {
		return errors.New("--workers must not be negative")
	}
	if o.depth < 0 || o.depth > maxDepth {
		return fmt.Errorf("--depth must be between 0 and %d", maxDepth)
	}
	if _, err := newTableWriter(io.Discard, o.format); err != nil {
		return err
	}
	return nil
}

func loadOptions(path string) (api.Options, error) {
	if path == "" {
		return api.OptionsFromEnv()
	}
	return api.LoadOptions(path)
}

// runWorkload runs the sample program on a dedicated dispatcher. The report
// is written to out by the counter's Flush; dispatcher logs go to errOut.
func runWorkload(out, errOut io.Writer, o runOptions) error {
	if err := o.validate(); err != nil {
		return err
	}
	opts, err := loadOptions(o.config)
	if err != nil {
		return err
	}
	cfg, err := opts.Config(errOut)
	if err != nil {
		return err
	}

	d := snoop.New(cfg)
	defer d.Close()

	c := newCounter(d.EntryPoint, func(rows []row) {
		tw, _ := newTableWriter(out, o.format)
		writeReport(tw, rows)
	})
	d.SetCallbackGenerator(c)

	// Report whatever was counted if the program exits early. The handler
	// is dropped once the final flush has run.
	exitFlush := registerAtExit(func() { _ = d.Flush() })
	defer func() { _ = exitFlush.Cancel() }()

	start := time.Now()
	w := &workload{d: d, depth: int32(o.depth), workers: o.workers}
	res, err := w.run()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := d.Flush(); err != nil {
		return err
	}

	st := d.Stats()
	fmt.Fprintf(out, "fib(%d) = %d; %d workers; %d faults; %s\n",
		o.depth, res.Fib, len(res.Sums), st.FaultCount, elapsed.Round(time.Microsecond))
	return nil
}
