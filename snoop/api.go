// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snoop

import (
	"log/slog"
	"os"
	"sync"

	internal "github.com/kolkov/snoop/internal/snoop/api"
	"github.com/kolkov/snoop/internal/snoop/eventlog"
	"github.com/kolkov/snoop/snoop/thread"
)

// Dispatcher routes trace calls to per-thread consumers. Most programs use
// the default dispatcher through the package functions; New creates an
// independent one.
type Dispatcher = internal.Dispatcher

// Config configures a Dispatcher.
type Config = internal.Config

// Options is the file form of Config, read from $SNOOP_OPTIONS by the
// default dispatcher.
type Options = internal.Options

// Consumer receives the events of one thread, synchronously, on that
// thread's goroutine.
type Consumer = eventlog.Consumer

// Generator supplies the consumer of each traced thread.
type Generator = eventlog.Generator

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc = eventlog.GeneratorFunc

// Flusher is implemented by generators that buffer output.
type Flusher = eventlog.Flusher

// EnvOptions names the options file of the default dispatcher.
const EnvOptions = internal.EnvOptions

// New returns an independent dispatcher. Call Close when done with it.
func New(cfg Config) *Dispatcher {
	return internal.New(cfg)
}

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
)

// Default returns the process-wide dispatcher, creating it on first use.
//
// The default dispatcher is configured from the options file named by
// $SNOOP_OPTIONS. A missing or invalid file is reported on stderr and the
// defaults are used instead; tracing never fails to start over a bad
// options file.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		opts, loadErr := internal.OptionsFromEnv()
		if loadErr != nil {
			opts = internal.DefaultOptions()
		}
		cfg, _ := opts.Config(os.Stderr)
		defaultDispatcher = internal.New(cfg)
		if loadErr != nil {
			cfg.Logger.Warn("ignoring options file, using defaults",
				slog.String("env", EnvOptions),
				slog.String("error", loadErr.Error()))
		}
	})
	return defaultDispatcher
}

// SetCallbackGenerator installs g as the source of per-thread consumers. A
// nil g discards all events.
func SetCallbackGenerator(g Generator) {
	Default().SetCallbackGenerator(g)
}

// StartSnooping enables tracing on the calling goroutine, attributing it to
// the entry point label (for example "fuzz.Driver#run").
//
// The consumer is resolved before the first event is traced. If the
// generator fails, the goroutine stays untraced and the error is returned.
//
// Example:
//
//	snoop.SetCallbackGenerator(engine)
//	if err := snoop.StartSnooping("main#run"); err != nil {
//		log.Fatal(err)
//	}
//	defer snoop.Flush()
func StartSnooping(label string) error {
	return Default().StartSnooping(label)
}

// Unblock enables tracing on the calling goroutine.
func Unblock() {
	Default().Unblock()
}

// Block disables tracing on the calling goroutine until the next Unblock.
func Block() {
	Default().Block()
}

// RegisterThread arranges for t to be traced from its first event. The
// entry point label is derived from work, or from t's target when work is
// nil: a Runnable of type pkg.Foo is attributed to "pkg.Foo#run".
//
// Register before t.Start. A thread that cannot be registered runs
// untraced and the error is returned.
//
// Example:
//
//	t := thread.New(&Worker{})
//	if err := snoop.RegisterThread(t, nil); err != nil {
//		log.Print(err)
//	}
//	t.Start()
func RegisterThread(t *thread.Thread, work any) error {
	return Default().RegisterThread(t, work)
}

// RegisterLabel is RegisterThread with an explicit entry point label.
func RegisterLabel(t *thread.Thread, label string) error {
	return Default().Register(t, label)
}

// Go runs fn on a new thread that is traced from its first event.
func Go(fn func()) *thread.Thread {
	return Default().Go(fn)
}

// Flush flushes the installed generator if it implements Flusher.
func Flush() error {
	return Default().Flush()
}

// Sweep reclaims the bookkeeping of exited goroutines now instead of
// waiting for the background sweep.
func Sweep() {
	Default().Sweep()
}

// Fault is a failure suppressed while tracing: a consumer or generator that
// panicked, or an instrumented call with an opcode the entry point does not
// accept.
type Fault struct {
	Stage   string // resolve, deliver, validate, flush
	Message string
	Count   uint64
	Stack   string
}

// Faults returns the faults suppressed by the default dispatcher, most
// frequent first.
func Faults() []Fault {
	recs := Default().Faults()
	out := make([]Fault, len(recs))
	for i, rec := range recs {
		out[i] = Fault{
			Stage:   rec.Stage,
			Message: rec.Message,
			Count:   rec.Count(),
			Stack:   rec.Stack.Format(),
		}
	}
	return out
}
