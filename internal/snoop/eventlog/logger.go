// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eventlog delivers trace events to the consumer of the producing
// thread.
//
// The consumer of a thread is obtained from the installed Generator on the
// thread's first event and cached in the thread's gate state. Installing a
// new generator bumps a generation counter; each thread resolves again on
// its next event.
//
// Nothing that goes wrong in a generator or consumer reaches the traced
// program. Panics are recovered, recorded in the fault depot, logged once
// per distinct stack and counted.
package eventlog

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kolkov/snoop/internal/snoop/faults"
	"github.com/kolkov/snoop/internal/snoop/gate"
	"github.com/kolkov/snoop/internal/snoop/telemetry"
	"github.com/kolkov/snoop/snoop/event"
)

// Delivery errors returned by Log and Flush.
var (
	ErrNilConsumer    = errors.New("eventlog: generator returned nil consumer")
	ErrGeneratorPanic = errors.New("eventlog: generator panicked")
	ErrConsumerPanic  = errors.New("eventlog: consumer panicked")
	ErrFlushPanic     = errors.New("eventlog: flush panicked")
)

// Config configures a Logger.
type Config struct {
	// Callbacks is the generator slot. Required.
	Callbacks *Registry

	// Faults receives suppressed failures. Nil allocates a private depot.
	Faults *faults.Depot

	// Metrics records deliveries and faults. Nil means telemetry.Noop.
	Metrics telemetry.Recorder

	// Logger reports faults. Nil means slog.Default().
	Logger *slog.Logger
}

// Logger forwards events to per-thread consumers.
//
// Thread Safety: Safe for concurrent use; each call only touches the gate
// state of the calling goroutine.
type Logger struct {
	callbacks *Registry
	faults    *faults.Depot
	metrics   telemetry.Recorder
	log       *slog.Logger
}

// binding is the cached resolution stored in gate.State.Local.
type binding struct {
	generation uint64
	consume    Consumer
	err        error
}

// New returns a Logger.
func New(cfg Config) *Logger {
	l := &Logger{
		callbacks: cfg.Callbacks,
		faults:    cfg.Faults,
		metrics:   cfg.Metrics,
		log:       cfg.Logger,
	}
	if l.callbacks == nil {
		l.callbacks = &Registry{}
	}
	if l.faults == nil {
		l.faults = &faults.Depot{}
	}
	if l.metrics == nil {
		l.metrics = telemetry.Noop{}
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	return l
}

// Faults returns the depot that records suppressed failures.
func (l *Logger) Faults() *faults.Depot {
	return l.faults
}

// Log delivers ev to the consumer of the goroutine owning s. It must be
// called on that goroutine with s's gate closed.
//
// A SPECIAL event carrying event.SpecialWarmUp resolves the consumer but is
// not delivered.
//
// Returns nil on delivery, or an error wrapping ErrNilConsumer,
// ErrGeneratorPanic or ErrConsumerPanic. The failure has already been
// recorded; callers on the hot path ignore it.
func (l *Logger) Log(s *gate.State, ev event.TraceEvent) error {
	consume, err := l.resolve(s)
	if err != nil {
		return err
	}
	if sp, ok := ev.(*event.Special); ok && sp.Code == event.SpecialWarmUp {
		return nil
	}
	return l.deliver(s, consume, ev)
}

// resolve returns the cached consumer, asking the generator again when the
// generation changed. A failed resolution is cached too, so a broken
// generator is reported once per thread and generation.
func (l *Logger) resolve(s *gate.State) (consume Consumer, err error) {
	gen, generation := l.callbacks.Load()
	if b, ok := s.Local.(*binding); ok && b.generation == generation {
		return b.consume, b.err
	}

	defer func() {
		if r := recover(); r != nil {
			l.report(faults.StageResolve, r, s, nil)
			err = fmt.Errorf("%w: %v", ErrGeneratorPanic, r)
			consume = nil
		}
		s.Local = &binding{generation: generation, consume: consume, err: err}
	}()

	consume = gen.Callback(s.Thread())
	if consume == nil {
		l.report(faults.StageResolve, ErrNilConsumer, s, nil)
		return nil, ErrNilConsumer
	}
	return consume, nil
}

func (l *Logger) deliver(s *gate.State, consume Consumer, ev event.TraceEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.report(faults.StageDeliver, r, s, ev)
			err = fmt.Errorf("%w: %v", ErrConsumerPanic, r)
		}
	}()

	consume(ev)
	l.metrics.Delivered(event.CategoryOf(ev))
	return nil
}

// Report records a suppressed failure on the goroutine owning s. ev may be
// nil. The first occurrence of a stage and stack is logged at Error with
// the stack, repeats at Debug.
func (l *Logger) Report(stage string, cause any, s *gate.State, ev event.TraceEvent) {
	l.report(stage, cause, s, ev)
}

func (l *Logger) report(stage string, cause any, s *gate.State, ev event.TraceEvent) {
	rec, first := l.faults.Capture(stage, cause)
	l.metrics.Fault(stage)

	attrs := []any{
		slog.String("stage", stage),
		slog.String("error", rec.Message),
	}
	if s != nil {
		attrs = append(attrs, slog.String("thread", s.Thread().Name()))
	}
	if ev != nil {
		attrs = append(attrs, slog.String("event", ev.Location().String()))
	}

	if first {
		attrs = append(attrs, slog.String("stack", rec.Stack.Format()))
		l.log.Error("trace fault suppressed", attrs...)
		return
	}
	attrs = append(attrs, slog.Uint64("count", rec.Count()))
	l.log.Debug("trace fault repeated", attrs...)
}

// Flush flushes the current generator if it implements Flusher. A panic in
// Flush is recovered and returned as an error wrapping ErrFlushPanic.
func (l *Logger) Flush() (err error) {
	gen, _ := l.callbacks.Load()
	f, ok := gen.(Flusher)
	if !ok {
		return nil
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			l.report(faults.StageFlush, r, nil, nil)
			err = fmt.Errorf("%w: %v", ErrFlushPanic, r)
		}
		l.metrics.Flushed(time.Since(start), err)
	}()

	if err := f.Flush(); err != nil {
		return fmt.Errorf("eventlog: flush: %w", err)
	}
	return nil
}
