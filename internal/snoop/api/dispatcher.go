// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package api implements the trace dispatcher.
//
// Instrumented code calls a Dispatcher method at every traced instruction.
// Each call is gated per goroutine: it returns immediately unless tracing
// is enabled for the calling goroutine, and while it runs it keeps the gate
// closed so that instrumented code reached from the consumer is not traced.
// An open call builds one event.TraceEvent and hands it to the consumer of
// the calling goroutine.
//
// Tracing is enabled for a goroutine in one of two ways:
//   - the goroutine calls StartSnooping
//   - the goroutine's thread was registered with RegisterThread (or
//     started with Go) before its first traced call
//
// All calls are synchronous and run on the caller's goroutine. The only
// goroutine the dispatcher owns is a background sweeper that reclaims the
// state of exited goroutines.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kolkov/snoop/internal/snoop/eventlog"
	"github.com/kolkov/snoop/internal/snoop/faults"
	"github.com/kolkov/snoop/internal/snoop/gate"
	"github.com/kolkov/snoop/internal/snoop/goid"
	"github.com/kolkov/snoop/internal/snoop/registry"
	"github.com/kolkov/snoop/internal/snoop/telemetry"
	"github.com/kolkov/snoop/snoop/event"
	"github.com/kolkov/snoop/snoop/thread"
)

// Dispatcher errors.
var (
	// ErrCategoryMismatch is recorded when an entry point receives an opcode
	// of another category. The call is dropped.
	ErrCategoryMismatch = errors.New("opcode does not match entry point")

	// ErrInternalGoroutine is returned when an internal worker tries to
	// start snooping.
	ErrInternalGoroutine = errors.New("internal goroutine cannot be traced")
)

// Dispatcher routes trace calls to per-goroutine consumers.
//
// Thread Safety: All methods are safe for concurrent use.
type Dispatcher struct {
	id        uuid.UUID
	callbacks *eventlog.Registry
	gates     *gate.Table
	threads   *registry.Registry
	events    *eventlog.Logger
	metrics   telemetry.Recorder
	log       *slog.Logger
	sweeper   *sweeper
	closeOnce sync.Once
}

// Stats is a snapshot of dispatcher bookkeeping.
type Stats struct {
	Goroutines int // goroutines with gate state
	Registered int // threads with an entry point label
	Pending    int // registered threads that have not made a call yet
	Faults     int // distinct suppressed faults
	FaultCount uint64
}

// SweepStats reports what one sweep reclaimed.
type SweepStats struct {
	States  int // gate states of exited goroutines
	Threads int // adopted threads of exited goroutines
	Entries int // labels and pending registrations of terminated threads
}

// New returns a running dispatcher. Call Close to stop its sweeper.
func New(cfg Config) *Dispatcher {
	d := &Dispatcher{
		id:        uuid.New(),
		callbacks: cfg.Callbacks,
		metrics:   cfg.Metrics,
		threads:   registry.New(),
	}
	if d.callbacks == nil {
		d.callbacks = &eventlog.Registry{}
	}
	if d.metrics == nil {
		d.metrics = telemetry.Noop{}
	}

	log := cfg.Logger
	if log == nil {
		log = defaultLogger()
	}
	d.log = log.With(slog.String("dispatcher_id", d.id.String()))

	sweepEvery := cfg.SweepEvery
	if sweepEvery == 0 {
		sweepEvery = DefaultSweepEvery
	}

	d.sweeper = newSweeper(d)
	d.gates = gate.New(gate.Config{
		Pending:    d.threads.Pending(),
		SweepEvery: sweepEvery,
		OnGrow:     d.sweeper.kick,
	})
	d.events = eventlog.New(eventlog.Config{
		Callbacks: d.callbacks,
		Faults:    &faults.Depot{},
		Metrics:   d.metrics,
		Logger:    d.log,
	})
	d.sweeper.start()

	d.log.Info("dispatcher started", slog.Int("sweep_every", sweepEvery))
	return d
}

// ID returns the unique identifier of d, also attached to its log records.
func (d *Dispatcher) ID() uuid.UUID {
	return d.id
}

// Callbacks returns the generator slot.
func (d *Dispatcher) Callbacks() *eventlog.Registry {
	return d.callbacks
}

// SetCallbackGenerator installs g as the source of per-thread consumers.
// A nil g discards all events. Threads switch to the new generator on their
// next event.
func (d *Dispatcher) SetCallbackGenerator(g eventlog.Generator) {
	d.callbacks.Set(g)
}

// StartSnooping enables tracing on the calling goroutine and attributes it
// to label.
//
// Before the gate opens, a warm-up event is sent through the full logging
// path: the consumer is resolved and cached but the event is not delivered.
// A generator that panics or returns a nil consumer is reported here; the
// goroutine then stays untraced and the error is returned.
func (d *Dispatcher) StartSnooping(label string) error {
	s := d.gates.Current()
	if s.Internal() {
		return ErrInternalGoroutine
	}

	t := s.Thread()
	if err := d.threads.SetEntryPoint(t, label); err != nil {
		return fmt.Errorf("start snooping: %w", err)
	}

	s.Block()
	warmUp := &event.Special{
		Loc:  event.Loc{Op: event.SPECIAL, IID: event.NoID, MID: event.NoID},
		Code: event.SpecialWarmUp,
	}
	if err := d.events.Log(s, warmUp); err != nil {
		d.metrics.Fault(faults.StageWarmUp)
		d.log.Error("warm-up failed, goroutine stays untraced",
			slog.String("entry_point", label),
			slog.String("thread", t.Name()),
			slog.String("error", err.Error()))
		return fmt.Errorf("start snooping %q: %w", label, err)
	}
	s.Unblock()

	d.log.Info("snooping started",
		slog.String("entry_point", label),
		slog.String("thread", t.Name()))
	return nil
}

// Unblock opens the calling goroutine's gate. It has no effect on an
// internal worker.
func (d *Dispatcher) Unblock() {
	d.gates.Current().Unblock()
}

// Block closes the calling goroutine's gate until the next Unblock or
// StartSnooping.
func (d *Dispatcher) Block() {
	d.gates.Current().Block()
}

// Snooping reports whether calls on the current goroutine are traced.
func (d *Dispatcher) Snooping() bool {
	return !d.gates.Current().ShouldBlock()
}

// RegisterThread registers t so that its gate starts open, attributing it to
// a label derived from work, or from t's target when work is nil. It must be
// called before t makes its first traced call, normally before t.Start.
//
// A failure is logged and returned; t then runs untraced.
func (d *Dispatcher) RegisterThread(t *thread.Thread, work any) error {
	label, err := d.threads.RegisterThread(t, work)
	if err != nil {
		d.registrationFailed(t, err)
		return err
	}
	d.registered(t, label)
	return nil
}

// Register is RegisterThread with an explicit label.
func (d *Dispatcher) Register(t *thread.Thread, label string) error {
	if err := d.threads.Register(t, label); err != nil {
		d.registrationFailed(t, err)
		return err
	}
	d.registered(t, label)
	return nil
}

func (d *Dispatcher) registered(t *thread.Thread, label string) {
	d.metrics.Registration(true)
	t.OnExit(func() { d.gates.Forget(t.GoroutineID()) })
	d.log.Debug("thread registered",
		slog.String("thread", t.Name()),
		slog.String("entry_point", label))
}

func (d *Dispatcher) registrationFailed(t *thread.Thread, err error) {
	d.metrics.Registration(false)
	name := "<nil>"
	if t != nil {
		name = t.Name()
	}
	d.log.Warn("thread registration failed, thread stays untraced",
		slog.String("thread", name),
		slog.String("error", err.Error()))
}

// Go runs fn on a new traced thread and returns its handle. A registration
// failure is logged and fn runs untraced.
func (d *Dispatcher) Go(fn func()) *thread.Thread {
	t := thread.NewFunc(fn)
	_ = d.RegisterThread(t, nil)
	_ = t.Start() // A fresh thread always starts.
	return t
}

// MarkInternal makes the calling goroutine an internal worker whose calls
// are never traced.
func (d *Dispatcher) MarkInternal() {
	d.gates.MarkInternal(goid.Current())
}

// EntryPoint returns the label t is attributed to.
func (d *Dispatcher) EntryPoint(t *thread.Thread) (string, bool) {
	return d.threads.EntryPoint(t)
}

// Flush flushes the consumer generator if it buffers output. The calling
// goroutine's gate is closed while the generator flushes.
func (d *Dispatcher) Flush() error {
	s := d.gates.Current()
	wasBlocked := s.ShouldBlock()
	s.Block()
	defer func() {
		if !wasBlocked {
			s.Unblock()
		}
	}()

	start := time.Now()
	if err := d.events.Flush(); err != nil {
		d.log.Warn("flush failed", slog.String("error", err.Error()))
		return err
	}
	d.log.Debug("flushed", slog.Duration("elapsed", time.Since(start)))
	return nil
}

// Faults returns the suppressed faults, most frequent first.
func (d *Dispatcher) Faults() []*faults.Record {
	return d.events.Faults().Records()
}

// Stats returns a snapshot of dispatcher bookkeeping.
func (d *Dispatcher) Stats() Stats {
	unique, total := d.events.Faults().Stats()
	return Stats{
		Goroutines: d.gates.Len(),
		Registered: d.threads.Len(),
		Pending:    d.threads.Pending().Len(),
		Faults:     unique,
		FaultCount: total,
	}
}

// Sweep reclaims the state of exited goroutines and terminated threads now.
// It runs on the sweeper goroutine, or on the caller after Close.
func (d *Dispatcher) Sweep() SweepStats {
	return d.sweeper.sweepNow()
}

// Close stops the background sweeper. Trace calls keep working after Close.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.sweeper.stop()
		unique, total := d.events.Faults().Stats()
		d.log.Info("dispatcher closed",
			slog.Int("faults", unique),
			slog.Uint64("fault_count", total))
	})
}

// sweep performs one sweep. Watermarks are taken before the live snapshot so
// that goroutines starting during the sweep keep their state.
func (d *Dispatcher) sweep() SweepStats {
	stateMark := d.gates.Mark()
	threadMark := thread.Mark()
	live := goid.Live()

	st := SweepStats{
		States:  d.gates.Prune(stateMark, live),
		Threads: thread.Prune(threadMark, live),
	}
	st.Entries = d.threads.Sweep()

	d.metrics.Swept(st.States, st.Threads)
	d.log.Debug("sweep finished",
		slog.Int("live", len(live)),
		slog.Int("states", st.States),
		slog.Int("threads", st.Threads),
		slog.Int("entries", st.Entries))
	return st
}
