// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package telemetry records dispatcher metrics with OpenTelemetry.
//
// Use New for OTel metrics or Noop when metrics are disabled. The recorder
// is called on the traced program's goroutines, so per-category attribute
// sets are built once up front and the hot path does not allocate.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kolkov/snoop/snoop/event"
)

// meterName is the instrumentation scope of all snoop instruments.
const meterName = "github.com/kolkov/snoop"

// Recorder records dispatcher metrics.
type Recorder interface {
	// Delivered records one event handed to a consumer.
	Delivered(c event.Category)

	// Fault records a suppressed failure at the given stage.
	Fault(stage string)

	// Registration records the outcome of a thread registration.
	Registration(ok bool)

	// Swept records how many goroutine states and adopted threads a sweep
	// reclaimed.
	Swept(states, threads int)

	// Flushed records a consumer flush.
	Flushed(d time.Duration, err error)
}

// otelRecorder implements Recorder using OpenTelemetry.
type otelRecorder struct {
	delivered     metric.Int64Counter
	faults        metric.Int64Counter
	registrations metric.Int64Counter
	pruned        metric.Int64Counter
	flushLatency  metric.Float64Histogram

	// byCategory is indexed by event.Category.
	byCategory []metric.AddOption
	regOK      metric.AddOption
	regFailed  metric.AddOption
}

// New returns a Recorder backed by meters from mp. A nil mp uses the global
// provider, so configure it first:
//
//	otel.SetMeterProvider(provider)
func New(mp metric.MeterProvider) (Recorder, error) {
	var meter metric.Meter
	if mp == nil {
		meter = otel.Meter(meterName)
	} else {
		meter = mp.Meter(meterName)
	}

	delivered, err := meter.Int64Counter("snoop.events.delivered",
		metric.WithDescription("Number of trace events delivered to consumers"),
	)
	if err != nil {
		return nil, err
	}

	faults, err := meter.Int64Counter("snoop.faults",
		metric.WithDescription("Number of suppressed dispatch failures"),
	)
	if err != nil {
		return nil, err
	}

	registrations, err := meter.Int64Counter("snoop.registrations",
		metric.WithDescription("Number of thread registrations"),
	)
	if err != nil {
		return nil, err
	}

	pruned, err := meter.Int64Counter("snoop.sweep.pruned",
		metric.WithDescription("Number of goroutine states and threads reclaimed by sweeps"),
	)
	if err != nil {
		return nil, err
	}

	flushLatency, err := meter.Float64Histogram("snoop.flush.latency_ms",
		metric.WithDescription("Consumer flush latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	r := &otelRecorder{
		delivered:     delivered,
		faults:        faults,
		registrations: registrations,
		pruned:        pruned,
		flushLatency:  flushLatency,
		regOK:         metric.WithAttributes(attribute.String("outcome", "ok")),
		regFailed:     metric.WithAttributes(attribute.String("outcome", "failed")),
	}
	r.byCategory = make([]metric.AddOption, len(event.Categories())+1)
	r.byCategory[event.CategoryInvalid] = metric.WithAttributes(attribute.String("category", "Invalid"))
	for _, c := range event.Categories() {
		r.byCategory[c] = metric.WithAttributes(attribute.String("category", c.String()))
	}
	return r, nil
}

// NewOrNoop returns New(mp), or Noop if the instruments cannot be created.
func NewOrNoop(mp metric.MeterProvider, log *slog.Logger) Recorder {
	r, err := New(mp)
	if err != nil {
		if log == nil {
			log = slog.Default()
		}
		log.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return Noop{}
	}
	return r
}

// Delivered records one delivered event.
func (r *otelRecorder) Delivered(c event.Category) {
	if int(c) >= len(r.byCategory) {
		c = event.CategoryInvalid
	}
	r.delivered.Add(context.Background(), 1, r.byCategory[c])
}

// Fault records a suppressed failure.
func (r *otelRecorder) Fault(stage string) {
	r.faults.Add(context.Background(), 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// Registration records a registration outcome.
func (r *otelRecorder) Registration(ok bool) {
	opt := r.regFailed
	if ok {
		opt = r.regOK
	}
	r.registrations.Add(context.Background(), 1, opt)
}

// Swept records reclaimed states and threads.
func (r *otelRecorder) Swept(states, threads int) {
	ctx := context.Background()
	r.pruned.Add(ctx, int64(states), metric.WithAttributes(attribute.String("kind", "state")))
	r.pruned.Add(ctx, int64(threads), metric.WithAttributes(attribute.String("kind", "thread")))
}

// Flushed records a flush.
func (r *otelRecorder) Flushed(d time.Duration, err error) {
	r.flushLatency.Record(context.Background(), float64(d.Microseconds())/1000,
		metric.WithAttributes(attribute.Bool("success", err == nil)))
}

// Noop is a Recorder that does nothing.
type Noop struct{}

// Compile-time interface checks.
var (
	_ Recorder = Noop{}
	_ Recorder = (*otelRecorder)(nil)
)

// Delivered does nothing.
func (Noop) Delivered(event.Category) {}

// Fault does nothing.
func (Noop) Fault(string) {}

// Registration does nothing.
func (Noop) Registration(bool) {}

// Swept does nothing.
func (Noop) Swept(int, int) {}

// Flushed does nothing.
func (Noop) Flushed(time.Duration, error) {}
