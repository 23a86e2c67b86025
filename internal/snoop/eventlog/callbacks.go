// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventlog

import (
	"sync/atomic"

	"github.com/kolkov/snoop/snoop/event"
	"github.com/kolkov/snoop/snoop/thread"
)

// Consumer receives the trace events of one thread, synchronously and in
// execution order.
type Consumer func(event.TraceEvent)

// Generator produces the consumer for a thread. It is called once per
// thread, on that thread, the first time the thread emits an event after
// the generator was installed.
type Generator interface {
	Callback(t *thread.Thread) Consumer
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(t *thread.Thread) Consumer

// Callback calls f(t).
func (f GeneratorFunc) Callback(t *thread.Thread) Consumer {
	return f(t)
}

// Flusher is implemented by generators that buffer output.
type Flusher interface {
	Flush() error
}

// noopGenerator hands out a consumer that discards everything.
type noopGenerator struct{}

func (noopGenerator) Callback(*thread.Thread) Consumer { return discard }

func discard(event.TraceEvent) {}

// slot is one installed generator.
type slot struct {
	gen        Generator
	generation uint64
}

// Registry is the process-wide callback slot. The last Set wins.
//
// Thread Safety: Safe for concurrent use. The zero value holds the no-op
// generator at generation 0.
type Registry struct {
	cur atomic.Pointer[slot]
	seq atomic.Uint64
}

// Set installs g, replacing the previous generator. A nil g installs a
// generator that discards all events.
//
// Threads pick up the new generator on their next event.
func (r *Registry) Set(g Generator) {
	if g == nil {
		g = noopGenerator{}
	}
	r.cur.Store(&slot{gen: g, generation: r.seq.Add(1)})
}

// Load returns the current generator and its generation.
func (r *Registry) Load() (Generator, uint64) {
	s := r.cur.Load()
	if s == nil {
		return noopGenerator{}, 0
	}
	return s.gen, s.generation
}
