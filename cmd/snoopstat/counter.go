// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/kolkov/snoop/snoop"
	"github.com/kolkov/snoop/snoop/event"
	"github.com/kolkov/snoop/snoop/thread"
)

// tally counts the events of one thread by category. It is written only by
// the thread's consumer.
type tally struct {
	label  string
	thread string
	counts []atomic.Uint64 // indexed by event.Category
}

// counter is a consumer generator that counts events per entry point and
// category. Each Flush hands a snapshot of the counts to sink, unless
// nothing changed since the previous flush.
type counter struct {
	labels func(*thread.Thread) (string, bool)
	sink   func([]row)

	mu      sync.Mutex
	tallies []*tally
	flushed uint64
	flushes int
}

// row is one line of the report.
type row struct {
	EntryPoint string
	Category   event.Category
	Threads    int
	Events     uint64
}

func newCounter(labels func(*thread.Thread) (string, bool), sink func([]row)) *counter {
	return &counter{labels: labels, sink: sink}
}

// Callback implements snoop.Generator.
func (c *counter) Callback(t *thread.Thread) snoop.Consumer {
	label, ok := c.labels(t)
	if !ok {
		label = "<unattributed>"
	}
	tl := &tally{
		label:  label,
		thread: t.Name(),
		counts: make([]atomic.Uint64, len(event.Categories())+1),
	}

	c.mu.Lock()
	c.tallies = append(c.tallies, tl)
	c.mu.Unlock()

	return func(ev event.TraceEvent) {
		tl.counts[ev.Location().Category()].Add(1)
	}
}

// Flush implements snoop.Flusher.
func (c *counter) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.flushes++
	rows, total := c.snapshot()
	if total == c.flushed {
		return nil
	}
	c.flushed = total
	if c.sink != nil {
		c.sink(rows)
	}
	return nil
}

// Rows returns the current counts, sorted by entry point and category.
func (c *counter) Rows() []row {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, _ := c.snapshot()
	return rows
}

// Flushes returns how many times Flush was called.
func (c *counter) Flushes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushes
}

func (c *counter) snapshot() ([]row, uint64) {
	type key struct {
		label string
		cat   event.Category
	}
	agg := make(map[key]*row)
	threads := make(map[key]map[string]bool)

	var total uint64
	for _, tl := range c.tallies {
		for _, cat := range event.Categories() {
			n := tl.counts[cat].Load()
			if n == 0 {
				continue
			}
			total += n
			k := key{tl.label, cat}
			r, ok := agg[k]
			if !ok {
				r = &row{EntryPoint: tl.label, Category: cat}
				agg[k] = r
				threads[k] = make(map[string]bool)
			}
			r.Events += n
			threads[k][tl.thread] = true
		}
	}

	rows := make([]row, 0, len(agg))
	for k, r := range agg {
		r.Threads = len(threads[k])
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EntryPoint != rows[j].EntryPoint {
			return rows[i].EntryPoint < rows[j].EntryPoint
		}
		return rows[i].Category < rows[j].Category
	})
	return rows, total
}
