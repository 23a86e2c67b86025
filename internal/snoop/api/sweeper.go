// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"github.com/kolkov/snoop/internal/snoop/goid"
)

// sweeper is the dispatcher's internal worker. It marks itself internal
// before doing anything, so nothing it runs (exit hooks of pruned threads
// included) is ever traced.
type sweeper struct {
	d        *Dispatcher
	kicks    chan struct{}
	requests chan chan SweepStats
	quit     chan struct{}
	done     chan struct{}
}

func newSweeper(d *Dispatcher) *sweeper {
	return &sweeper{
		d:        d,
		kicks:    make(chan struct{}, 1),
		requests: make(chan chan SweepStats),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// start launches the worker and returns once it is registered as internal.
func (w *sweeper) start() {
	ready := make(chan struct{})
	go w.run(ready)
	<-ready
}

func (w *sweeper) run(ready chan<- struct{}) {
	gid := goid.Current()
	w.d.gates.MarkInternal(gid)
	close(ready)

	defer close(w.done)
	defer w.d.gates.Forget(gid)

	for {
		select {
		case <-w.kicks:
			w.d.sweep()
		case reply := <-w.requests:
			reply <- w.d.sweep()
		case <-w.quit:
			return
		}
	}
}

// kick requests a background sweep. It never blocks; kicks that arrive
// while one is pending are coalesced.
func (w *sweeper) kick() {
	select {
	case w.kicks <- struct{}{}:
	default:
	}
}

// sweepNow runs a sweep on the worker and waits for it. After stop it
// sweeps on the caller.
func (w *sweeper) sweepNow() SweepStats {
	reply := make(chan SweepStats, 1)
	select {
	case w.requests <- reply:
		return <-reply
	case <-w.done:
		return w.d.sweep()
	}
}

func (w *sweeper) stop() {
	close(w.quit)
	<-w.done
}
