// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gate implements the per-goroutine reentrancy gate.
//
// Every dispatcher call first looks up the calling goroutine's State. A
// closed gate makes the call return without side effects; an open gate is
// closed for the duration of the call, so anything the consumer does that is
// itself instrumented is suppressed. The gate of a goroutine starts closed
// unless the goroutine was registered beforehand or calls StartSnooping.
//
// States are keyed by goroutine ID and created lazily by their own
// goroutine, so a lookup on the hot path is a single lock-free sync.Map load.
package gate

import (
	"sync"
	"sync/atomic"

	"github.com/kolkov/snoop/internal/snoop/goid"
	"github.com/kolkov/snoop/snoop/thread"
)

// State is the gate of one goroutine.
//
// Thread Safety: A State is owned by its goroutine. Only the owner may call
// its methods; other goroutines may only drop it from the Table.
type State struct {
	gid      int64
	seq      uint64
	internal bool
	blocked  bool
	thread   *thread.Thread

	// Local is reserved for the event logger (the resolved consumer).
	Local any
}

// ShouldBlock reports whether calls on this goroutine must be suppressed.
func (s *State) ShouldBlock() bool {
	return s.blocked
}

// Block closes the gate.
func (s *State) Block() {
	s.blocked = true
}

// Unblock opens the gate. The gate of an internal goroutine stays closed.
func (s *State) Unblock() {
	if !s.internal {
		s.blocked = false
	}
}

// Internal reports whether the goroutine is a runtime-internal worker.
func (s *State) Internal() bool {
	return s.internal
}

// GoroutineID returns the ID of the owning goroutine.
func (s *State) GoroutineID() int64 {
	return s.gid
}

// Thread returns the handle of the owning goroutine, adopting it if it was
// not started through a thread.Thread.
func (s *State) Thread() *thread.Thread {
	if s.thread == nil {
		s.thread = thread.Current()
	}
	return s.thread
}

// Pending is the set of threads whose gate starts open.
type Pending interface {
	// Take removes t and reports whether it was present.
	Take(t *thread.Thread) bool
}

// Config configures a Table.
type Config struct {
	// Pending decides which new goroutines start unblocked. Nil means none.
	Pending Pending

	// SweepEvery makes the table call OnGrow after every SweepEvery state
	// creations. Zero disables the hook.
	SweepEvery int

	// OnGrow is called on the creating goroutine. It must not block.
	OnGrow func()
}

// Table holds the gate state of every goroutine that has made a call.
type Table struct {
	states   sync.Map // int64 -> *State
	internal sync.Map // int64 -> struct{}

	pending    Pending
	sweepEvery uint64
	onGrow     func()

	seq     atomic.Uint64
	created atomic.Uint64
	size    atomic.Int64
}

// New returns an empty table.
func New(cfg Config) *Table {
	t := &Table{
		pending: cfg.Pending,
		onGrow:  cfg.OnGrow,
	}
	if cfg.SweepEvery > 0 {
		t.sweepEvery = uint64(cfg.SweepEvery)
	}
	return t
}

// Current returns the calling goroutine's state, creating it on first use.
//
// A new state is:
//   - permanently blocked if the goroutine was marked internal
//   - unblocked if its thread was pending, which also removes it from
//     the pending set
//   - blocked otherwise
//
// Performance: one goroutine ID lookup plus a sync.Map load after the first call.
func (t *Table) Current() *State {
	gid := goid.Current()
	if v, ok := t.states.Load(gid); ok {
		return v.(*State)
	}
	return t.create(gid)
}

func (t *Table) create(gid int64) *State {
	s := &State{
		gid:     gid,
		seq:     t.seq.Add(1),
		blocked: true,
	}

	if _, ok := t.internal.Load(gid); ok {
		s.internal = true
	} else if th, ok := thread.Lookup(gid); ok {
		s.thread = th
		if t.pending != nil && t.pending.Take(th) {
			s.blocked = false
		}
	}

	t.states.Store(gid, s)
	t.size.Add(1)

	if t.sweepEvery > 0 && t.onGrow != nil && t.created.Add(1)%t.sweepEvery == 0 {
		t.onGrow()
	}
	return s
}

// MarkInternal makes goroutine gid permanently blocked. It must be called
// before the goroutine's first traced call, normally by the goroutine itself.
func (t *Table) MarkInternal(gid int64) {
	t.internal.Store(gid, struct{}{})
	if _, ok := t.states.LoadAndDelete(gid); ok {
		t.size.Add(-1)
	}
}

// Forget drops the state of goroutine gid. A later call on that goroutine
// starts from a fresh, blocked state.
func (t *Table) Forget(gid int64) {
	t.internal.Delete(gid)
	if _, ok := t.states.LoadAndDelete(gid); ok {
		t.size.Add(-1)
	}
}

// Mark returns a watermark for Prune.
func (t *Table) Mark() uint64 {
	return t.seq.Load()
}

// Prune drops the states of goroutines that are not in live. States created
// after mark are kept: their goroutine may have started after the live
// snapshot was taken. Internal marks are only removed by Forget.
//
// Returns the number of states dropped.
func (t *Table) Prune(mark uint64, live []int64) int {
	alive := make(map[int64]struct{}, len(live))
	for _, gid := range live {
		alive[gid] = struct{}{}
	}

	pruned := 0
	t.states.Range(func(key, value any) bool {
		s := value.(*State)
		if s.seq > mark {
			return true
		}
		if _, ok := alive[s.gid]; ok {
			return true
		}
		if t.states.CompareAndDelete(key, s) {
			t.size.Add(-1)
			pruned++
		}
		return true
	})
	return pruned
}

// Len returns the number of goroutines with state.
func (t *Table) Len() int {
	return int(t.size.Load())
}
