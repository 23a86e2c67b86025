// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thread provides goroutine handles that the trace runtime can
// recognise.
//
// Go has no thread object an instrumentor could hand to the runtime before a
// goroutine starts. A Thread fills that role: it is created first, can be
// registered for tracing, and binds itself to its goroutine ID before running
// the target. Goroutines that were not started through a Thread (main, test
// goroutines, plain go statements) get an adopted handle the first time
// Current is called on them.
//
// Example:
//
//	t := thread.NewFunc(func() { work() })
//	if err := snoop.RegisterThread(t, nil); err != nil {
//		log.Printf("not traced: %v", err)
//	}
//	_ = t.Start()
//	t.Wait()
package thread

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"

	"github.com/kolkov/snoop/internal/snoop/goid"
)

// ErrAlreadyStarted is returned by Start on a thread that has been started
// before or that was adopted from a running goroutine.
var ErrAlreadyStarted = errors.New("thread: already started")

// Runnable is the body of a thread.
type Runnable interface {
	Run()
}

// RunnableFunc adapts a plain function to Runnable.
type RunnableFunc func()

// Run calls f.
func (f RunnableFunc) Run() { f() }

// Status is the lifecycle stage of a thread.
type Status int32

// Thread lifecycle stages.
const (
	StatusNew Status = iota
	StatusRunning
	StatusTerminated
)

// String returns a lower-case name for s.
func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusRunning:
		return "running"
	case StatusTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Thread is a handle for one goroutine.
//
// Thread Safety: All methods are safe for concurrent use.
type Thread struct {
	id      xid.ID
	target  any
	run     func()
	adopted bool

	// seq orders bindings for Prune.
	seq    atomic.Uint64
	gid    atomic.Int64
	status atomic.Int32

	mu    sync.Mutex
	name  string
	hooks []func()
	done  chan struct{}
}

// bindings maps goroutine ID (int64) to the *Thread running on it.
var bindings sync.Map

// bindSeq numbers bindings in creation order.
var bindSeq atomic.Uint64

// New returns an unstarted thread that runs r.
func New(r Runnable) *Thread {
	var run func()
	if r != nil {
		run = r.Run
	}
	return newThread(r, run)
}

// NewFunc returns an unstarted thread that runs fn.
func NewFunc(fn func()) *Thread {
	return newThread(fn, fn)
}

func newThread(target any, run func()) *Thread {
	t := &Thread{
		id:     xid.New(),
		target: target,
		run:    run,
		done:   make(chan struct{}),
	}
	t.name = "thread-" + t.id.String()
	return t
}

// Start runs the thread's target on a new goroutine.
//
// The goroutine is bound to t before the target runs, so the first traced
// event already sees its handle. Exit hooks run when the target returns or
// panics.
func (t *Thread) Start() error {
	if !t.status.CompareAndSwap(int32(StatusNew), int32(StatusRunning)) {
		return ErrAlreadyStarted
	}
	go func() {
		t.bind(goid.Current())
		defer t.exit()
		if t.run != nil {
			t.run()
		}
	}()
	return nil
}

func (t *Thread) bind(gid int64) {
	t.gid.Store(gid)
	t.seq.Store(bindSeq.Add(1))
	bindings.Store(gid, t)
}

// exit unbinds t, marks it terminated and runs its exit hooks once.
func (t *Thread) exit() {
	bindings.CompareAndDelete(t.gid.Load(), t)

	t.mu.Lock()
	if Status(t.status.Load()) == StatusTerminated {
		t.mu.Unlock()
		return
	}
	t.status.Store(int32(StatusTerminated))
	hooks := t.hooks
	t.hooks = nil
	t.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
	close(t.done)
}

// OnExit registers fn to run when the thread terminates. Hooks run in
// reverse registration order. If the thread has already terminated, fn runs
// immediately on the caller's goroutine.
func (t *Thread) OnExit(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	if Status(t.status.Load()) == StatusTerminated {
		t.mu.Unlock()
		fn()
		return
	}
	t.hooks = append(t.hooks, fn)
	t.mu.Unlock()
}

// Wait blocks until the thread terminates. For an adopted thread this is
// when a Prune observes that its goroutine has exited.
func (t *Thread) Wait() {
	<-t.done
}

// Done returns a channel that is closed when the thread terminates.
func (t *Thread) Done() <-chan struct{} {
	return t.done
}

// ID returns the globally unique identifier of t.
func (t *Thread) ID() xid.ID { return t.id }

// Target returns the Runnable or function the thread was created with, or
// nil for an adopted thread.
func (t *Thread) Target() any { return t.target }

// Adopted reports whether t was created by Current for a goroutine that was
// not started through a Thread.
func (t *Thread) Adopted() bool { return t.adopted }

// GoroutineID returns the ID of the goroutine t runs on, or 0 before Start.
func (t *Thread) GoroutineID() int64 { return t.gid.Load() }

// Status returns the lifecycle stage of t.
func (t *Thread) Status() Status { return Status(t.status.Load()) }

// Alive reports whether t has started and not yet terminated.
func (t *Thread) Alive() bool { return t.Status() == StatusRunning }

// Terminated reports whether t has terminated.
func (t *Thread) Terminated() bool { return t.Status() == StatusTerminated }

// Name returns the diagnostic name of t.
func (t *Thread) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

// SetName sets the diagnostic name of t.
func (t *Thread) SetName(name string) {
	t.mu.Lock()
	t.name = name
	t.mu.Unlock()
}

// String returns the thread name.
func (t *Thread) String() string { return t.Name() }

// Current returns the handle of the calling goroutine. A goroutine that was
// not started through a Thread is adopted: it gets a running handle whose
// target is nil.
func Current() *Thread {
	gid := goid.Current()
	if t, ok := Lookup(gid); ok {
		return t
	}

	t := newThread(nil, nil)
	t.adopted = true
	t.name = "goroutine-" + strconv.FormatInt(gid, 10)
	t.status.Store(int32(StatusRunning))
	t.bind(gid)
	return t
}

// Lookup returns the handle bound to goroutine gid. Unlike Current it never
// adopts.
func Lookup(gid int64) (*Thread, bool) {
	v, ok := bindings.Load(gid)
	if !ok {
		return nil, false
	}
	return v.(*Thread), true
}

// Mark returns a watermark for Prune. Bindings made after Mark returns are
// never pruned by a Prune given that mark.
func Mark() uint64 {
	return bindSeq.Load()
}

// Prune terminates adopted threads whose goroutine is not in live, running
// their exit hooks. Only bindings numbered at or below mark are considered,
// so a goroutine adopted after the live snapshot was taken survives.
//
// Threads started with Start unbind themselves and are never pruned.
//
// Returns the number of threads terminated.
func Prune(mark uint64, live []int64) int {
	alive := make(map[int64]struct{}, len(live))
	for _, gid := range live {
		alive[gid] = struct{}{}
	}

	pruned := 0
	bindings.Range(func(key, value any) bool {
		t := value.(*Thread)
		if !t.adopted || t.seq.Load() > mark {
			return true
		}
		if _, ok := alive[key.(int64)]; ok {
			return true
		}
		t.exit()
		pruned++
		return true
	})
	return pruned
}
