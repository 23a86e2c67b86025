// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gate

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/snoop/internal/snoop/goid"
	"github.com/kolkov/snoop/snoop/thread"
)

// setPending is a Pending backed by a set.
type setPending struct {
	mu    sync.Mutex
	set   map[*thread.Thread]bool
	takes int
}

func newSetPending(ts ...*thread.Thread) *setPending {
	p := &setPending{set: make(map[*thread.Thread]bool)}
	for _, t := range ts {
		p.set[t] = true
	}
	return p
}

func (p *setPending) Take(t *thread.Thread) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.set[t] {
		return false
	}
	delete(p.set, t)
	p.takes++
	return true
}

// onGoroutine runs fn on a fresh goroutine and waits for it.
func onGoroutine(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}

// TestCurrent_DefaultBlocked tests that an unregistered goroutine starts
// with a closed gate.
func TestCurrent_DefaultBlocked(t *testing.T) {
	tbl := New(Config{})

	var blocked, same bool
	onGoroutine(func() {
		s := tbl.Current()
		blocked = s.ShouldBlock()
		same = s == tbl.Current()
	})
	assert.True(t, blocked)
	assert.True(t, same, "Current must return the same state per goroutine")
	assert.Equal(t, 1, tbl.Len())
}

func TestState_BlockUnblock(t *testing.T) {
	tbl := New(Config{})
	s := tbl.Current()
	defer tbl.Forget(s.GoroutineID())

	require.True(t, s.ShouldBlock())
	s.Unblock()
	assert.False(t, s.ShouldBlock())
	s.Block()
	assert.True(t, s.ShouldBlock())
	assert.False(t, s.Internal())
	assert.Equal(t, goid.Current(), s.GoroutineID())
}

// TestCurrent_PendingThread tests that a pending thread starts unblocked and
// is taken from the pending set exactly once.
func TestCurrent_PendingThread(t *testing.T) {
	var blocked atomic.Bool
	blocked.Store(true)

	var tbl *Table
	th := thread.NewFunc(func() {
		blocked.Store(tbl.Current().ShouldBlock())
	})
	pending := newSetPending(th)
	tbl = New(Config{Pending: pending})

	require.NoError(t, th.Start())
	th.Wait()

	assert.False(t, blocked.Load())
	assert.Equal(t, 1, pending.takes)
	assert.False(t, pending.Take(th), "thread must leave the pending set")
}

func TestCurrent_UnregisteredThread(t *testing.T) {
	var blocked atomic.Bool
	var bound atomic.Pointer[thread.Thread]

	tbl := New(Config{Pending: newSetPending()})
	th := thread.NewFunc(func() {
		s := tbl.Current()
		blocked.Store(s.ShouldBlock())
		bound.Store(s.Thread())
	})
	require.NoError(t, th.Start())
	th.Wait()

	assert.True(t, blocked.Load())
	assert.Same(t, th, bound.Load())
}

// TestMarkInternal tests that an internal goroutine can never open its gate.
func TestMarkInternal(t *testing.T) {
	tbl := New(Config{})

	var before, after, internal bool
	onGoroutine(func() {
		tbl.MarkInternal(goid.Current())
		s := tbl.Current()
		before = s.ShouldBlock()
		s.Unblock()
		after = s.ShouldBlock()
		internal = s.Internal()
	})
	assert.True(t, before)
	assert.True(t, after)
	assert.True(t, internal)
}

func TestMarkInternal_ReplacesExistingState(t *testing.T) {
	tbl := New(Config{})

	var internal bool
	onGoroutine(func() {
		s := tbl.Current()
		s.Unblock()
		tbl.MarkInternal(goid.Current())
		internal = tbl.Current().Internal()
	})
	assert.True(t, internal)
	assert.Equal(t, 1, tbl.Len())
}

func TestForget(t *testing.T) {
	tbl := New(Config{})

	var reopened bool
	onGoroutine(func() {
		s := tbl.Current()
		s.Unblock()
		tbl.Forget(goid.Current())
		reopened = !tbl.Current().ShouldBlock()
	})
	assert.False(t, reopened, "forgotten state must start blocked again")
}

// TestPrune tests that only old states of dead goroutines are dropped.
func TestPrune(t *testing.T) {
	tbl := New(Config{})

	onGoroutine(func() { tbl.Current() })
	onGoroutine(func() { tbl.Current() })
	mine := tbl.Current()
	mark := tbl.Mark()

	release := make(chan struct{})
	created := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tbl.Current()
		close(created)
		<-release
	}()
	<-created
	require.Equal(t, 4, tbl.Len())

	live := []int64{mine.GoroutineID()}
	assert.Equal(t, 2, tbl.Prune(mark, live))
	assert.Equal(t, 2, tbl.Len())
	assert.Same(t, mine, tbl.Current(), "live state must survive")

	close(release)
	wg.Wait()
	assert.Equal(t, 0, tbl.Prune(mark, live), "newer than mark")
	assert.Equal(t, 1, tbl.Prune(tbl.Mark(), live))
	tbl.Forget(mine.GoroutineID())
	assert.Equal(t, 0, tbl.Len())
}

// TestOnGrow tests that the grow hook fires every SweepEvery creations.
func TestOnGrow(t *testing.T) {
	var calls atomic.Int32
	tbl := New(Config{
		SweepEvery: 3,
		OnGrow:     func() { calls.Add(1) },
	})

	for i := 0; i < 7; i++ {
		onGoroutine(func() { tbl.Current() })
	}
	assert.Equal(t, int32(2), calls.Load())

	noHook := New(Config{SweepEvery: 0, OnGrow: func() { t.Error("hook disabled") }})
	onGoroutine(func() { noHook.Current() })
}

// TestCurrent_Concurrent tests state creation from many goroutines at once.
func TestCurrent_Concurrent(t *testing.T) {
	const numGoroutines = 64
	tbl := New(Config{})

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := tbl.Current()
			for j := 0; j < 100; j++ {
				s.Unblock()
				s.Block()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, numGoroutines, tbl.Len())
}
