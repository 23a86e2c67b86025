// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"container/list"
	"sync"

	"github.com/kolkov/snoop/snoop/thread"
)

// PendingQueue holds threads that were registered before their first traced
// call. The gate of a pending thread starts open; taking it from the queue
// consumes the registration.
//
// Thread Safety: Safe for concurrent use. The zero value is ready to use.
type PendingQueue struct {
	mu    sync.Mutex
	order list.List
	index map[*thread.Thread]*list.Element
}

// PushFront adds t at the front of the queue. A thread that is already
// queued is moved to the front instead of being added twice.
func (q *PendingQueue) PushFront(t *thread.Thread) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.index == nil {
		q.index = make(map[*thread.Thread]*list.Element)
	}
	if e, ok := q.index[t]; ok {
		q.order.MoveToFront(e)
		return
	}
	q.index[t] = q.order.PushFront(t)
}

// Take removes t and reports whether it was queued. Each push is taken at
// most once.
func (q *PendingQueue) Take(t *thread.Thread) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.index[t]
	if !ok {
		return false
	}
	q.order.Remove(e)
	delete(q.index, t)
	return true
}

// Contains reports whether t is queued.
func (q *PendingQueue) Contains(t *thread.Thread) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.index[t]
	return ok
}

// Len returns the number of queued threads.
func (q *PendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.order.Len()
}

// Snapshot returns the queued threads, most recently pushed first.
func (q *PendingQueue) Snapshot() []*thread.Thread {
	q.mu.Lock()
	defer q.mu.Unlock()

	ts := make([]*thread.Thread, 0, q.order.Len())
	for e := q.order.Front(); e != nil; e = e.Next() {
		ts = append(ts, e.Value.(*thread.Thread))
	}
	return ts
}

// dropTerminated removes threads that terminated without ever being taken
// and returns how many were removed.
func (q *PendingQueue) dropTerminated() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	dropped := 0
	for e := q.order.Front(); e != nil; {
		next := e.Next()
		t := e.Value.(*thread.Thread)
		if t.Terminated() {
			q.order.Remove(e)
			delete(q.index, t)
			dropped++
		}
		e = next
	}
	return dropped
}
