// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry tracks which threads are to be traced and what they are
// attributed to.
//
// Registration does two things: it queues the thread so that its gate starts
// open, and it records an entry point label that names the unit of work the
// thread runs. Labels are attribution only; they never affect gating.
//
// Entries are removed when the thread exits (an exit hook installed at
// registration) and by Sweep for threads that terminated without running
// the hook.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kolkov/snoop/snoop/thread"
)

// Registration errors.
var (
	ErrNilThread  = errors.New("registry: nil thread")
	ErrEmptyLabel = errors.New("registry: empty entry point label")
	ErrTerminated = errors.New("registry: thread already terminated")
)

// Registry holds the pending queue and the entry point labels.
//
// Thread Safety: Safe for concurrent use.
type Registry struct {
	pending PendingQueue

	mu          sync.RWMutex
	entryPoints map[*thread.Thread]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		entryPoints: make(map[*thread.Thread]string),
	}
}

// Pending returns the queue of threads whose gate starts open.
func (r *Registry) Pending() *PendingQueue {
	return &r.pending
}

// RegisterThread registers t for tracing under a label discovered from
// work, or from t's own target when work is nil. See thread.EntryPoint for
// the label rules.
//
// On failure nothing is recorded and t stays untraced.
//
// Returns the label on success.
func (r *Registry) RegisterThread(t *thread.Thread, work any) (string, error) {
	if t == nil {
		return "", ErrNilThread
	}
	if work == nil {
		work = t.Target()
	}
	label, err := thread.EntryPoint(work)
	if err != nil {
		return "", fmt.Errorf("registry: register %s: %w", t.Name(), err)
	}
	if err := r.Register(t, label); err != nil {
		return "", err
	}
	return label, nil
}

// Register registers t for tracing under an explicit label.
func (r *Registry) Register(t *thread.Thread, label string) error {
	if t == nil {
		return ErrNilThread
	}
	if label == "" {
		return fmt.Errorf("registry: register %s: %w", t.Name(), ErrEmptyLabel)
	}
	if t.Terminated() {
		return fmt.Errorf("registry: register %s: %w", t.Name(), ErrTerminated)
	}

	if r.setEntryPoint(t, label) {
		t.OnExit(func() { r.Remove(t) })
	}
	r.pending.PushFront(t)
	return nil
}

// SetEntryPoint records label for t without queueing it. It is used for
// a goroutine that opens its own gate.
func (r *Registry) SetEntryPoint(t *thread.Thread, label string) error {
	if t == nil {
		return ErrNilThread
	}
	if label == "" {
		return ErrEmptyLabel
	}
	if r.setEntryPoint(t, label) {
		t.OnExit(func() { r.Remove(t) })
	}
	return nil
}

// setEntryPoint stores the label and reports whether t was not known before.
func (r *Registry) setEntryPoint(t *thread.Thread, label string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, known := r.entryPoints[t]
	r.entryPoints[t] = label
	return !known
}

// EntryPoint returns the label recorded for t.
func (r *Registry) EntryPoint(t *thread.Thread) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	label, ok := r.entryPoints[t]
	return label, ok
}

// Remove forgets t: its label and any pending registration.
func (r *Registry) Remove(t *thread.Thread) {
	r.mu.Lock()
	delete(r.entryPoints, t)
	r.mu.Unlock()
	r.pending.Take(t)
}

// Len returns the number of threads with a label.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entryPoints)
}

// Sweep drops labels and pending registrations of terminated threads and
// returns how many entries were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	dropped := 0
	for t := range r.entryPoints {
		if t.Terminated() {
			delete(r.entryPoints, t)
			dropped++
		}
	}
	r.mu.Unlock()

	return dropped + r.pending.dropTerminated()
}
