// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package faults records failures that the dispatcher suppresses.
//
// A consumer that panics, a generator that returns nil or an instrumentor
// that passes an opcode of the wrong category must never break the traced
// program, so the dispatcher recovers and keeps going. The failure is stored
// here instead, deduplicated by stage and stack: a consumer that panics on
// every event produces one record with a growing count, not a flood of
// identical reports.
//
// Design:
//   - Stacks are captured with runtime.Callers (up to MaxFrames frames)
//   - Deduplication key is the FNV-1a hash of the stage and program counters
//   - Storage is a sync.Map, lock-free for the repeat case
//
// Usage:
//
//	defer func() {
//		if r := recover(); r != nil {
//			rec, first := depot.Capture(faults.StageDeliver, r)
//			if first {
//				log.Error("consumer panic", "stack", rec.Stack.Format())
//			}
//		}
//	}()
package faults

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// MaxFrames is the maximum number of stack frames kept per record.
const MaxFrames = 16

// Fault stages.
const (
	StageResolve  = "resolve"  // generator failed to produce a consumer
	StageDeliver  = "deliver"  // consumer panicked
	StageValidate = "validate" // opcode does not match the entry point
	StageRegister = "register" // thread registration failed
	StageWarmUp   = "warmup"   // StartSnooping warm-up failed
	StageFlush    = "flush"    // generator flush failed
)

// Stack is a captured call stack.
type Stack struct {
	PC [MaxFrames]uintptr
	N  int
}

// Format renders the stack one frame per two lines, skipping runtime frames:
//
//	github.com/user/engine.(*Collector).consume()
//	    /path/to/collector.go:45
func (st *Stack) Format() string {
	if st == nil || st.N == 0 {
		return "  <unknown>\n"
	}

	frames := runtime.CallersFrames(st.PC[:st.N])

	var buf strings.Builder
	for {
		frame, more := frames.Next()
		if frame.PC == 0 {
			break
		}
		if !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&buf, "  %s()\n", frame.Function)
			fmt.Fprintf(&buf, "      %s:%d\n", frame.File, frame.Line)
		}
		if !more {
			break
		}
	}

	if buf.Len() == 0 {
		return "  <runtime internal>\n"
	}
	return buf.String()
}

// Record is one deduplicated fault.
type Record struct {
	Stage   string
	Hash    uint64
	Message string
	Stack   *Stack

	count atomic.Uint64
}

// Count returns how many times the fault occurred.
func (r *Record) Count() uint64 {
	return r.count.Load()
}

// Depot stores deduplicated fault records.
//
// Thread Safety: Safe for concurrent use. The zero value is ready to use.
type Depot struct {
	records sync.Map // uint64 (hash) -> *Record
	total   atomic.Uint64
}

// Capture records a fault at stage caused by cause (a recovered panic value
// or an error) and reports whether it is the first occurrence of this stage
// and stack.
//
// The stack starts at Capture's caller. When called from a deferred recover
// it includes the frames that panicked.
//
// Performance: ~1µs (runtime.Callers + hashing); repeats allocate nothing
// besides the message.
func (d *Depot) Capture(stage string, cause any) (rec *Record, first bool) {
	st := &Stack{}
	st.N = runtime.Callers(2, st.PC[:])

	hash := hashFault(stage, st.PC[:st.N])
	d.total.Add(1)

	if v, ok := d.records.Load(hash); ok {
		rec = v.(*Record)
		rec.count.Add(1)
		return rec, false
	}

	rec = &Record{
		Stage:   stage,
		Hash:    hash,
		Message: fmt.Sprint(cause),
		Stack:   st,
	}
	rec.count.Store(1)

	if v, loaded := d.records.LoadOrStore(hash, rec); loaded {
		rec = v.(*Record)
		rec.count.Add(1)
		return rec, false
	}
	return rec, true
}

// hashFault computes the FNV-1a hash of a stage name and program counters.
func hashFault(stage string, pcs []uintptr) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(stage))

	var b [8]byte
	for _, pc := range pcs {
		binary.LittleEndian.PutUint64(b[:], uint64(pc))
		_, _ = h.Write(b[:])
	}
	return h.Sum64()
}

// Lookup returns the record with the given hash.
func (d *Depot) Lookup(hash uint64) (*Record, bool) {
	v, ok := d.records.Load(hash)
	if !ok {
		return nil, false
	}
	return v.(*Record), true
}

// Records returns all records, most frequent first.
func (d *Depot) Records() []*Record {
	var recs []*Record
	d.records.Range(func(_, v any) bool {
		recs = append(recs, v.(*Record))
		return true
	})
	sort.Slice(recs, func(i, j int) bool {
		if ci, cj := recs[i].Count(), recs[j].Count(); ci != cj {
			return ci > cj
		}
		return recs[i].Hash < recs[j].Hash
	})
	return recs
}

// Stats returns the number of distinct faults and the total occurrence count.
//
// Thread Safety: Counts may be approximate while faults are being captured.
func (d *Depot) Stats() (unique int, total uint64) {
	d.records.Range(func(_, _ any) bool {
		unique++
		return true
	})
	return unique, d.total.Load()
}

// Reset drops all records.
func (d *Depot) Reset() {
	d.records.Range(func(k, _ any) bool {
		d.records.Delete(k)
		return true
	})
	d.total.Store(0)
}
