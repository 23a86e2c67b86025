// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package event defines the trace records delivered to consumers.
//
// Every dispatcher call produces exactly one TraceEvent. The concrete type
// fixes the payload shape; Loc.Op names the exact instruction. Consumers
// usually switch on the type:
//
//	func consume(ev event.TraceEvent) {
//		switch e := ev.(type) {
//		case *event.Jump:
//			branches[e.IID]++
//		case *event.MethodBegin:
//			calls = append(calls, e.Owner+"."+e.Name)
//		}
//	}
//
// Records are immutable once built. The dispatcher keeps no reference after
// delivery, so a consumer may retain them.
package event

import (
	"reflect"
	"strconv"
)

// NoID is the instruction and method identifier of events that are not
// attached to a bytecode instruction (method boundaries, produced values,
// control signals).
const NoID int32 = -1

// Special codes understood by the event logger.
const (
	// SpecialWarmUp is offered once by StartSnooping to initialise the
	// logging path. It is never delivered to a consumer.
	SpecialWarmUp int32 = -1
)

// TraceEvent is one traced operation.
type TraceEvent interface {
	// Location returns the instruction the event describes.
	Location() Loc
}

// Loc locates a traced instruction. IID is scoped to the enclosing method,
// MID to the whole traced program.
type Loc struct {
	Op  Opcode
	IID int32
	MID int32
}

// Location implements TraceEvent.
func (l Loc) Location() Loc { return l }

// Category returns the category of the located opcode.
func (l Loc) Category() Category { return l.Op.Category() }

// String renders the location as "OP@iid/mid".
func (l Loc) String() string {
	return l.Op.String() + "@" + strconv.Itoa(int(l.IID)) + "/" + strconv.Itoa(int(l.MID))
}

// CategoryOf returns the category of ev, or CategoryInvalid for nil.
func CategoryOf(ev TraceEvent) Category {
	if ev == nil {
		return CategoryInvalid
	}
	return ev.Location().Op.Category()
}

// Insn is an instruction without operands: stack shuffles, arithmetic,
// conversions, compares, array element access, returns, monitors and the
// no-argument method-boundary signals.
type Insn struct {
	Loc
}

// Const pushes a typed literal: LDC, BIPUSH, SIPUSH and the implicit
// constant instructions (ICONST_3 carries Int(3)).
type Const struct {
	Loc
	Value Value
}

// Var loads or stores a local variable slot, or returns through RET.
type Var struct {
	Loc
	Slot int32
}

// Iinc increments an int local in place.
type Iinc struct {
	Loc
	Slot      int32
	Increment int32
}

// Jump transfers control to Label: GOTO, JSR and every conditional branch.
type Jump struct {
	Loc
	Label int32
}

// TableSwitch is a dense multi-way dispatch over keys Min..Max.
type TableSwitch struct {
	Loc
	Min     int32
	Max     int32
	Default int32
	Labels  []int32
}

// LookupSwitch is a sparse multi-way dispatch; Keys[i] jumps to Labels[i].
type LookupSwitch struct {
	Loc
	Default int32
	Keys    []int32
	Labels  []int32
}

// Invoke is a call site.
type Invoke struct {
	Loc
	Owner string
	Name  string
	Desc  string
}

// Field reads or writes a static or instance field by constant-pool index.
type Field struct {
	Loc
	ClassIdx int32
	FieldIdx int32
	Desc     string
}

// HeapLoad reads an element or member of a runtime object. Object is the
// object's identity (see Identity); Key is the member name or the decimal
// element index.
type HeapLoad struct {
	Loc
	Object uint64
	Key    string
}

// Alloc creates an instance or array. Dims is 0 for NEW, 1 for single
// dimension arrays and the dimension count for MULTIANEWARRAY.
type Alloc struct {
	Loc
	Type string
	Dims int32
}

// TypeCheck is a CHECKCAST or INSTANCEOF against Type.
type TypeCheck struct {
	Loc
	Type string
}

// MethodBegin is recorded on entry to an instrumented method, before any
// event inside it.
type MethodBegin struct {
	Loc
	Owner string
	Name  string
	Desc  string
}

// Result reports a value computed by the traced program, such as the
// return value of a call.
type Result struct {
	Loc
	Value Value
}

// Special is a control signal identified by Code.
type Special struct {
	Loc
	Code int32
}

// Compile-time interface checks.
var (
	_ TraceEvent = (*Insn)(nil)
	_ TraceEvent = (*Const)(nil)
	_ TraceEvent = (*Var)(nil)
	_ TraceEvent = (*Iinc)(nil)
	_ TraceEvent = (*Jump)(nil)
	_ TraceEvent = (*TableSwitch)(nil)
	_ TraceEvent = (*LookupSwitch)(nil)
	_ TraceEvent = (*Invoke)(nil)
	_ TraceEvent = (*Field)(nil)
	_ TraceEvent = (*HeapLoad)(nil)
	_ TraceEvent = (*Alloc)(nil)
	_ TraceEvent = (*TypeCheck)(nil)
	_ TraceEvent = (*MethodBegin)(nil)
	_ TraceEvent = (*Result)(nil)
	_ TraceEvent = (*Special)(nil)
)

// Identity returns a stable identity for a runtime object, used by HeapLoad.
//
// Reference-like values (pointers, maps, slices, channels, functions) are
// identified by address. Values without identity and nil return 0.
func Identity(obj any) uint64 {
	if obj == nil {
		return 0
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.UnsafePointer:
		return uint64(v.Pointer())
	default:
		return 0
	}
}
