// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"fmt"
	"strconv"

	"github.com/kolkov/snoop/internal/snoop/faults"
	"github.com/kolkov/snoop/internal/snoop/gate"
	"github.com/kolkov/snoop/snoop/event"
)

// === Gate-and-forward core ===
//
// Every entry point follows the same sequence:
//
//	s, ok := d.enter()     // closed gate: return, no side effects
//	if !ok { return }
//	defer s.Unblock()      // reopen even if building the record panics
//	d.check(...)           // opcode must belong to the entry point
//	d.events.Log(s, ev)    // consumer runs with the gate closed
//
// Consumer failures are handled inside the logger, so the result of Log is
// ignored here.

// enter closes the calling goroutine's gate and returns its state, or
// reports false if the gate was already closed.
//
// Performance: one goroutine ID lookup plus a sync.Map load.
func (d *Dispatcher) enter() (*gate.State, bool) {
	s := d.gates.Current()
	if s.ShouldBlock() {
		return nil, false
	}
	s.Block()
	return s, true
}

// categorySet is a bit set of event categories.
type categorySet uint32

func categoriesOf(cs ...event.Category) categorySet {
	var set categorySet
	for _, c := range cs {
		set |= 1 << c
	}
	return set
}

func (set categorySet) has(c event.Category) bool {
	return c != event.CategoryInvalid && set&(1<<c) != 0
}

// Opcode categories accepted by each entry point.
var (
	insnCategories = categoriesOf(
		event.CategoryNop, event.CategoryConst, event.CategoryArrayLoad,
		event.CategoryArrayStore, event.CategoryStack, event.CategoryArith,
		event.CategoryConvert, event.CategoryCompare, event.CategoryReturn,
		event.CategoryArrayLength, event.CategoryThrow, event.CategoryMonitor,
	)
	jumpCategories = categoriesOf(event.CategoryJump, event.CategoryBranch)
)

// check reports whether op is acceptable for entry, recording a fault if not.
func (d *Dispatcher) check(s *gate.State, op event.Opcode, ok bool, entry string) bool {
	if ok {
		return true
	}
	d.events.Report(faults.StageValidate,
		fmt.Errorf("%w: %s (%s) passed to %s", ErrCategoryMismatch, op, op.Category(), entry),
		s, nil)
	return false
}

func loc(op event.Opcode, iid, mid int32) event.Loc {
	return event.Loc{Op: op, IID: iid, MID: mid}
}

// signalLoc locates events that are not tied to an instruction.
func signalLoc(op event.Opcode) event.Loc {
	return event.Loc{Op: op, IID: event.NoID, MID: event.NoID}
}

func cloneInt32s(s []int32) []int32 {
	if s == nil {
		return nil
	}
	return append(make([]int32, 0, len(s)), s...)
}

// === Instructions ===

// Insn traces an instruction without operands: stack, arithmetic,
// conversion, compare, array element, return, throw and monitor
// instructions, NOP, and the implicit constants. An implicit constant such
// as ICONST_3 is delivered as an event.Const carrying its value.
func (d *Dispatcher) Insn(op event.Opcode, iid, mid int32) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	if !d.check(s, op, insnCategories.has(op.Category()), "Insn") {
		return
	}
	if op.Is(event.CategoryConst) {
		v, ok := event.ImplicitConstant(op)
		if !d.check(s, op, ok, "Insn") {
			return
		}
		_ = d.events.Log(s, &event.Const{Loc: loc(op, iid, mid), Value: v})
		return
	}
	_ = d.events.Log(s, &event.Insn{Loc: loc(op, iid, mid)})
}

// Const traces a constant load with an explicit value: LDC, BIPUSH, SIPUSH.
func (d *Dispatcher) Const(op event.Opcode, iid, mid int32, v event.Value) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	if !d.check(s, op, op.Is(event.CategoryConst) && v.Valid(), "Const") {
		return
	}
	_ = d.events.Log(s, &event.Const{Loc: loc(op, iid, mid), Value: v})
}

// Var traces a local variable load or store, or RET.
func (d *Dispatcher) Var(op event.Opcode, iid, mid, slot int32) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	if !d.check(s, op, op.Is(event.CategoryLocal) && op != event.IINC, "Var") {
		return
	}
	_ = d.events.Log(s, &event.Var{Loc: loc(op, iid, mid), Slot: slot})
}

// Iinc traces IINC.
func (d *Dispatcher) Iinc(iid, mid, slot, increment int32) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	_ = d.events.Log(s, &event.Iinc{Loc: loc(event.IINC, iid, mid), Slot: slot, Increment: increment})
}

// Jump traces GOTO, JSR or a conditional branch to label.
func (d *Dispatcher) Jump(op event.Opcode, iid, mid, label int32) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	if !d.check(s, op, jumpCategories.has(op.Category()), "Jump") {
		return
	}
	_ = d.events.Log(s, &event.Jump{Loc: loc(op, iid, mid), Label: label})
}

// TableSwitch traces TABLESWITCH. labels is copied.
func (d *Dispatcher) TableSwitch(iid, mid, lo, hi, dflt int32, labels []int32) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	_ = d.events.Log(s, &event.TableSwitch{
		Loc:     loc(event.TABLESWITCH, iid, mid),
		Min:     lo,
		Max:     hi,
		Default: dflt,
		Labels:  cloneInt32s(labels),
	})
}

// LookupSwitch traces LOOKUPSWITCH. keys and labels are copied.
func (d *Dispatcher) LookupSwitch(iid, mid, dflt int32, keys, labels []int32) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	_ = d.events.Log(s, &event.LookupSwitch{
		Loc:     loc(event.LOOKUPSWITCH, iid, mid),
		Default: dflt,
		Keys:    cloneInt32s(keys),
		Labels:  cloneInt32s(labels),
	})
}

// Invoke traces a call site.
func (d *Dispatcher) Invoke(op event.Opcode, iid, mid int32, owner, name, desc string) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	if !d.check(s, op, op.Is(event.CategoryInvoke), "Invoke") {
		return
	}
	_ = d.events.Log(s, &event.Invoke{Loc: loc(op, iid, mid), Owner: owner, Name: name, Desc: desc})
}

// Field traces a static or instance field access.
func (d *Dispatcher) Field(op event.Opcode, iid, mid, classIdx, fieldIdx int32, desc string) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	if !d.check(s, op, op.Is(event.CategoryField), "Field") {
		return
	}
	_ = d.events.Log(s, &event.Field{Loc: loc(op, iid, mid), ClassIdx: classIdx, FieldIdx: fieldIdx, Desc: desc})
}

// HeapLoad traces a read of a named member of obj.
func (d *Dispatcher) HeapLoad(iid, mid int32, obj any, field string) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	_ = d.events.Log(s, &event.HeapLoad{Loc: loc(event.HEAPLOAD, iid, mid), Object: event.Identity(obj), Key: field})
}

// HeapLoadIndex traces a read of element idx of obj.
func (d *Dispatcher) HeapLoadIndex(iid, mid int32, obj any, idx int32) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	_ = d.events.Log(s, &event.HeapLoad{
		Loc:    loc(event.HEAPLOAD, iid, mid),
		Object: event.Identity(obj),
		Key:    strconv.FormatInt(int64(idx), 10),
	})
}

// Alloc traces NEW, NEWARRAY, ANEWARRAY or MULTIANEWARRAY.
func (d *Dispatcher) Alloc(op event.Opcode, iid, mid int32, typ string, dims int32) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	if !d.check(s, op, op.Is(event.CategoryAlloc), "Alloc") {
		return
	}
	_ = d.events.Log(s, &event.Alloc{Loc: loc(op, iid, mid), Type: typ, Dims: dims})
}

// TypeCheck traces CHECKCAST or INSTANCEOF.
func (d *Dispatcher) TypeCheck(op event.Opcode, iid, mid int32, typ string) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	if !d.check(s, op, op.Is(event.CategoryTypeCheck), "TypeCheck") {
		return
	}
	_ = d.events.Log(s, &event.TypeCheck{Loc: loc(op, iid, mid), Type: typ})
}

// === Method boundaries, values and control signals ===

// MethodBegin traces entry into an instrumented method.
func (d *Dispatcher) MethodBegin(owner, name, desc string) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	_ = d.events.Log(s, &event.MethodBegin{Loc: signalLoc(event.METHOD_BEGIN), Owner: owner, Name: name, Desc: desc})
}

// Signal traces a method boundary without payload: METHOD_THROW,
// INVOKEMETHOD_EXCEPTION or INVOKEMETHOD_END.
func (d *Dispatcher) Signal(op event.Opcode) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	if !d.check(s, op, op.Is(event.CategoryMethod) && op != event.METHOD_BEGIN, "Signal") {
		return
	}
	_ = d.events.Log(s, &event.Insn{Loc: signalLoc(op)})
}

// Value traces a value produced by the traced program.
func (d *Dispatcher) Value(v event.Value) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	if !d.check(s, event.GETVALUE, v.Valid(), "Value") {
		return
	}
	_ = d.events.Log(s, &event.Result{Loc: signalLoc(event.GETVALUE), Value: v})
}

// Special traces a control signal. Code event.SpecialWarmUp is reserved for
// StartSnooping and is never delivered.
func (d *Dispatcher) Special(code int32) {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	_ = d.events.Log(s, &event.Special{Loc: signalLoc(event.SPECIAL), Code: code})
}

// MakeSymbolic traces a request to treat the next produced value as
// symbolic input.
func (d *Dispatcher) MakeSymbolic() {
	s, ok := d.enter()
	if !ok {
		return
	}
	defer s.Unblock()

	_ = d.events.Log(s, &event.Insn{Loc: signalLoc(event.MAKE_SYMBOLIC)})
}
