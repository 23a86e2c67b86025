// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/snoop/internal/snoop/faults"
	"github.com/kolkov/snoop/snoop/event"
	"github.com/kolkov/snoop/snoop/thread"
)

// trace runs fn on a snooping goroutine and returns the events it produced.
func trace(t *testing.T, d *Dispatcher, fn func()) []event.TraceEvent {
	t.Helper()
	c := newCollector()
	d.SetCallbackGenerator(c)

	var self *thread.Thread
	onGoroutine(func() {
		self = thread.Current()
		if err := d.StartSnooping("test#run"); err != nil {
			t.Error(err)
			return
		}
		fn()
	})
	return c.of(self)
}

// TestConstantLoad_SingleRecord tests that one constant load with
// instruction 1, method 2 and value 3 yields exactly one int-typed record
// carrying those fields.
func TestConstantLoad_SingleRecord(t *testing.T) {
	d, _ := newTestDispatcher(t)

	evs := trace(t, d, func() {
		d.Const(event.LDC, 1, 2, event.Int(3))
	})

	require.Len(t, evs, 1)
	c, ok := evs[0].(*event.Const)
	require.True(t, ok, "event is %T", evs[0])
	assert.Equal(t, event.LDC, c.Op)
	assert.Equal(t, int32(1), c.IID)
	assert.Equal(t, int32(2), c.MID)
	assert.Equal(t, event.KindInt, c.Value.Kind())
	assert.Equal(t, int64(3), c.Value.Int64())
}

// TestConstantLoads covers loading the constants 1, 2 and 3 through the
// three constant entry points.
func TestConstantLoads(t *testing.T) {
	d, _ := newTestDispatcher(t)

	evs := trace(t, d, func() {
		d.Insn(event.ICONST_1, 0, 4)
		d.Const(event.BIPUSH, 1, 4, event.Int(2))
		d.Const(event.LDC, 2, 4, event.Int(3))
	})

	require.Len(t, evs, 3)
	want := []struct {
		op  event.Opcode
		iid int32
		val int64
	}{
		{event.ICONST_1, 0, 1},
		{event.BIPUSH, 1, 2},
		{event.LDC, 2, 3},
	}
	for i, w := range want {
		c, ok := evs[i].(*event.Const)
		require.True(t, ok, "event %d is %T", i, evs[i])
		assert.Equal(t, w.op, c.Op)
		assert.Equal(t, w.iid, c.IID)
		assert.Equal(t, int32(4), c.MID)
		assert.Equal(t, event.KindInt, c.Value.Kind())
		assert.Equal(t, w.val, c.Value.Int64())
	}
}

func TestImplicitConstants(t *testing.T) {
	d, _ := newTestDispatcher(t)

	evs := trace(t, d, func() {
		d.Insn(event.ACONST_NULL, 0, 1)
		d.Insn(event.LCONST_1, 1, 1)
		d.Insn(event.FCONST_2, 2, 1)
		d.Insn(event.DCONST_0, 3, 1)
	})

	require.Len(t, evs, 4)
	kinds := make([]event.Kind, len(evs))
	for i, ev := range evs {
		kinds[i] = ev.(*event.Const).Value.Kind()
	}
	assert.Equal(t, []event.Kind{event.KindNull, event.KindLong, event.KindFloat, event.KindDouble}, kinds)
	assert.Equal(t, 2.0, evs[2].(*event.Const).Value.Float64())
}

// TestMethodFieldSequence covers a traced method that reads a field and
// returns: begin, field access, return value, end.
func TestMethodFieldSequence(t *testing.T) {
	d, _ := newTestDispatcher(t)

	evs := trace(t, d, func() {
		d.MethodBegin("Counter", "get", "()I")
		d.Var(event.ALOAD, 0, 9, 0)
		d.Field(event.GETFIELD, 1, 9, 3, 0, "I")
		d.Value(event.Int(41))
		d.Insn(event.IRETURN, 2, 9)
		d.Signal(event.INVOKEMETHOD_END)
	})

	assert.Equal(t, []event.Opcode{
		event.METHOD_BEGIN, event.ALOAD, event.GETFIELD,
		event.GETVALUE, event.IRETURN, event.INVOKEMETHOD_END,
	}, ops(evs))

	begin := evs[0].(*event.MethodBegin)
	assert.Equal(t, "Counter", begin.Owner)
	assert.Equal(t, "get", begin.Name)
	assert.Equal(t, "()I", begin.Desc)
	assert.Equal(t, event.NoID, begin.IID)

	field := evs[2].(*event.Field)
	assert.Equal(t, int32(3), field.ClassIdx)
	assert.Equal(t, int32(0), field.FieldIdx)
	assert.Equal(t, "I", field.Desc)

	assert.Equal(t, int64(41), evs[3].(*event.Result).Value.Int64())
	assert.Equal(t, event.NoID, evs[5].Location().MID)
}

func TestInvokeAndExceptions(t *testing.T) {
	d, _ := newTestDispatcher(t)

	evs := trace(t, d, func() {
		d.Invoke(event.INVOKEVIRTUAL, 5, 2, "java/io/Reader", "read", "()I")
		d.Signal(event.INVOKEMETHOD_EXCEPTION)
		d.Signal(event.METHOD_THROW)
		d.Value(event.Void())
	})

	require.Len(t, evs, 4)
	inv := evs[0].(*event.Invoke)
	assert.Equal(t, "java/io/Reader", inv.Owner)
	assert.Equal(t, "read", inv.Name)
	assert.Equal(t, event.INVOKEMETHOD_EXCEPTION, evs[1].Location().Op)
	assert.Equal(t, event.METHOD_THROW, evs[2].Location().Op)
	assert.Equal(t, event.KindVoid, evs[3].(*event.Result).Value.Kind())
}

func TestSwitches_CopyOperands(t *testing.T) {
	d, _ := newTestDispatcher(t)

	labels := []int32{10, 11, 12}
	keys := []int32{-1, 7}
	evs := trace(t, d, func() {
		d.TableSwitch(0, 1, 0, 2, 99, labels)
		d.LookupSwitch(1, 1, 98, keys, labels[:2])
		d.TableSwitch(2, 1, 0, -1, 97, nil)
	})
	labels[0], keys[0] = -100, -100

	require.Len(t, evs, 3)
	ts := evs[0].(*event.TableSwitch)
	assert.Equal(t, []int32{10, 11, 12}, ts.Labels)
	assert.Equal(t, int32(99), ts.Default)
	assert.Equal(t, int32(2), ts.Max)

	ls := evs[1].(*event.LookupSwitch)
	assert.Equal(t, []int32{-1, 7}, ls.Keys)
	assert.Equal(t, []int32{10, 11}, ls.Labels)

	assert.Nil(t, evs[2].(*event.TableSwitch).Labels)
}

func TestLocalsAndJumps(t *testing.T) {
	d, _ := newTestDispatcher(t)

	evs := trace(t, d, func() {
		d.Iinc(0, 1, 2, -1)
		d.Var(event.RET, 1, 1, 4)
		d.Jump(event.IFEQ, 2, 1, 17)
		d.Jump(event.GOTO, 3, 1, 5)
		d.Jump(event.JSR, 4, 1, 30)
	})

	assert.Equal(t, []event.Opcode{event.IINC, event.RET, event.IFEQ, event.GOTO, event.JSR}, ops(evs))
	inc := evs[0].(*event.Iinc)
	assert.Equal(t, int32(2), inc.Slot)
	assert.Equal(t, int32(-1), inc.Increment)
	assert.Equal(t, int32(17), evs[2].(*event.Jump).Label)
}

func TestHeapAndAllocation(t *testing.T) {
	d, _ := newTestDispatcher(t)

	obj := &struct{ n int }{}
	arr := make([]int, 4)
	evs := trace(t, d, func() {
		d.Alloc(event.NEW, 0, 3, "java/lang/StringBuilder", 0)
		d.Alloc(event.MULTIANEWARRAY, 1, 3, "[[I", 2)
		d.Alloc(event.NEWARRAY, 2, 3, "", 0)
		d.TypeCheck(event.CHECKCAST, 3, 3, "java/lang/String")
		d.HeapLoad(4, 3, obj, "n")
		d.HeapLoadIndex(5, 3, arr, 2)
		d.HeapLoad(6, 3, 42, "x")
	})

	require.Len(t, evs, 7)
	multi := evs[1].(*event.Alloc)
	assert.Equal(t, "[[I", multi.Type)
	assert.Equal(t, int32(2), multi.Dims)
	assert.Equal(t, event.CHECKCAST, evs[3].Location().Op)

	field := evs[4].(*event.HeapLoad)
	assert.Equal(t, event.Identity(obj), field.Object)
	assert.NotZero(t, field.Object)
	assert.Equal(t, "n", field.Key)

	elem := evs[5].(*event.HeapLoad)
	assert.Equal(t, event.Identity(arr), elem.Object)
	assert.Equal(t, "2", elem.Key)

	assert.Zero(t, evs[6].(*event.HeapLoad).Object, "scalars have no identity")
}

func TestSpecialAndSymbolic(t *testing.T) {
	d, _ := newTestDispatcher(t)

	evs := trace(t, d, func() {
		d.Special(3)
		d.Special(event.SpecialWarmUp)
		d.MakeSymbolic()
	})

	assert.Equal(t, []event.Opcode{event.SPECIAL, event.MAKE_SYMBOLIC}, ops(evs))
	assert.Equal(t, int32(3), evs[0].(*event.Special).Code)
}

// TestCategoryMismatch tests that an opcode passed to the wrong entry point
// is dropped and recorded.
func TestCategoryMismatch(t *testing.T) {
	tests := []struct {
		name string
		call func(d *Dispatcher)
	}{
		{"insn with local", func(d *Dispatcher) { d.Insn(event.ILOAD, 0, 0) }},
		{"insn with explicit constant", func(d *Dispatcher) { d.Insn(event.LDC, 0, 0) }},
		{"insn with invalid", func(d *Dispatcher) { d.Insn(event.Opcode(0), 0, 0) }},
		{"const with arith", func(d *Dispatcher) { d.Const(event.IADD, 0, 0, event.Int(1)) }},
		{"const without value", func(d *Dispatcher) { d.Const(event.LDC, 0, 0, event.Value{}) }},
		{"var with iinc", func(d *Dispatcher) { d.Var(event.IINC, 0, 0, 1) }},
		{"jump with switch", func(d *Dispatcher) { d.Jump(event.TABLESWITCH, 0, 0, 1) }},
		{"invoke with field", func(d *Dispatcher) { d.Invoke(event.GETFIELD, 0, 0, "A", "b", "()V") }},
		{"field with invoke", func(d *Dispatcher) { d.Field(event.INVOKESTATIC, 0, 0, 1, 1, "I") }},
		{"alloc with type check", func(d *Dispatcher) { d.Alloc(event.INSTANCEOF, 0, 0, "A", 0) }},
		{"type check with alloc", func(d *Dispatcher) { d.TypeCheck(event.NEW, 0, 0, "A") }},
		{"signal with begin", func(d *Dispatcher) { d.Signal(event.METHOD_BEGIN) }},
		{"signal with insn", func(d *Dispatcher) { d.Signal(event.NOP) }},
		{"invalid value", func(d *Dispatcher) { d.Value(event.Value{}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, logs := newTestDispatcher(t)

			evs := trace(t, d, func() {
				tt.call(d)
				d.Insn(event.NOP, 1, 1)
			})

			assert.Equal(t, []event.Opcode{event.NOP}, ops(evs), "mismatch dropped, gate reopened")
			recs := d.Faults()
			require.Len(t, recs, 1)
			assert.Equal(t, faults.StageValidate, recs[0].Stage)
			assert.Contains(t, recs[0].Message, ErrCategoryMismatch.Error())
			assert.Contains(t, logs.String(), "trace fault suppressed")
		})
	}
}

func TestCategoryMismatch_Untraced(t *testing.T) {
	d, _ := newTestDispatcher(t)

	onGoroutine(func() { d.Insn(event.ILOAD, 0, 0) })
	assert.Empty(t, d.Faults(), "closed gate skips validation")
}
