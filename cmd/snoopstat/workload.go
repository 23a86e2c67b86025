// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/kolkov/snoop/snoop"
	"github.com/kolkov/snoop/snoop/event"
	"github.com/kolkov/snoop/snoop/thread"
)

// Method ids of the instrumented workload.
const (
	midFib int32 = iota + 1
	midSum
	midClassify
)

// driverLabel is the entry point of the goroutine that runs the workload.
const driverLabel = "snoopstat.Driver#run"

// workload is a small program instrumented by hand the way an instrumentor
// would rewrite it: a recursive fib on the driver and array-summing workers
// on registered threads.
type workload struct {
	d       *snoop.Dispatcher
	depth   int32
	workers int
}

// result is what the workload computed, independent of tracing.
type result struct {
	Fib  int32
	Sums []int64
}

// run executes the workload with tracing enabled on the calling goroutine.
// Tracing is disabled again before run returns.
func (w *workload) run() (result, error) {
	if err := w.d.StartSnooping(driverLabel); err != nil {
		return result{}, fmt.Errorf("start snooping: %w", err)
	}
	defer w.d.Block()

	res := result{Sums: make([]int64, w.workers)}
	threads := make([]*thread.Thread, w.workers)
	for i := range threads {
		s := &summer{d: w.d, n: int32(16 * (i + 1)), out: &res.Sums[i]}
		t := thread.New(s)
		t.SetName(fmt.Sprintf("summer-%d", i))
		if err := w.d.RegisterThread(t, nil); err != nil {
			return result{}, err
		}
		threads[i] = t
	}
	for _, t := range threads {
		if err := t.Start(); err != nil {
			return result{}, err
		}
	}

	res.Fib = fib(w.d, w.depth)

	for _, t := range threads {
		t.Wait()
	}
	return res, nil
}

// fib is the instrumented form of
//
//	static int fib(int n) {
//		if (n < 2) return n;
//		return fib(n - 1) + fib(n - 2);
//	}
func fib(d *snoop.Dispatcher, n int32) int32 {
	d.MethodBegin("Fib", "fib", "(I)I")
	d.Var(event.ILOAD, 0, midFib, 0)
	d.Insn(event.ICONST_2, 1, midFib)
	d.Jump(event.IF_ICMPGE, 2, midFib, 5)
	if n < 2 {
		d.Var(event.ILOAD, 3, midFib, 0)
		d.Insn(event.IRETURN, 4, midFib)
		return n
	}

	d.Var(event.ILOAD, 5, midFib, 0)
	d.Insn(event.ICONST_1, 6, midFib)
	d.Insn(event.ISUB, 7, midFib)
	d.Invoke(event.INVOKESTATIC, 8, midFib, "Fib", "fib", "(I)I")
	a := fib(d, n-1)
	d.Signal(event.INVOKEMETHOD_END)
	d.Value(event.Int(a))

	d.Var(event.ILOAD, 9, midFib, 0)
	d.Insn(event.ICONST_2, 10, midFib)
	d.Insn(event.ISUB, 11, midFib)
	d.Invoke(event.INVOKESTATIC, 12, midFib, "Fib", "fib", "(I)I")
	b := fib(d, n-2)
	d.Signal(event.INVOKEMETHOD_END)
	d.Value(event.Int(b))

	d.Insn(event.IADD, 13, midFib)
	d.Insn(event.IRETURN, 14, midFib)
	return a + b
}

// summer fills an array with 0..n-1, classifies each element and adds them
// up.
type summer struct {
	d   *snoop.Dispatcher
	n   int32
	out *int64
}

// Run is the instrumented form of
//
//	public void run() {
//		long[] xs = new long[n];
//		long sum = 0;
//		for (int i = 0; i < n; i++) {
//			xs[i] = i;
//			sum += classify(xs[i]) * xs[i];
//		}
//		this.out = sum;
//	}
func (s *summer) Run() {
	d := s.d
	d.MethodBegin("Summer", "run", "()V")
	d.Var(event.ALOAD, 0, midSum, 0)
	d.Field(event.GETFIELD, 1, midSum, 1, 0, "I")
	d.Alloc(event.NEWARRAY, 2, midSum, "", 1)
	d.Var(event.ASTORE, 3, midSum, 1)
	xs := make([]int64, s.n)

	d.Insn(event.LCONST_0, 4, midSum)
	d.Var(event.LSTORE, 5, midSum, 2)
	d.Insn(event.ICONST_0, 6, midSum)
	d.Var(event.ISTORE, 7, midSum, 4)
	var sum int64

	for i := int32(0); ; i++ {
		d.Var(event.ILOAD, 8, midSum, 4)
		d.Var(event.ALOAD, 9, midSum, 0)
		d.Field(event.GETFIELD, 10, midSum, 1, 0, "I")
		d.Jump(event.IF_ICMPGE, 11, midSum, 30)
		if i >= s.n {
			break
		}

		d.Var(event.ALOAD, 12, midSum, 1)
		d.Var(event.ILOAD, 13, midSum, 4)
		d.Var(event.ILOAD, 14, midSum, 4)
		d.Insn(event.I2L, 15, midSum)
		d.Insn(event.LASTORE, 16, midSum)
		xs[i] = int64(i)

		d.Var(event.ALOAD, 17, midSum, 1)
		d.Var(event.ILOAD, 18, midSum, 4)
		d.Insn(event.LALOAD, 19, midSum)
		d.HeapLoadIndex(19, midSum, xs, i)
		d.Invoke(event.INVOKESTATIC, 20, midSum, "Summer", "classify", "(J)I")
		c := classify(d, xs[i])
		d.Signal(event.INVOKEMETHOD_END)
		d.Value(event.Int(c))

		d.Insn(event.I2L, 21, midSum)
		d.Var(event.ALOAD, 22, midSum, 1)
		d.Var(event.ILOAD, 23, midSum, 4)
		d.Insn(event.LALOAD, 24, midSum)
		d.Insn(event.LMUL, 25, midSum)
		d.Var(event.LLOAD, 26, midSum, 2)
		d.Insn(event.LADD, 27, midSum)
		d.Var(event.LSTORE, 28, midSum, 2)
		sum += int64(c) * xs[i]

		d.Iinc(29, midSum, 4, 1)
		d.Jump(event.GOTO, 30, midSum, 8)
	}

	d.Var(event.ALOAD, 31, midSum, 0)
	d.Var(event.LLOAD, 32, midSum, 2)
	d.Field(event.PUTFIELD, 33, midSum, 1, 1, "J")
	*s.out = sum
	d.Insn(event.RETURN, 34, midSum)
}

// classify is the instrumented form of
//
//	static int classify(long x) {
//		switch ((int) (x % 3)) {
//		case 0:  return 1;
//		case 1:  return -1;
//		default: return 0;
//		}
//	}
func classify(d *snoop.Dispatcher, x int64) int32 {
	d.MethodBegin("Summer", "classify", "(J)I")
	d.Var(event.LLOAD, 0, midClassify, 0)
	d.Insn(event.L2I, 1, midClassify)
	d.Const(event.BIPUSH, 2, midClassify, event.Int(3))
	d.Insn(event.IREM, 3, midClassify)
	d.TableSwitch(4, midClassify, 0, 1, 9, []int32{5, 7})

	var c int32
	switch x % 3 {
	case 0:
		d.Insn(event.ICONST_1, 5, midClassify)
		c = 1
	case 1:
		d.Insn(event.ICONST_M1, 7, midClassify)
		c = -1
	default:
		d.Insn(event.ICONST_0, 9, midClassify)
	}
	d.Insn(event.IRETURN, 10, midClassify)
	return c
}
