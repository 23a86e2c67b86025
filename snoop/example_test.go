// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snoop_test

import (
	"fmt"
	"strings"

	"github.com/kolkov/snoop/snoop"
	"github.com/kolkov/snoop/snoop/event"
	"github.com/kolkov/snoop/snoop/thread"
)

// Example traces a small computation on a goroutine that turns tracing on
// for itself.
func Example() {
	var trace []string
	snoop.SetCallbackGenerator(snoop.GeneratorFunc(func(*thread.Thread) snoop.Consumer {
		return func(ev event.TraceEvent) {
			trace = append(trace, ev.Location().Op.String())
		}
	}))
	defer snoop.SetCallbackGenerator(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := snoop.StartSnooping("example#run"); err != nil {
			fmt.Println(err)
			return
		}

		// Instrumented code (normally inserted by the instrumentor)
		snoop.ICONST_1(0, 1)
		snoop.ICONST_2(1, 1)
		snoop.IADD(2, 1)
		snoop.ISTORE(3, 1, 1)
	}()
	<-done

	fmt.Println(strings.Join(trace, " "))

	// Output:
	// ICONST_1 ICONST_2 IADD ISTORE
}

// Adder is an instrumented unit of work.
type Adder struct {
	Sum int32
}

func (a *Adder) Run() {
	snoop.METHOD_BEGIN("Adder", "run", "()V")
	snoop.LDC_int(0, 2, 40)
	snoop.BIPUSH(1, 2, 2)
	snoop.IADD(2, 2)
	a.Sum = 42
	snoop.INVOKEMETHOD_END()
}

// Example_registerThread traces a thread from its first event. The thread
// is attributed to the run method of its Runnable.
func Example_registerThread() {
	events := make(map[string]int)
	snoop.SetCallbackGenerator(snoop.GeneratorFunc(func(t *thread.Thread) snoop.Consumer {
		label, _ := snoop.Default().EntryPoint(t)
		return func(event.TraceEvent) { events[label]++ }
	}))
	defer snoop.SetCallbackGenerator(nil)

	adder := &Adder{}
	t := thread.New(adder)
	if err := snoop.RegisterThread(t, nil); err != nil {
		fmt.Println(err)
		return
	}
	_ = t.Start()
	t.Wait()

	fmt.Println(adder.Sum, events["snoop_test.Adder#run"])

	// Output:
	// 42 5
}

// Example_compatible checks the runtime version before tracing.
func Example_compatible() {
	ok, err := snoop.Compatible("0.2.0")
	fmt.Println(ok, err)

	ok, _ = snoop.Compatible("v1.0.0")
	fmt.Println(ok)

	// Output:
	// true <nil>
	// false
}
