// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snoop is the runtime half of an instruction tracer: instrumented
// code calls it at every traced instruction, and it hands each call, as an
// event, to the consumer of the calling thread.
//
// An instrumentor rewrites a program so that every instruction is preceded
// by a call to the entry named after it ([ILOAD], [IF_ICMPLT],
// [INVOKEVIRTUAL], [GETVALUE_int], ...). An engine (a fuzzer, a symbolic
// executor, a profiler) installs a [Generator] that supplies one [Consumer]
// per thread and decides which threads are traced.
//
// # Quick Start
//
//	package main
//
//	import "github.com/kolkov/snoop/snoop"
//
//	func main() {
//		snoop.SetCallbackGenerator(engine)
//		if err := snoop.StartSnooping("main#run"); err != nil {
//			panic(err)
//		}
//		defer snoop.Flush()
//
//		// Instrumented code (normally inserted by the instrumentor)
//		snoop.ICONST_1(0, 1)
//		snoop.ICONST_2(1, 1)
//		snoop.IADD(2, 1)
//	}
//
// # Which goroutines are traced
//
// Tracing is off for every goroutine by default. It is turned on by:
//   - [StartSnooping] on the calling goroutine
//   - [RegisterThread] or [RegisterLabel] for a thread.Thread before it starts
//   - [Go], which starts a registered thread
//
// While a consumer runs, tracing is suspended on its goroutine, so code the
// consumer calls (instrumented or not) never produces events. Consumers run
// synchronously on the producing goroutine; events of one thread reach its
// consumer in program order.
//
// # Failures
//
// A consumer that panics, a generator that returns nil, or an entry called
// with an opcode it does not accept never disturbs the traced program. The
// failure is recovered, logged once per distinct stack and available from
// [Faults].
//
// # Configuration
//
// The default dispatcher reads the YAML or JSON file named by
// $SNOOP_OPTIONS:
//
//	log_level: info     # debug, info, warn, error
//	log_format: json    # text, json
//	sweep_every: 1024   # 0 disables background sweeps
//	metrics: true       # OpenTelemetry metrics on the global provider
//
// Programs that need more than one dispatcher create them with [New].
//
// # API Overview
//
//   - Engine: [SetCallbackGenerator], [StartSnooping], [Flush], [Faults]
//   - Threads: [RegisterThread], [RegisterLabel], [Go], [Block], [Unblock]
//   - Instrumentation: one entry per instruction, [METHOD_BEGIN],
//     [INVOKEMETHOD_END], GETVALUE_* entries, [SPECIAL], [MAKE_SYMBOLIC]
//   - Version information: [GetInfo], [Compatible], [Version]
package snoop
