// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command snoopstat runs a hand-instrumented sample program under the snoop
// trace dispatcher and tabulates the events it produced.
//
// Usage:
//
//	snoopstat run [--workers N] [--depth D] [--config file] [--format table|csv]
//	snoopstat version [--require v0.3.0]
//
// The report has one line per entry point and event category:
//
//	+----------------------+-----------+---------+--------+
//	| Entry point          | Category  | Threads | Events |
//	+----------------------+-----------+---------+--------+
//	| main.summer#run      | Local     | 4       | 2880   |
//	| snoopstat.Driver#run | Invoke    | 1       | 464    |
//	| ...                  |           |         |        |
//
// Registered flush handlers run on exit, so a partial report is still
// printed if the program is interrupted through atexit.
package main

import (
	"github.com/tebeka/atexit"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
