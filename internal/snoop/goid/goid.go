// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goid extracts goroutine identities.
//
// Go deliberately hides goroutine identity, but the trace gate is keyed by
// it: every dispatcher call has to find the calling goroutine's gate state
// without any cooperation from the instrumented code. The identity is read
// from the first line of runtime.Stack output, which has the stable format
//
//	goroutine 123 [running]:
//
// Goroutine IDs are never reused by the runtime, so an ID that is absent
// from Live() belongs to a goroutine that has exited for good.
package goid

import (
	"runtime"
	"strconv"
)

// liveBufSize is the initial buffer for Live. It doubles until the full dump fits.
const liveBufSize = 64 * 1024

// Current returns the ID of the calling goroutine.
//
// Performance: ~1µs per call (dominated by runtime.Stack).
//
// Returns:
//   - int64: Goroutine ID (always positive), or 0 if parsing fails
func Current() int64 {
	// Only the header line is needed.
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parse(buf[:n])
}

// Live returns the IDs of all goroutines that exist at the time of the call.
//
// This stops the world for the duration of runtime.Stack(all=true), so
// callers amortize it (the gate table sweeps once per N new goroutines).
//
// Thread Safety: Safe for concurrent calls.
func Live() []int64 {
	buf := make([]byte, liveBufSize)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return parseAll(buf[:n])
		}
		// Truncated dump would drop live goroutines and make the sweep
		// reclaim state that is still in use.
		buf = make([]byte, 2*len(buf))
	}
}

// parse extracts the goroutine ID from a "goroutine N [state]:" header.
//
// Returns 0 if the buffer does not start with the expected prefix or has no digits.
func parse(buf []byte) int64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}
	buf = buf[len(prefix):]

	end := 0
	for end < len(buf) && buf[end] >= '0' && buf[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	gid, err := strconv.ParseInt(string(buf[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// parseAll extracts every goroutine ID from a runtime.Stack(all=true) dump.
//
// Input format:
//
//	goroutine 1 [running]:
//	main.main()
//	    /path/to/main.go:10 +0x20
//
//	goroutine 5 [chan receive]:
//	...
func parseAll(buf []byte) []int64 {
	var gids []int64

	i := 0
	for i < len(buf) {
		end := i
		for end < len(buf) && buf[end] != '\n' {
			end++
		}

		if gid := parse(buf[i:end]); gid != 0 {
			gids = append(gids, gid)
		}

		i = end + 1
	}

	return gids
}
