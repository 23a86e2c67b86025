// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/snoop/snoop/event"
	"github.com/kolkov/snoop/snoop/thread"
)

func TestCounter_Rows(t *testing.T) {
	labels := map[*thread.Thread]string{}
	c := newCounter(func(t *thread.Thread) (string, bool) {
		l, ok := labels[t]
		return l, ok
	}, nil)

	a := thread.NewFunc(func() {})
	b := thread.NewFunc(func() {})
	orphan := thread.NewFunc(func() {})
	labels[a] = "pkg.A#run"
	labels[b] = "pkg.A#run"

	ca, cb, co := c.Callback(a), c.Callback(b), c.Callback(orphan)
	ca(&event.Insn{Loc: event.Loc{Op: event.IADD}})
	ca(&event.Insn{Loc: event.Loc{Op: event.ISUB}})
	cb(&event.Insn{Loc: event.Loc{Op: event.IMUL}})
	cb(&event.Jump{Loc: event.Loc{Op: event.GOTO}})
	co(&event.Special{Loc: event.Loc{Op: event.SPECIAL}})

	assert.Equal(t, []row{
		{EntryPoint: "<unattributed>", Category: event.CategorySpecial, Threads: 1, Events: 1},
		{EntryPoint: "pkg.A#run", Category: event.CategoryArith, Threads: 2, Events: 3},
		{EntryPoint: "pkg.A#run", Category: event.CategoryJump, Threads: 1, Events: 1},
	}, c.Rows())
}

func TestCounter_FlushOnlyWhenChanged(t *testing.T) {
	var reports [][]row
	c := newCounter(func(*thread.Thread) (string, bool) { return "x#run", true },
		func(rows []row) { reports = append(reports, rows) })

	require.NoError(t, c.Flush())
	assert.Empty(t, reports, "nothing counted yet")

	consume := c.Callback(thread.NewFunc(func() {}))
	consume(&event.Insn{Loc: event.Loc{Op: event.NOP}})
	require.NoError(t, c.Flush())
	require.NoError(t, c.Flush())
	require.Len(t, reports, 1)

	consume(&event.Insn{Loc: event.Loc{Op: event.NOP}})
	require.NoError(t, c.Flush())
	require.Len(t, reports, 2)
	assert.Equal(t, uint64(2), reports[1][0].Events)
	assert.Equal(t, 4, c.Flushes())
}
