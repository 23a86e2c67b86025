// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/snoop/snoop/event"
)

var sampleRows = []row{
	{EntryPoint: "a#run", Category: event.CategoryArith, Threads: 1, Events: 3},
	{EntryPoint: "a#run", Category: event.CategoryJump, Threads: 1, Events: 2},
	{EntryPoint: "b#run", Category: event.CategoryLocal, Threads: 4, Events: 10},
}

func TestWriteReport_CSV(t *testing.T) {
	var buf bytes.Buffer
	tw, err := newTableWriter(&buf, "csv")
	require.NoError(t, err)

	writeReport(tw, sampleRows)
	assert.Equal(t, `Entry point,Category,Threads,Events
a#run,Arith,1,3
a#run,Jump,1,2
a#run,(all),,5
b#run,Local,4,10
b#run,(all),,10
total,,,15
`, buf.String())
}

func TestWriteReport_Table(t *testing.T) {
	var buf bytes.Buffer
	tw, err := newTableWriter(&buf, "table")
	require.NoError(t, err)

	writeReport(tw, sampleRows)
	out := buf.String()
	assert.Contains(t, out, "Entry point")
	assert.Contains(t, out, "| b#run")
	assert.Contains(t, out, "15")
}

func TestWriteReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	tw, _ := newTableWriter(&buf, "csv")
	writeReport(tw, nil)
	assert.Equal(t, "Entry point,Category,Threads,Events\ntotal,,,0\n", buf.String())
}

func TestNewTableWriter_Unknown(t *testing.T) {
	_, err := newTableWriter(&bytes.Buffer{}, "html")
	assert.Error(t, err)
}
