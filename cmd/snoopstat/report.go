// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// A tableWriter renders rows of strings.
type tableWriter interface {
	SetHeader(headers []string)
	Append(record []string)
	Render()
}

// csvWriter is a tableWriter that outputs CSV.
type csvWriter struct {
	*csv.Writer
}

func newCSVWriter(w io.Writer) *csvWriter {
	return &csvWriter{Writer: csv.NewWriter(w)}
}

// SetHeader writes the header record.
func (c *csvWriter) SetHeader(headers []string) {
	_ = c.Writer.Write(headers)
}

// Append writes one record.
func (c *csvWriter) Append(record []string) {
	_ = c.Writer.Write(record)
}

// Render flushes buffered records.
func (c *csvWriter) Render() {
	c.Writer.Flush()
}

// newASCIIWriter returns a tableWriter that pretty-prints an ASCII table.
func newASCIIWriter(w io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

// newTableWriter returns the writer for format "table" or "csv".
func newTableWriter(w io.Writer, format string) (tableWriter, error) {
	switch format {
	case "table", "":
		return newASCIIWriter(w), nil
	case "csv":
		return newCSVWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want table or csv)", format)
	}
}

// writeReport renders the event counts, one line per entry point and
// category, followed by a total per entry point.
func writeReport(tw tableWriter, rows []row) {
	tw.SetHeader([]string{"Entry point", "Category", "Threads", "Events"})

	var (
		current  string
		subtotal uint64
		total    uint64
	)
	flush := func() {
		if current != "" {
			tw.Append([]string{current, "(all)", "", strconv.FormatUint(subtotal, 10)})
		}
	}
	for _, r := range rows {
		if r.EntryPoint != current {
			flush()
			current, subtotal = r.EntryPoint, 0
		}
		subtotal += r.Events
		total += r.Events
		tw.Append([]string{
			r.EntryPoint,
			r.Category.String(),
			strconv.Itoa(r.Threads),
			strconv.FormatUint(r.Events, 10),
		})
	}
	flush()
	tw.Append([]string{"total", "", "", strconv.FormatUint(total, 10)})
	tw.Render()
}
