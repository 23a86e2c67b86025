// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "snoopstat",
		Short: "snoopstat runs an instrumented sample program and counts its trace events.",
		Long: `snoopstat runs a small hand-instrumented program under the snoop ` +
			`trace dispatcher and reports how many events each entry point ` +
			`produced, by category. It doubles as a smoke test for a snoop ` +
			`configuration file.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newVersionCmd())
	return root
}
