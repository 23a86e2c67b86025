// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolkov/snoop/snoop"
)

func newVersionCmd() *cobra.Command {
	var minVersion string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the snoop runtime version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := snoop.GetInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "snoopstat version %s (%d event kinds, %d categories)\n",
				info.Version, info.Opcodes, info.Categories)

			if minVersion == "" {
				return nil
			}
			ok, err := snoop.Compatible(minVersion)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("runtime %s does not satisfy minimum %s", info.Version, minVersion)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&minVersion, "require", "", "fail unless the runtime satisfies this minimum version")
	return cmd
}
