// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snoop

import (
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/kolkov/snoop/snoop/event"
)

// Version information for the snoop runtime.
const (
	// Version is the current version of the snoop runtime.
	Version = "0.3.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 3

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about snoop.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Opcodes is the number of event kinds the runtime can trace.
	Opcodes int

	// Categories is the number of event categories.
	Categories int
}

// GetInfo returns information about the snoop runtime.
//
// Example:
//
//	info := snoop.GetInfo()
//	fmt.Printf("snoop %s (%d event kinds)\n", info.Version, info.Opcodes)
func GetInfo() Info {
	return Info{
		Version:    Version,
		Opcodes:    len(event.Opcodes()),
		Categories: len(event.Categories()),
	}
}

// Compatible reports whether the runtime satisfies the minimum version min,
// given as "1.2.3" or "v1.2.3". Runtimes with a different major version are
// never compatible. Engines call it before installing a generator.
func Compatible(minVersion string) (bool, error) {
	want := canonical(minVersion)
	if !semver.IsValid(want) {
		return false, fmt.Errorf("snoop: invalid version %q", minVersion)
	}
	have := canonical(Version)
	if semver.Major(have) != semver.Major(want) {
		return false, nil
	}
	return semver.Compare(have, want) >= 0, nil
}

func canonical(v string) string {
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	return v
}
