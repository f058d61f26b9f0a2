// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cliflags

// FlagInfo contains the static information for a CLI flag and helper
// to format the description.
type FlagInfo struct {
	// Name of the flag as used on the command line.
	Name string

	// Shorthand is the short form of the flag (optional).
	Shorthand string

	// Description of the flag.
	Description string
}

// Flags shared by all commands.
var (
	CatalogFile = FlagInfo{
		Name: "catalog-file",
		Description: `
YAML file declaring functions to add to the builtin catalog. Each entry
has a name, a class (normal or aggregate), a list of signatures and,
for aggregates, the value over empty input (null, empty_array or zero).`,
	}

	Verbosity = FlagInfo{
		Name:        "verbosity",
		Shorthand:   "v",
		Description: `Log verbosity. Level 2 logs the signature chosen for each call, level 3 every rejected candidate.`,
	}
)

// Flags of the resolve command.
var (
	Distinct = FlagInfo{
		Name:        "distinct",
		Description: `Resolve the call as an aggregate over DISTINCT values.`,
	}
)
