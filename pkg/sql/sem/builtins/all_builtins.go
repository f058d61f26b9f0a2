// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/cockroachdb/errors"
	"github.com/sqlfront/funcsig/pkg/sql/sem/tree"
	"github.com/sqlfront/funcsig/pkg/sql/types"
)

// Function categories used to generate documentation.
const (
	CategoryAggregate  = "Aggregate"
	CategoryArray      = "Array"
	CategoryComparison = "Comparison"
	CategoryMath       = "Math and Numeric"
	CategoryString     = "String and Byte"
)

// AllBuiltinNames is an array containing all the built-in function
// names, sorted in alphabetical order. This can be used for a
// deterministic walk through the catalog.
var AllBuiltinNames []string

// catalog holds every builtin function. It is frozen once init returns.
var catalog *tree.Catalog

func init() {
	defs := append(aggregates(), scalars()...)

	// Generate missing categories.
	for _, d := range defs {
		if d.Category == "" {
			d.Category = getCategory(d)
		}
	}

	var err error
	if catalog, err = tree.NewCatalog(defs...); err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "invalid builtin"))
	}
	AllBuiltinNames = catalog.Names()
}

// Catalog returns the catalog of builtin functions. It is read-only and
// can be extended with tree.Catalog.With.
func Catalog() *tree.Catalog { return catalog }

func getCategory(d *tree.FunctionDefinition) string {
	if d.Class == tree.AggregateClass {
		return CategoryAggregate
	}
	// If single argument attempt to categorize by the type of the argument.
	for _, s := range d.Signatures {
		if len(s.ArgTypes) == 1 {
			if c := categorizeTemplate(s.ArgTypes[0]); c != "" {
				return c
			}
		}
		// Fall back to categorizing by return type.
		if c := categorizeTemplate(s.ReturnType); c != "" {
			return c
		}
	}
	return ""
}

func categorizeTemplate(tt tree.TypeTemplate) string {
	if tt.IsArray() {
		return CategoryArray
	}
	typ, ok := tt.Concrete()
	if !ok {
		return ""
	}
	switch typ.Family() {
	case types.StringFamily, types.BytesFamily:
		return CategoryString
	case types.IntFamily, types.FloatFamily, types.DecimalFamily:
		return CategoryMath
	}
	return ""
}
