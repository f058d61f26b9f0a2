// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgcode"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgerror"
)

// Catalog maps function names to their definitions. A Catalog is read-only
// once built and can be shared between goroutines; extending it produces a
// new Catalog.
type Catalog struct {
	defs  map[string]*FunctionDefinition
	names []string
}

// NewCatalog builds a catalog holding the given definitions. Every
// definition is validated and names must be unique.
func NewCatalog(defs ...*FunctionDefinition) (*Catalog, error) {
	return (&Catalog{}).With(defs...)
}

// With returns a new catalog holding the definitions of c plus the given
// ones. Redefining a function already in c is an error.
func (c *Catalog) With(defs ...*FunctionDefinition) (*Catalog, error) {
	res := &Catalog{
		defs:  make(map[string]*FunctionDefinition, len(c.defs)+len(defs)),
		names: make([]string, 0, len(c.names)+len(defs)),
	}
	for name, d := range c.defs {
		res.defs[name] = d
	}
	res.names = append(res.names, c.names...)
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, pgerror.Wrap(err, pgcode.InvalidFunctionDefinition, "invalid function definition")
		}
		if _, ok := res.defs[d.Name]; ok {
			return nil, pgerror.Newf(pgcode.InvalidFunctionDefinition,
				"function %s() is already defined", redact.SafeString(d.Name))
		}
		res.defs[d.Name] = d
		res.names = append(res.names, d.Name)
	}
	sort.Strings(res.names)
	return res, nil
}

// Names returns the names of all functions in the catalog, sorted.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Lookup returns the definition with exactly the given name.
func (c *Catalog) Lookup(name string) (*FunctionDefinition, bool) {
	d, ok := c.defs[name]
	return d, ok
}

// ResolveFunction looks up a function by the name it is called with.
// Names are case-insensitive, and a "pg_catalog." prefix refers to the
// global namespace.
func (c *Catalog) ResolveFunction(name string) (*FunctionDefinition, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 || parts[len(parts)-1] == "" {
		return nil, pgerror.Newf(pgcode.Syntax, "invalid function name: %q", name)
	}
	// Function names are guaranteed not to contain special Unicode
	// characters, so ToLower is a valid normalization.
	smallName := strings.ToLower(parts[len(parts)-1])
	if len(parts) == 2 && strings.ToLower(parts[0]) != "pg_catalog" {
		return nil, NewUnknownFunctionError(name)
	}
	d, ok := c.defs[smallName]
	if !ok {
		return nil, NewUnknownFunctionError(name)
	}
	return d, nil
}

// NewFuncExpr resolves the function name and builds an unresolved
// function node over the given arguments.
func (c *Catalog) NewFuncExpr(name string, distinct bool, exprs ...TypedExpr) (*FuncExpr, error) {
	d, err := c.ResolveFunction(name)
	if err != nil {
		return nil, err
	}
	return NewFuncExpr(d, distinct, exprs...)
}

// MustLookup is like Lookup but panics if the function does not exist.
// It is meant for package initialization.
func (c *Catalog) MustLookup(name string) *FunctionDefinition {
	d, ok := c.defs[name]
	if !ok {
		panic(errors.AssertionFailedf("function %s() not defined", redact.SafeString(name)))
	}
	return d
}
