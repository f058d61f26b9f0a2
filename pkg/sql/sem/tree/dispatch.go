// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// FuncHandler is the behavior a FuncDispatch runs for a function call. R
// is the result of the behavior and C the context it is given.
type FuncHandler[R, C any] func(expr *FuncExpr, c C) (R, error)

// FuncDispatch routes function calls to per-function behavior. Consumers
// of function nodes (rewrites, planners, printers) register a handler for
// each function they know about plus a default, so that adding a consumer
// never requires touching the node type or the function definitions.
//
// A FuncDispatch is built during initialization and is read-only
// afterwards.
type FuncDispatch[R, C any] struct {
	handlers map[string]FuncHandler[R, C]
	dflt     FuncHandler[R, C]
}

// NewFuncDispatch returns a dispatch table which runs dflt for functions
// without a registered handler.
func NewFuncDispatch[R, C any](dflt FuncHandler[R, C]) *FuncDispatch[R, C] {
	return &FuncDispatch[R, C]{handlers: make(map[string]FuncHandler[R, C]), dflt: dflt}
}

// On registers h for the named functions. Registering a function twice
// panics.
func (d *FuncDispatch[R, C]) On(h FuncHandler[R, C], names ...string) *FuncDispatch[R, C] {
	for _, name := range names {
		if _, ok := d.handlers[name]; ok {
			panic(errors.AssertionFailedf("duplicate handler for %s()", redact.SafeString(name)))
		}
		d.handlers[name] = h
	}
	return d
}

// Handles returns whether a handler other than the default is registered
// for the named function.
func (d *FuncDispatch[R, C]) Handles(name string) bool {
	_, ok := d.handlers[name]
	return ok
}

// Dispatch runs the behavior registered for expr's function.
func (d *FuncDispatch[R, C]) Dispatch(expr *FuncExpr, c C) (R, error) {
	if h, ok := d.handlers[expr.def.Name]; ok {
		return h(expr, c)
	}
	return d.dflt(expr, c)
}
