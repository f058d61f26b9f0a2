// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"

	"github.com/cockroachdb/errors"
)

// TypeCheck resolves every function call in expr, innermost first, and
// returns the typed expression. The input expression is not modified.
func TypeCheck(ctx context.Context, expr Expr) (TypedExpr, error) {
	v := typeCheckVisitor{ctx: ctx}
	res, _ := WalkExpr(&v, expr)
	if v.err != nil {
		return nil, v.err
	}
	typed, ok := res.(TypedExpr)
	if !ok || typed.ResolvedType() == nil {
		return nil, errors.AssertionFailedf("%s (%T) did not type check", res, res)
	}
	return typed, nil
}

type typeCheckVisitor struct {
	ctx context.Context
	err error
}

var _ Visitor = &typeCheckVisitor{}

func (v *typeCheckVisitor) VisitPre(expr Expr) (recurse bool, newExpr Expr) {
	return v.err == nil, expr
}

func (v *typeCheckVisitor) VisitPost(expr Expr) Expr {
	if v.err != nil {
		return expr
	}
	f, ok := expr.(*FuncExpr)
	if !ok {
		return expr
	}
	res, err := f.Resolve(v.ctx)
	if err != nil {
		v.err = err
		return expr
	}
	return res
}
