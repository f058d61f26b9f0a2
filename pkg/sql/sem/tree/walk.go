// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import "github.com/cockroachdb/errors"

// Visitor defines methods that are called for nodes during an expression
// walk.
type Visitor interface {
	// VisitPre is called for each node before recursing into that subtree.
	// Upon return, if recurse is false, the visit will not recurse into the
	// subtree (and VisitPost will not be called for this node).
	//
	// The returned Expr replaces the visited expression and can be used for
	// rewriting expressions.
	VisitPre(expr Expr) (recurse bool, newExpr Expr)

	// VisitPost is called for each node after recursing into the subtree.
	// The returned Expr replaces the visited expression and can be used for
	// rewriting expressions.
	//
	// The returned Expr must have the same type as the visited one.
	VisitPost(expr Expr) (newNode Expr)
}

// WalkExpr traverses the nodes in an expression. Rewritten nodes are
// copied; the input expression is never modified.
func WalkExpr(v Visitor, expr Expr) (newExpr Expr, changed bool) {
	recurse, newExpr := v.VisitPre(expr)
	if recurse {
		newExpr = newExpr.Walk(v)
		newExpr = v.VisitPost(newExpr)
	}
	return newExpr, newExpr != expr
}

// walkTypedExprs walks each expression of exprs. The input slice is
// returned as is when no expression changed.
func walkTypedExprs(v Visitor, exprs TypedExprs) (TypedExprs, bool) {
	var res TypedExprs
	for i, e := range exprs {
		n, changed := WalkExpr(v, e)
		if !changed {
			continue
		}
		if res == nil {
			res = make(TypedExprs, len(exprs))
			copy(res, exprs)
		}
		res[i] = mustBeTyped(n)
	}
	if res == nil {
		return exprs, false
	}
	return res, true
}

func mustBeTyped(e Expr) TypedExpr {
	te, ok := e.(TypedExpr)
	if !ok {
		panic(errors.AssertionFailedf("visitor replaced a typed expression with untyped %T", e))
	}
	return te
}
