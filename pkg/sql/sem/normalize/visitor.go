// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package normalize

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sqlfront/funcsig/pkg/sql/sem/tree"
)

// Expr normalizes the provided expr: redundant DISTINCT qualifiers are
// dropped and implicit coercions are made explicit. Function calls which
// are not resolved yet are resolved first.
func Expr(ctx context.Context, typedExpr tree.TypedExpr) (tree.TypedExpr, error) {
	return run(ctx, typedExpr, elideDistinctRule, insertCoercionsRule)
}

// rule rewrites a resolved function call. Pre rules run before the
// arguments of the call are visited and stop the walk below a call they
// replace; other rules run after the arguments have been visited.
type rule struct {
	pre   bool
	apply func(ctx context.Context, f *tree.FuncExpr) (tree.TypedExpr, error)
}

func run(ctx context.Context, typedExpr tree.TypedExpr, rules ...rule) (tree.TypedExpr, error) {
	typedExpr, err := tree.TypeCheck(ctx, typedExpr)
	if err != nil {
		return nil, err
	}
	v := makeNormalizeVisitor(ctx, rules...)
	expr, _ := tree.WalkExpr(&v, typedExpr)
	if v.err != nil {
		return nil, v.err
	}
	return expr.(tree.TypedExpr), nil
}

// Visitor supports the execution of Expr and of the individual rewrites.
type Visitor struct {
	ctx  context.Context
	err  error
	pre  []rule
	post []rule
}

var _ tree.Visitor = &Visitor{}

func makeNormalizeVisitor(ctx context.Context, rules ...rule) Visitor {
	v := Visitor{ctx: ctx}
	for _, r := range rules {
		if r.pre {
			v.pre = append(v.pre, r)
		} else {
			v.post = append(v.post, r)
		}
	}
	return v
}

// Err retrieves the error field in the Visitor.
func (v *Visitor) Err() error { return v.err }

// VisitPre implements the Visitor interface.
func (v *Visitor) VisitPre(expr tree.Expr) (recurse bool, newExpr tree.Expr) {
	if v.err != nil {
		return false, expr
	}
	f, ok := expr.(*tree.FuncExpr)
	if !ok || len(v.pre) == 0 {
		return true, expr
	}
	resolved, res := v.applyRules(f, v.pre)
	if v.err != nil {
		return false, expr
	}
	if res != tree.TypedExpr(resolved) {
		// The call was replaced; its arguments no longer matter.
		return false, res
	}
	return true, resolved
}

// VisitPost implements the Visitor interface.
func (v *Visitor) VisitPost(expr tree.Expr) tree.Expr {
	if v.err != nil {
		return expr
	}
	f, ok := expr.(*tree.FuncExpr)
	if !ok {
		return expr
	}
	// A call whose arguments were rewritten comes back unresolved.
	_, res := v.applyRules(f, v.post)
	if v.err != nil {
		return expr
	}
	return res
}

// applyRules resolves f and applies the given rules in order, for as long
// as the result is a function call. It returns the resolved call and the
// result of the rules.
func (v *Visitor) applyRules(
	f *tree.FuncExpr, rules []rule,
) (resolved *tree.FuncExpr, res tree.TypedExpr) {
	f, err := f.Resolve(v.ctx)
	if err != nil {
		v.err = err
		return nil, nil
	}
	res = f
	for _, r := range rules {
		cur, ok := res.(*tree.FuncExpr)
		if !ok {
			break
		}
		if res, err = r.apply(v.ctx, cur); err != nil {
			v.err = err
			return nil, nil
		}
		if res.ResolvedType() == nil || !res.ResolvedType().Identical(f.ResolvedType()) {
			v.err = errors.AssertionFailedf("rewriting %s changed its type from %s to %v",
				f, f.ResolvedType(), res.ResolvedType())
			return nil, nil
		}
	}
	return f, res
}
