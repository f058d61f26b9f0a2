// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package normalize

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sqlfront/funcsig/pkg/sql/sem/tree"
	"github.com/sqlfront/funcsig/pkg/sql/types"
	"github.com/sqlfront/funcsig/pkg/util/log"
)

// InsertCoercions wraps every function argument whose type differs from
// the type its bound signature expects in a cast to that type. The
// signatures of the rewritten calls are unchanged.
func InsertCoercions(ctx context.Context, expr tree.TypedExpr) (tree.TypedExpr, error) {
	return run(ctx, expr, insertCoercionsRule)
}

var insertCoercionsRule = rule{apply: insertCoercions}

func insertCoercions(ctx context.Context, f *tree.FuncExpr) (tree.TypedExpr, error) {
	coerced, err := f.WithCoercedArgs(coerce)
	if err != nil || coerced == f {
		return coerced, err
	}
	log.VEventf(ctx, 2, "coerced %s to %s", f, coerced)

	// Binding the coerced arguments afresh must land on the same signature.
	fresh, err := coerced.WithDistinctAndChildren(coerced.Distinct(), coerced.Children())
	if err != nil {
		return nil, err
	}
	if fresh, err = fresh.Resolve(ctx); err != nil {
		return nil, errors.NewAssertionErrorWithWrappedErrf(err, "re-resolving %s", coerced)
	}
	want, _ := coerced.Signature()
	got, _ := fresh.Signature()
	if !want.Identical(got) {
		return nil, errors.AssertionFailedf("coercing %s changed its signature from %s to %s",
			f, want, got)
	}
	return coerced, nil
}

func coerce(arg tree.TypedExpr, target *types.T) (tree.TypedExpr, error) {
	from := arg.ResolvedType()
	if !types.IsImplicitlyCastable(from, target) {
		return nil, tree.NewIllegalCoercionError(arg, from, target)
	}
	if arg == tree.DNull {
		return tree.MakeTypedNull(target), nil
	}
	return tree.NewTypedCastExpr(arg, target), nil
}
