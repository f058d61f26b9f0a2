// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package normalize

import (
	"context"

	"github.com/sqlfront/funcsig/pkg/sql/sem/tree"
	"github.com/sqlfront/funcsig/pkg/util/log"
)

// ElideRedundantDistinct drops the DISTINCT qualifier of aggregates whose
// result does not depend on duplicate inputs.
func ElideRedundantDistinct(ctx context.Context, expr tree.TypedExpr) (tree.TypedExpr, error) {
	return run(ctx, expr, elideDistinctRule)
}

var elideDistinctRule = rule{apply: func(ctx context.Context, f *tree.FuncExpr) (tree.TypedExpr, error) {
	return distinctElision.Dispatch(f, ctx)
}}

// distinctElision knows, per function, whether DISTINCT can be dropped.
var distinctElision = tree.NewFuncDispatch[tree.TypedExpr, context.Context](keepDistinct).
	On(dropDistinct, "min", "max", "bool_and", "bool_or", "collect_set", "any_value")

func keepDistinct(f *tree.FuncExpr, _ context.Context) (tree.TypedExpr, error) {
	return f, nil
}

func dropDistinct(f *tree.FuncExpr, ctx context.Context) (tree.TypedExpr, error) {
	if !f.Distinct() {
		return f, nil
	}
	log.VEventf(ctx, 2, "eliding DISTINCT in %s", f)
	n, err := f.WithDistinctAndChildren(false, f.Children())
	if err != nil {
		return nil, err
	}
	return n.Resolve(ctx)
}
