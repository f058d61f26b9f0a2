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

// FoldEmptyInput replaces every aggregate in expr with its value over zero
// input rows. It is used when the input of the aggregation is known to be
// empty. Calls enclosing a replaced aggregate are resolved again.
func FoldEmptyInput(ctx context.Context, expr tree.TypedExpr) (tree.TypedExpr, error) {
	return run(ctx, expr, foldEmptyInputRule)
}

var foldEmptyInputRule = rule{pre: true, apply: foldEmptyInput}

func foldEmptyInput(ctx context.Context, f *tree.FuncExpr) (tree.TypedExpr, error) {
	if f.Definition().Class != tree.AggregateClass {
		return f, nil
	}
	res, err := f.ResultForEmptyInput()
	if err != nil {
		return nil, err
	}
	log.VEventf(ctx, 2, "folded %s over empty input to %s", f, res)
	return res, nil
}
