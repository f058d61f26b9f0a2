// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/sqlfront/funcsig/pkg/sql/sem/tree"
	"github.com/sqlfront/funcsig/pkg/sql/types"
)

func scalars() []*tree.FunctionDefinition {
	return []*tree.FunctionDefinition{
		{
			Name: "array_append",
			FunctionProperties: tree.FunctionProperties{
				Info: "Appends an element to an array.",
			},
			Signatures: []tree.Signature{
				tree.Ret(tree.ArrayOf(followElement)).Args(tree.ArrayOf(followElement), anyElement),
			},
		},
		{
			Name: "array_cat",
			FunctionProperties: tree.FunctionProperties{
				Info: "Concatenates two arrays.",
			},
			Signatures: []tree.Signature{
				tree.Ret(tree.ArrayOf(followElement)).Args(tree.ArrayOf(anyElement), tree.ArrayOf(anyElement)),
			},
		},
		{
			Name: "array_length",
			FunctionProperties: tree.FunctionProperties{
				Category: CategoryArray,
				Info:     "Calculates the length of an array on the given dimension.",
			},
			Signatures: []tree.Signature{
				tree.Ret(tree.Exactly(types.Int)).Args(tree.ArrayOf(anyElement), tree.Exactly(types.Int)),
			},
		},
		{
			Name: "coalesce",
			FunctionProperties: tree.FunctionProperties{
				Category: CategoryComparison,
				Info:     "Returns the first non-NULL argument.",
			},
			Signatures: []tree.Signature{
				tree.Ret(followElement).VarArgs(anyElement, anyElement),
			},
		},
		{
			Name: "concat",
			FunctionProperties: tree.FunctionProperties{
				Info: "Concatenates a comma-separated list of strings.",
			},
			Signatures: []tree.Signature{
				tree.Ret(tree.Exactly(types.String)).VarArgs(tree.Exactly(types.String)),
			},
		},
		{
			Name: "greatest",
			FunctionProperties: tree.FunctionProperties{
				Category: CategoryComparison,
				Info:     "Returns the element with the greatest value.",
			},
			Signatures: []tree.Signature{
				tree.Ret(followElement).VarArgs(anyElement, anyElement),
			},
		},
		{
			Name: "least",
			FunctionProperties: tree.FunctionProperties{
				Category: CategoryComparison,
				Info:     "Returns the element with the lowest value.",
			},
			Signatures: []tree.Signature{
				tree.Ret(followElement).VarArgs(anyElement, anyElement),
			},
		},
		{
			Name: "abs",
			FunctionProperties: tree.FunctionProperties{
				Info: "Calculates the absolute value of the input.",
			},
			Signatures: []tree.Signature{
				fixedSig(types.Int, types.Int),
				fixedSig(types.Decimal, types.Decimal),
				fixedSig(types.Float, types.Float),
			},
		},
		{
			Name: "length",
			FunctionProperties: tree.FunctionProperties{
				Info: "Calculates the number of characters or bytes in the input.",
			},
			Signatures: []tree.Signature{
				fixedSig(types.Int, types.String),
				fixedSig(types.Int, types.Bytes),
			},
		},
	}
}
