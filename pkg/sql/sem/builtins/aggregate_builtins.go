// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/sqlfront/funcsig/pkg/sql/sem/tree"
	"github.com/sqlfront/funcsig/pkg/sql/types"
)

var (
	anyElement    = tree.AnySlot(0)
	followElement = tree.FollowToAny(0)
)

// fixedSig returns a signature over concrete types only.
func fixedSig(retType *types.T, argTypes ...*types.T) tree.Signature {
	args := make([]tree.TypeTemplate, len(argTypes))
	for i, t := range argTypes {
		args[i] = tree.Exactly(t)
	}
	return tree.Ret(tree.Exactly(retType)).Args(args...)
}

func aggProps() tree.FunctionProperties {
	return tree.FunctionProperties{Class: tree.AggregateClass}
}

// arrayOfFirstArg sets the return type to an array of the (coerced) type
// of the first argument.
func arrayOfFirstArg(b tree.BoundSignature) tree.BoundSignature {
	return b.WithReturnType(types.MakeArray(b.ArgType(0)))
}

// emptyArray is the empty-input value of aggregates collecting their input
// into an array.
func emptyArray(retType *types.T) tree.TypedExpr {
	return tree.NewDArray(retType.ArrayContents())
}

// zeroCount is the empty-input value of counting aggregates.
func zeroCount(*types.T) tree.TypedExpr {
	return tree.NewDInt(0)
}

// aggregates returns the builtin aggregate functions. Aggregates other
// than count and the array collectors are NULL over empty input.
func aggregates() []*tree.FunctionDefinition {
	return []*tree.FunctionDefinition{
		{
			Name:               "collect_set",
			FunctionProperties: props(aggProps(), "Aggregates the distinct values of the input into an array, keeping at most the given number of them."),
			Signatures: []tree.Signature{
				tree.Ret(tree.ArrayOf(followElement)).Args(anyElement),
				tree.Ret(tree.ArrayOf(followElement)).Args(anyElement, tree.Exactly(types.Int)),
			},
			ComputeSignature: arrayOfFirstArg,
			EmptyInput:       emptyArray,
		},
		{
			Name:               "collect_list",
			FunctionProperties: props(aggProps(), "Aggregates the values of the input into an array, keeping at most the given number of them."),
			Signatures: []tree.Signature{
				tree.Ret(tree.ArrayOf(followElement)).Args(anyElement),
				tree.Ret(tree.ArrayOf(followElement)).Args(anyElement, tree.Exactly(types.Int)),
			},
			ComputeSignature: arrayOfFirstArg,
			EmptyInput:       emptyArray,
		},
		{
			Name:               "array_agg",
			FunctionProperties: props(aggProps(), "Aggregates the selected values into an array."),
			Signatures: []tree.Signature{
				tree.Ret(tree.ArrayOf(followElement)).Args(anyElement),
			},
			EmptyInput: tree.MakeTypedNull,
		},
		{
			Name:               "count",
			FunctionProperties: props(aggProps(), "Calculates the number of selected elements."),
			Signatures: []tree.Signature{
				tree.Ret(tree.Exactly(types.Int)).Args(anyElement),
				fixedSig(types.Int),
			},
			EmptyInput: zeroCount,
		},
		{
			Name:               "sum",
			FunctionProperties: props(aggProps(), "Calculates the sum of the selected values."),
			Signatures: []tree.Signature{
				fixedSig(types.Decimal, types.Int),
				fixedSig(types.Decimal, types.Decimal),
				fixedSig(types.Float, types.Float),
				fixedSig(types.Interval, types.Interval),
			},
			EmptyInput: tree.MakeTypedNull,
		},
		{
			Name:               "avg",
			FunctionProperties: props(aggProps(), "Calculates the average of the selected values."),
			Signatures: []tree.Signature{
				fixedSig(types.Decimal, types.Int),
				fixedSig(types.Decimal, types.Decimal),
				fixedSig(types.Float, types.Float),
				fixedSig(types.Interval, types.Interval),
			},
			EmptyInput: tree.MakeTypedNull,
		},
		{
			Name:               "min",
			FunctionProperties: props(aggProps(), "Identifies the minimum selected value."),
			Signatures:         []tree.Signature{tree.Ret(followElement).Args(anyElement)},
			EmptyInput:         tree.MakeTypedNull,
		},
		{
			Name:               "max",
			FunctionProperties: props(aggProps(), "Identifies the maximum selected value."),
			Signatures:         []tree.Signature{tree.Ret(followElement).Args(anyElement)},
			EmptyInput:         tree.MakeTypedNull,
		},
		{
			Name:               "any_value",
			FunctionProperties: props(aggProps(), "Returns an arbitrary value from the selected values."),
			Signatures:         []tree.Signature{tree.Ret(followElement).Args(anyElement)},
			EmptyInput:         tree.MakeTypedNull,
		},
		{
			Name:               "bool_and",
			FunctionProperties: props(aggProps(), "Calculates the boolean value of ANDing all selected values."),
			Signatures:         []tree.Signature{fixedSig(types.Bool, types.Bool)},
			EmptyInput:         tree.MakeTypedNull,
		},
		{
			Name:               "bool_or",
			FunctionProperties: props(aggProps(), "Calculates the boolean value of ORing all selected values."),
			Signatures:         []tree.Signature{fixedSig(types.Bool, types.Bool)},
			EmptyInput:         tree.MakeTypedNull,
		},
		{
			Name:               "string_agg",
			FunctionProperties: props(aggProps(), "Concatenates all selected values using the provided delimiter."),
			Signatures: []tree.Signature{
				fixedSig(types.String, types.String, types.String),
				fixedSig(types.Bytes, types.Bytes, types.Bytes),
			},
			EmptyInput: tree.MakeTypedNull,
		},
	}
}

func props(p tree.FunctionProperties, info string) tree.FunctionProperties {
	p.Info = info
	return p
}
