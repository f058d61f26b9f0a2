// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgcode"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgerror"
	"github.com/sqlfront/funcsig/pkg/sql/types"
	"github.com/sqlfront/funcsig/pkg/util/log"
	"github.com/stretchr/testify/require"
)

type variadicTestCase struct {
	args    []*types.T
	matches bool
}

type variadicTestData struct {
	name  string
	cases []variadicTestCase
}

func TestVariadicFunctions(t *testing.T) {
	str, i, b := Exactly(types.String), Exactly(types.Int), Exactly(types.Bool)
	testData := []struct {
		sig Signature
		variadicTestData
	}{
		{Ret(str).VarArgs(str), variadicTestData{
			"(string...) -> string", []variadicTestCase{
				{[]*types.T{}, true},
				{[]*types.T{types.String}, true},
				{[]*types.T{types.String, types.String}, true},
				{[]*types.T{types.String, types.Unknown}, true},
				{[]*types.T{types.String, types.Unknown, types.String}, true},
				{[]*types.T{types.Int}, false},
			}}},
		{Ret(str).VarArgs(i, str), variadicTestData{
			"(int, string...) -> string", []variadicTestCase{
				{[]*types.T{types.Int}, true},
				{[]*types.T{types.Int, types.String}, true},
				{[]*types.T{types.Int, types.String, types.String}, true},
				{[]*types.T{types.Int, types.Unknown, types.String}, true},
				{[]*types.T{types.String}, false},
			}}},
		{Ret(str).VarArgs(i, b, str), variadicTestData{
			"(int, bool, string...) -> string", []variadicTestCase{
				{[]*types.T{types.Int}, false},
				{[]*types.T{types.Int, types.Bool}, true},
				{[]*types.T{types.Int, types.Bool, types.String}, true},
				{[]*types.T{types.Int, types.Unknown, types.String}, true},
				{[]*types.T{types.Int, types.Bool, types.String, types.Bool}, false},
				{[]*types.T{types.Int, types.String}, false},
				{[]*types.T{types.Int, types.String, types.String}, false},
				{[]*types.T{types.String}, false},
			}}},
	}

	for _, d := range testData {
		fn := d.sig
		t.Run(fn.String(), func(t *testing.T) {
			require.Equal(t, d.name, fn.String())
			for _, v := range d.cases {
				t.Run(fmt.Sprint(v.args), func(t *testing.T) {
					_, err := fn.Bind(v.args)
					if v.matches {
						require.True(t, fn.MatchLen(len(v.args)))
						require.NoError(t, err)
					} else {
						require.Error(t, err)
					}
				})
			}
		})
	}
}

func makeTestSignature(retType *types.T, params ...*types.T) Signature {
	args := make([]TypeTemplate, len(params))
	for i := range params {
		args[i] = Exactly(params[i])
	}
	return Ret(Exactly(retType)).Args(args...)
}

func TestResolveSignatureDeclarationOrder(t *testing.T) {
	unaryIntFn := makeTestSignature(types.Int, types.Int)
	unaryFloatFn := makeTestSignature(types.Float, types.Float)
	unaryDecimalFn := makeTestSignature(types.Decimal, types.Decimal)
	unaryStringFn := makeTestSignature(types.String, types.String)
	unaryTimestampFn := makeTestSignature(types.Timestamp, types.Timestamp)
	binaryIntFn := makeTestSignature(types.Int, types.Int, types.Int)
	binaryFloatFn := makeTestSignature(types.Float, types.Float, types.Float)
	binaryStringFloatFn := makeTestSignature(types.Int, types.String, types.Float)
	nullaryIntFn := makeTestSignature(types.Int)
	concatFn := Ret(Exactly(types.String)).VarArgs(Exactly(types.String))

	// Out-of-band ordinal used below for resolution failures.
	const unsupported = -1

	testData := []struct {
		args     []*types.T
		sigs     []Signature
		expected int
	}{
		// Unary values.
		{[]*types.T{types.Int}, []Signature{unaryIntFn, unaryFloatFn}, 0},
		{[]*types.T{types.Int}, []Signature{unaryFloatFn, unaryIntFn}, 0},
		{[]*types.T{types.Float}, []Signature{unaryIntFn, unaryFloatFn}, 1},
		{[]*types.T{types.Int}, []Signature{binaryIntFn, unaryIntFn}, 1},
		{[]*types.T{types.Int}, []Signature{unaryStringFn, binaryIntFn}, unsupported},
		{[]*types.T{types.String}, []Signature{unaryIntFn, unaryFloatFn}, unsupported},
		{[]*types.T{types.String}, []Signature{unaryIntFn, unaryStringFn}, 1},
		{[]*types.T{types.Decimal}, []Signature{unaryIntFn, unaryFloatFn, unaryDecimalFn}, 1},
		{[]*types.T{types.Date}, []Signature{unaryIntFn, unaryTimestampFn}, 1},
		{[]*types.T{}, []Signature{unaryIntFn, nullaryIntFn}, 1},
		// NULL arguments.
		{[]*types.T{types.Unknown}, []Signature{unaryStringFn, unaryIntFn}, 0},
		{[]*types.T{types.Int, types.Unknown}, []Signature{binaryIntFn, binaryFloatFn}, 0},
		// Binary values.
		{[]*types.T{types.Int, types.Decimal}, []Signature{binaryIntFn, binaryFloatFn}, 1},
		{[]*types.T{types.String, types.Int}, []Signature{binaryFloatFn, binaryStringFloatFn}, 1},
		{[]*types.T{types.Float, types.String}, []Signature{binaryFloatFn, binaryStringFloatFn}, unsupported},
		// Variadic.
		{[]*types.T{}, []Signature{concatFn}, 0},
		{[]*types.T{types.String, types.Unknown, types.String}, []Signature{unaryStringFn, concatFn}, 1},
	}
	for i, d := range testData {
		t.Run(fmt.Sprintf("%v/%v", d.args, d.sigs), func(t *testing.T) {
			b, err := ResolveSignature(context.Background(), "f", d.sigs, d.args)
			if d.expected == unsupported {
				require.Error(t, err, "%d: expected unsupported resolution for %s", i, d.args)
				require.True(t, errors.Is(err, ErrNoMatchingSignature))
				return
			}
			require.NoError(t, err, "%d: unexpected error for %s", i, d.args)
			require.Equal(t, d.expected, b.Ordinal(),
				"%d: expected signature %s to be chosen for %s, found %s",
				i, d.sigs[d.expected], d.args, d.sigs[b.Ordinal()])
			require.Equal(t, len(d.args), b.NumArgs())
		})
	}
}

func TestResolveSignaturePolymorphic(t *testing.T) {
	collectSet := []Signature{
		Ret(ArrayOf(FollowToAny(0))).Args(AnySlot(0)),
		Ret(ArrayOf(FollowToAny(0))).Args(AnySlot(0), Exactly(types.Int)),
	}
	greatest := []Signature{Ret(FollowToAny(0)).VarArgs(AnySlot(0))}
	coalesce := []Signature{Ret(FollowToAny(0)).VarArgs(AnySlot(0), AnySlot(0))}
	arrayLength := []Signature{Ret(Exactly(types.Int)).Args(ArrayOf(AnySlot(0)), Exactly(types.Int))}
	arrayAppend := []Signature{Ret(ArrayOf(FollowToAny(0))).Args(ArrayOf(FollowToAny(0)), AnySlot(0))}
	arrayCat := []Signature{Ret(ArrayOf(FollowToAny(0))).Args(ArrayOf(AnySlot(0)), ArrayOf(AnySlot(0)))}

	intArray := types.MakeArray(types.Int)

	testData := []struct {
		name     string
		sigs     []Signature
		args     []*types.T
		ordinal  int
		retType  *types.T
		argTypes []*types.T
	}{
		{"collect_set int", collectSet,
			[]*types.T{types.Int}, 0, intArray, []*types.T{types.Int}},
		{"collect_set string int", collectSet,
			[]*types.T{types.String, types.Int}, 1, types.MakeArray(types.String),
			[]*types.T{types.String, types.Int}},
		{"collect_set int[]", collectSet,
			[]*types.T{intArray}, 0, types.MakeArray(intArray), []*types.T{intArray}},
		{"collect_set null", collectSet,
			[]*types.T{types.Unknown}, 0, types.MakeArray(types.Unknown), []*types.T{types.Unknown}},
		{"unify int float", greatest,
			[]*types.T{types.Int, types.Float}, 0, types.Float,
			[]*types.T{types.Float, types.Float}},
		{"unify float int", greatest,
			[]*types.T{types.Float, types.Int}, 0, types.Float,
			[]*types.T{types.Float, types.Float}},
		{"unify int decimal float", greatest,
			[]*types.T{types.Int, types.Decimal, types.Float}, 0, types.Float,
			[]*types.T{types.Float, types.Float, types.Float}},
		{"null then int", coalesce,
			[]*types.T{types.Unknown, types.Int}, 0, types.Int,
			[]*types.T{types.Int, types.Int}},
		{"only nulls", coalesce,
			[]*types.T{types.Unknown, types.Unknown}, 0, types.Unknown,
			[]*types.T{types.Unknown, types.Unknown}},
		{"array element binding", arrayLength,
			[]*types.T{types.MakeArray(types.String), types.Int}, 0, types.Int,
			[]*types.T{types.MakeArray(types.String), types.Int}},
		{"follow as argument", arrayAppend,
			[]*types.T{intArray, types.Float}, 0, types.MakeArray(types.Float),
			[]*types.T{types.MakeArray(types.Float), types.Float}},
		{"null array", arrayAppend,
			[]*types.T{types.Unknown, types.String}, 0, types.MakeArray(types.String),
			[]*types.T{types.MakeArray(types.String), types.String}},
		{"unify arrays", arrayCat,
			[]*types.T{intArray, types.MakeArray(types.Decimal)}, 0, types.MakeArray(types.Decimal),
			[]*types.T{types.MakeArray(types.Decimal), types.MakeArray(types.Decimal)}},
	}
	for _, d := range testData {
		t.Run(d.name, func(t *testing.T) {
			b, err := ResolveSignature(context.Background(), "f", d.sigs, d.args)
			require.NoError(t, err)
			require.Equal(t, d.ordinal, b.Ordinal())
			require.True(t, d.retType.Identical(b.ReturnType()),
				"expected %s, found %s", d.retType, b.ReturnType())
			for i := range d.args {
				require.True(t, d.argTypes[i].Identical(b.ArgType(i)),
					"argument %d: expected %s, found %s", i, d.argTypes[i], b.ArgType(i))
				require.True(t, d.args[i].Identical(b.ActualType(i)))
				require.Equal(t, !d.args[i].Identical(d.argTypes[i]), b.NeedsCoercion(i))
			}
		})
	}
}

func TestResolveSignatureRejections(t *testing.T) {
	collectSet := []Signature{
		Ret(ArrayOf(FollowToAny(0))).Args(AnySlot(0)),
		Ret(ArrayOf(FollowToAny(0))).Args(AnySlot(0), Exactly(types.Int)),
	}
	testData := []struct {
		name   string
		sigs   []Signature
		args   []*types.T
		detail string
	}{
		{"second argument not int", collectSet, []*types.T{types.Int, types.String},
			"argument 2: string is not implicitly castable to int"},
		{"too many arguments", collectSet, []*types.T{types.Int, types.Int, types.Int},
			"expected 2 argument(s), got 3"},
		{"slot conflict",
			[]Signature{Ret(FollowToAny(0)).Args(AnySlot(0), AnySlot(0))},
			[]*types.T{types.Int, types.String},
			"arguments declared any#0 are not all alike"},
		{"not an array",
			[]Signature{Ret(Exactly(types.Int)).Args(ArrayOf(AnySlot(0)))},
			[]*types.T{types.Int},
			"int is not an array"},
		{"follow mismatch",
			[]Signature{Ret(ArrayOf(FollowToAny(0))).Args(ArrayOf(FollowToAny(0)), AnySlot(0))},
			[]*types.T{types.MakeArray(types.Float), types.Int},
			"argument 1: float[] is not implicitly castable to int[]"},
	}
	for _, d := range testData {
		t.Run(d.name, func(t *testing.T) {
			_, err := ResolveSignature(context.Background(), "f", d.sigs, d.args)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrNoMatchingSignature))
			require.Equal(t, pgcode.UndefinedFunction, pgerror.GetPGCode(err))
			require.Contains(t, errors.FlattenDetails(err), d.detail)
		})
	}
}

func TestNoMatchingSignatureError(t *testing.T) {
	sigs := []Signature{
		Ret(ArrayOf(FollowToAny(0))).Args(AnySlot(0)),
		Ret(ArrayOf(FollowToAny(0))).Args(AnySlot(0), Exactly(types.Int)),
	}
	_, err := ResolveSignature(context.Background(), "collect_set", sigs,
		[]*types.T{types.Int, types.String})
	require.Error(t, err)
	require.EqualError(t, err, "unknown signature: collect_set(int, string)")
	require.False(t, errors.Is(err, ErrAmbiguousSlotBinding))

	pgErr := pgerror.Flatten(err)
	require.Equal(t, pgcode.UndefinedFunction.String(), pgErr.Code)
	require.Equal(t, strings.Join([]string{
		"candidates are:",
		"collect_set(any#0) -> follow#0[]",
		"collect_set(any#0, int) -> follow#0[]",
	}, "\n"), pgErr.Hint)
	require.Equal(t, strings.Join([]string{
		"collect_set(any#0) -> follow#0[]: expected 1 argument(s), got 2",
		"collect_set(any#0, int) -> follow#0[]: argument 2: string is not implicitly castable to int",
	}, "\n"), pgErr.Detail)
}

func TestResolveSignatureLogging(t *testing.T) {
	sc := log.Scope(t)
	defer sc.Close(t)
	log.SetVerbosity(3)

	sigs := []Signature{
		Ret(Exactly(types.Int)).Args(Exactly(types.Int), Exactly(types.Int)),
		Ret(FollowToAny(0)).Args(AnySlot(0)),
	}
	_, err := ResolveSignature(context.Background(), "f", sigs, []*types.T{types.String})
	require.NoError(t, err)

	lines := sc.Lines()
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "[fn=f]")
	require.Contains(t, lines[0], "candidate 0 (int, int) -> int rejected")
	require.Contains(t, lines[1], "matched candidate 1 (any#0) -> follow#0 as (string) -> string")
}
