// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgcode"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgerror"
	"github.com/sqlfront/funcsig/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

var testCollectSet = &FunctionDefinition{
	Name:               "collect_set",
	FunctionProperties: FunctionProperties{Class: AggregateClass},
	Signatures: []Signature{
		Ret(ArrayOf(FollowToAny(0))).Args(AnySlot(0)),
		Ret(ArrayOf(FollowToAny(0))).Args(AnySlot(0), Exactly(types.Int)),
	},
	ComputeSignature: func(b BoundSignature) BoundSignature {
		return b.WithReturnType(types.MakeArray(b.ArgType(0)))
	},
	EmptyInput: func(retType *types.T) TypedExpr {
		return NewDArray(retType.ArrayContents())
	},
}

var testGreatest = &FunctionDefinition{
	Name:       "greatest",
	Signatures: []Signature{Ret(FollowToAny(0)).VarArgs(AnySlot(0), AnySlot(0))},
}

var testAbs = &FunctionDefinition{
	Name: "abs",
	Signatures: []Signature{
		makeTestSignature(types.Int, types.Int),
		makeTestSignature(types.Float, types.Float),
		makeTestSignature(types.Decimal, types.Decimal),
	},
}

func intVar(idx int) *IndexedVar { return NewTypedOrdinalReference(idx, types.Int) }

func TestNewFuncExprArity(t *testing.T) {
	for _, n := range []int{1, 2} {
		exprs := make([]TypedExpr, n)
		for i := range exprs {
			exprs[i] = intVar(i)
		}
		_, err := NewFuncExpr(testCollectSet, false, exprs...)
		require.NoError(t, err)
	}
	for _, n := range []int{0, 3} {
		exprs := make([]TypedExpr, n)
		for i := range exprs {
			exprs[i] = intVar(i)
		}
		_, err := NewFuncExpr(testCollectSet, false, exprs...)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrArityMismatch))
		require.True(t, errors.IsAssertionFailure(err))
		require.Contains(t, err.Error(), "collect_set() takes 1 or 2 argument(s)")
	}
	_, err := NewFuncExpr(testGreatest, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "greatest() takes at least 1 argument(s), got 0")
}

func TestFuncExprResolve(t *testing.T) {
	ctx := context.Background()
	testData := []struct {
		name     string
		args     []TypedExpr
		ordinal  int
		retType  *types.T
		expected string
	}{
		{"int column", []TypedExpr{intVar(0)}, 0,
			types.MakeArray(types.Int), "collect_set(@1)"},
		{"string and limit", []TypedExpr{NewDString("a"), NewDInt(5)}, 1,
			types.MakeArray(types.String), "collect_set('a', 5)"},
		{"null limit", []TypedExpr{NewDFloat(1.5), DNull}, 1,
			types.MakeArray(types.Float), "collect_set(1.5, NULL)"},
	}
	for _, d := range testData {
		t.Run(d.name, func(t *testing.T) {
			expr, err := NewFuncExpr(testCollectSet, false, d.args...)
			require.NoError(t, err)
			require.False(t, expr.IsResolved())
			require.Nil(t, expr.ResolvedType())
			require.Equal(t, d.expected, expr.String())

			resolved, err := expr.Resolve(ctx)
			require.NoError(t, err)
			require.NotSame(t, expr, resolved)
			require.False(t, expr.IsResolved(), "receiver was modified")

			sig, ok := resolved.Signature()
			require.True(t, ok)
			require.Equal(t, d.ordinal, sig.Ordinal())
			require.True(t, d.retType.Identical(resolved.ResolvedType()))
			require.Equal(t, testCollectSet.Signatures, resolved.Signatures())
			require.Same(t, testCollectSet, resolved.Definition())

			again, err := resolved.Resolve(ctx)
			require.NoError(t, err)
			require.Same(t, resolved, again)

			other, err := expr.Resolve(ctx)
			require.NoError(t, err)
			otherSig, _ := other.Signature()
			require.True(t, sig.Identical(otherSig))
		})
	}

	expr, err := NewFuncExpr(testCollectSet, false, intVar(0), NewDString("5"))
	require.NoError(t, err)
	_, err = expr.Resolve(ctx)
	require.True(t, errors.Is(err, ErrNoMatchingSignature))
	require.Equal(t, pgcode.UndefinedFunction, pgerror.GetPGCode(err))
}

func TestFuncExprResolveRequiresTypedChildren(t *testing.T) {
	inner, err := NewFuncExpr(testGreatest, false, intVar(0))
	require.NoError(t, err)
	outer, err := NewFuncExpr(testCollectSet, false, inner)
	require.NoError(t, err)
	_, err = outer.Resolve(context.Background())
	require.True(t, errors.IsAssertionFailure(err))
}

func TestComputeSignatureRefinement(t *testing.T) {
	def := *testCollectSet
	def.ComputeSignature = func(b BoundSignature) BoundSignature {
		return b.WithReturnType(types.String)
	}
	expr, err := NewFuncExpr(&def, false, intVar(0))
	require.NoError(t, err)
	resolved, err := expr.Resolve(context.Background())
	require.NoError(t, err)
	require.True(t, types.String.Identical(resolved.ResolvedType()))
	sig, _ := resolved.Signature()
	require.Equal(t, 0, sig.Ordinal())

	def.ComputeSignature = func(BoundSignature) BoundSignature { return BoundSignature{} }
	expr, err = NewFuncExpr(&def, false, intVar(0))
	require.NoError(t, err)
	_, err = expr.Resolve(context.Background())
	require.True(t, errors.IsAssertionFailure(err))
}

func TestWithDistinctAndChildren(t *testing.T) {
	ctx := context.Background()
	expr, err := NewFuncExpr(testCollectSet, false, intVar(0))
	require.NoError(t, err)
	expr, err = expr.Resolve(ctx)
	require.NoError(t, err)

	distinct, err := expr.WithDistinctAndChildren(true, expr.exprs)
	require.NoError(t, err)
	require.True(t, distinct.Distinct())
	require.False(t, expr.Distinct())
	require.False(t, distinct.IsResolved())
	require.Same(t, &expr.exprs[0], &distinct.exprs[0], "unchanged children are shared")
	require.Equal(t, "collect_set(DISTINCT @1)", distinct.String())

	twice, err := distinct.WithDistinctAndChildren(true, distinct.exprs)
	require.NoError(t, err)
	r1, err := distinct.Resolve(ctx)
	require.NoError(t, err)
	r2, err := twice.Resolve(ctx)
	require.NoError(t, err)
	s1, _ := r1.Signature()
	s2, _ := r2.Signature()
	require.True(t, s1.Identical(s2))
	require.Equal(t, r1.Distinct(), r2.Distinct())
	require.Equal(t, r1.String(), r2.String())

	children := TypedExprs{NewDString("x"), NewDInt(3)}
	changed, err := expr.WithDistinctAndChildren(false, children)
	require.NoError(t, err)
	children[0] = intVar(7)
	require.Equal(t, "collect_set('x', 3)", changed.String(), "children are copied")
	changed, err = changed.Resolve(ctx)
	require.NoError(t, err)
	require.True(t, types.MakeArray(types.String).Identical(changed.ResolvedType()))

	_, err = expr.WithDistinctAndChildren(false, TypedExprs{intVar(0), intVar(1), intVar(2)})
	require.True(t, errors.Is(err, ErrArityMismatch))
	require.True(t, errors.IsAssertionFailure(err))
	require.Equal(t, pgcode.Internal, pgerror.GetPGCode(err))
}

func TestResultForEmptyInput(t *testing.T) {
	ctx := context.Background()
	testData := []struct {
		arg      TypedExpr
		retType  *types.T
		expected string
	}{
		{intVar(0), types.MakeArray(types.Int), "ARRAY[]:::INT[]"},
		{NewTypedOrdinalReference(0, types.MakeArray(types.Int)),
			types.MakeArray(types.MakeArray(types.Int)), "ARRAY[]:::INT[][]"},
		{NewDString("a"), types.MakeArray(types.String), "ARRAY[]:::STRING[]"},
	}
	for _, d := range testData {
		t.Run(d.expected, func(t *testing.T) {
			expr, err := NewFuncExpr(testCollectSet, true, d.arg)
			require.NoError(t, err)
			_, err = expr.ResultForEmptyInput()
			require.True(t, errors.IsAssertionFailure(err))

			expr, err = expr.Resolve(ctx)
			require.NoError(t, err)
			res, err := expr.ResultForEmptyInput()
			require.NoError(t, err)
			require.True(t, d.retType.Identical(res.ResolvedType()))
			require.True(t, expr.ResolvedType().Identical(res.ResolvedType()))
			require.Equal(t, d.expected, res.String())
			arr, ok := res.(*DArray)
			require.True(t, ok)
			require.Zero(t, arr.Len())
		})
	}

	abs, err := NewFuncExpr(testAbs, false, intVar(0))
	require.NoError(t, err)
	abs, err = abs.Resolve(ctx)
	require.NoError(t, err)
	_, err = abs.ResultForEmptyInput()
	require.Error(t, err)
	require.Equal(t, pgcode.WrongObjectType, pgerror.GetPGCode(err))

	def := *testCollectSet
	def.EmptyInput = func(*types.T) TypedExpr { return DNull }
	bad, err := NewFuncExpr(&def, false, intVar(0))
	require.NoError(t, err)
	bad, err = bad.Resolve(ctx)
	require.NoError(t, err)
	_, err = bad.ResultForEmptyInput()
	require.True(t, errors.IsAssertionFailure(err))
}

func TestWithCoercedArgs(t *testing.T) {
	ctx := context.Background()
	expr, err := NewFuncExpr(testGreatest, false,
		intVar(0), NewTypedOrdinalReference(1, types.Float))
	require.NoError(t, err)

	_, err = expr.WithCoercedArgs(nil)
	require.True(t, errors.IsAssertionFailure(err))

	expr, err = expr.Resolve(ctx)
	require.NoError(t, err)
	cast := func(arg TypedExpr, target *types.T) (TypedExpr, error) {
		return NewTypedCastExpr(arg, target), nil
	}
	coerced, err := expr.WithCoercedArgs(cast)
	require.NoError(t, err)
	require.Equal(t, "greatest(@1, @2)", expr.String())
	require.Equal(t, "greatest(@1::FLOAT, @2)", coerced.String())
	require.True(t, coerced.IsResolved())
	sig, _ := coerced.Signature()
	require.False(t, sig.NeedsCoercion(0))
	require.True(t, types.Float.Identical(sig.ActualType(0)))

	again, err := coerced.WithCoercedArgs(cast)
	require.NoError(t, err)
	require.Same(t, coerced, again)

	_, err = expr.WithCoercedArgs(func(arg TypedExpr, _ *types.T) (TypedExpr, error) {
		return arg, nil
	})
	require.True(t, errors.IsAssertionFailure(err))
}

type replaceVarVisitor struct {
	idx  int
	with TypedExpr
}

func (v replaceVarVisitor) VisitPre(expr Expr) (bool, Expr) {
	if iv, ok := expr.(*IndexedVar); ok && iv.Idx == v.idx {
		return false, v.with
	}
	return true, expr
}

func (v replaceVarVisitor) VisitPost(expr Expr) Expr { return expr }

func TestFuncExprWalk(t *testing.T) {
	ctx := context.Background()
	inner, err := NewFuncExpr(testAbs, false, intVar(0))
	require.NoError(t, err)
	outer, err := NewFuncExpr(testCollectSet, true, inner, intVar(1))
	require.NoError(t, err)

	typed, err := TypeCheck(ctx, outer)
	require.NoError(t, err)
	require.True(t, types.MakeArray(types.Int).Identical(typed.ResolvedType()))
	require.False(t, outer.IsResolved())

	same, changed := WalkExpr(replaceVarVisitor{idx: 5, with: NewDInt(1)}, typed)
	require.False(t, changed)
	require.Same(t, typed, same)

	res, changed := WalkExpr(replaceVarVisitor{idx: 0, with: NewDFloat(2.5)}, typed)
	require.True(t, changed)
	require.Equal(t, "collect_set(DISTINCT abs(2.5), @2)", res.String())
	f := res.(*FuncExpr)
	require.False(t, f.IsResolved(), "rewritten nodes must be resolved again")
	require.True(t, typed.(*FuncExpr).IsResolved())
	require.Equal(t, "collect_set(DISTINCT abs(@1), @2)", typed.String())

	retyped, err := TypeCheck(ctx, res)
	require.NoError(t, err)
	require.True(t, types.MakeArray(types.Float).Identical(retyped.ResolvedType()))
	require.True(t, types.Float.Identical(retyped.(*FuncExpr).Child(0).ResolvedType()))
}

func TestTypeCheckError(t *testing.T) {
	inner, err := NewFuncExpr(testAbs, false, NewDString("x"))
	require.NoError(t, err)
	outer, err := NewFuncExpr(testCollectSet, false, inner)
	require.NoError(t, err)
	_, err = TypeCheck(context.Background(), outer)
	require.True(t, errors.Is(err, ErrNoMatchingSignature))
	require.Contains(t, err.Error(), "abs(string)")
}

func TestFuncDispatch(t *testing.T) {
	d := NewFuncDispatch[string, string](func(expr *FuncExpr, prefix string) (string, error) {
		return prefix + "default " + expr.Name(), nil
	}).On(func(expr *FuncExpr, prefix string) (string, error) {
		return prefix + "set " + expr.Name(), nil
	}, "collect_set", "collect_list")

	cs, err := NewFuncExpr(testCollectSet, false, intVar(0))
	require.NoError(t, err)
	abs, err := NewFuncExpr(testAbs, false, intVar(0))
	require.NoError(t, err)

	res, err := d.Dispatch(cs, "> ")
	require.NoError(t, err)
	require.Equal(t, "> set collect_set", res)
	res, err = d.Dispatch(abs, "> ")
	require.NoError(t, err)
	require.Equal(t, "> default abs", res)
	require.True(t, d.Handles("collect_list"))
	require.False(t, d.Handles("abs"))

	require.Panics(t, func() {
		d.On(func(*FuncExpr, string) (string, error) { return "", nil }, "collect_set")
	})
}

func TestCatalog(t *testing.T) {
	c, err := NewCatalog(testCollectSet, testAbs)
	require.NoError(t, err)
	require.Equal(t, []string{"abs", "collect_set"}, c.Names())

	for _, name := range []string{"collect_set", "COLLECT_SET", "pg_catalog.Collect_Set"} {
		d, err := c.ResolveFunction(name)
		require.NoError(t, err, name)
		require.Same(t, testCollectSet, d)
	}

	_, err = c.ResolveFunction("crdb_internal.abs")
	require.EqualError(t, err, "unknown function: crdb_internal.abs()")
	require.Equal(t, pgcode.UndefinedFunction, pgerror.GetPGCode(err))
	_, err = c.ResolveFunction("nope")
	require.EqualError(t, err, "unknown function: nope()")
	_, err = c.ResolveFunction("a.b.c")
	require.Equal(t, pgcode.Syntax, pgerror.GetPGCode(err))

	extended, err := c.With(testGreatest)
	require.NoError(t, err)
	require.Equal(t, []string{"abs", "collect_set", "greatest"}, extended.Names())
	_, ok := c.Lookup("greatest")
	require.False(t, ok, "extending a catalog must not modify it")
	require.Same(t, testGreatest, extended.MustLookup("greatest"))
	require.Panics(t, func() { c.MustLookup("greatest") })

	_, err = extended.With(testAbs)
	require.Equal(t, pgcode.InvalidFunctionDefinition, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "function abs() is already defined")

	invalid := &FunctionDefinition{
		Name:       "bad",
		Signatures: []Signature{Ret(FollowToAny(0)).Args(Exactly(types.Int))},
	}
	_, err = c.With(invalid)
	require.Equal(t, pgcode.InvalidFunctionDefinition, pgerror.GetPGCode(err))
	require.Contains(t, err.Error(), "follow#0 has no matching any#0 argument")

	expr, err := c.NewFuncExpr("COLLECT_SET", true, intVar(0))
	require.NoError(t, err)
	require.Equal(t, "collect_set(DISTINCT @1)", expr.String())
	_, err = c.NewFuncExpr("abs", false)
	require.True(t, errors.Is(err, ErrArityMismatch))
}

func TestFunctionDefinitionValidate(t *testing.T) {
	testData := []struct {
		def *FunctionDefinition
		err string
	}{
		{testCollectSet, ""},
		{testGreatest, ""},
		{&FunctionDefinition{}, "function has no name"},
		{&FunctionDefinition{Name: "Abs", Signatures: testAbs.Signatures},
			`function name "Abs" is not lower case`},
		{&FunctionDefinition{Name: "f"}, "f() declares no signatures"},
		{&FunctionDefinition{
			Name:       "f",
			Signatures: testAbs.Signatures,
			EmptyInput: func(*types.T) TypedExpr { return DNull },
		}, "f() is not an aggregate but declares an empty-input value"},
	}
	for _, d := range testData {
		err := d.def.Validate()
		if d.err == "" {
			require.NoError(t, err)
			continue
		}
		require.EqualError(t, err, d.err)
	}
}
