// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgcode"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgerror"
	"github.com/sqlfront/funcsig/pkg/sql/types"
)

// FuncExpr represents a function call. A FuncExpr is immutable: it starts
// out unresolved, and Resolve returns a new node carrying the bound
// signature.
type FuncExpr struct {
	def      *FunctionDefinition
	distinct bool
	exprs    TypedExprs
	// sig is nil until the node is resolved.
	sig *BoundSignature
}

var _ TypedExpr = &FuncExpr{}

// NewFuncExpr builds an unresolved call of def over exprs. The number of
// arguments must be accepted by at least one signature of def.
func NewFuncExpr(def *FunctionDefinition, distinct bool, exprs ...TypedExpr) (*FuncExpr, error) {
	if !def.MatchLen(len(exprs)) {
		return nil, newArityMismatchError(def, len(exprs))
	}
	return &FuncExpr{
		def:      def,
		distinct: distinct,
		exprs:    append(TypedExprs(nil), exprs...),
	}, nil
}

// Definition returns the definition of the called function.
func (expr *FuncExpr) Definition() *FunctionDefinition { return expr.def }

// Name returns the name of the called function.
func (expr *FuncExpr) Name() string { return expr.def.Name }

// Signatures returns the declared signatures of the called function, in
// priority order.
func (expr *FuncExpr) Signatures() []Signature { return expr.def.Signatures }

// Distinct returns whether the call is an aggregate over distinct values.
func (expr *FuncExpr) Distinct() bool { return expr.distinct }

// NumChildren returns the number of arguments.
func (expr *FuncExpr) NumChildren() int { return len(expr.exprs) }

// Child returns the i-th argument.
func (expr *FuncExpr) Child(i int) TypedExpr { return expr.exprs[i] }

// Children returns a copy of the arguments.
func (expr *FuncExpr) Children() TypedExprs {
	return append(TypedExprs(nil), expr.exprs...)
}

// IsResolved returns whether the node carries a bound signature.
func (expr *FuncExpr) IsResolved() bool { return expr.sig != nil }

// Signature returns the bound signature, and false if the node is not
// resolved.
func (expr *FuncExpr) Signature() (BoundSignature, bool) {
	if expr.sig == nil {
		return BoundSignature{}, false
	}
	return *expr.sig, true
}

// ResolvedType implements the TypedExpr interface. It returns nil for an
// unresolved node.
func (expr *FuncExpr) ResolvedType() *types.T {
	if expr.sig == nil {
		return nil
	}
	return expr.sig.ReturnType()
}

// String implements the fmt.Stringer interface.
func (expr *FuncExpr) String() string {
	var b strings.Builder
	b.WriteString(expr.def.Name)
	b.WriteByte('(')
	if expr.distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(expr.exprs.String())
	b.WriteByte(')')
	return b.String()
}

// Walk implements the Expr interface. A node whose arguments change is
// returned unresolved, since the new arguments may bind differently.
func (expr *FuncExpr) Walk(v Visitor) Expr {
	exprs, changed := walkTypedExprs(v, expr.exprs)
	if !changed {
		return expr
	}
	return &FuncExpr{def: expr.def, distinct: expr.distinct, exprs: exprs}
}

// Resolve binds the node against the signatures of its definition and
// returns the resolved node. Every argument must already be typed. A
// resolved receiver is returned as is.
func (expr *FuncExpr) Resolve(ctx context.Context) (*FuncExpr, error) {
	if expr.sig != nil {
		return expr, nil
	}
	argTypes := expr.exprs.Types()
	for i, t := range argTypes {
		if t == nil {
			return nil, errors.AssertionFailedf("argument %d of %s() has not been type checked",
				i+1, redact.SafeString(expr.def.Name))
		}
	}
	b, err := ResolveSignature(ctx, expr.def.Name, expr.def.Signatures, argTypes)
	if err != nil {
		return nil, err
	}
	if b, err = expr.def.refine(b); err != nil {
		return nil, err
	}
	res := *expr
	res.sig = &b
	return &res, nil
}

// WithDistinctAndChildren returns a new unresolved node calling the same
// function with the given distinct flag and arguments. The argument count
// must be accepted by some signature; anything else is a programming
// error. The argument slice is shared if it is unchanged.
func (expr *FuncExpr) WithDistinctAndChildren(distinct bool, exprs TypedExprs) (*FuncExpr, error) {
	if !expr.def.MatchLen(len(exprs)) {
		return nil, newArityMismatchError(expr.def, len(exprs))
	}
	if !sameExprs(expr.exprs, exprs) {
		exprs = append(TypedExprs(nil), exprs...)
	} else {
		exprs = expr.exprs
	}
	return &FuncExpr{def: expr.def, distinct: distinct, exprs: exprs}, nil
}

// WithCoercedArgs returns a resolved copy of the node in which every
// argument needing coercion has been replaced by coerce(arg, target). The
// bound signature is kept; coerce must return an expression of type
// target.
func (expr *FuncExpr) WithCoercedArgs(
	coerce func(arg TypedExpr, target *types.T) (TypedExpr, error),
) (*FuncExpr, error) {
	if expr.sig == nil {
		return nil, errors.AssertionFailedf("cannot coerce arguments of unresolved %s", expr)
	}
	var exprs TypedExprs
	var actual []*types.T
	for i := range expr.exprs {
		if !expr.sig.NeedsCoercion(i) {
			continue
		}
		target := expr.sig.ArgType(i)
		e, err := coerce(expr.exprs[i], target)
		if err != nil {
			return nil, err
		}
		if !e.ResolvedType().Identical(target) {
			return nil, errors.AssertionFailedf("coercion of %s yielded %s, expected %s",
				expr.exprs[i], e.ResolvedType(), target)
		}
		if exprs == nil {
			exprs = append(TypedExprs(nil), expr.exprs...)
			actual = append([]*types.T(nil), expr.sig.actualTypes...)
		}
		exprs[i] = e
		actual[i] = target
	}
	if exprs == nil {
		return expr, nil
	}
	sig := expr.sig.withActualTypes(actual)
	return &FuncExpr{def: expr.def, distinct: expr.distinct, exprs: exprs, sig: &sig}, nil
}

// ResultForEmptyInput returns the value of the aggregate over zero input
// rows. The result has the node's return type.
func (expr *FuncExpr) ResultForEmptyInput() (TypedExpr, error) {
	if expr.sig == nil {
		return nil, errors.AssertionFailedf("empty-input result of unresolved %s", expr)
	}
	if expr.def.Class != AggregateClass || expr.def.EmptyInput == nil {
		return nil, pgerror.Newf(pgcode.WrongObjectType,
			"%s() has no result for empty input", redact.SafeString(expr.def.Name))
	}
	retType := expr.sig.ReturnType()
	res := expr.def.EmptyInput(retType)
	if !res.ResolvedType().Identical(retType) {
		return nil, errors.AssertionFailedf("%s() empty-input result %s has type %s, expected %s",
			redact.SafeString(expr.def.Name), res, res.ResolvedType(), retType)
	}
	return res, nil
}

func sameExprs(a, b TypedExprs) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
