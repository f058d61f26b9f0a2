// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"
	"strings"

	"github.com/sqlfront/funcsig/pkg/sql/types"
)

// Expr represents an expression.
type Expr interface {
	fmt.Stringer
	// Walk recursively walks all children using WalkExpr. If any children
	// are changed, it returns a copy of this node updated to point to the
	// new children. Otherwise the receiver is returned.
	Walk(Visitor) Expr
}

// TypedExpr represents an expression whose type is known.
type TypedExpr interface {
	Expr
	// ResolvedType provides the type of the TypedExpr, or nil if the
	// expression has not been type checked yet.
	ResolvedType() *types.T
}

// TypedExprs represents a list of typed expressions.
type TypedExprs []TypedExpr

// String implements the fmt.Stringer interface.
func (l TypedExprs) String() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	return b.String()
}

// Types returns the resolved types of the expressions.
func (l TypedExprs) Types() []*types.T {
	typs := make([]*types.T, len(l))
	for i, e := range l {
		typs[i] = e.ResolvedType()
	}
	return typs
}

// IndexedVar is a reference to an input column of known type, printed as
// @1, @2, etc.
type IndexedVar struct {
	Idx int
	Typ *types.T
}

var _ TypedExpr = &IndexedVar{}

// NewTypedOrdinalReference returns a new IndexedVar with the given index
// and type.
func NewTypedOrdinalReference(idx int, typ *types.T) *IndexedVar {
	return &IndexedVar{Idx: idx, Typ: typ}
}

// String implements the fmt.Stringer interface.
func (v *IndexedVar) String() string { return fmt.Sprintf("@%d", v.Idx+1) }

// Walk implements the Expr interface.
func (v *IndexedVar) Walk(_ Visitor) Expr { return v }

// ResolvedType implements the TypedExpr interface.
func (v *IndexedVar) ResolvedType() *types.T { return v.Typ }

// CastExpr represents a CAST(expr AS type) expression.
type CastExpr struct {
	Expr TypedExpr
	Type *types.T
}

var _ TypedExpr = &CastExpr{}

// NewTypedCastExpr returns a new CastExpr of expr to typ.
func NewTypedCastExpr(expr TypedExpr, typ *types.T) *CastExpr {
	return &CastExpr{Expr: expr, Type: typ}
}

// String implements the fmt.Stringer interface.
func (expr *CastExpr) String() string {
	return fmt.Sprintf("%s::%s", expr.Expr, expr.Type.SQLString())
}

// Walk implements the Expr interface.
func (expr *CastExpr) Walk(v Visitor) Expr {
	e, changed := WalkExpr(v, expr.Expr)
	if !changed {
		return expr
	}
	exprCopy := *expr
	exprCopy.Expr = mustBeTyped(e)
	return &exprCopy
}

// ResolvedType implements the TypedExpr interface.
func (expr *CastExpr) ResolvedType() *types.T { return expr.Type }

// MakeTypedNull returns a NULL of the given type. NULL of type unknown is
// DNull itself; any other type wraps DNull in a cast.
func MakeTypedNull(typ *types.T) TypedExpr {
	if typ.Family() == types.UnknownFamily {
		return DNull
	}
	return NewTypedCastExpr(DNull, typ)
}
