// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import "github.com/lib/pq/oid"

// CastContext specifies how a given cast can be used.
// A higher value corresponds to a higher strictness.
// Higher value CastContext can use lower value CastContexts.
type CastContext uint8

const (
	_ CastContext = iota
	// CastContextImplicit implies the cast can be set implicitly
	// in any context.
	CastContextImplicit
	// CastContextAssignment implies that the cast can done implicitly
	// in assign contexts (e.g. on UPDATE and INSERT).
	CastContextAssignment
	// CastContextExplicit implies that the cast can only be used
	// in an explicit context.
	CastContextExplicit
)

// String implements the fmt.Stringer interface.
func (c CastContext) String() string {
	switch c {
	case CastContextImplicit:
		return "implicit"
	case CastContextAssignment:
		return "assignment"
	case CastContextExplicit:
		return "explicit"
	default:
		return "invalid"
	}
}

// SafeValue implements the redact.SafeValue interface.
func (CastContext) SafeValue() {}

// castMap defines which oids can be cast to which other oids.
// The map goes from src oid -> target oid -> CastContext.
// Adapted from `pg_cast.dat` from postgres, restricted to the scalar types
// known to this package.
var castMap = map[oid.Oid]map[oid.Oid]CastContext{
	oid.T_bool: {
		oid.T_int8: CastContextExplicit,
		oid.T_text: CastContextAssignment,
	},
	oid.T_int8: {
		oid.T_bool:    CastContextExplicit,
		oid.T_float8:  CastContextImplicit,
		oid.T_numeric: CastContextImplicit,
		oid.T_text:    CastContextAssignment,
	},
	oid.T_float8: {
		oid.T_int8:    CastContextAssignment,
		oid.T_numeric: CastContextAssignment,
		oid.T_text:    CastContextAssignment,
	},
	oid.T_numeric: {
		oid.T_int8:   CastContextAssignment,
		oid.T_float8: CastContextImplicit,
		oid.T_text:   CastContextAssignment,
	},
	oid.T_text: {
		oid.T_bool:      CastContextExplicit,
		oid.T_int8:      CastContextExplicit,
		oid.T_float8:    CastContextExplicit,
		oid.T_numeric:   CastContextExplicit,
		oid.T_bytea:     CastContextExplicit,
		oid.T_date:      CastContextExplicit,
		oid.T_timestamp: CastContextExplicit,
		oid.T_interval:  CastContextExplicit,
	},
	oid.T_bytea: {
		oid.T_text: CastContextExplicit,
	},
	oid.T_date: {
		oid.T_timestamp: CastContextImplicit,
		oid.T_text:      CastContextAssignment,
	},
	oid.T_timestamp: {
		oid.T_date: CastContextAssignment,
		oid.T_text: CastContextAssignment,
	},
	oid.T_interval: {
		oid.T_text: CastContextAssignment,
	},
}

// LookupCast returns the least strict context in which a value of type from
// can be cast to type to, and false if no such cast exists.
//
// NULL can be cast to anything implicitly, and every type can be cast to
// itself implicitly. Arrays cast element-wise in the context of their
// element cast; any array can be cast to a string by assignment.
func LookupCast(from, to *T) (CastContext, bool) {
	if from.Identical(to) || from.Family() == UnknownFamily {
		return CastContextImplicit, true
	}
	if from.Family() == ArrayFamily {
		switch to.Family() {
		case ArrayFamily:
			return LookupCast(from.ArrayContents(), to.ArrayContents())
		case StringFamily:
			return CastContextAssignment, true
		}
		return 0, false
	}
	if to.Family() == ArrayFamily {
		return 0, false
	}
	c, ok := castMap[from.Oid()][to.Oid()]
	return c, ok
}

// IsCastable returns true if a value of type from can be cast to type to in
// the given context or a less strict one.
func IsCastable(from, to *T, ctx CastContext) bool {
	c, ok := LookupCast(from, to)
	return ok && c <= ctx
}

// IsImplicitlyCastable returns true if a value of type from can be used
// wherever a value of type to is expected without an explicit cast.
func IsImplicitlyCastable(from, to *T) bool {
	return IsCastable(from, to, CastContextImplicit)
}

// CommonSupertype returns the narrowest type to which both a and b are
// implicitly castable, and false if the two types have no common supertype.
//
// The result is symmetric: CommonSupertype(a, b) and CommonSupertype(b, a)
// return identical types.
func CommonSupertype(a, b *T) (*T, bool) {
	switch {
	case a.Identical(b):
		return a, true
	case a.Family() == UnknownFamily:
		return b, true
	case b.Family() == UnknownFamily:
		return a, true
	case a.Family() == ArrayFamily && b.Family() == ArrayFamily:
		elem, ok := CommonSupertype(a.ArrayContents(), b.ArrayContents())
		if !ok {
			return nil, false
		}
		return MakeArray(elem), true
	case IsImplicitlyCastable(a, b):
		return b, true
	case IsImplicitlyCastable(b, a):
		return a, true
	}
	return nil, false
}
