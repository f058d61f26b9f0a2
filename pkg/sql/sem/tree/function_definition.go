// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sqlfront/funcsig/pkg/sql/types"
)

// FunctionClass specifies the class of the builtin function.
type FunctionClass int

const (
	// NormalClass is a standard builtin function.
	NormalClass FunctionClass = iota
	// AggregateClass is a builtin aggregate function.
	AggregateClass
)

var functionClassNames = [...]string{
	NormalClass:    "normal",
	AggregateClass: "aggregate",
}

// String implements the fmt.Stringer interface.
func (c FunctionClass) String() string {
	if c < 0 || int(c) >= len(functionClassNames) {
		return fmt.Sprintf("FunctionClass(%d)", int(c))
	}
	return functionClassNames[c]
}

// SafeValue implements the redact.SafeValue interface.
func (FunctionClass) SafeValue() {}

// ParseFunctionClass is the inverse of FunctionClass.String.
func ParseFunctionClass(s string) (FunctionClass, error) {
	for c, name := range functionClassNames {
		if strings.EqualFold(s, name) {
			return FunctionClass(c), nil
		}
	}
	return 0, errors.Newf("unknown function class %q", s)
}

// FunctionProperties defines the properties of the builtin functions that
// are common across all overloads.
type FunctionProperties struct {
	// Class is the kind of built-in function (normal/aggregate).
	Class FunctionClass
	// Category is used to generate documentation strings.
	Category string
	// Info is a description of the function.
	Info string
}

// FunctionDefinition is the catalog entry of a function: its name, its
// declared signatures in priority order, and the hooks refining what the
// generic machinery computes for it.
type FunctionDefinition struct {
	// Name is the lower-case name of the function.
	Name string
	FunctionProperties
	// Signatures is the set of overloads of the function. The first one
	// which binds to a call's argument types wins.
	Signatures []Signature
	// ComputeSignature, if set, refines the signature bound by the
	// resolver, e.g. to derive a return type from an argument type. It
	// must not change the number of arguments.
	ComputeSignature func(BoundSignature) BoundSignature
	// EmptyInput, if set, returns the result of the aggregate over zero
	// input rows. The returned expression must be of type retType.
	EmptyInput func(retType *types.T) TypedExpr
}

// String implements the fmt.Stringer interface.
func (fd *FunctionDefinition) String() string { return fd.Name }

// Validate checks that the definition is well formed. Catalogs refuse
// definitions which fail validation.
func (fd *FunctionDefinition) Validate() error {
	if fd.Name == "" {
		return errors.New("function has no name")
	}
	if fd.Name != strings.ToLower(fd.Name) {
		return errors.Newf("function name %q is not lower case", fd.Name)
	}
	if len(fd.Signatures) == 0 {
		return errors.Newf("%s() declares no signatures", fd.Name)
	}
	for i, s := range fd.Signatures {
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "%s() signature %d %s", fd.Name, i, s)
		}
	}
	if fd.EmptyInput != nil && fd.Class != AggregateClass {
		return errors.Newf("%s() is not an aggregate but declares an empty-input value", fd.Name)
	}
	return nil
}

// MatchLen returns whether any signature accepts n arguments.
func (fd *FunctionDefinition) MatchLen(n int) bool {
	for _, s := range fd.Signatures {
		if s.MatchLen(n) {
			return true
		}
	}
	return false
}

// arityString describes the argument counts accepted by the function, e.g.
// "1 or 2" or "at least 1".
func (fd *FunctionDefinition) arityString() string {
	var counts []string
	seen := make(map[string]struct{})
	for _, s := range fd.Signatures {
		n, variadic := s.ArgCount()
		c := fmt.Sprint(n)
		if variadic {
			c = "at least " + c
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		counts = append(counts, c)
	}
	return strings.Join(counts, " or ")
}

// refine applies ComputeSignature, if any, to a freshly bound signature.
func (fd *FunctionDefinition) refine(b BoundSignature) (BoundSignature, error) {
	if fd.ComputeSignature == nil {
		return b, nil
	}
	r := fd.ComputeSignature(b)
	if r.NumArgs() != b.NumArgs() || r.ReturnType() == nil {
		return BoundSignature{}, errors.AssertionFailedf(
			"%s() signature refinement changed %s into %s", fd.Name, b, r)
	}
	r.ordinal = b.ordinal
	return r, nil
}
