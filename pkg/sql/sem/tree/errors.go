// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgcode"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgerror"
	"github.com/sqlfront/funcsig/pkg/sql/types"
)

var (
	// ErrNoMatchingSignature is reported when none of a function's
	// signatures accept the actual argument types.
	ErrNoMatchingSignature = errors.New("no matching signature")
	// ErrAmbiguousSlotBinding is reported when the arguments bound to one
	// slot have no common supertype. It only ever rejects a single
	// candidate.
	ErrAmbiguousSlotBinding = errors.New("ambiguous slot binding")
	// ErrArityMismatch is reported when a function node is built with an
	// argument count no signature accepts.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrIllegalCoercion is reported when an argument cannot be cast to the
	// type its bound signature requires.
	ErrIllegalCoercion = errors.New("illegal coercion")
)

func newAmbiguousSlotBindingError(idx SlotIdx, a, b *types.T) error {
	err := pgerror.Newf(pgcode.DatatypeMismatch,
		"arguments declared any#%d are not all alike", idx)
	err = errors.WithDetailf(err, "%s versus %s", a, b)
	return errors.Mark(err, ErrAmbiguousSlotBinding)
}

func newNoMatchingSignatureError(
	name string, sigs []Signature, argTypes []*types.T, reasons []string,
) error {
	err := pgerror.Newf(pgcode.UndefinedFunction, "unknown signature: %s(%s)",
		redact.SafeString(name), redact.SafeString(typesString(argTypes)))
	if len(reasons) > 0 {
		err = errors.WithDetail(err, strings.Join(reasons, "\n"))
	}
	if len(sigs) > 0 {
		var b strings.Builder
		b.WriteString("candidates are:")
		for _, s := range sigs {
			b.WriteString("\n")
			b.WriteString(name)
			b.WriteString(s.String())
		}
		err = errors.WithHint(err, b.String())
	}
	return errors.Mark(err, ErrNoMatchingSignature)
}

func newArityMismatchError(def *FunctionDefinition, n int) error {
	return errors.Mark(errors.AssertionFailedf(
		"%s() takes %s argument(s), got %d",
		redact.SafeString(def.Name), redact.SafeString(def.arityString()), n),
		ErrArityMismatch)
}

// NewIllegalCoercionError reports that expr, of type from, cannot be
// coerced to the type to.
func NewIllegalCoercionError(expr Expr, from, to *types.T) error {
	err := pgerror.Newf(pgcode.CannotCoerce, "cannot coerce %s of type %s to %s",
		expr.String(), from, to)
	return errors.Mark(err, ErrIllegalCoercion)
}

// NewUnknownFunctionError reports a function name absent from a catalog.
func NewUnknownFunctionError(name string) error {
	return pgerror.Newf(pgcode.UndefinedFunction, "unknown function: %s()", name)
}

func typesString(typs []*types.T) string {
	var b strings.Builder
	for i, t := range typs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	return b.String()
}
