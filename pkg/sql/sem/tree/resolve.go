// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"
	"fmt"

	"github.com/cockroachdb/logtags"
	"github.com/sqlfront/funcsig/pkg/sql/types"
	"github.com/sqlfront/funcsig/pkg/util/log"
)

// ResolveSignature picks the signature of the named function which applies
// to the given argument types. Candidates are tried in declared order and
// the first one that binds wins; later candidates are not considered even
// if they would need fewer coercions.
//
// If no candidate binds, the returned error is marked with
// ErrNoMatchingSignature and carries each candidate's rejection reason as
// its detail.
func ResolveSignature(
	ctx context.Context, name string, sigs []Signature, argTypes []*types.T,
) (BoundSignature, error) {
	ctx = logtags.AddTag(ctx, "fn", name)
	var reasons []string
	for i := range sigs {
		b, err := sigs[i].Bind(argTypes)
		if err != nil {
			if log.V(3) {
				log.VEventf(ctx, 3, "candidate %d %s rejected: %v", i, sigs[i], err)
			}
			reasons = append(reasons, fmt.Sprintf("%s%s: %v", name, sigs[i], err))
			continue
		}
		b.ordinal = i
		log.VEventf(ctx, 2, "(%s) matched candidate %d %s as %s",
			typesString(argTypes), i, sigs[i], b)
		return b, nil
	}
	return BoundSignature{}, newNoMatchingSignatureError(name, sigs, argTypes, reasons)
}

// BoundSignature is the result of binding a Signature to concrete argument
// types: the concrete return type, the type each argument must be coerced
// to, and the argument types it was bound against. It is immutable.
type BoundSignature struct {
	ordinal     int
	argTypes    []*types.T
	actualTypes []*types.T
	retType     *types.T
}

// Ordinal returns the index of the declared signature which was bound.
func (b BoundSignature) Ordinal() int { return b.ordinal }

// ReturnType returns the concrete return type.
func (b BoundSignature) ReturnType() *types.T { return b.retType }

// NumArgs returns the number of arguments the signature was bound against.
func (b BoundSignature) NumArgs() int { return len(b.argTypes) }

// ArgType returns the type the i-th argument must be coerced to.
func (b BoundSignature) ArgType(i int) *types.T { return b.argTypes[i] }

// ActualType returns the type of the i-th argument at binding time.
func (b BoundSignature) ActualType(i int) *types.T { return b.actualTypes[i] }

// NeedsCoercion returns true if the i-th argument must be cast before it
// can be passed to the function.
func (b BoundSignature) NeedsCoercion(i int) bool {
	return !b.actualTypes[i].Identical(b.argTypes[i])
}

// WithReturnType returns a copy of the signature with its return type
// replaced. It is the building block of FunctionDefinition.ComputeSignature.
func (b BoundSignature) WithReturnType(typ *types.T) BoundSignature {
	b.retType = typ
	return b
}

// withActualTypes returns a copy of the signature whose actual argument
// types are the given ones.
func (b BoundSignature) withActualTypes(typs []*types.T) BoundSignature {
	b.actualTypes = typs
	return b
}

// Identical returns true if both signatures bind the same ordinal to the
// same argument, actual and return types.
func (b BoundSignature) Identical(o BoundSignature) bool {
	if b.ordinal != o.ordinal || len(b.argTypes) != len(o.argTypes) {
		return false
	}
	if !b.retType.Identical(o.retType) {
		return false
	}
	for i := range b.argTypes {
		if !b.argTypes[i].Identical(o.argTypes[i]) ||
			!b.actualTypes[i].Identical(o.actualTypes[i]) {
			return false
		}
	}
	return true
}

// String implements the fmt.Stringer interface, e.g. "(string, int) ->
// string[]".
func (b BoundSignature) String() string {
	return fmt.Sprintf("(%s) -> %s", typesString(b.argTypes), b.retType)
}
