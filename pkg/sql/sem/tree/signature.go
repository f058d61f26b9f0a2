// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/sqlfront/funcsig/pkg/sql/types"
)

// Signature is one declared overload of a function: the templates of its
// arguments and of its return type. If Variadic is set, the last argument
// template may repeat zero or more times.
type Signature struct {
	ArgTypes   []TypeTemplate
	ReturnType TypeTemplate
	Variadic   bool
}

// Ret starts building a Signature returning the given template.
//
//	tree.Ret(tree.ArrayOf(tree.FollowToAny(0))).Args(tree.AnySlot(0))
func Ret(ret TypeTemplate) Signature {
	return Signature{ReturnType: ret}
}

// Args returns a copy of the signature with the given fixed arguments.
func (s Signature) Args(args ...TypeTemplate) Signature {
	s.ArgTypes = append([]TypeTemplate(nil), args...)
	s.Variadic = false
	return s
}

// VarArgs returns a copy of the signature with the given arguments, the
// last of which repeats.
func (s Signature) VarArgs(args ...TypeTemplate) Signature {
	s.ArgTypes = append([]TypeTemplate(nil), args...)
	s.Variadic = true
	return s
}

// ArgCount returns the number of fixed arguments and whether the signature
// accepts a variadic tail after them.
func (s Signature) ArgCount() (n int, variadic bool) {
	if s.Variadic {
		return len(s.ArgTypes) - 1, true
	}
	return len(s.ArgTypes), false
}

// MatchLen returns whether a call with l arguments could match the
// signature.
func (s Signature) MatchLen(l int) bool {
	n, variadic := s.ArgCount()
	if variadic {
		return l >= n
	}
	return l == n
}

// GetAt returns the template of the i-th argument of a call. The caller
// must have checked MatchLen.
func (s Signature) GetAt(i int) TypeTemplate {
	if s.Variadic && i >= len(s.ArgTypes)-1 {
		return s.ArgTypes[len(s.ArgTypes)-1]
	}
	return s.ArgTypes[i]
}

// IsPolymorphic returns true if any template of the signature refers to a
// slot.
func (s Signature) IsPolymorphic() bool {
	if s.ReturnType.IsPolymorphic() {
		return true
	}
	for _, a := range s.ArgTypes {
		if a.IsPolymorphic() {
			return true
		}
	}
	return false
}

// Validate checks that the signature is well formed. Every FollowToAny(i)
// requires an AnySlot(i) among the arguments, and the return type cannot
// bind slots.
func (s Signature) Validate() error {
	if s.Variadic && len(s.ArgTypes) == 0 {
		return errors.New("variadic signature has no arguments")
	}
	if err := s.ReturnType.validate(); err != nil {
		return errors.Wrap(err, "return type")
	}
	bound := make(map[SlotIdx]struct{})
	for i, a := range s.ArgTypes {
		if err := a.validate(); err != nil {
			return errors.Wrapf(err, "argument %d", i)
		}
		a.visitSlots(func(kind templateKind, idx SlotIdx) {
			if kind == templateAny {
				bound[idx] = struct{}{}
			}
		})
	}
	var err error
	check := func(kind templateKind, idx SlotIdx) {
		if err != nil {
			return
		}
		if _, ok := bound[idx]; !ok && kind == templateFollowToAny {
			err = errors.Newf("follow#%d has no matching any#%d argument", idx, idx)
		}
	}
	for _, a := range s.ArgTypes {
		a.visitSlots(check)
	}
	s.ReturnType.visitSlots(func(kind templateKind, idx SlotIdx) {
		if err == nil && kind == templateAny {
			err = errors.Newf("return type cannot bind any#%d", idx)
			return
		}
		check(kind, idx)
	})
	return err
}

// String implements the fmt.Stringer interface, e.g.
// "(any#0, int) -> follow#0[]".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range s.ArgTypes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	if s.Variadic {
		b.WriteString("...")
	}
	b.WriteString(") -> ")
	b.WriteString(s.ReturnType.String())
	return b.String()
}

// SafeFormat implements the redact.SafeFormatter interface.
func (s Signature) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(s.String()))
}

// Bind attempts to match the signature against the given argument types.
// AnySlot positions are bound first, unifying repeated slots to their
// common supertype; the remaining positions must then be implicitly
// castable to their instantiated templates.
func (s Signature) Bind(argTypes []*types.T) (BoundSignature, error) {
	if !s.MatchLen(len(argTypes)) {
		n, variadic := s.ArgCount()
		if variadic {
			return BoundSignature{}, errors.Newf(
				"expected at least %d argument(s), got %d", n, len(argTypes))
		}
		return BoundSignature{}, errors.Newf(
			"expected %d argument(s), got %d", n, len(argTypes))
	}
	b := make(slotBindings)
	for i, actual := range argTypes {
		if err := s.GetAt(i).bindAny(actual, b); err != nil {
			return BoundSignature{}, errors.Wrapf(err, "argument %d", i+1)
		}
	}
	targets := make([]*types.T, len(argTypes))
	for i, actual := range argTypes {
		target := s.GetAt(i).instantiate(b)
		if !types.IsImplicitlyCastable(actual, target) {
			return BoundSignature{}, errors.Newf(
				"argument %d: %s is not implicitly castable to %s", i+1, actual, target)
		}
		targets[i] = target
	}
	return BoundSignature{
		argTypes:    targets,
		actualTypes: append([]*types.T(nil), argTypes...),
		retType:     s.ReturnType.instantiate(b),
	}, nil
}
