// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/sqlfront/funcsig/pkg/sql/types"
)

// SlotIdx identifies a polymorphic type slot. Slot indices are scoped to a
// single Signature: slot 0 of one overload is unrelated to slot 0 of
// another overload of the same function.
type SlotIdx uint8

type templateKind uint8

const (
	templateConcrete templateKind = iota
	templateAny
	templateFollowToAny
	templateArray
)

// TypeTemplate is a type position within a Signature. It is either a
// concrete type, a polymorphic slot, or an array of another template.
//
//   - AnySlot(i) accepts any argument type and binds slot i to it.
//   - FollowToAny(i) is not bindable on its own; it stands for whatever
//     slot i was bound to by an AnySlot(i) in the same signature.
//
// The zero value is not a valid template.
type TypeTemplate struct {
	kind templateKind
	typ  *types.T
	slot SlotIdx
	elem *TypeTemplate
}

// Exactly returns a template matching the given concrete type.
func Exactly(typ *types.T) TypeTemplate {
	return TypeTemplate{kind: templateConcrete, typ: typ}
}

// AnySlot returns a template which accepts any type and binds it to the
// given slot.
func AnySlot(idx SlotIdx) TypeTemplate {
	return TypeTemplate{kind: templateAny, slot: idx}
}

// FollowToAny returns a template standing for the type bound to the given
// slot by an AnySlot in the same signature.
func FollowToAny(idx SlotIdx) TypeTemplate {
	return TypeTemplate{kind: templateFollowToAny, slot: idx}
}

// ArrayOf returns a template for an array whose elements match elem. An
// array of a concrete type is itself concrete.
func ArrayOf(elem TypeTemplate) TypeTemplate {
	if elem.kind == templateConcrete && elem.typ != nil {
		return Exactly(types.MakeArray(elem.typ))
	}
	return TypeTemplate{kind: templateArray, elem: &elem}
}

// IsPolymorphic returns true if the template refers to a slot.
func (tt TypeTemplate) IsPolymorphic() bool {
	return tt.kind != templateConcrete
}

// Concrete returns the type matched by a non-polymorphic template.
func (tt TypeTemplate) Concrete() (*types.T, bool) {
	if tt.kind != templateConcrete || tt.typ == nil {
		return nil, false
	}
	return tt.typ, true
}

// IsArray returns true if the template only matches arrays.
func (tt TypeTemplate) IsArray() bool {
	if tt.kind == templateConcrete {
		return tt.typ != nil && tt.typ.Family() == types.ArrayFamily
	}
	return tt.kind == templateArray
}

// String implements the fmt.Stringer interface. The output can be parsed
// back by ParseTypeTemplate.
func (tt TypeTemplate) String() string {
	switch tt.kind {
	case templateAny:
		return "any#" + strconv.Itoa(int(tt.slot))
	case templateFollowToAny:
		return "follow#" + strconv.Itoa(int(tt.slot))
	case templateArray:
		return tt.elem.String() + "[]"
	default:
		if tt.typ == nil {
			return "<invalid>"
		}
		return tt.typ.Name()
	}
}

// SafeFormat implements the redact.SafeFormatter interface.
func (tt TypeTemplate) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(tt.String()))
}

// visitSlots calls fn for every slot referenced by the template.
func (tt TypeTemplate) visitSlots(fn func(kind templateKind, idx SlotIdx)) {
	switch tt.kind {
	case templateAny, templateFollowToAny:
		fn(tt.kind, tt.slot)
	case templateArray:
		tt.elem.visitSlots(fn)
	}
}

func (tt TypeTemplate) validate() error {
	switch tt.kind {
	case templateConcrete:
		if tt.typ == nil {
			return errors.New("template has no type")
		}
	case templateArray:
		if tt.elem == nil {
			return errors.New("array template has no element")
		}
		return tt.elem.validate()
	}
	return nil
}

// bindAny records the slot bindings implied by matching actual against the
// template. Only AnySlot positions bind; a slot bound more than once is
// unified to the common supertype of its bindings.
func (tt TypeTemplate) bindAny(actual *types.T, b slotBindings) error {
	switch tt.kind {
	case templateAny:
		return b.bind(tt.slot, actual)
	case templateArray:
		switch actual.Family() {
		case types.UnknownFamily:
			// NULL matches any array without constraining the element.
			return nil
		case types.ArrayFamily:
			return tt.elem.bindAny(actual.ArrayContents(), b)
		}
		return errors.Newf("%s is not an array", actual)
	}
	return nil
}

// instantiate substitutes the bound slot types into the template. Slots
// that were never bound (e.g. only seen with NULL arguments) instantiate to
// types.Unknown.
func (tt TypeTemplate) instantiate(b slotBindings) *types.T {
	switch tt.kind {
	case templateAny, templateFollowToAny:
		if typ, ok := b[tt.slot]; ok {
			return typ
		}
		return types.Unknown
	case templateArray:
		return types.MakeArray(tt.elem.instantiate(b))
	default:
		return tt.typ
	}
}

// ParseTypeTemplate parses the output of TypeTemplate.String: a type name
// (see types.ParseType), "any#N", "follow#N", or any of these followed by
// one or more "[]".
func ParseTypeTemplate(s string) (TypeTemplate, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(s, "[]") {
		elem, err := ParseTypeTemplate(strings.TrimSuffix(s, "[]"))
		if err != nil {
			return TypeTemplate{}, err
		}
		return ArrayOf(elem), nil
	}
	for prefix, mk := range map[string]func(SlotIdx) TypeTemplate{
		"any#":    AnySlot,
		"follow#": FollowToAny,
	} {
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		idx, err := strconv.ParseUint(strings.TrimPrefix(s, prefix), 10, 8)
		if err != nil {
			return TypeTemplate{}, errors.Wrapf(err, "invalid slot in type template %q", s)
		}
		return mk(SlotIdx(idx)), nil
	}
	typ, err := types.ParseType(s)
	if err != nil {
		return TypeTemplate{}, err
	}
	return Exactly(typ), nil
}

// slotBindings maps slots to the concrete types bound to them during a
// single binding attempt.
type slotBindings map[SlotIdx]*types.T

func (b slotBindings) bind(idx SlotIdx, actual *types.T) error {
	prev, ok := b[idx]
	if !ok {
		b[idx] = actual
		return nil
	}
	sup, ok := types.CommonSupertype(prev, actual)
	if !ok {
		return newAmbiguousSlotBindingError(idx, prev, actual)
	}
	b[idx] = sup
	return nil
}
