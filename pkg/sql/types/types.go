// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/lib/pq/oid"
)

// T is an instance of a SQL scalar or array type. Scalar types are
// singletons which can be compared with ==, but array types are allocated
// on demand and must be compared with Identical.
//
// A T is immutable once constructed, so it can be shared freely between
// goroutines.
type T struct {
	family Family
	oid    oid.Oid
	// arrayContents is the element type of an ArrayFamily type, and nil
	// otherwise.
	arrayContents *T
}

// Family specifies a group of types that are compatible with one another.
type Family int32

const (
	// UnknownFamily is the family of the NULL literal. A NULL is implicitly
	// castable to every other type.
	UnknownFamily Family = iota
	// BoolFamily is the family of boolean true/false types.
	BoolFamily
	// IntFamily is the family of signed integer types.
	IntFamily
	// FloatFamily is the family of base-2 floating-point types.
	FloatFamily
	// DecimalFamily is the family of base-10 arbitrary-precision types.
	DecimalFamily
	// StringFamily is the family of character string types.
	StringFamily
	// BytesFamily is the family of binary string types.
	BytesFamily
	// DateFamily is the family of calendar date types.
	DateFamily
	// TimestampFamily is the family of date and time types without a
	// time zone.
	TimestampFamily
	// IntervalFamily is the family of duration types.
	IntervalFamily
	// ArrayFamily is the family of one-dimensional arrays. The element type
	// is carried by the T.
	ArrayFamily
)

var familyNames = [...]string{
	UnknownFamily:   "unknown",
	BoolFamily:      "bool",
	IntFamily:       "int",
	FloatFamily:     "float",
	DecimalFamily:   "decimal",
	StringFamily:    "string",
	BytesFamily:     "bytes",
	DateFamily:      "date",
	TimestampFamily: "timestamp",
	IntervalFamily:  "interval",
	ArrayFamily:     "array",
}

// String implements the fmt.Stringer interface.
func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return "Family(" + strconv.Itoa(int(f)) + ")"
	}
	return familyNames[f]
}

// SafeValue implements the redact.SafeValue interface.
func (Family) SafeValue() {}

var (
	// Unknown is the type of an expression that statically evaluates to
	// NULL.
	Unknown = &T{family: UnknownFamily, oid: oid.T_unknown}
	// Bool is the type of a boolean true/false value.
	Bool = &T{family: BoolFamily, oid: oid.T_bool}
	// Int is the type of a 64-bit signed integer.
	Int = &T{family: IntFamily, oid: oid.T_int8}
	// Float is the type of a 64-bit base-2 floating-point number.
	Float = &T{family: FloatFamily, oid: oid.T_float8}
	// Decimal is the type of a base-10 floating-point number with
	// arbitrary precision.
	Decimal = &T{family: DecimalFamily, oid: oid.T_numeric}
	// String is the type of a Unicode string.
	String = &T{family: StringFamily, oid: oid.T_text}
	// Bytes is the type of a list of raw byte values.
	Bytes = &T{family: BytesFamily, oid: oid.T_bytea}
	// Date is the type of a value specifying year, month, day.
	Date = &T{family: DateFamily, oid: oid.T_date}
	// Timestamp is the type of a value specifying year, month, day, hour,
	// minute, and second, but with no associated time zone.
	Timestamp = &T{family: TimestampFamily, oid: oid.T_timestamp}
	// Interval is the type of a span of time.
	Interval = &T{family: IntervalFamily, oid: oid.T_interval}
)

// Scalar contains all types that meet this criteria:
//
//  1. Scalar type (no ArrayFamily types).
//  2. Non-ambiguous type (no UnknownFamily).
var Scalar = []*T{
	Bool,
	Int,
	Float,
	Decimal,
	String,
	Bytes,
	Date,
	Timestamp,
	Interval,
}

// MakeArray constructs a new instance of an ArrayFamily type with the given
// element type.
func MakeArray(typ *T) *T {
	arrOid, ok := oidToArrayOid[typ.oid]
	if !ok {
		arrOid = oid.T_anyarray
	}
	return &T{family: ArrayFamily, oid: arrOid, arrayContents: typ}
}

// Family specifies a group of types that are compatible with one another.
func (t *T) Family() Family { return t.family }

// Oid returns the type's Postgres Object ID.
func (t *T) Oid() oid.Oid { return t.oid }

// ArrayContents returns the type of array elements. This is nil for
// non-array types.
func (t *T) ArrayContents() *T {
	if t.family != ArrayFamily {
		panic(errors.AssertionFailedf("ArrayContents called on type with family %s", t.family))
	}
	return t.arrayContents
}

// IsNumeric returns true iff this type is an int, float or decimal.
func (t *T) IsNumeric() bool {
	switch t.family {
	case IntFamily, FloatFamily, DecimalFamily:
		return true
	}
	return false
}

// Identical returns true if every field in this ID is exactly the same as
// every corresponding field in the given type. Array types are compared
// structurally.
func (t *T) Identical(other *T) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.family != other.family {
		return false
	}
	if t.family == ArrayFamily {
		return t.arrayContents.Identical(other.arrayContents)
	}
	return t.oid == other.oid
}

// Name returns a single word description of the type that describes it
// succinctly, but without all the details, such as width, locale, etc.
func (t *T) Name() string {
	if t.family == ArrayFamily {
		return t.arrayContents.Name() + "[]"
	}
	return t.family.String()
}

// SQLString returns the CockroachDB native SQL string that can be used to
// reproduce the type via parsing the string as a type.
func (t *T) SQLString() string {
	return strings.ToUpper(t.Name())
}

// String returns the name of the type, similar to the Name method.
func (t *T) String() string {
	return t.Name()
}

// SafeFormat implements the redact.SafeFormatter interface. Type names are
// never considered sensitive.
func (t *T) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(t.Name()))
}

// ParseType parses the name of a type, as produced by Name or one of its
// Postgres aliases, into a *T. Array types are spelled with a trailing
// "[]".
func ParseType(s string) (*T, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(name, "[]") {
		elem, err := ParseType(strings.TrimSuffix(name, "[]"))
		if err != nil {
			return nil, err
		}
		return MakeArray(elem), nil
	}
	if typ, ok := typeNames[name]; ok {
		return typ, nil
	}
	return nil, errors.Newf("type %q does not exist", redact.SafeString(s))
}

var typeNames = map[string]*T{
	"unknown":   Unknown,
	"null":      Unknown,
	"bool":      Bool,
	"boolean":   Bool,
	"int":       Int,
	"int8":      Int,
	"integer":   Int,
	"bigint":    Int,
	"float":     Float,
	"float8":    Float,
	"double":    Float,
	"decimal":   Decimal,
	"numeric":   Decimal,
	"string":    String,
	"text":      String,
	"varchar":   String,
	"bytes":     Bytes,
	"bytea":     Bytes,
	"date":      Date,
	"timestamp": Timestamp,
	"interval":  Interval,
}
