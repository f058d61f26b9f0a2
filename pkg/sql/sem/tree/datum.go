// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgcode"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgerror"
	"github.com/sqlfront/funcsig/pkg/sql/types"
)

// Datum represents a SQL value.
type Datum interface {
	TypedExpr
	// IsNull returns whether the datum is NULL.
	IsNull() bool
}

// Datums is a slice of Datum values.
type Datums []Datum

var (
	_ Datum = NewDInt(0)
	_ Datum = NewDFloat(0)
	_ Datum = &DDecimal{}
	_ Datum = NewDString("")
	_ Datum = NewDBytes("")
	_ Datum = DBoolTrue
	_ Datum = &DArray{}
	_ Datum = DNull
)

// DInt is the INT Datum.
type DInt int64

// NewDInt is a helper routine to create a *DInt initialized from its
// argument.
func NewDInt(d DInt) *DInt { return &d }

// ResolvedType implements the TypedExpr interface.
func (*DInt) ResolvedType() *types.T { return types.Int }

// IsNull implements the Datum interface.
func (*DInt) IsNull() bool { return false }

// Walk implements the Expr interface.
func (d *DInt) Walk(_ Visitor) Expr { return d }

// String implements the fmt.Stringer interface.
func (d *DInt) String() string { return strconv.FormatInt(int64(*d), 10) }

// DFloat is the FLOAT Datum.
type DFloat float64

// NewDFloat is a helper routine to create a *DFloat initialized from its
// argument.
func NewDFloat(d DFloat) *DFloat { return &d }

// ResolvedType implements the TypedExpr interface.
func (*DFloat) ResolvedType() *types.T { return types.Float }

// IsNull implements the Datum interface.
func (*DFloat) IsNull() bool { return false }

// Walk implements the Expr interface.
func (d *DFloat) Walk(_ Visitor) Expr { return d }

// String implements the fmt.Stringer interface.
func (d *DFloat) String() string {
	s := strconv.FormatFloat(float64(*d), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// DDecimal is the DECIMAL Datum.
type DDecimal struct {
	apd.Decimal
}

// ParseDDecimal parses and returns the *DDecimal Datum value represented by
// the provided string, or an error if parsing is unsuccessful.
func ParseDDecimal(s string) (*DDecimal, error) {
	d := &DDecimal{}
	if _, _, err := d.SetString(strings.TrimSpace(s)); err != nil {
		return nil, pgerror.Wrapf(err, pgcode.InvalidParameterValue,
			"could not parse %q as type decimal", s)
	}
	return d, nil
}

// ResolvedType implements the TypedExpr interface.
func (*DDecimal) ResolvedType() *types.T { return types.Decimal }

// IsNull implements the Datum interface.
func (*DDecimal) IsNull() bool { return false }

// Walk implements the Expr interface.
func (d *DDecimal) Walk(_ Visitor) Expr { return d }

// String implements the fmt.Stringer interface.
func (d *DDecimal) String() string { return d.Decimal.String() }

// DString is the STRING Datum.
type DString string

// NewDString is a helper routine to create a *DString initialized from its
// argument.
func NewDString(d string) *DString {
	r := DString(d)
	return &r
}

// ResolvedType implements the TypedExpr interface.
func (*DString) ResolvedType() *types.T { return types.String }

// IsNull implements the Datum interface.
func (*DString) IsNull() bool { return false }

// Walk implements the Expr interface.
func (d *DString) Walk(_ Visitor) Expr { return d }

// String implements the fmt.Stringer interface.
func (d *DString) String() string {
	return "'" + strings.ReplaceAll(string(*d), "'", "''") + "'"
}

// DBytes is the BYTES Datum.
type DBytes string

// NewDBytes is a helper routine to create a *DBytes initialized from its
// argument.
func NewDBytes(d DBytes) *DBytes { return &d }

// ResolvedType implements the TypedExpr interface.
func (*DBytes) ResolvedType() *types.T { return types.Bytes }

// IsNull implements the Datum interface.
func (*DBytes) IsNull() bool { return false }

// Walk implements the Expr interface.
func (d *DBytes) Walk(_ Visitor) Expr { return d }

// String implements the fmt.Stringer interface.
func (d *DBytes) String() string { return fmt.Sprintf(`'\x%x'`, string(*d)) }

// DBool is the boolean Datum.
type DBool bool

var (
	// DBoolTrue is a pointer to the DBool(true) value.
	DBoolTrue = func() *DBool { d := DBool(true); return &d }()
	// DBoolFalse is a pointer to the DBool(false) value.
	DBoolFalse = func() *DBool { d := DBool(false); return &d }()
)

// MakeDBool converts its argument to a *DBool.
func MakeDBool(d DBool) *DBool {
	if d {
		return DBoolTrue
	}
	return DBoolFalse
}

// ResolvedType implements the TypedExpr interface.
func (*DBool) ResolvedType() *types.T { return types.Bool }

// IsNull implements the Datum interface.
func (*DBool) IsNull() bool { return false }

// Walk implements the Expr interface.
func (d *DBool) Walk(_ Visitor) Expr { return d }

// String implements the fmt.Stringer interface.
func (d *DBool) String() string { return strconv.FormatBool(bool(*d)) }

// DArray is the array Datum. Any Datum inserted into a DArray is treated
// as text during serialization.
type DArray struct {
	ParamTyp *types.T
	Array    Datums
	HasNulls bool
}

// NewDArray returns a DArray containing elements of the specified type.
func NewDArray(paramTyp *types.T) *DArray {
	return &DArray{ParamTyp: paramTyp}
}

// ResolvedType implements the TypedExpr interface.
func (d *DArray) ResolvedType() *types.T { return types.MakeArray(d.ParamTyp) }

// IsNull implements the Datum interface.
func (*DArray) IsNull() bool { return false }

// Walk implements the Expr interface.
func (d *DArray) Walk(_ Visitor) Expr { return d }

// Len returns the length of the Datum array.
func (d *DArray) Len() int { return len(d.Array) }

// Append appends a Datum to the array, whose parameterized type must be
// consistent with the type of the Datum.
func (d *DArray) Append(v Datum) error {
	if v.IsNull() {
		d.HasNulls = true
	} else if !v.ResolvedType().Identical(d.ParamTyp) {
		return errors.AssertionFailedf(
			"cannot append %s to array containing %s", v.ResolvedType(), d.ParamTyp)
	}
	d.Array = append(d.Array, v)
	return nil
}

// String implements the fmt.Stringer interface. An empty array carries its
// type annotation since its type cannot be inferred from its elements.
func (d *DArray) String() string {
	if len(d.Array) == 0 {
		return "ARRAY[]:::" + d.ResolvedType().SQLString()
	}
	var b strings.Builder
	b.WriteString("ARRAY[")
	for i, v := range d.Array {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

type dNull struct{}

// DNull is the NULL Datum.
var DNull Datum = dNull{}

// ResolvedType implements the TypedExpr interface.
func (dNull) ResolvedType() *types.T { return types.Unknown }

// IsNull implements the Datum interface.
func (dNull) IsNull() bool { return true }

// Walk implements the Expr interface.
func (d dNull) Walk(_ Visitor) Expr { return d }

// String implements the fmt.Stringer interface.
func (dNull) String() string { return "NULL" }
