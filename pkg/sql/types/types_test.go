// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/redact"
	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestIdentical(t *testing.T) {
	testCases := []struct {
		a, b *T
		ok   bool
	}{
		{Int, Int, true},
		{Int, Float, false},
		{MakeArray(Int), MakeArray(Int), true},
		{MakeArray(Int), MakeArray(String), false},
		{MakeArray(MakeArray(Int)), MakeArray(MakeArray(Int)), true},
		{MakeArray(Int), Int, false},
		{Unknown, Unknown, true},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s/%s", tc.a, tc.b), func(t *testing.T) {
			require.Equal(t, tc.ok, tc.a.Identical(tc.b))
			require.Equal(t, tc.ok, tc.b.Identical(tc.a))
		})
	}
}

func TestMakeArray(t *testing.T) {
	arr := MakeArray(Int)
	require.Equal(t, ArrayFamily, arr.Family())
	require.Equal(t, oid.T__int8, arr.Oid())
	require.Same(t, Int, arr.ArrayContents())
	require.Equal(t, "int[]", arr.String())
	require.Equal(t, "INT[]", arr.SQLString())

	nested := MakeArray(arr)
	require.Equal(t, oid.T_anyarray, nested.Oid())
	require.Equal(t, "int[][]", nested.Name())

	require.Panics(t, func() { Int.ArrayContents() })
}

func TestParseType(t *testing.T) {
	testCases := []struct {
		in  string
		exp *T
	}{
		{"int", Int},
		{"INT8", Int},
		{"text", String},
		{" numeric ", Decimal},
		{"string[]", MakeArray(String)},
		{"int[][]", MakeArray(MakeArray(Int))},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			typ, err := ParseType(tc.in)
			require.NoError(t, err)
			require.True(t, tc.exp.Identical(typ), "expected %s, got %s", tc.exp, typ)
		})
	}

	_, err := ParseType("widget")
	require.EqualError(t, err, `type "widget" does not exist`)
}

func TestRoundTripNames(t *testing.T) {
	for _, typ := range append(Scalar, Unknown) {
		for _, tt := range []*T{typ, MakeArray(typ)} {
			parsed, err := ParseType(tt.Name())
			require.NoError(t, err)
			require.True(t, tt.Identical(parsed), "%s", tt)
		}
	}
}

func TestSafeFormat(t *testing.T) {
	s := redact.Sprintf("bad type %s", MakeArray(Decimal))
	require.Equal(t, redact.RedactableString("bad type decimal[]"), s)
}

func TestOidToType(t *testing.T) {
	for o, typ := range OidToType {
		require.Equal(t, o, typ.Oid())
	}
	require.Equal(t, "INT8", Int.PGName())
	require.Equal(t, "_TEXT", MakeArray(String).PGName())
}
