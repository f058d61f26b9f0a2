// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import "github.com/lib/pq/oid"

// OidToType maps Postgres object IDs to scalar types. We export the map
// instead of a method so that other packages can iterate over the map
// directly.
var OidToType = map[oid.Oid]*T{
	oid.T_unknown:   Unknown,
	oid.T_bool:      Bool,
	oid.T_int8:      Int,
	oid.T_float8:    Float,
	oid.T_numeric:   Decimal,
	oid.T_text:      String,
	oid.T_bytea:     Bytes,
	oid.T_date:      Date,
	oid.T_timestamp: Timestamp,
	oid.T_interval:  Interval,
}

// oidToArrayOid maps scalar type Oids to their corresponding array type Oid.
var oidToArrayOid = map[oid.Oid]oid.Oid{
	oid.T_bool:      oid.T__bool,
	oid.T_int8:      oid.T__int8,
	oid.T_float8:    oid.T__float8,
	oid.T_numeric:   oid.T__numeric,
	oid.T_text:      oid.T__text,
	oid.T_bytea:     oid.T__bytea,
	oid.T_date:      oid.T__date,
	oid.T_timestamp: oid.T__timestamp,
	oid.T_interval:  oid.T__interval,
}

// PGName returns the Postgres name for the type's OID, e.g. "INT8" or
// "_TEXT".
func (t *T) PGName() string {
	if name, ok := oid.TypeName[t.oid]; ok {
		return name
	}
	return t.Name()
}
