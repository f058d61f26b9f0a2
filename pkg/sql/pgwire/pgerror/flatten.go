// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Error is the flattened form of an error chain, as it would be
// reported to a SQL client.
type Error struct {
	Code    string
	Message string
	Detail  string
	Hint    string
}

// Flatten turns any error into a pgerror with fields populated.
// Returns a nil ptr if err was nil to start with.
func Flatten(err error) *Error {
	if err == nil {
		return nil
	}
	resErr := &Error{
		Code:    GetPGCode(err).String(),
		Message: err.Error(),
		Detail:  errors.FlattenDetails(err),
		Hint:    errors.FlattenHints(err),
	}
	if errors.IsAssertionFailure(err) && !strings.HasPrefix(resErr.Message, InternalErrorPrefix) {
		resErr.Message = InternalErrorPrefix + resErr.Message
	}
	return resErr
}

// InternalErrorPrefix is prepended on internal errors.
const InternalErrorPrefix = "internal error: "

// FullError can be used when the hint and/or detail are to be tested.
func FullError(err error) string {
	f := Flatten(err)
	if f == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(f.Code)
	b.WriteString(") ")
	b.WriteString(f.Message)
	if f.Detail != "" {
		b.WriteString("\nDETAIL: ")
		b.WriteString(f.Detail)
	}
	if f.Hint != "" {
		b.WriteString("\nHINT: ")
		b.WriteString(f.Hint)
	}
	return b.String()
}
