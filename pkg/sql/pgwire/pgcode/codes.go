// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgcode

// Code is a wrapper around a string to ensure that pg codes are used in
// different pgerror functions by avoiding accidental string input.
type Code struct {
	code string
}

// MakeCode converts a string into a Code.
func MakeCode(s string) Code {
	return Code{code: s}
}

// String returns the underlying pg code string.
func (c Code) String() string {
	return c.code
}

// PG error codes from:
// http://www.postgresql.org/docs/9.5/static/errcodes-appendix.html.
// Only the codes raised by the semantic analysis layer are listed.
var (
	// Section: Class 00 - Successful Completion
	SuccessfulCompletion = MakeCode("00000")
	// Section: Class 22 - Data Exception
	InvalidParameterValue = MakeCode("22023")
	// Section: Class 42 - Syntax Error or Access Rule Violation
	Syntax                    = MakeCode("42601")
	DatatypeMismatch          = MakeCode("42804")
	CannotCoerce              = MakeCode("42846")
	UndefinedFunction         = MakeCode("42883")
	UndefinedObject           = MakeCode("42704")
	AmbiguousFunction         = MakeCode("42725")
	IndeterminateDatatype     = MakeCode("42P18")
	InvalidFunctionDefinition = MakeCode("42P13")
	WrongObjectType           = MakeCode("42809")
	Grouping                  = MakeCode("42803")
	// Section: Class XX - Internal Error
	Internal = MakeCode("XX000")

	// Uncategorized is used for errors that flow out to a client
	// when there's no code known yet.
	Uncategorized = MakeCode("XXUUU")
)
