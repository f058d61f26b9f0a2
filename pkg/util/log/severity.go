// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

// Severity identifies the sort of log: info, warning etc.
type Severity int32

// Severity levels, in order of increasing importance.
const (
	SeverityInfo Severity = iota + 1
	SeverityWarning
	SeverityError
)

// Char returns the one-letter abbreviation of the severity used in the log
// entry header.
func (s Severity) Char() byte {
	switch s {
	case SeverityInfo:
		return 'I'
	case SeverityWarning:
		return 'W'
	case SeverityError:
		return 'E'
	default:
		return '?'
	}
}

// String implements the fmt.Stringer interface.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SafeValue implements the redact.SafeValue interface.
func (Severity) SafeValue() {}
