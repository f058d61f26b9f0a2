// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"strings"
	"sync"
)

// tShim is the subset of testing.TB used by TestLogScope.
type tShim interface {
	Helper()
	Logf(format string, args ...interface{})
	Failed() bool
}

// TestLogScope captures all log output produced during a test, so that
// tests can assert on it and so that it is only shown when the test fails.
type TestLogScope struct {
	mu struct {
		sync.Mutex
		buf bytes.Buffer
	}
	restoreOutput    func()
	restoreVerbosity int32
}

// Scope starts capturing log output. Use as follows:
//
//	defer log.Scope(t).Close(t)
func Scope(t tShim) *TestLogScope {
	t.Helper()
	s := &TestLogScope{}
	s.restoreOutput = SetOutput(s)
	s.restoreVerbosity = logging.verbosity.Load()
	return s
}

// Write implements io.Writer.
func (s *TestLogScope) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.buf.Write(p)
}

// String returns everything logged since the scope was opened.
func (s *TestLogScope) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.buf.String()
}

// Lines returns the captured log entries, one per element.
func (s *TestLogScope) Lines() []string {
	out := strings.TrimSuffix(s.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Close restores the previous log output and verbosity. The captured
// output is forwarded to the test log if the test failed.
func (s *TestLogScope) Close(t tShim) {
	t.Helper()
	s.restoreOutput()
	SetVerbosity(s.restoreVerbosity)
	if t.Failed() {
		t.Logf("captured logs:\n%s", s.String())
	}
}
