// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log implements leveled, context-tagged logging for the semantic
// analysis packages and the tools built on top of them.
package log

import (
	"context"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
)

type loggerT struct {
	verbosity atomic.Int32

	mu struct {
		sync.Mutex
		w  io.Writer
		cp *colorProfile
	}
}

var logging = func() *loggerT {
	l := &loggerT{}
	l.mu.w = os.Stderr
	l.mu.cp = stderrColorProfile(os.Stderr)
	return l
}()

// SetOutput redirects all log output to w, disabling colors. It returns a
// function that restores the previous output.
func SetOutput(w io.Writer) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prevW, prevCP := logging.mu.w, logging.mu.cp
	logging.mu.w, logging.mu.cp = w, nil
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.w, logging.mu.cp = prevW, prevCP
	}
}

// SetVerbosity sets the global verbosity level used by V and VEventf. It
// returns the previous level.
func SetVerbosity(level int32) (prev int32) {
	return logging.verbosity.Swap(level)
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return logging.verbosity.Load() >= level
}

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, SeverityInfo, format, args)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, SeverityWarning, format, args)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, SeverityError, format, args)
}

// VEventf logs to the INFO severity if the verbosity is at least level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		logDepth(ctx, 1, SeverityInfo, format, args)
	}
}

func logDepth(ctx context.Context, depth int, sev Severity, format string, args []interface{}) {
	_, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		file, line = "???", 1
	}
	entry := makeEntry(ctx, sev, file, line, format, args)

	logging.mu.Lock()
	defer logging.mu.Unlock()
	// Write errors are dropped; there is nowhere left to report them.
	_, _ = logging.mu.w.Write(formatCrdbV1(entry, logging.mu.cp))
}
