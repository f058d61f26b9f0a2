// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// logEntry is a single rendered log event.
type logEntry struct {
	sev  Severity
	time time.Time
	file string
	line int
	tags *logtags.Buffer
	msg  string
}

func makeEntry(
	ctx context.Context, sev Severity, file string, line int, format string, args []interface{},
) logEntry {
	return logEntry{
		sev:  sev,
		time: time.Now().UTC(),
		file: filepath.Base(file),
		line: line,
		tags: logtags.FromContext(ctx),
		msg:  redact.Sprintf(format, args...).StripMarkers(),
	}
}

// formatCrdbV1 renders an entry using the crdb-v1 layout:
//
//	Lyymmdd hh:mm:ss.uuuuuu file:line [tags] msg
//
// cp may be nil, in which case no color escapes are emitted.
func formatCrdbV1(e logEntry, cp *colorProfile) []byte {
	var buf bytes.Buffer
	if cp != nil {
		buf.Write(cp.prefix(e.sev))
	}
	buf.WriteByte(e.sev.Char())
	if cp != nil {
		buf.Write(colorReset)
		buf.Write(cp.timePrefix)
	}
	buf.WriteString(e.time.Format("060102 15:04:05.000000"))
	if cp != nil {
		buf.Write(colorReset)
	}
	fmt.Fprintf(&buf, " %s:%d ", e.file, e.line)
	if e.tags != nil {
		buf.WriteByte('[')
		formatTags(&buf, e.tags)
		buf.WriteString("] ")
	}
	buf.WriteString(e.msg)
	if n := buf.Len(); n == 0 || buf.Bytes()[n-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// formatTags writes the tags as a comma-separated list. A tag with a
// single-character key is written as the key followed by its value (e.g.
// "n1"); longer keys are separated from their value with "=".
func formatTags(buf *bytes.Buffer, tags *logtags.Buffer) {
	for i, t := range tags.Get() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.Key())
		if v := t.Value(); v != nil {
			if len(t.Key()) > 1 {
				buf.WriteByte('=')
			}
			buf.WriteString(t.ValueStr())
		}
	}
}
