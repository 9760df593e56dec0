// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package machine

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

// ISODateLayout is the extended ISO 8601 form used for every timestamp in
// the report: local time, millisecond precision, numeric zone offset.
const ISODateLayout = "2006-01-02T15:04:05.000-07:00"

// FormatISODate renders t with ISODateLayout in t's own location.
func FormatISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// xmlWriter appends to an externally owned sink and keeps the first write
// error so rendering code can stay linear.
type xmlWriter struct {
	w   io.Writer
	err error
}

func newXMLWriter(w io.Writer) *xmlWriter {
	return &xmlWriter{w: w}
}

func (x *xmlWriter) printf(format string, args ...any) {
	if x.err != nil {
		return
	}
	_, x.err = fmt.Fprintf(x.w, format, args...)
}

// indent writes n spaces; negative n writes nothing.
func (x *xmlWriter) indent(n int) {
	if n > 0 {
		x.printf("%s", strings.Repeat(" ", n))
	}
}

// open writes "<name" at the given indentation. The element name is a
// caller contract and is not escaped.
func (x *xmlWriter) open(indent int, name string) {
	x.indent(indent)
	x.printf("<%s", name)
}

func (x *xmlWriter) attr(name, value string) {
	x.printf(" %s=\"%s\"", name, escape(value))
}

func (x *xmlWriter) attrf(name, format string, args ...any) {
	x.attr(name, fmt.Sprintf(format, args...))
}

// closeEmpty ends a self-closing element.
func (x *xmlWriter) closeEmpty() {
	x.printf("/>\n")
}

// closeText ends the start tag, writes escaped text and the end tag.
func (x *xmlWriter) closeText(name, text string) {
	x.printf(">%s</%s>\n", escape(text), name)
}

// startTag writes a bare "<name>" line.
func (x *xmlWriter) startTag(indent int, name string) {
	x.indent(indent)
	x.printf("<%s>\n", name)
}

// endTag writes a "</name>" line.
func (x *xmlWriter) endTag(indent int, name string) {
	x.indent(indent)
	x.printf("</%s>\n", name)
}

func escape(s string) string {
	var b strings.Builder
	// strings.Builder never fails a write.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
