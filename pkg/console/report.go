/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package console formats the one-shot diagnostic lines the error
// reporter writes to stderr before mirroring them to syslog.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"

	liberr "github.com/proofd/proofserv/pkg/errors"
)

var severityColor = map[liberr.Severity]*color.Color{
	liberr.Info:     color.New(color.FgCyan),
	liberr.Warning:  color.New(color.FgYellow),
	liberr.Error:    color.New(color.FgRed),
	liberr.SysError: color.New(color.FgRed, color.Bold),
	liberr.Fatal:    color.New(color.FgHiRed, color.Bold),
}

// Stderr returns a Windows-safe colorable writer wrapping os.Stderr,
// matching the teacher's console/model.go use of go-colorable.
func Stderr() io.Writer {
	return colorable.NewColorableStderr()
}

// ReportLine renders "<severity> [in <location>]: <msg>" in the
// severity's color and writes it to w, returning the plain-text form so
// the caller can mirror the same bytes to syslog without ANSI codes.
func ReportLine(w io.Writer, sev liberr.Severity, location, msg string) string {
	var plain string
	if location == "" {
		plain = fmt.Sprintf("%s: %s", sev, msg)
	} else {
		plain = fmt.Sprintf("%s [in %s]: %s", sev, location, msg)
	}

	if c, ok := severityColor[sev]; ok && c != nil {
		_, _ = c.Fprintln(w, plain)
	} else {
		_, _ = fmt.Fprintln(w, plain)
	}

	return plain
}
