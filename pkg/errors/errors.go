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

package errors

import (
	"fmt"
	"strings"
)

type ers struct {
	code CodeError
	sev  Severity
	msg  string
	pkg  string
	par  []error
}

// New registers a new error-code namespace for a package. Each package
// that defines failure modes calls this once per constant, the same way
// the teacher's cluster package builds one ErrorXxx per failure mode.
func New(pkg string, code CodeError, sev Severity, msg string) Error {
	return &ers{code: code, sev: sev, msg: msg, pkg: pkg}
}

func (e *ers) Code() CodeError {
	return e.code
}

func (e *ers) Severity() Severity {
	return e.sev
}

func (e *ers) Error() string {
	var b strings.Builder

	if e.pkg != "" {
		b.WriteString(e.pkg)
		b.WriteString(": ")
	}

	b.WriteString(e.msg)

	for _, p := range e.par {
		b.WriteString(": ")
		b.WriteString(p.Error())
	}

	return b.String()
}

func (e *ers) Unwrap() []error {
	return e.par
}

// Is lets errors.Is match a raised Error against its package-level
// template constant by code and package, the way the teacher's own
// errors package compares *ers values rather than pointer identity
// (ErrorParent always returns a fresh value, so pointer equality would
// never match).
func (e *ers) Is(target error) bool {
	t, ok := target.(*ers)
	if !ok {
		return false
	}
	return e.code == t.code && e.pkg == t.pkg
}

// ErrorParent returns a new Error carrying the same code/severity/message
// with the given parents appended, leaving the receiver untouched so a
// package-level Error constant can be reused as a template across calls.
func (e *ers) ErrorParent(parent ...error) Error {
	n := &ers{
		code: e.code,
		sev:  e.sev,
		msg:  e.msg,
		pkg:  e.pkg,
		par:  make([]error, 0, len(e.par)+len(parent)),
	}
	n.par = append(n.par, e.par...)
	for _, p := range parent {
		if p != nil {
			n.par = append(n.par, p)
		}
	}
	return n
}

// Errorf builds an ad-hoc Error without a pre-registered code, for the
// rare handler-local failure that does not warrant its own constant.
func Errorf(sev Severity, format string, args ...any) Error {
	return &ers{code: UnknownError, sev: sev, msg: fmt.Sprintf(format, args...)}
}
