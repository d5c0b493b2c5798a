//go:build !linux && !darwin

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

package hooksyslog

import "fmt"

// Writer is a no-op stand-in on platforms without a local syslog daemon.
// The launching daemon that forks this process is itself POSIX-only
// (spec.md §6), so this branch only exists to keep the module buildable
// everywhere the Go toolchain targets.
type Writer struct{}

func Dial(fac Facility, tag, user string) (*Writer, error) {
	return nil, fmt.Errorf("hooksyslog: unsupported on this platform")
}

func (o *Writer) Write(p []byte) (int, error)            { return len(p), nil }
func (o *Writer) WriteSev(sev Severity, p []byte) (int, error) { return len(p), nil }
func (o *Writer) Close() error                            { return nil }
