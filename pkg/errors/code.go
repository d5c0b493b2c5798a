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

import "math"

// CodeError is a numeric error code, similar in spirit to an HTTP status
// code: stable, small, and safe to log or send across the wire.
type CodeError uint16

const (
	// UnknownError is used when no package has claimed a code.
	UnknownError CodeError = 0
)

// Severity mirrors the error kinds this system's reporter recognizes.
// Values below SysError never abort the process; SysError and Fatal do.
type Severity uint8

const (
	Info Severity = iota
	Warning
	Error
	SysError
	Fatal
)

// String renders the severity the way the reporter prefixes its lines:
// "<severity> [in <location>]: <msg>".
func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case SysError:
		return "SysError"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Aborts reports whether this severity terminates the process once
// reported (SysError and Fatal do; everything below does not).
func (s Severity) Aborts() bool {
	return s >= SysError
}

// ParseCodeError clamps an arbitrary integer into the CodeError range,
// the same convention the teacher's ParseCodeError(int64) uses.
func ParseCodeError(i int64) CodeError {
	if i < 0 {
		return UnknownError
	} else if i >= int64(math.MaxUint16) {
		return math.MaxUint16
	}
	return CodeError(i)
}
