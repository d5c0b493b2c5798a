//go:build linux || darwin

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

import (
	"fmt"
	"log/syslog"
)

func makePriority(sev Severity, fac Facility) syslog.Priority {
	return priFacility(fac) | priSeverity(sev)
}

func priSeverity(sev Severity) syslog.Priority {
	switch sev {
	case SeverityCrit:
		return syslog.LOG_CRIT
	case SeverityErr:
		return syslog.LOG_ERR
	case SeverityWarning:
		return syslog.LOG_WARNING
	case SeverityInfo:
		return syslog.LOG_INFO
	}
	return syslog.LOG_INFO
}

func priFacility(fac Facility) syslog.Priority {
	switch fac {
	case FacilityLocal5:
		return syslog.LOG_LOCAL5
	case FacilityLocal6:
		return syslog.LOG_LOCAL6
	}
	return syslog.LOG_LOCAL5
}

// Writer is the syslog-backed io.Writer installed as a logger hook.
type Writer struct {
	w    *syslog.Writer
	user string
}

// Dial opens a connection to the local syslog daemon under the given
// facility and process tag, matching the bootstrap's
// "openlog(local5/local6, ident=proofserv/proofslave, LOG_PID|LOG_CONS)".
func Dial(fac Facility, tag, user string) (*Writer, error) {
	w, err := syslog.New(makePriority(SeverityInfo, fac), tag)
	if err != nil {
		return nil, fmt.Errorf("hooksyslog: dial: %w", err)
	}
	return &Writer{w: w, user: user}, nil
}

// Write mirrors a reporter line to syslog at Info severity, prefixed by
// the session's user identity as the Session Controller's error
// reporter requires.
func (o *Writer) Write(p []byte) (int, error) {
	return o.WriteSev(SeverityInfo, p)
}

// WriteSev mirrors one line at the given severity, prefixed by user.
func (o *Writer) WriteSev(sev Severity, p []byte) (int, error) {
	if o.w == nil {
		return 0, fmt.Errorf("hooksyslog: not connected")
	}

	line := fmt.Sprintf("%s: %s", o.user, string(p))

	switch sev {
	case SeverityCrit:
		return len(p), o.w.Crit(line)
	case SeverityErr:
		return len(p), o.w.Err(line)
	case SeverityWarning:
		return len(p), o.w.Warning(line)
	default:
		return len(p), o.w.Info(line)
	}
}

// Close releases the syslog connection.
func (o *Writer) Close() error {
	if o.w == nil {
		return nil
	}
	return o.w.Close()
}
