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

package session

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/proofd/proofserv/internal/protocol"
	"github.com/proofd/proofserv/pkg/console"
	liberr "github.com/proofd/proofserv/pkg/errors"
	"github.com/proofd/proofserv/pkg/logger/hooksyslog"
)

// Reporter is the process-wide error reporter spec.md §4.1 bootstrap
// step 3 installs: it writes a human line to stderr, mirrors it to
// syslog prefixed with the user identity, and on Fatal severity sends
// a single FATAL tag to the peer before aborting with a stack trace.
//
// Design Note (spec.md §9): this is the one place a package-level
// accessor is permitted, since the reporter has no other input channel
// — every other collaborator receives its *Session explicitly.
type Reporter struct {
	stderr io.Writer
	syslog *hooksyslog.Writer
	sess   *Session

	fatalSent int32 // guards the single-shot FATAL send
}

var current atomic.Pointer[Reporter]

// Install registers r as the process-wide reporter used by the
// top-level Report/Fatal helpers.
func Install(r *Reporter) { current.Store(r) }

// Current returns the installed reporter, or a stderr-only fallback if
// none has been installed yet (e.g. before bootstrap step 3 runs).
func Current() *Reporter {
	if r := current.Load(); r != nil {
		return r
	}
	return &Reporter{stderr: os.Stderr}
}

// NewReporter builds a Reporter bound to sess and a syslog mirror
// already opened for the session's role (local5 master / local6
// worker, per spec.md §4.1).
func NewReporter(sess *Session, sl *hooksyslog.Writer) *Reporter {
	return &Reporter{stderr: console.Stderr(), syslog: sl, sess: sess}
}

// Report writes one line at the given severity and location, mirrors it
// to syslog, and on Fatal sends the FATAL tag (once) and aborts with a
// stack trace. SysError and above always abort (spec.md §7); severities
// below SysError never do.
func (r *Reporter) Report(sev liberr.Severity, location, msg string) {
	plain := console.ReportLine(r.stderr, sev, location, msg)

	if r.syslog != nil {
		user := ""
		if r.sess != nil {
			user = r.sess.User
		}
		sysSev := hooksyslog.SeverityInfo
		switch sev {
		case liberr.Warning:
			sysSev = hooksyslog.SeverityWarning
		case liberr.Error, liberr.SysError:
			sysSev = hooksyslog.SeverityErr
		case liberr.Fatal:
			sysSev = hooksyslog.SeverityCrit
		}
		line := plain
		if user != "" {
			line = fmt.Sprintf("%s:%s", user, plain)
		}
		if r.sess != nil && r.sess.Codec != nil {
			line = fmt.Sprintf("[%s] %s", r.sess.Codec.ID(), line)
		}
		_, _ = r.syslog.WriteSev(sysSev, []byte(line))
	}

	if sev.Aborts() {
		r.abort(sev)
	}
}

func (r *Reporter) abort(sev liberr.Severity) {
	if sev == liberr.Fatal {
		r.sendFatalOnce()
	}

	fmt.Fprintln(r.stderr, "aborting")
	debug.PrintStack()
	os.Exit(1)
}

// sendFatalOnce sends the FATAL tag to the peer exactly once, guarded
// by fatalSent so a Fatal report raised from inside the FATAL send path
// itself cannot recurse (spec.md §4.1 step 3's "guarded by a re-entry
// flag").
func (r *Reporter) sendFatalOnce() {
	if !atomic.CompareAndSwapInt32(&r.fatalSent, 0, 1) {
		return
	}
	if r.sess == nil || r.sess.Codec == nil {
		return
	}
	_ = r.sess.Codec.Send(protocol.FATAL, nil)
}

// Info/Warningf/Errorf/SysErrorf/Fatalf are convenience wrappers over the
// installed reporter, used the way the original's error-handler free
// functions (Info(), Warning(), ...) are called from anywhere.
func Info(location, format string, args ...any) {
	Current().Report(liberr.Info, location, fmt.Sprintf(format, args...))
}

func Warningf(location, format string, args ...any) {
	Current().Report(liberr.Warning, location, fmt.Sprintf(format, args...))
}

func Errorf(location, format string, args ...any) {
	Current().Report(liberr.Error, location, fmt.Sprintf(format, args...))
}

func SysErrorf(location string, sysErr error, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if sysErr != nil {
		msg = fmt.Sprintf("%s: %s", msg, sysErr.Error())
	}
	Current().Report(liberr.SysError, location, msg)
}

func Fatalf(location, format string, args ...any) {
	Current().Report(liberr.Fatal, location, fmt.Sprintf(format, args...))
}
