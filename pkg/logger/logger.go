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

// Package logger is the process-wide logging sink: a small io.Writer
// that every collaborator (stdlib log, hclog, the syslog hook) can be
// pointed at, so all of them write through one sink. Write itself does
// not filter by Level.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Logger is the logging entry point threaded through the session.
type Logger interface {
	io.Writer

	SetLevel(lvl Level)
	Level() Level

	// AddHook registers an additional writer every log line is mirrored
	// to, regardless of level — used to attach the syslog hook.
	AddHook(w io.Writer)

	// GetStdLogger returns a *log.Logger bound to this sink, the way the
	// teacher's logger.GetStdLogger does.
	GetStdLogger(flags int) *log.Logger

	// NewHCLog returns an hclog.Logger view over this sink, for
	// collaborators that only understand the hclog interface.
	NewHCLog(name string) hclog.Logger
}

type logger struct {
	mu    sync.Mutex
	lvl   Level
	hooks []io.Writer
	out   io.Writer
}

// New builds a Logger writing to out (typically os.Stderr before
// RedirectOutput, then the redirected stdout afterwards).
func New(out io.Writer, lvl Level) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &logger{out: out, lvl: lvl}
}

func (l *logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.out.Write(p)
	for _, h := range l.hooks {
		_, _ = h.Write(p)
	}
	return n, err
}

func (l *logger) SetLevel(lvl Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lvl = lvl
}

func (l *logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lvl
}

func (l *logger) AddHook(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, w)
}

func (l *logger) GetStdLogger(flags int) *log.Logger {
	return log.New(l, "", flags)
}

func (l *logger) NewHCLog(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  l.Level().hclogLevel(),
		Output: l,
	})
}

// Linef writes one formatted line, terminated with a newline, the way
// the error reporter's "<severity> [in <location>]: <msg>" lines are
// produced before being mirrored to syslog.
func Linef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
