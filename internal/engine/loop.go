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

// Package engine wires the Session Controller's collaborators —
// internal/session, internal/dispatch, internal/interrupt — into the
// single-threaded cooperative event loop of spec.md §5. It is its own
// package (rather than living in internal/session) because the
// dispatcher necessarily depends on the session package, and a loop
// type importing both from within internal/session would cycle.
package engine

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/proofd/proofserv/internal/dispatch"
	"github.com/proofd/proofserv/internal/interrupt"
	"github.com/proofd/proofserv/internal/protocol"
)

// readResult is one frame (or error) delivered by the reader goroutine
// that feeds the event loop's select.
type readResult struct {
	msg *protocol.Message
	err error
}

// Loop is the single-threaded cooperative event loop of spec.md §5: it
// selects over a reader goroutine's channel (mechanical necessity; Go
// has no portable readiness-without-blocking-read primitive the way
// the teacher's reactor packages get from epoll), the SIGURG signal
// channel — the synchronous delivery point for urgent data — and
// SIGPIPE, the keep-alive-failure notification spec.md §4.4/§8
// Scenario 5 names. No other goroutine touches the session.
type Loop struct {
	Codec      *protocol.Codec
	Dispatcher *dispatch.Dispatcher
	Interrupt  *interrupt.Handler
}

// Run drives the loop until the peer disconnects, a handler terminates
// the process, or ctx is cancelled. Requests on the connection are
// handled strictly FIFO; each request's log flush (if any) completes
// before the next request is read, matching spec.md §5's "LOGDONE is a
// barrier" ordering guarantee. Exactly one reader goroutine is ever in
// flight: a new one is started only after the previous frame has been
// fully dispatched.
func (l *Loop) Run(ctx context.Context) error {
	reads := make(chan readResult, 1)
	go l.readLoop(reads)

	urgent := make(chan os.Signal, 1)
	signal.Notify(urgent, syscall.SIGURG)
	defer signal.Stop(urgent)

	pipeGone := make(chan os.Signal, 1)
	signal.Notify(pipeGone, syscall.SIGPIPE)
	defer signal.Stop(pipeGone)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-pipeGone:
			l.Interrupt.HandlePipeSignal(ctx)

		case <-urgent:
			code, wasted, err := l.readUrgentByte()
			if err != nil {
				return err
			}
			l.Interrupt.Wasted = l.Interrupt.Wasted || wasted
			if err := l.Interrupt.Handle(ctx, code); err != nil {
				return err
			}

		case r := <-reads:
			if r.err != nil {
				if r.err == io.EOF {
					return nil
				}
				return r.err
			}
			if err := l.Dispatcher.Dispatch(ctx, r.msg); err != nil {
				return err
			}
			go l.readLoop(reads)
		}
	}
}

// readLoop issues exactly one blocking Recv and reports its outcome,
// the goroutine Go's lack of a readiness primitive forces the loop to
// rely on (see Loop's doc comment).
func (l *Loop) readLoop(reads chan<- readResult) {
	msg, err := l.Codec.Recv()
	reads <- readResult{msg: msg, err: err}
}

// readUrgentByte reads the single urgent byte that accompanied SIGURG,
// running the codec's would-block retry dance rather than a single
// unconditional read (spec.md §4.4/§9).
func (l *Loop) readUrgentByte() (protocol.Urgent, bool, error) {
	b, wasted, err := l.Codec.RecvUrgentByte()
	if err != nil {
		return 0, wasted, err
	}
	return protocol.Urgent(b), wasted, nil
}
