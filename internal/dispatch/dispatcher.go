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

package dispatch

import (
	"context"
	"time"

	"github.com/proofd/proofserv/internal/auth"
	"github.com/proofd/proofserv/internal/dataset"
	"github.com/proofd/proofserv/internal/evaluator"
	"github.com/proofd/proofserv/internal/fleet"
	"github.com/proofd/proofserv/internal/logstream"
	"github.com/proofd/proofserv/internal/protocol"
	"github.com/proofd/proofserv/internal/session"
)

// Handler processes one dispatched request and reports whether the Log
// Streamer must flush after it returns, matching the "Flush log after?"
// column of spec.md §4.3's table.
type Handler func(ctx context.Context, d *Dispatcher, msg *protocol.Message) (flush bool, err error)

// Dispatcher routes inbound messages to their handler, times each
// request, and drives the post-handler flush contract (spec.md §4.3).
type Dispatcher struct {
	Session   *session.Session
	Codec     *protocol.Codec
	Streamer  *logstream.Streamer
	Evaluator evaluator.Evaluator
	Datasets  dataset.Engine
	Auth      auth.Prober
	Fleet     *fleet.Fleet // nil on a worker session

	handlers map[protocol.Tag]Handler
}

// New builds a Dispatcher with the default handler table registered.
func New(sess *session.Session, codec *protocol.Codec, streamer *logstream.Streamer, ev evaluator.Evaluator, ds dataset.Engine, prober auth.Prober, fl *fleet.Fleet) *Dispatcher {
	d := &Dispatcher{
		Session:   sess,
		Codec:     codec,
		Streamer:  streamer,
		Evaluator: ev,
		Datasets:  ds,
		Auth:      prober,
		Fleet:     fl,
	}
	d.handlers = defaultHandlers()
	return d
}

// Dispatch handles exactly one inbound message: starts the wall-clock
// timer, increments the command counter, invokes the tag's handler,
// accumulates elapsed real/CPU time, and flushes the log when the
// handler reports it should, per spec.md §4.3.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *protocol.Message) error {
	start := time.Now()
	cpuStart := cpuTimeNow()

	d.Session.IncCommand()

	h, ok := d.handlers[msg.Tag.Base()]
	if !ok {
		session.Errorf("dispatch", "unrecognized tag %s", msg.Tag.Base())
		d.Session.AddElapsed(time.Since(start), cpuTimeNow()-cpuStart)
		return nil
	}

	flush, err := h(ctx, d, msg)
	if err != nil {
		session.Errorf("dispatch", "%s: %v", msg.Tag.Base(), err)
	}

	d.Session.AddElapsed(time.Since(start), cpuTimeNow()-cpuStart)

	if flush && d.Streamer != nil {
		participants := int32(1)
		if d.Fleet != nil {
			participants = d.Fleet.ActiveCount()
		}
		status := int32(0)
		if err != nil {
			status = 1
		}
		if ferr := d.Streamer.Flush(d.Codec, status, participants); ferr != nil {
			return ferr
		}
	}

	return nil
}

func defaultHandlers() map[protocol.Tag]Handler {
	return map[protocol.Tag]Handler{
		protocol.CINT:      handleCINT,
		protocol.STRING:    handleString,
		protocol.OBJECT:    handleObject,
		protocol.GROUPVIEW: handleGroupView,
		protocol.LOGLEVEL:  handleLogLevel,
		protocol.PING:      handlePing,
		protocol.PRINT:     handlePrint,
		protocol.RESET:     handleReset,
		protocol.STATUS:    handleStatus,
		protocol.STOP:      handleStop,
		protocol.TREEDRAW:  handleTreeDraw,
		protocol.SENDFILE:  handleSendFile,
		protocol.OPENFILE:  handleOpenFile,
		protocol.PARALLEL:  handleParallel,
	}
}
