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

package interrupt

import (
	"context"
	"os"
	"time"

	"github.com/proofd/proofserv/internal/fleet"
	"github.com/proofd/proofserv/internal/protocol"
	"github.com/proofd/proofserv/internal/session"
)

const (
	drainBufSize = 1024
	pollInterval = time.Second // "polls ~1 Hz" per spec.md §4.4
)

// Exit is the process-terminating call the shutdown branch uses;
// overridable in specs.
var Exit = os.Exit

// Handler classifies and reacts to urgent bytes received on the
// control connection, per spec.md §4.4.
type Handler struct {
	Session *session.Session
	Codec   *protocol.Codec
	Fleet   *fleet.Fleet // nil on a worker session

	// Wasted records whether a drain discarded any bytes from the
	// stream: the hard-interrupt drain sets it, and internal/engine's
	// loop ORs in discards made while reading the urgent byte itself;
	// consulted by the soft-interrupt branch,
	// per spec.md §9's Open Question (a) — the behavior is preserved
	// exactly as specified even though it is unclear whether the
	// prioritization is intentional.
	Wasted bool

	sleep func(time.Duration)
}

// New builds a Handler. fl is nil on a worker session.
func New(sess *session.Session, codec *protocol.Codec, fl *fleet.Fleet) *Handler {
	return &Handler{Session: sess, Codec: codec, Fleet: fl, sleep: time.Sleep}
}

// Handle dispatches one received urgent byte to its branch.
func (h *Handler) Handle(ctx context.Context, code protocol.Urgent) error {
	switch code {
	case protocol.UrgentHard:
		return h.hard(ctx)
	case protocol.UrgentSoft:
		return h.soft(ctx)
	case protocol.UrgentShutdown:
		return h.shutdown(ctx)
	default:
		return ErrUnknownCode.ErrorParent(nil)
	}
}

// hard propagates to workers, drains inbound bytes up to the at-mark
// boundary, then echoes the urgent byte back so the peer can align its
// own discard.
func (h *Handler) hard(ctx context.Context) error {
	if h.Session.Role == session.RoleMaster && h.Fleet != nil {
		_ = h.Fleet.PropagateUrgent(protocol.UrgentHard)
	}

	h.Wasted = false
	if err := h.drainToMark(); err != nil {
		return err
	}

	return h.Codec.SendRaw([]byte{byte(protocol.UrgentHard)}, protocol.RawUrgent)
}

// soft propagates, then sets the cooperative interrupt flag — unless a
// prior hard-interrupt drain on this same stream already discarded
// bytes, in which case it reports "soft interrupt flushed stream" and
// skips the flag set, preserving the original's exact (possibly buggy)
// prioritization per spec.md §9's Open Question (a).
func (h *Handler) soft(ctx context.Context) error {
	if h.Session.Role == session.RoleMaster && h.Fleet != nil {
		_ = h.Fleet.PropagateUrgent(protocol.UrgentSoft)
	}

	if h.Wasted {
		session.Info("interrupt", "soft interrupt flushed stream")
		return nil
	}

	h.Session.SetInterrupted(true)
	return nil
}

// shutdown propagates, then terminates with exit 0 and does not
// return.
func (h *Handler) shutdown(ctx context.Context) error {
	if h.Session.Role == session.RoleMaster && h.Fleet != nil {
		_ = h.Fleet.PropagateUrgent(protocol.UrgentShutdown)
	}

	Exit(0)
	return nil
}

// drainToMark reads and discards queued bytes in bounded chunks until
// the connection reports at-mark, sleeping and retrying while no bytes
// are yet available, per spec.md §4.4 and §9's portability note.
func (h *Handler) drainToMark() error {
	buf := make([]byte, drainBufSize)

	for {
		atMark, err := protocol.AtMark(h.Codec.Conn())
		if err != nil {
			return ErrUrgentRead.ErrorParent(err)
		}
		if atMark {
			return nil
		}

		n, err := protocol.BytesAvailable(h.Codec.Conn())
		if err != nil {
			return ErrUrgentRead.ErrorParent(err)
		}
		if n == 0 {
			h.sleep(pollInterval)
			continue
		}

		want := n
		if want > len(buf) {
			want = len(buf)
		}
		read, err := h.Codec.RecvRaw(buf[:want], protocol.RawNone)
		if err != nil {
			return ErrUrgentRead.ErrorParent(err)
		}
		if read > 0 {
			h.Wasted = true
		}
	}
}

// HandlePipeSignal fires on keep-alive detecting peer death (spec.md
// §4.4). A master pings the client via the codec and, on send failure,
// propagates shutdown to its workers before terminating; a worker
// terminates directly.
func (h *Handler) HandlePipeSignal(ctx context.Context) {
	if h.Session.Role == session.RoleWorker {
		Exit(0)
		return
	}

	if err := h.Codec.Send(protocol.PING, nil); err != nil {
		if h.Fleet != nil {
			_ = h.Fleet.PropagateUrgent(protocol.UrgentShutdown)
		}
		Exit(0)
	}
}
