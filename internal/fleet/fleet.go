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

package fleet

import (
	"context"
	"net"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/proofd/proofserv/internal/protocol"
)

// WorkerAddr identifies one worker the master dials out to.
type WorkerAddr struct {
	Ordinal int32
	Network string
	Address string
}

// Worker is one dialed worker connection, driven by the fleet.
type Worker struct {
	Ordinal int32
	Codec   *protocol.Codec

	active bool
}

// Reply is one worker's answer to a broadcast message.
type Reply struct {
	Ordinal int32
	Message *protocol.Message
	Err     error
}

// Fleet is the master's worker driver (SPEC_FULL.md §4.7): it dials
// workers, fans out messages to the active subset, and joins their
// LOGDONE terminators into one reply for the master's own client.
type Fleet struct {
	mu      sync.Mutex
	workers map[int32]*Worker
	user    string
	proto   int32
}

// New builds an empty Fleet for a master session identified by user
// and protocol version, echoed into every worker handshake.
func New(user string, proto int32) *Fleet {
	return &Fleet{workers: make(map[int32]*Worker), user: user, proto: proto}
}

// Dial opens one connection per WorkerAddr and sends the worker
// handshake payload spec.md §6 defines: (user, protocol, ordinal).
// Newly dialed workers are active by default.
func (f *Fleet) Dial(ctx context.Context, addrs []WorkerAddr) error {
	var d net.Dialer

	for _, a := range addrs {
		conn, err := d.DialContext(ctx, a.Network, a.Address)
		if err != nil {
			return ErrDial.ErrorParent(err)
		}

		codec := protocol.NewCodec(conn)
		if err := codec.Send(protocol.GREETING, nil); err != nil {
			_ = conn.Close()
			return ErrHandshake.ErrorParent(err)
		}

		hs := protocol.NewPayload()
		hs.WriteString(f.user)
		hs.WriteInt32(f.proto)
		hs.WriteInt32(a.Ordinal)
		if err := codec.Send(protocol.HANDSHAKE, hs); err != nil {
			_ = conn.Close()
			return ErrHandshake.ErrorParent(err)
		}

		f.mu.Lock()
		f.workers[a.Ordinal] = &Worker{Ordinal: a.Ordinal, Codec: codec, active: true}
		f.mu.Unlock()
	}

	return nil
}

// ActiveCount reports the number of workers currently participating,
// the "participants" figure a master's own LOGDONE carries (spec.md
// §4.5).
func (f *Fleet) ActiveCount() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int32
	for _, w := range f.workers {
		if w.active {
			n++
		}
	}
	return n
}

// Resize implements PARALLEL's "<node-count>" semantics: the first
// nodeCount dialed workers (by ordinal order) become active, the rest
// inactive, without re-dialing anyone (SPEC_FULL.md §4.7).
func (f *Fleet) Resize(nodeCount int32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ordinals := make([]int32, 0, len(f.workers))
	for o := range f.workers {
		ordinals = append(ordinals, o)
	}
	sortInt32s(ordinals)

	for i, o := range ordinals {
		f.workers[o].active = int32(i) < nodeCount
	}
}

func sortInt32s(s []int32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Broadcast fans tag/payload out to every active worker concurrently
// and collects each one's single reply, used for CINT forwarding,
// LOGLEVEL propagation, and the master's PING/PRINT fan-out; interrupts
// go out through PropagateUrgent instead.
func (f *Fleet) Broadcast(ctx context.Context, tag protocol.Tag, payload *protocol.Payload) ([]Reply, error) {
	f.mu.Lock()
	active := make([]*Worker, 0, len(f.workers))
	for _, w := range f.workers {
		if w.active {
			active = append(active, w)
		}
	}
	f.mu.Unlock()

	replies := make([]Reply, len(active))

	g, _ := errgroup.WithContext(ctx)
	for i, w := range active {
		i, w := i, w
		g.Go(func() error {
			var body *protocol.Payload
			if payload != nil {
				body = protocol.NewPayloadFrom(payload.Bytes())
			}
			if err := w.Codec.Send(tag, body); err != nil {
				replies[i] = Reply{Ordinal: w.Ordinal, Err: ErrBroadcast.ErrorParent(err)}
				return nil
			}
			msg, err := w.Codec.Recv()
			if err != nil {
				replies[i] = Reply{Ordinal: w.Ordinal, Err: ErrBroadcast.ErrorParent(err)}
				return nil
			}
			replies[i] = Reply{Ordinal: w.Ordinal, Message: msg}
			return nil
		})
	}
	_ = g.Wait()

	return replies, nil
}

// PropagateUrgent sends a single raw urgent byte to every active
// worker, used by internal/interrupt to fan a hard/soft/shutdown
// interrupt out to the fleet before acting locally (spec.md §4.4's
// "Master: propagate" step on each branch).
func (f *Fleet) PropagateUrgent(code protocol.Urgent) error {
	f.mu.Lock()
	active := make([]*Worker, 0, len(f.workers))
	for _, w := range f.workers {
		if w.active {
			active = append(active, w)
		}
	}
	f.mu.Unlock()

	var merr *multierror.Error
	for _, w := range active {
		if err := w.Codec.SendRaw([]byte{byte(code)}, protocol.RawUrgent); err != nil {
			merr = multierror.Append(merr, ErrBroadcast.ErrorParent(err))
		}
	}
	return merr.ErrorOrNil()
}

// JoinLogDone waits for the LOGFILE/LOGDONE stream from every active
// worker, the join barrier spec.md §5 describes, aggregating per-worker
// status into one status code (the largest non-zero one) and participants
// equal to the active worker count. Per-worker transport errors are
// collected with hashicorp/go-multierror into one reportable error.
func (f *Fleet) JoinLogDone(ctx context.Context) (status int32, participants int32, err error) {
	f.mu.Lock()
	active := make([]*Worker, 0, len(f.workers))
	for _, w := range f.workers {
		if w.active {
			active = append(active, w)
		}
	}
	f.mu.Unlock()

	var (
		mu   sync.Mutex
		merr *multierror.Error
	)

	g, _ := errgroup.WithContext(ctx)
	for _, w := range active {
		w := w
		g.Go(func() error {
			st, joinErr := drainUntilLogDone(w.Codec)
			mu.Lock()
			defer mu.Unlock()
			if joinErr != nil {
				merr = multierror.Append(merr, ErrJoin.ErrorParent(joinErr))
				return nil
			}
			if st != 0 && (status == 0 || st > status) {
				status = st
			}
			return nil
		})
	}
	_ = g.Wait()

	if merr != nil {
		return status, int32(len(active)), merr.ErrorOrNil()
	}
	return status, int32(len(active)), nil
}

// drainUntilLogDone reads and discards LOGFILE chunk bodies (the
// worker's own log bytes, already forwarded to the client by the
// worker itself in non-fan-out designs; here the master simply waits
// for the terminator) until LOGDONE, returning its status field.
func drainUntilLogDone(codec *protocol.Codec) (int32, error) {
	buf := make([]byte, 32*1024)

	for {
		msg, err := codec.Recv()
		if err != nil {
			return 0, err
		}
		switch msg.Tag.Base() {
		case protocol.LOGFILE:
			left, err := msg.Payload.ReadInt64()
			if err != nil {
				return 0, err
			}
			for left > 0 {
				want := int64(len(buf))
				if left < want {
					want = left
				}
				n, err := codec.RecvRaw(buf[:want], protocol.RawNone)
				if err != nil {
					return 0, err
				}
				left -= int64(n)
			}
		case protocol.LOGDONE:
			status, err := msg.Payload.ReadInt32()
			if err != nil {
				return 0, err
			}
			return status, nil
		default:
			continue
		}
	}
}
