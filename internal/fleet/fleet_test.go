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

package fleet_test

import (
	"context"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/proofd/proofserv/internal/fleet"
	"github.com/proofd/proofserv/internal/protocol"
)

// fakeWorker is a listening socket standing in for a real proofslave: a
// single connection is accepted and handed back as a plain Codec so a
// spec can script exactly the frames it sends/expects, matching the
// worker-driver join barrier spec.md §8 Scenario 2 describes.
type fakeWorker struct {
	ln      net.Listener
	addr    string
	codecCh chan *protocol.Codec
}

func newFakeWorker() *fakeWorker {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).ToNot(HaveOccurred())

	w := &fakeWorker{ln: ln, addr: ln.Addr().String(), codecCh: make(chan *protocol.Codec, 1)}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		w.codecCh <- protocol.NewCodec(conn)
	}()
	return w
}

func (w *fakeWorker) codec() *protocol.Codec {
	return <-w.codecCh
}

func (w *fakeWorker) close() { _ = w.ln.Close() }

// drainHandshake reads and discards the GREETING/HANDSHAKE pair Dial
// always sends (spec.md §6's worker handshake).
func drainHandshake(codec *protocol.Codec) {
	_, err := codec.Recv()
	Expect(err).ToNot(HaveOccurred())
	_, err = codec.Recv()
	Expect(err).ToNot(HaveOccurred())
}

var _ = Describe("Fleet", func() {
	var (
		ctx context.Context
		f   *fleet.Fleet
	)

	BeforeEach(func() {
		ctx = context.Background()
		f = fleet.New("alice", 1)
	})

	It("dials every worker address and counts them all active", func() {
		w1, w2 := newFakeWorker(), newFakeWorker()
		defer w1.close()
		defer w2.close()

		err := f.Dial(ctx, []fleet.WorkerAddr{
			{Ordinal: 0, Network: "tcp", Address: w1.addr},
			{Ordinal: 1, Network: "tcp", Address: w2.addr},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(f.ActiveCount()).To(Equal(int32(2)))
	})

	It("resizes to the first N dialed ordinals without re-dialing", func() {
		w1, w2, w3 := newFakeWorker(), newFakeWorker(), newFakeWorker()
		defer w1.close()
		defer w2.close()
		defer w3.close()

		Expect(f.Dial(ctx, []fleet.WorkerAddr{
			{Ordinal: 0, Network: "tcp", Address: w1.addr},
			{Ordinal: 1, Network: "tcp", Address: w2.addr},
			{Ordinal: 2, Network: "tcp", Address: w3.addr},
		})).To(Succeed())

		f.Resize(2)
		Expect(f.ActiveCount()).To(Equal(int32(2)))
	})

	Describe("the join barrier", func() {
		// Parallel CINT (spec.md §8 Scenario 2): a master broadcasts a
		// command to every active worker, then joins each worker's
		// LOGFILE/LOGDONE stream into one status/participants pair.
		It("aggregates a single worker's LOGDONE status and participant count", func() {
			w := newFakeWorker()
			defer w.close()

			Expect(f.Dial(ctx, []fleet.WorkerAddr{{Ordinal: 0, Network: "tcp", Address: w.addr}})).To(Succeed())
			workerCodec := w.codec()
			drainHandshake(workerCodec)

			done := make(chan struct{})
			go func() {
				defer close(done)
				defer GinkgoRecover()

				msg, err := workerCodec.Recv()
				Expect(err).ToNot(HaveOccurred())
				Expect(msg.Tag.Base()).To(Equal(protocol.CINT))
				cmd, err := msg.Payload.ReadString()
				Expect(err).ToNot(HaveOccurred())
				Expect(cmd).To(Equal("1+1"))
				Expect(workerCodec.Send(protocol.CINT|protocol.ACK, nil)).To(Succeed())

				log := protocol.NewPayload()
				log.WriteInt64(5)
				Expect(workerCodec.Send(protocol.LOGFILE, log)).To(Succeed())
				Expect(workerCodec.SendRaw([]byte("hello"), protocol.RawNone)).To(Succeed())

				doneMsg := protocol.NewPayload()
				doneMsg.WriteInt32(0)
				doneMsg.WriteInt32(1)
				Expect(workerCodec.Send(protocol.LOGDONE, doneMsg)).To(Succeed())
			}()

			payload := protocol.NewPayload()
			payload.WriteString("1+1")
			replies, err := f.Broadcast(ctx, protocol.CINT, payload)
			Expect(err).ToNot(HaveOccurred())
			Expect(replies).To(HaveLen(1))
			Expect(replies[0].Err).ToNot(HaveOccurred())

			status, participants, err := f.JoinLogDone(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(status).To(Equal(int32(0)))
			Expect(participants).To(Equal(int32(1)))

			Eventually(done).Should(BeClosed())
		})

		It("reports the max non-zero status across two joined workers", func() {
			w1, w2 := newFakeWorker(), newFakeWorker()
			defer w1.close()
			defer w2.close()

			Expect(f.Dial(ctx, []fleet.WorkerAddr{
				{Ordinal: 0, Network: "tcp", Address: w1.addr},
				{Ordinal: 1, Network: "tcp", Address: w2.addr},
			})).To(Succeed())

			c1, c2 := w1.codec(), w2.codec()
			drainHandshake(c1)
			drainHandshake(c2)

			reply := func(codec *protocol.Codec, status int32) {
				defer GinkgoRecover()
				done := protocol.NewPayload()
				done.WriteInt32(status)
				done.WriteInt32(2)
				Expect(codec.Send(protocol.LOGDONE, done)).To(Succeed())
			}
			go reply(c1, 0)
			go reply(c2, 7)

			status, participants, err := f.JoinLogDone(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(status).To(Equal(int32(7)))
			Expect(participants).To(Equal(int32(2)))
		})

		It("excludes an inactive worker from the join", func() {
			w1, w2 := newFakeWorker(), newFakeWorker()
			defer w1.close()
			defer w2.close()

			Expect(f.Dial(ctx, []fleet.WorkerAddr{
				{Ordinal: 0, Network: "tcp", Address: w1.addr},
				{Ordinal: 1, Network: "tcp", Address: w2.addr},
			})).To(Succeed())
			f.Resize(1)

			c1 := w1.codec()
			go func() {
				defer GinkgoRecover()
				done := protocol.NewPayload()
				done.WriteInt32(0)
				done.WriteInt32(1)
				Expect(c1.Send(protocol.LOGDONE, done)).To(Succeed())
			}()

			_, participants, err := f.JoinLogDone(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(participants).To(Equal(int32(1)))
		})
	})
})
