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
	"errors"
	"net"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/proofd/proofserv/internal/auth"
	"github.com/proofd/proofserv/internal/dataset"
	"github.com/proofd/proofserv/internal/evaluator"
	"github.com/proofd/proofserv/internal/logstream"
	"github.com/proofd/proofserv/internal/protocol"
	"github.com/proofd/proofserv/internal/session"
)

var _ = Describe("Dispatcher handler table", func() {
	var (
		serverConn, peerConn net.Conn
		serverCodec          *protocol.Codec
		peerCodec            *protocol.Codec
		sess                 *session.Session
		fake                 *evaluator.Fake
		d                    *Dispatcher
		ctx                  context.Context
	)

	BeforeEach(func() {
		serverConn, peerConn = net.Pipe()
		serverCodec = protocol.NewCodec(serverConn)
		peerCodec = protocol.NewCodec(peerConn)
		sess = session.New(session.RoleWorker, 0)
		fake = &evaluator.Fake{}
		ctx = context.Background()
		d = New(sess, serverCodec, nil, fake, dataset.NewFakeEngine(), auth.AlwaysAllow{}, nil)
	})

	AfterEach(func() {
		_ = serverConn.Close()
		_ = peerConn.Close()
	})

	msgFor := func(tag protocol.Tag, build func(*protocol.Payload)) *protocol.Message {
		p := protocol.NewPayload()
		if build != nil {
			build(p)
		}
		return &protocol.Message{Tag: tag, Payload: p}
	}

	Describe("RESET", func() {
		It("chdirs, clears non-dataset objects, and restores the startup snapshot", func() {
			sess.EvaluatorSnapshot = []byte("captured-at-startup")

			msg := msgFor(protocol.RESET, func(p *protocol.Payload) { p.WriteString("/new/dir") })
			flush, err := handleReset(ctx, d, msg)

			Expect(err).ToNot(HaveOccurred())
			Expect(flush).To(BeFalse())
			Expect(fake.Dir).To(Equal("/new/dir"))
			Expect(fake.Cleared).To(BeTrue())
			Expect(fake.Restored).To(Equal([]byte("captured-at-startup")))
		})
	})

	Describe("STATUS", func() {
		It("replies with the worker's counters and cwd, acked", func() {
			sess.BytesRead = 4096

			go func() {
				defer GinkgoRecover()
				_, err := handleStatus(ctx, d, msgFor(protocol.STATUS, nil))
				Expect(err).ToNot(HaveOccurred())
			}()

			reply, err := peerCodec.Recv()
			Expect(err).ToNot(HaveOccurred())
			Expect(reply.Tag.Base()).To(Equal(protocol.STATUS))
			Expect(reply.Tag.Acked()).To(BeTrue())

			bytesRead, err := reply.Payload.ReadInt64()
			Expect(err).ToNot(HaveOccurred())
			Expect(bytesRead).To(Equal(int64(4096)))
		})

		It("replies with the active worker count on a master with no fleet", func() {
			sess.Role = session.RoleMaster

			go func() {
				defer GinkgoRecover()
				_, err := handleStatus(ctx, d, msgFor(protocol.STATUS, nil))
				Expect(err).ToNot(HaveOccurred())
			}()

			reply, err := peerCodec.Recv()
			Expect(err).ToNot(HaveOccurred())
			count, err := reply.Payload.ReadInt32()
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int32(0)))
		})
	})

	Describe("PARALLEL", func() {
		It("rejects a worker session with no fleet to resize", func() {
			msg := msgFor(protocol.PARALLEL, func(p *protocol.Payload) { p.WriteInt32(3) })
			_, err := handleParallel(ctx, d, msg)
			Expect(err).To(MatchError(ErrNoFleet))
		})
	})

	Describe("TREEDRAW", func() {
		It("reports no-such-dataset for an unknown name", func() {
			msg := msgFor(protocol.TREEDRAW, func(p *protocol.Payload) { p.WriteString("ghost 100 10") })
			_, err := handleTreeDraw(ctx, d, msg)
			Expect(err).To(MatchError(ErrNoDataset))
		})

		It("applies the tuning setters to a known dataset", func() {
			ds := dataset.NewFakeDataset("events", 1000, 100)
			engine := dataset.NewFakeEngine()
			engine.Add(ds)
			d = New(sess, serverCodec, nil, fake, engine, auth.AlwaysAllow{}, nil)

			msg := msgFor(protocol.TREEDRAW, func(p *protocol.Payload) { p.WriteString("events 2048 500") })
			flush, err := handleTreeDraw(ctx, d, msg)
			Expect(err).ToNot(HaveOccurred())
			Expect(flush).To(BeFalse())
		})
	})

	Describe("OPENFILE", func() {
		It("evaluates unconditionally on a worker, never consulting the prober", func() {
			prober := &auth.Fake{}
			d = New(sess, serverCodec, nil, fake, dataset.NewFakeEngine(), prober, nil)

			msg := msgFor(protocol.OPENFILE, func(p *protocol.Payload) {
				p.WriteString("TFile")
				p.WriteString("/local/path.root")
				p.WriteString("")
			})
			_, err := handleOpenFile(ctx, d, msg)
			Expect(err).ToNot(HaveOccurred())
			Expect(prober.Calls).To(BeEmpty())
			Expect(fake.Commands).To(HaveLen(1))
		})

		It("probes and denies a master opening a remote-file class", func() {
			sess.Role = session.RoleMaster
			sess.User = "alice"
			prober := &auth.Fake{Err: errors.New("no such user")}
			d = New(sess, serverCodec, nil, fake, dataset.NewFakeEngine(), prober, nil)

			msg := msgFor(protocol.OPENFILE, func(p *protocol.Payload) {
				p.WriteString("TRemoteFile")
				p.WriteString("bob@host.example:/data/file.root")
				p.WriteString("")
			})
			_, err := handleOpenFile(ctx, d, msg)
			Expect(err).To(MatchError(ErrAuthDenied))
			Expect(prober.Calls).To(HaveLen(1))
			Expect(prober.Calls[0].Host).To(Equal("host.example"))
			Expect(prober.Calls[0].User).To(Equal("bob"))
		})
	})

	Describe("Dispatch", func() {
		It("flushes the log once a flushing handler completes", func() {
			dir, err := os.MkdirTemp("", "dispatch-flush-*")
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(func() { _ = os.RemoveAll(dir) })

			streamer, err := logstream.Open(filepath.Join(dir, "session.log"))
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(func() { _ = streamer.Close() })

			d = New(sess, serverCodec, streamer, fake, dataset.NewFakeEngine(), auth.AlwaysAllow{}, nil)

			msg := msgFor(protocol.CINT, func(p *protocol.Payload) { p.WriteString("1+1") })

			go func() {
				defer GinkgoRecover()
				Expect(d.Dispatch(ctx, msg)).To(Succeed())
			}()

			logdone, err := peerCodec.Recv()
			Expect(err).ToNot(HaveOccurred())
			Expect(logdone.Tag.Base()).To(Equal(protocol.LOGDONE))

			status, err := logdone.Payload.ReadInt32()
			Expect(err).ToNot(HaveOccurred())
			Expect(status).To(Equal(int32(0)))

			Expect(fake.Commands).To(ConsistOf("1+1"))
		})

		It("reports a non-zero LOGDONE status when the handler errors", func() {
			dir, err := os.MkdirTemp("", "dispatch-flush-err-*")
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(func() { _ = os.RemoveAll(dir) })

			streamer, err := logstream.Open(filepath.Join(dir, "session.log"))
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(func() { _ = streamer.Close() })

			sess.Role = session.RoleMaster
			d = New(sess, serverCodec, streamer, fake, dataset.NewFakeEngine(), auth.AlwaysAllow{}, nil)

			msg := msgFor(protocol.PARALLEL, func(p *protocol.Payload) { p.WriteInt32(2) })

			go func() {
				defer GinkgoRecover()
				Expect(d.Dispatch(ctx, msg)).To(Succeed())
			}()

			logdone, err := peerCodec.Recv()
			Expect(err).ToNot(HaveOccurred())
			status, err := logdone.Payload.ReadInt32()
			Expect(err).ToNot(HaveOccurred())
			Expect(status).To(Equal(int32(1)))
		})
	})
})
