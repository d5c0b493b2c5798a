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

package interrupt_test

import (
	"context"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/proofd/proofserv/internal/interrupt"
	"github.com/proofd/proofserv/internal/protocol"
	"github.com/proofd/proofserv/internal/session"
)

var _ = Describe("Handler", func() {
	var (
		sess *session.Session
		h    *interrupt.Handler
		ctx  context.Context
	)

	BeforeEach(func() {
		sess = session.New(session.RoleWorker, 0)
		a, _ := net.Pipe()
		h = interrupt.New(sess, protocol.NewCodec(a), nil)
		ctx = context.Background()
	})

	AfterEach(func() {
		interrupt.Exit = func(code int) {}
	})

	It("sets the cooperative interrupt flag on a plain soft interrupt", func() {
		Expect(sess.IsInterrupted()).To(BeFalse())
		Expect(h.Handle(ctx, protocol.UrgentSoft)).To(Succeed())
		Expect(sess.IsInterrupted()).To(BeTrue())
	})

	It("suppresses the interrupt flag when a prior hard drain wasted bytes (Design Note a)", func() {
		h.Wasted = true
		Expect(h.Handle(ctx, protocol.UrgentSoft)).To(Succeed())
		Expect(sess.IsInterrupted()).To(BeFalse())
	})

	It("calls Exit(0) on a shutdown interrupt", func() {
		var gotCode = -1
		interrupt.Exit = func(code int) { gotCode = code }

		Expect(h.Handle(ctx, protocol.UrgentShutdown)).To(Succeed())
		Expect(gotCode).To(Equal(0))
	})

	It("rejects an unknown urgent code", func() {
		err := h.Handle(ctx, protocol.Urgent(0xFF))
		Expect(err).To(MatchError(interrupt.ErrUnknownCode))
	})
})
