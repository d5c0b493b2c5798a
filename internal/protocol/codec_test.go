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

package protocol_test

import (
	"io"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/proofd/proofserv/internal/protocol"
)

var _ = Describe("Codec", func() {
	var (
		a, b   net.Conn
		client *protocol.Codec
		server *protocol.Codec
	)

	BeforeEach(func() {
		a, b = net.Pipe()
		client = protocol.NewCodec(a)
		server = protocol.NewCodec(b)
	})

	It("round-trips a tagged message with a typed payload", func() {
		p := protocol.NewPayload()
		p.WriteInt32(7)
		p.WriteString("hello")

		go func() { _ = client.Send(protocol.CINT, p) }()

		msg, err := server.Recv()
		Expect(err).ToNot(HaveOccurred())
		Expect(msg.Tag.Base()).To(Equal(protocol.CINT))
		Expect(msg.Tag.Acked()).To(BeFalse())

		n, err := msg.Payload.ReadInt32()
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(int32(7)))

		s, err := msg.Payload.ReadString()
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal("hello"))
	})

	It("carries the ACK bit independently of the base tag", func() {
		go func() { _ = client.Send(protocol.STATUS|protocol.ACK, nil) }()

		msg, err := server.Recv()
		Expect(err).ToNot(HaveOccurred())
		Expect(msg.Tag.Base()).To(Equal(protocol.STATUS))
		Expect(msg.Tag.Acked()).To(BeTrue())
	})

	It("reports io.EOF once the peer closes", func() {
		Expect(a.Close()).To(Succeed())

		_, err := server.Recv()
		Expect(err).To(Equal(io.EOF))
		Expect(b.Close()).To(Succeed())
	})
})

var _ = Describe("Payload", func() {
	It("round-trips every primitive type", func() {
		p := protocol.NewPayload()
		p.WriteInt32(-12)
		p.WriteInt64(1 << 40)
		p.WriteFloat64(3.25)
		p.WriteString("héllo")
		p.WriteBytes([]byte{1, 2, 3})

		r := protocol.NewPayloadFrom(p.Bytes())

		i32, err := r.ReadInt32()
		Expect(err).ToNot(HaveOccurred())
		Expect(i32).To(Equal(int32(-12)))

		i64, err := r.ReadInt64()
		Expect(err).ToNot(HaveOccurred())
		Expect(i64).To(Equal(int64(1 << 40)))

		f64, err := r.ReadFloat64()
		Expect(err).ToNot(HaveOccurred())
		Expect(f64).To(Equal(3.25))

		s, err := r.ReadString()
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal("héllo"))

		bs, err := r.ReadBytes()
		Expect(err).ToNot(HaveOccurred())
		Expect(bs).To(Equal([]byte{1, 2, 3}))

		Expect(r.Len()).To(Equal(0))
	})
})
