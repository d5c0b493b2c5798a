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

package packet_test

import (
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/proofd/proofserv/internal/packet"
	"github.com/proofd/proofserv/internal/protocol"
)

// pairedCodecs wires a client Cursor to a server-side Codec over an
// in-memory pipe, so each reply can be scripted per test.
func pairedCodecs() (client *protocol.Codec, server *protocol.Codec) {
	a, b := net.Pipe()
	return protocol.NewCodec(a), protocol.NewCodec(b)
}

func replyPacket(first int64, count int32, processed int64) *protocol.Payload {
	p := protocol.NewPayload()
	p.WriteInt32(count)
	p.WriteInt64(first)
	p.WriteInt64(processed)
	return p
}

var _ = Describe("Cursor", func() {
	var (
		client *protocol.Codec
		server *protocol.Codec
		cur    *packet.Cursor
	)

	BeforeEach(func() {
		client, server = pairedCodecs()
		cur = packet.NewCursor(client)
	})

	It("decodes a non-terminal packet", func() {
		go func() {
			_, _ = server.Recv()
			_ = server.Send(protocol.GETPACKET, replyPacket(0, 100, 0))
		}()

		p, err := cur.Next()
		Expect(err).ToNot(HaveOccurred())
		Expect(p.First).To(Equal(int64(0)))
		Expect(p.Count).To(Equal(int32(100)))
		Expect(p.Done()).To(BeFalse())
	})

	It("recognizes the exhaustion sentinel", func() {
		go func() {
			_, _ = server.Recv()
			_ = server.Send(protocol.GETPACKET, replyPacket(0, -1, 500))
		}()

		p, err := cur.Next()
		Expect(err).ToNot(HaveOccurred())
		Expect(p.Done()).To(BeTrue())
	})

	It("rejects a packet that overlaps the previous one", func() {
		go func() {
			_, _ = server.Recv()
			_ = server.Send(protocol.GETPACKET, replyPacket(0, 100, 0))
		}()
		_, err := cur.Next()
		Expect(err).ToNot(HaveOccurred())

		go func() {
			_, _ = server.Recv()
			_ = server.Send(protocol.GETPACKET, replyPacket(50, 100, 100))
		}()
		_, err = cur.Next()
		Expect(err).To(MatchError(packet.ErrNonMonotonic))
	})

	It("accepts a packet that starts exactly where the previous one ended", func() {
		go func() {
			_, _ = server.Recv()
			_ = server.Send(protocol.GETPACKET, replyPacket(0, 100, 0))
		}()
		_, err := cur.Next()
		Expect(err).ToNot(HaveOccurred())

		go func() {
			_, _ = server.Recv()
			_ = server.Send(protocol.GETPACKET, replyPacket(100, 50, 100))
		}()
		p, err := cur.Next()
		Expect(err).ToNot(HaveOccurred())
		Expect(p.First).To(Equal(int64(100)))
	})
})
