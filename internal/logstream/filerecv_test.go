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

package logstream_test

import (
	"net"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/proofd/proofserv/internal/logstream"
	"github.com/proofd/proofserv/internal/protocol"
)

var _ = Describe("ReceiveFile", func() {
	var (
		dir    string
		client *protocol.Codec
		server *protocol.Codec
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()

		a, b := net.Pipe()
		client = protocol.NewCodec(a)
		server = protocol.NewCodec(b)
	})

	It("strips CRLF down to LF for a text transfer", func() {
		payload := []byte("line one\r\nline two\r\n")
		go func() {
			_ = server.SendRaw(payload, protocol.RawNone)
		}()

		path := filepath.Join(dir, "out.txt")
		err := logstream.ReceiveFile(client, path, false, int64(len(payload)))
		Expect(err).ToNot(HaveOccurred())

		got, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(got)).To(Equal("line one\nline two\n"))
	})

	It("preserves bytes verbatim for a binary transfer", func() {
		payload := []byte{0x00, '\r', 0x01, '\r', 0x02}
		go func() {
			_ = server.SendRaw(payload, protocol.RawNone)
		}()

		path := filepath.Join(dir, "out.bin")
		err := logstream.ReceiveFile(client, path, true, int64(len(payload)))
		Expect(err).ToNot(HaveOccurred())

		got, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(payload))
	})

	It("chmods the file to 0644 on success", func() {
		payload := []byte("x")
		go func() {
			_ = server.SendRaw(payload, protocol.RawNone)
		}()

		path := filepath.Join(dir, "out.txt")
		Expect(logstream.ReceiveFile(client, path, true, int64(len(payload)))).To(Succeed())

		info, err := os.Stat(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(info.Mode().Perm()).To(Equal(os.FileMode(0644)))
	})
})
