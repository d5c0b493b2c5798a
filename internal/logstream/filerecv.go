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

package logstream

import (
	"bytes"
	"os"

	"github.com/proofd/proofserv/internal/protocol"
)

const recvBufSize = 16 * 1024

// ReceiveFile implements spec.md §4.5's SENDFILE receive loop: create
// or truncate path at mode 0600, read exactly size bytes in 16 KiB
// chunks (tolerating short reads), strip '\r' when binary is false, and
// chmod 0644 on success. Any I/O error closes the descriptor and
// returns a structured failure rather than aborting (spec.md §7).
func ReceiveFile(codec *protocol.Codec, path string, binary bool, size int64) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return ErrReceiveIO.ErrorParent(err)
	}

	if err := receiveInto(f, codec, binary, size); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return ErrReceiveIO.ErrorParent(err)
	}

	if err := os.Chmod(path, 0644); err != nil {
		return ErrReceiveIO.ErrorParent(err)
	}

	return nil
}

func receiveInto(f *os.File, codec *protocol.Codec, binary bool, size int64) error {
	buf := make([]byte, recvBufSize)
	var remaining = size

	for remaining > 0 {
		want := int64(len(buf))
		if remaining < want {
			want = remaining
		}

		n, err := codec.RecvRaw(buf[:want], protocol.RawNone)
		if err != nil {
			return ErrReceiveIO.ErrorParent(err)
		}
		if n == 0 {
			continue
		}

		chunk := buf[:n]
		if !binary {
			chunk = bytes.ReplaceAll(chunk, []byte{'\r'}, nil)
		}

		if err := writeAll(f, chunk); err != nil {
			return ErrReceiveIO.ErrorParent(err)
		}

		remaining -= int64(n)
	}

	return nil
}

// writeAll retries on short writes, per spec.md §4.5's "honor short
// writes by retrying on the unwritten tail".
func writeAll(f *os.File, b []byte) error {
	for len(b) > 0 {
		n, err := f.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
