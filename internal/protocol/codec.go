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

package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
)

// urgentDiscardBuf and urgentPollInterval bound the would-block dance
// RecvUrgentByte runs: a discard chunk never exceeds 1024 bytes, and a
// fully-empty queue is retried at roughly 1 Hz (spec.md §4.4/§9).
const (
	urgentDiscardBuf   = 1024
	urgentPollInterval = time.Second
)

// Message is one framed protocol message: a tag plus its typed payload.
type Message struct {
	Tag     Tag
	Payload *Payload
}

// Codec frames messages over a single duplex connection, per spec.md
// §4.2: Send is blocking and retries partial writes; Recv returns
// exactly one message or io.EOF on peer close.
type Codec struct {
	conn net.Conn
	id   uuid.UUID
}

// NewCodec binds a codec to conn. Each codec is tagged with a random correlation id, attached to log
// fields only (never sent on the wire — the wire's own correlation is
// the 16-bit tag space of spec.md §4.2) so a master's structured log
// lines for concurrent worker connections can be told apart.
func NewCodec(conn net.Conn) *Codec {
	return &Codec{conn: conn, id: uuid.New()}
}

// ID returns this codec's log-correlation id.
func (c *Codec) ID() uuid.UUID { return c.id }

// Rebind swaps the underlying connection for conn.
func (c *Codec) Rebind(conn net.Conn) { c.conn = conn }

// Conn exposes the underlying connection for socket-option tuning and
// for the interrupt handler's bytes-available / at-mark queries.
func (c *Codec) Conn() net.Conn { return c.conn }

// Send blocks until tag and the full payload are written, retrying on
// partial writes as spec.md §4.2 requires.
func (c *Codec) Send(tag Tag, payload *Payload) error {
	var body []byte
	if payload != nil {
		body = payload.Bytes()
	}

	header := make([]byte, 6)
	binary.BigEndian.PutUint16(header[0:2], uint16(tag))
	binary.BigEndian.PutUint32(header[2:6], uint32(len(body)))

	if err := c.writeAll(header); err != nil {
		return fmt.Errorf("protocol: send header: %w", err)
	}
	if len(body) > 0 {
		if err := c.writeAll(body); err != nil {
			return fmt.Errorf("protocol: send payload: %w", err)
		}
	}
	return nil
}

func (c *Codec) writeAll(b []byte) error {
	for len(b) > 0 {
		n, err := c.conn.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// Recv blocks for the next framed message. It returns io.EOF when the
// peer has closed the connection, matching spec.md's "Recv ≤ 0" case
// that the dispatcher and interrupt handler both treat as peer loss.
func (c *Codec) Recv() (*Message, error) {
	header := make([]byte, 6)
	if _, err := io.ReadFull(c.conn, header); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}

	tag := Tag(binary.BigEndian.Uint16(header[0:2]))
	size := binary.BigEndian.Uint32(header[2:6])

	body := make([]byte, size)
	if size > 0 {
		if _, err := io.ReadFull(c.conn, body); err != nil {
			if err == io.ErrUnexpectedEOF {
				return nil, io.EOF
			}
			return nil, err
		}
	}

	return &Message{Tag: tag, Payload: NewPayloadFrom(body)}, nil
}

// RawFlags selects urgent/OOB semantics for SendRaw/RecvRaw.
type RawFlags uint8

const (
	RawNone   RawFlags = 0
	RawUrgent RawFlags = 1 << iota
)

// SendRaw writes raw bytes, optionally via the transport's urgent (OOB)
// facility — used only by the interrupt handler to send/echo a single
// urgent byte, never for framed protocol messages.
func (c *Codec) SendRaw(b []byte, flags RawFlags) error {
	if flags&RawUrgent != 0 {
		return sendOOB(c.conn, b)
	}
	return c.writeAll(b)
}

// RecvRaw reads up to len(buf) raw bytes directly off the connection,
// bypassing message framing — used by the File Receiver's bulk-copy
// loop (spec.md §4.5) and the interrupt handler's drain.
func (c *Codec) RecvRaw(buf []byte, flags RawFlags) (int, error) {
	if flags&RawUrgent != 0 {
		return recvOOB(c.conn, buf)
	}
	return c.conn.Read(buf)
}

// RecvUrgentByte reads the single urgent byte that accompanies a
// SIGURG notification. Per spec.md §4.4/§9 this receive is itself
// non-trivial: on some platforms the urgent read will not return until
// regular bytes ahead of it are drained, so this attempts the urgent
// read, and on would-block probes bytes-available — sleeping and
// retrying if the queue is empty, or discarding up to a bounded buffer
// and retrying the urgent read if it is not. wasted reports whether
// any such discard occurred, the same bookkeeping drainToMark performs
// for a hard interrupt's own drain (spec.md §9's Open Question (a)).
func (c *Codec) RecvUrgentByte() (b byte, wasted bool, err error) {
	one := make([]byte, 1)
	discard := make([]byte, urgentDiscardBuf)

	for {
		n, err := recvOOB(c.conn, one)
		if err == nil {
			if n == 0 {
				return 0, wasted, io.ErrUnexpectedEOF
			}
			return one[0], wasted, nil
		}
		if !isWouldBlockOOB(err) {
			return 0, wasted, fmt.Errorf("protocol: recv urgent byte: %w", err)
		}

		avail, aerr := BytesAvailable(c.conn)
		if aerr != nil {
			return 0, wasted, aerr
		}
		if avail == 0 {
			time.Sleep(urgentPollInterval)
			continue
		}

		want := avail
		if want > len(discard) {
			want = len(discard)
		}
		read, rerr := c.conn.Read(discard[:want])
		if rerr != nil {
			return 0, wasted, rerr
		}
		if read > 0 {
			wasted = true
		}
	}
}
