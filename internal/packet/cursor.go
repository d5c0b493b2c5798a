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

package packet

import "github.com/proofd/proofserv/internal/protocol"

// Packet is one contiguous half-open range [First, First+Count) of
// dataset entries assigned to the requesting worker, per spec.md's
// Packet glossary entry.
type Packet struct {
	First         int64
	Count         int32
	ProcessedSoFar int64
}

// Done reports whether this reply is the master's exhaustion sentinel
// (entry-count == -1), matching spec.md §4.3's termination rule.
func (p Packet) Done() bool { return p.Count == -1 }

// Cursor is the worker-side GetNextPacket client. It is strictly
// request/response alternating: one GETPACKET is outstanding at a
// time (spec.md §3's "at most one packet-cursor request outstanding"
// invariant), enforced here by never issuing a second Next before the
// previous round-trip returned.
type Cursor struct {
	codec *protocol.Codec

	haveLast bool
	lastEnd  int64 // first + count of the previous non-terminal packet
}

// NewCursor binds a Cursor to the worker's session codec.
func NewCursor(codec *protocol.Codec) *Cursor {
	return &Cursor{codec: codec}
}

// Next sends one GETPACKET request and returns the decoded reply. It
// verifies the strictly-monotonic, pairwise-disjoint invariant spec.md
// §8 requires across the lifetime of the cursor: each non-terminal
// packet's First must be >= the previous packet's end.
func (c *Cursor) Next() (Packet, error) {
	if err := c.codec.Send(protocol.GETPACKET, nil); err != nil {
		return Packet{}, ErrRequestFailed.ErrorParent(err)
	}

	msg, err := c.codec.Recv()
	if err != nil {
		return Packet{}, ErrRequestFailed.ErrorParent(err)
	}
	if msg.Tag.Base() != protocol.GETPACKET {
		return Packet{}, ErrMalformed.ErrorParent(nil)
	}

	count, err := msg.Payload.ReadInt32()
	if err != nil {
		return Packet{}, ErrMalformed.ErrorParent(err)
	}
	first, err := msg.Payload.ReadInt64()
	if err != nil {
		return Packet{}, ErrMalformed.ErrorParent(err)
	}
	processed, err := msg.Payload.ReadInt64()
	if err != nil {
		return Packet{}, ErrMalformed.ErrorParent(err)
	}

	p := Packet{First: first, Count: count, ProcessedSoFar: processed}
	if p.Done() {
		return p, nil
	}

	if c.haveLast && p.First < c.lastEnd {
		return Packet{}, ErrNonMonotonic.ErrorParent(nil)
	}
	c.haveLast = true
	c.lastEnd = p.First + int64(p.Count)

	return p, nil
}
