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

import "github.com/proofd/proofserv/internal/protocol"

// Get implements the object-fetch client (spec.md §4.3): it sends
// GETOBJECT carrying namecycle and decodes the OBJECT reply, or returns
// (nil, nil) on an empty reply (miss).
func (d *Dispatcher) Get(namecycle string) (protocol.Object, error) {
	req := protocol.NewPayload()
	req.WriteString(namecycle)
	if err := d.Codec.Send(protocol.GETOBJECT, req); err != nil {
		return nil, err
	}

	msg, err := d.Codec.Recv()
	if err != nil {
		return nil, err
	}
	if msg.Tag.Base() != protocol.OBJECT || msg.Payload.Len() == 0 {
		return nil, nil
	}

	return protocol.DecodeObject(msg.Payload)
}
