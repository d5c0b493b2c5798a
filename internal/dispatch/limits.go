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
	"fmt"

	"github.com/proofd/proofserv/internal/protocol"
)

// AxisLimits is one histogram axis's bin count and value range, the
// triple GetLimits exchanges per dimension (spec.md §4.3).
type AxisLimits struct {
	Bins int32
	Min  float64
	Max  float64
}

// GetLimits implements the histogram-limits client: it sends LIMITS
// carrying {dim, n} and dim triples, and returns the master's updated
// triples in the same layout, used to resolve deferred axis ranges.
func (d *Dispatcher) GetLimits(dim int32, n int32, axes []AxisLimits) ([]AxisLimits, error) {
	if int32(len(axes)) != dim {
		return nil, fmt.Errorf("dispatch: GetLimits: want %d axes, got %d", dim, len(axes))
	}

	req := protocol.NewPayload()
	req.WriteInt32(dim)
	req.WriteInt32(n)
	for _, a := range axes {
		req.WriteInt32(a.Bins)
		req.WriteFloat64(a.Min)
		req.WriteFloat64(a.Max)
	}
	if err := d.Codec.Send(protocol.LIMITS, req); err != nil {
		return nil, err
	}

	msg, err := d.Codec.Recv()
	if err != nil {
		return nil, err
	}
	if msg.Tag.Base() != protocol.LIMITS {
		return nil, ErrBadPayload.ErrorParent(fmt.Errorf("unexpected reply tag %s", msg.Tag.Base()))
	}

	replyDim, err := msg.Payload.ReadInt32()
	if err != nil {
		return nil, err
	}

	out := make([]AxisLimits, 0, replyDim)
	for i := int32(0); i < replyDim; i++ {
		bins, err := msg.Payload.ReadInt32()
		if err != nil {
			return nil, err
		}
		min, err := msg.Payload.ReadFloat64()
		if err != nil {
			return nil, err
		}
		max, err := msg.Payload.ReadFloat64()
		if err != nil {
			return nil, err
		}
		out = append(out, AxisLimits{Bins: bins, Min: min, Max: max})
	}

	return out, nil
}
