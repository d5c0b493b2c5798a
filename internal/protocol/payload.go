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
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Payload is the typed stream of primitives a Message carries: ints,
// doubles, length-prefixed strings, and tagged polymorphic objects, per
// spec.md §4.2.
type Payload struct {
	buf bytes.Buffer
}

// NewPayload builds an empty, write-only Payload.
func NewPayload() *Payload { return &Payload{} }

// NewPayloadFrom wraps already-received bytes for reading.
func NewPayloadFrom(b []byte) *Payload {
	p := &Payload{}
	p.buf.Write(b)
	return p
}

// Bytes returns the accumulated wire bytes.
func (p *Payload) Bytes() []byte { return p.buf.Bytes() }

func (p *Payload) WriteInt32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	p.buf.Write(b[:])
}

func (p *Payload) WriteInt64(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	p.buf.Write(b[:])
}

func (p *Payload) WriteFloat64(v float64) {
	p.WriteInt64(int64(math.Float64bits(v)))
}

func (p *Payload) WriteString(s string) {
	p.WriteInt32(int32(len(s)))
	p.buf.WriteString(s)
}

func (p *Payload) WriteBytes(b []byte) {
	p.WriteInt32(int32(len(b)))
	p.buf.Write(b)
}

// ReadInt32 consumes the next 4 bytes as a big-endian int32.
func (p *Payload) ReadInt32() (int32, error) {
	var b [4]byte
	if _, err := p.buf.Read(b[:]); err != nil {
		return 0, fmt.Errorf("protocol: payload: read int32: %w", err)
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

func (p *Payload) ReadInt64() (int64, error) {
	var b [8]byte
	if _, err := p.buf.Read(b[:]); err != nil {
		return 0, fmt.Errorf("protocol: payload: read int64: %w", err)
	}
	return int64(binary.BigEndian.Uint64(b[:])), nil
}

func (p *Payload) ReadFloat64() (float64, error) {
	v, err := p.ReadInt64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

func (p *Payload) ReadString() (string, error) {
	n, err := p.ReadInt32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("protocol: payload: negative string length")
	}
	b := make([]byte, n)
	if _, err := p.buf.Read(b); err != nil {
		return "", fmt.Errorf("protocol: payload: read string: %w", err)
	}
	return string(b), nil
}

func (p *Payload) ReadBytes() ([]byte, error) {
	n, err := p.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("protocol: payload: negative bytes length")
	}
	b := make([]byte, n)
	if _, err := p.buf.Read(b); err != nil {
		return nil, fmt.Errorf("protocol: payload: read bytes: %w", err)
	}
	return b, nil
}

// Len reports the number of unread bytes remaining in the payload.
func (p *Payload) Len() int { return p.buf.Len() }
