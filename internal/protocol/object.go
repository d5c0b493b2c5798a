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
	"fmt"
	"sync"
)

// ClassID identifies the runtime type of an OBJECT payload, the stable
// id Design Note #9 (spec.md §9) calls for in place of the original's
// class-dictionary lookup.
type ClassID uint16

// Object is any value that can ride inside an OBJECT message.
type Object interface {
	ClassID() ClassID
	Marshal(p *Payload)
}

// Decoder rebuilds an Object of the given class from a Payload.
type Decoder func(p *Payload) (Object, error)

var (
	registryMu sync.RWMutex
	registry   = map[ClassID]Decoder{}
)

// RegisterClass adds a decoder for a class id. Collaborators (the
// evaluator, the dataset engine) register their own object kinds at
// init time; an id registered twice panics, the same fail-fast behavior
// the teacher's registries use for duplicate keys.
func RegisterClass(id ClassID, dec Decoder) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("protocol: class id %d already registered", id))
	}
	registry[id] = dec
}

// DecodeObject reads a class id then dispatches to its registered
// Decoder. An unknown id surfaces as an error so the caller can report
// it at Error severity and discard the message, per spec.md §9.
func DecodeObject(p *Payload) (Object, error) {
	id, err := p.ReadInt32()
	if err != nil {
		return nil, err
	}

	registryMu.RLock()
	dec, ok := registry[ClassID(id)]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("protocol: unknown object class id %d", id)
	}

	return dec(p)
}

// EncodeObject writes an object's class id followed by its own
// marshaled form.
func EncodeObject(p *Payload, o Object) {
	p.WriteInt32(int32(o.ClassID()))
	o.Marshal(p)
}
