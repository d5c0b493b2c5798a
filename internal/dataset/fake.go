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

package dataset

// FakeEngine is a name-keyed in-memory registry of FakeDatasets, used by
// the dispatcher's and fleet's own specs.
type FakeEngine struct {
	Datasets map[string]*FakeDataset
}

func NewFakeEngine() *FakeEngine {
	return &FakeEngine{Datasets: make(map[string]*FakeDataset)}
}

func (e *FakeEngine) Add(d *FakeDataset) { e.Datasets[d.name] = d }

func (e *FakeEngine) Lookup(name string) (Dataset, bool) {
	d, ok := e.Datasets[name]
	return d, ok
}

// FakeDataset splits EntryCount entries into fixed-size packets per
// worker ordinal, independent cursors per ordinal, matching the
// strictly-monotonic-disjoint invariant spec.md §8 describes.
type FakeDataset struct {
	name       string
	entries    int64
	packetSize int64

	maxVirtual int64
	estimate   int64

	next map[int32]int64
}

func NewFakeDataset(name string, entries, packetSize int64) *FakeDataset {
	return &FakeDataset{name: name, entries: entries, packetSize: packetSize, next: make(map[int32]int64)}
}

func (d *FakeDataset) Name() string       { return d.name }
func (d *FakeDataset) EntryCount() int64  { return d.entries }
func (d *FakeDataset) SetMaxVirtualSize(n int64) { d.maxVirtual = n }
func (d *FakeDataset) SetCacheEstimate(n int64)  { d.estimate = n }

func (d *FakeDataset) NextPacket(ordinal int32) (int64, int32, error) {
	first, ok := d.next[ordinal]
	if !ok {
		first = 0
	}
	if first >= d.entries {
		return 0, -1, nil
	}

	count := d.packetSize
	if first+count > d.entries {
		count = d.entries - first
	}
	d.next[ordinal] = first + count

	return first, int32(count), nil
}
