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

// Package dataset declares the tabular-dataset engine collaborator: the
// thing that actually owns entry ranges and answers the packet cursor
// and TREEDRAW tuning requests. Its production implementation is out of
// scope per spec.md §1; this package defines the boundary plus a test
// double the dispatcher's specs use.
package dataset

// Engine locates named datasets and answers packet-range and tuning
// requests against them.
type Engine interface {
	// Lookup finds a dataset by name, used by TREEDRAW (spec.md §4.3)
	// and by the master's packet-cursor bookkeeping.
	Lookup(name string) (Dataset, bool)
}

// Dataset is one named, entry-indexed data source.
type Dataset interface {
	Name() string

	// EntryCount is the total number of entries in the dataset, the
	// upper bound the packet cursor's ranges must stay within.
	EntryCount() int64

	// SetMaxVirtualSize and SetCacheEstimate apply TREEDRAW's two
	// tuning setters (spec.md §4.3's "<max-virtual> <estimate>").
	SetMaxVirtualSize(n int64)
	SetCacheEstimate(n int64)

	// NextPacket hands out the next [first, first+count) range for the
	// given worker ordinal, or count == -1 once entries are exhausted,
	// matching the packet cursor's termination rule (spec.md §3, §8).
	NextPacket(workerOrdinal int32) (first int64, count int32, err error)
}
