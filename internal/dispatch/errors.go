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

// Package dispatch implements the Request Dispatcher (spec.md §4.3):
// one handler per protocol tag, the per-request timing/counter
// bookkeeping, and the flush-after-handler contract enforced via each
// handler's own return value rather than a side table.
package dispatch

import liberr "github.com/proofd/proofserv/pkg/errors"

const pkgName = "dispatch"

var (
	ErrUnknownTag  = liberr.New(pkgName, 1, liberr.Error, "unknown request tag")
	ErrBadPayload  = liberr.New(pkgName, 2, liberr.Error, "malformed request payload")
	ErrNoDataset   = liberr.New(pkgName, 3, liberr.Error, "no such dataset")
	ErrAuthDenied  = liberr.New(pkgName, 4, liberr.Error, "remote file authentication denied")
	ErrNoFleet     = liberr.New(pkgName, 5, liberr.Error, "no worker fleet on this session")
	ErrFleet       = liberr.New(pkgName, 6, liberr.Error, "worker fleet operation failed")
)
