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

// Package fleet is the master-side worker driver: dialing, fan-out of
// one message to every active worker, and the join barrier that
// collects each worker's LOGDONE before the master acknowledges its own
// client (spec.md §5's "join barrier"; supplemented per SPEC_FULL.md
// §4.7 since a master with no driver cannot satisfy the parallel-CINT
// scenario in spec.md §8).
package fleet

import liberr "github.com/proofd/proofserv/pkg/errors"

const pkgName = "fleet"

var (
	ErrDial      = liberr.New(pkgName, 1, liberr.SysError, "dial worker")
	ErrHandshake = liberr.New(pkgName, 2, liberr.SysError, "worker handshake")
	ErrBroadcast = liberr.New(pkgName, 3, liberr.Error, "broadcast to workers")
	ErrJoin      = liberr.New(pkgName, 4, liberr.Error, "join worker log-done")
	ErrNoSuchWorker = liberr.New(pkgName, 5, liberr.Error, "no such worker ordinal")
)
