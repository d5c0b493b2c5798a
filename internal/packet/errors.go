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

// Package packet implements the worker's GETPACKET cursor client: each
// worker asks the master for its next unit of work over the same
// session connection used for everything else, and the master's
// answer carries either a packet descriptor or the −1 sentinel that
// ends the loop (spec.md §4.3, §8).
package packet

import liberr "github.com/proofd/proofserv/pkg/errors"

const pkgName = "packet"

var (
	ErrRequestFailed = liberr.New(pkgName, 1, liberr.Error, "request next packet")
	ErrMalformed     = liberr.New(pkgName, 2, liberr.Error, "malformed packet reply")
	ErrNonMonotonic  = liberr.New(pkgName, 3, liberr.SysError, "packet cursor went backwards")
)
