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

// Package logstream redirects process output into a per-session log
// file, ships newly appended bytes back to the peer after every
// dispatched request, and receives files pushed by the peer (spec.md
// §4.5). Both failure paths return structured codes to their callers
// rather than aborting, per spec.md §7.
package logstream

import liberr "github.com/proofd/proofserv/pkg/errors"

const pkgName = "logstream"

var (
	ErrOpenLog    = liberr.New(pkgName, 1, liberr.SysError, "open log file")
	ErrFlushLog   = liberr.New(pkgName, 2, liberr.SysError, "flush log to peer")
	ErrReceiveIO  = liberr.New(pkgName, 3, liberr.SysError, "receive file I/O")
)
