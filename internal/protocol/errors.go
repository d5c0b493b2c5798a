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

import liberr "github.com/proofd/proofserv/pkg/errors"

const pkgName = "protocol"

var (
	// ErrPeerClosed marks a Recv/Send failure as peer loss, per spec.md
	// §7 ("Recv ≤ 0, Send < 0 are treated as peer loss: the session
	// terminates").
	ErrPeerClosed = liberr.New(pkgName, 1, liberr.SysError, "peer closed the control connection")

	// ErrUnknownTag marks an inbound message whose tag the dispatcher
	// does not recognize (spec.md §4.3's "(unknown)" row).
	ErrUnknownTag = liberr.New(pkgName, 2, liberr.Error, "unrecognized protocol tag")
)
