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

// Package protocol implements the binary, versioned, message-framed
// codec spec.md §4.2 describes: a 16-bit tag plus a typed payload,
// blocking send/receive, and raw urgent (OOB) byte send/receive.
package protocol

// Tag is the 16-bit "what" carried by every framed message. Tags are
// additive-disjoint; ACK may be OR-ed onto any tag to request
// acknowledgement, matching spec.md §4.2's tag-space description.
type Tag uint16

const (
	// GREETING and HANDSHAKE frame the Setup subphase's greeting/
	// handshake exchange (spec.md §4.1, §6), before the session is
	// dispatch-ready.
	GREETING Tag = 1 + iota
	HANDSHAKE
	CINT
	STRING
	OBJECT
	GROUPVIEW
	LOGLEVEL
	PING
	PRINT
	RESET
	STATUS
	STOP
	TREEDRAW
	SENDFILE
	OPENFILE
	PARALLEL
	GETOBJECT
	GETPACKET
	LIMITS
	LOGFILE
	LOGDONE
	FATAL
)

// ACK is OR-ed onto a base tag to request acknowledgement of delivery.
const ACK Tag = 0x8000

// Base strips the ACK bit, returning the underlying request tag.
func (t Tag) Base() Tag { return t &^ ACK }

// Acked reports whether ACK is set on this tag.
func (t Tag) Acked() bool { return t&ACK != 0 }

func (t Tag) String() string {
	switch t.Base() {
	case GREETING:
		return "GREETING"
	case HANDSHAKE:
		return "HANDSHAKE"
	case CINT:
		return "CINT"
	case STRING:
		return "STRING"
	case OBJECT:
		return "OBJECT"
	case GROUPVIEW:
		return "GROUPVIEW"
	case LOGLEVEL:
		return "LOGLEVEL"
	case PING:
		return "PING"
	case PRINT:
		return "PRINT"
	case RESET:
		return "RESET"
	case STATUS:
		return "STATUS"
	case STOP:
		return "STOP"
	case TREEDRAW:
		return "TREEDRAW"
	case SENDFILE:
		return "SENDFILE"
	case OPENFILE:
		return "OPENFILE"
	case PARALLEL:
		return "PARALLEL"
	case GETOBJECT:
		return "GETOBJECT"
	case GETPACKET:
		return "GETPACKET"
	case LIMITS:
		return "LIMITS"
	case LOGFILE:
		return "LOGFILE"
	case LOGDONE:
		return "LOGDONE"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Urgent is a single out-of-band byte code, delivered via the
// transport's urgent facility, used exclusively for interrupts
// (spec.md §4.4, §6).
type Urgent byte

const (
	UrgentHard     Urgent = 0x01
	UrgentSoft     Urgent = 0x02
	UrgentShutdown Urgent = 0x03
)
