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

// Package session owns the Session Controller: the process lifecycle
// from bootstrap handshake through the main event loop to clean
// termination (spec.md §4.1). Design Note (spec.md §9): the original
// keeps a process-wide singleton for "current session"; this package
// threads an explicit *Session through every handler instead, and
// exposes a package-level accessor only at the error-reporter boundary,
// which has no other input channel.
package session

import (
	"sync"
	"time"

	"github.com/proofd/proofserv/internal/protocol"
	"github.com/proofd/proofserv/pkg/logger"
)

// Role distinguishes a master session from a worker session.
type Role uint8

const (
	RoleMaster Role = iota
	RoleWorker
)

func (r Role) String() string {
	if r == RoleMaster {
		return "master"
	}
	return "worker"
}

// Session is the single logical session entity spec.md §3 describes:
// one connected master-or-worker process serving exactly one client
// (master) or exactly one master (worker).
type Session struct {
	mu sync.Mutex

	Role     Role
	Ordinal  int32 // -1 for master
	Protocol int32
	User     string
	Secret   []byte // de-obfuscated in place at handshake time

	ConfDir  string
	ConfFile string
	WorkDir  string
	LogDir   string

	LogLevel int32

	CmdCounter uint64
	RealTime   time.Duration
	CPUTime    time.Duration
	BytesRead  int64 // bytes read from files, reported by STATUS (worker role)

	Interrupted bool

	GroupID   int32
	GroupSize int32

	Active bool

	Codec  *protocol.Codec
	Logger logger.Logger

	// ParallelWorkers is the node count the master's last PARALLEL
	// request asked for (spec.md §4.3 PARALLEL), zero on a worker session.
	ParallelWorkers int32

	// EvaluatorSnapshot is the opaque token Bootstrap's startup-script
	// step captured right after the Load/Logon macros ran; RESET
	// replays it through Evaluator.Restore (spec.md §4.1 step 8, §4.3
	// RESET row, §9's "Interpreter save/restore").
	EvaluatorSnapshot []byte
}

// New constructs a Session in its pre-handshake state.
func New(role Role, ordinal int32) *Session {
	return &Session{Role: role, Ordinal: ordinal, Active: true}
}

// IncCommand bumps the command counter, a monotonically increasing
// value per spec.md §3's invariant.
func (s *Session) IncCommand() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CmdCounter++
	return s.CmdCounter
}

// AddElapsed accumulates wall-clock and CPU time into the session's
// cumulative counters, which must only ever grow (spec.md §3).
func (s *Session) AddElapsed(real, cpu time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RealTime += real
	s.CPUTime += cpu
}

// SetInterrupted sets or clears the cooperative interrupt flag the
// evaluator is expected to poll (spec.md §4.4).
func (s *Session) SetInterrupted(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Interrupted = v
}

// IsInterrupted reads the cooperative interrupt flag.
func (s *Session) IsInterrupted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Interrupted
}

// Deobfuscate reverses, in place, the bitwise-NOT obfuscation spec.md
// §4.1/§6 applies to the secret carried in the master handshake
// payload, and returns b.
func Deobfuscate(b []byte) []byte {
	for i := range b {
		b[i] = ^b[i]
	}
	return b
}
