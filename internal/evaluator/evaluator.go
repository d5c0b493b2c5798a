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

// Package evaluator declares the interpreter collaborator the dispatcher
// hands command strings and object payloads to. Its production
// implementation (the actual language interpreter) is out of scope per
// spec.md §1 and SPEC_FULL.md §6; this package only defines the
// boundary and a test double.
package evaluator

// Evaluator executes interpreted command strings and manages the
// object list and global state snapshot/restore that RESET relies on
// (spec.md §4.3's RESET row).
type Evaluator interface {
	// Process evaluates one command string (a CINT payload) and
	// returns any output that was not already written to the
	// redirected stdout/stderr.
	Process(cmd string) (string, error)

	// Chdir changes the interpreter's working directory, used by
	// RESET's "chdir to the named directory" step.
	Chdir(dir string) error

	// ClearExceptDatasets removes and destroys every object in the
	// current directory's object list that is not a dataset, per
	// RESET's preservation rule.
	ClearExceptDatasets() error

	// Snapshot saves the evaluator's global state once, after startup
	// macros run, returning an opaque token RESET later restores.
	Snapshot() (token []byte, err error)

	// Restore reinstates globals captured by Snapshot.
	Restore(token []byte) error

	// Interrupted is polled cooperatively by long-running evaluation so
	// a soft/hard interrupt (internal/interrupt) can abort it, per
	// spec.md §4.4.
	Interrupted() bool
}
