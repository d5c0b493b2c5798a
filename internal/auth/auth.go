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

// Package auth declares the remote-file authentication probe OPENFILE
// requires of a master before it evaluates an open against a
// remote-file class (spec.md §4.3's OPENFILE row). No production
// implementation ships in this repository (out of scope, spec.md §1);
// this package defines the boundary plus a test double.
package auth

// Prober authenticates the session's user against a remote host before
// a master allows a remote-file-class OPENFILE to proceed. Workers
// never call this — they evaluate OPENFILE unconditionally.
type Prober interface {
	Probe(host, user string) error
}

// AlwaysAllow is a test double that never fails, for specs exercising
// OPENFILE's local-class path where no probe should even be consulted.
type AlwaysAllow struct{}

func (AlwaysAllow) Probe(string, string) error { return nil }

// Fake records every probe call it receives and can be made to fail.
type Fake struct {
	Calls []struct{ Host, User string }
	Err   error
}

func (f *Fake) Probe(host, user string) error {
	f.Calls = append(f.Calls, struct{ Host, User string }{host, user})
	return f.Err
}
