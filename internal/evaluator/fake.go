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

package evaluator

// Fake is a test double recording every call made to it, used by the
// dispatcher's own specs so they do not depend on a real interpreter.
type Fake struct {
	Commands []string
	Output   string
	Err      error

	Dir         string
	Cleared     bool
	Snapshotted []byte
	Restored    []byte

	InterruptedFlag bool
}

func (f *Fake) Process(cmd string) (string, error) {
	f.Commands = append(f.Commands, cmd)
	return f.Output, f.Err
}

func (f *Fake) Chdir(dir string) error {
	f.Dir = dir
	return nil
}

func (f *Fake) ClearExceptDatasets() error {
	f.Cleared = true
	return nil
}

func (f *Fake) Snapshot() ([]byte, error) {
	f.Snapshotted = []byte("snapshot")
	return f.Snapshotted, nil
}

func (f *Fake) Restore(token []byte) error {
	f.Restored = token
	return nil
}

func (f *Fake) Interrupted() bool { return f.InterruptedFlag }
