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

// Package workspace prepares the per-session working directory, the
// part of the Setup subphase (spec.md §4.1) that is pure filesystem
// bookkeeping: create ~/proof if absent, chdir into it, set logdir =
// workdir, set umask 022, and export HOME/PATH for any child process
// the evaluator might spawn.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultPath = "/bin:/usr/bin:/usr/contrib/bin:/usr/local/bin"

// Prepare creates (if needed) and enters the session workdir, returning
// its absolute path. home must already be set by the launching daemon
// (spec.md §6); Prepare re-exports it unchanged and resets PATH.
func Prepare(home string) (string, error) {
	if home == "" {
		return "", fmt.Errorf("workspace: HOME is not set")
	}

	dir := filepath.Join(home, "proof")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("workspace: mkdir %s: %w", dir, err)
	}

	if err := os.Chdir(dir); err != nil {
		return "", fmt.Errorf("workspace: chdir %s: %w", dir, err)
	}

	if err := os.Setenv("HOME", home); err != nil {
		return "", fmt.Errorf("workspace: export HOME: %w", err)
	}
	if err := os.Setenv("PATH", defaultPath); err != nil {
		return "", fmt.Errorf("workspace: export PATH: %w", err)
	}

	setUmask()

	return dir, nil
}

// LastBannerPath returns the touch-file path used by the Welcome Banner
// subsystem's 24-hour sliding window (spec.md §4.6).
func LastBannerPath(workdir string) string {
	return filepath.Join(workdir, ".last-banner")
}
