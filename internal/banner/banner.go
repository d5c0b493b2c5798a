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

// Package banner resolves the master's per-day "message of the day"
// (spec.md §4.6): a closed-banner short-circuit, or the regular banner
// throttled to once per 24-hour sliding window against a touch file.
package banner

import (
	"os"
	"path/filepath"
	"time"
)

const window = 24 * time.Hour

// StatusClosed is the LOGDONE status sentinel a master ships alongside
// the closed-banner text, per spec.md §8 Scenario 4.
const StatusClosed int32 = -99

// Resolution is the outcome of resolving the welcome banner.
type Resolution struct {
	// Text is the banner content to ship to the client, empty if
	// nothing should be sent this connection.
	Text string

	// Closed is true when <confdir>/proof/etc/closed-banner exists;
	// the Session Controller must emit Text and terminate with code 0
	// regardless of whether Text is empty.
	Closed bool

	// Sent reports whether a banner file was read and is to be shipped
	// (the regular banner is throttled; the closed banner is always
	// sent). It can be true while Text is empty.
	Sent bool
}

// Resolve implements spec.md §4.6's resolution order. workdir is the
// session workdir (§4.1); confdir is the launch-argument confdir.
func Resolve(confdir, workdir string) (Resolution, error) {
	closedPath := filepath.Join(confdir, "proof", "etc", "closed-banner")
	if b, err := os.ReadFile(closedPath); err == nil {
		_ = touch(workdir)
		return Resolution{Text: string(b), Closed: true, Sent: true}, nil
	} else if !os.IsNotExist(err) {
		return Resolution{}, err
	}

	bannerPath := filepath.Join(confdir, "proof", "etc", "banner")
	info, err := os.Stat(bannerPath)
	if os.IsNotExist(err) {
		_ = touch(workdir)
		return Resolution{}, nil
	} else if err != nil {
		return Resolution{}, err
	}

	lastPath := filepath.Join(workdir, ".last-banner")
	last, lastErr := os.Stat(lastPath)

	shouldSend := os.IsNotExist(lastErr) || info.ModTime().After(last.ModTime()) ||
		time.Since(last.ModTime()) >= window

	defer func() { _ = touch(workdir) }()

	if !shouldSend {
		return Resolution{}, nil
	}

	b, err := os.ReadFile(bannerPath)
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{Text: string(b), Sent: true}, nil
}

func touch(workdir string) error {
	path := filepath.Join(workdir, ".last-banner")
	now := time.Now()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		return f.Close()
	}

	return os.Chtimes(path, now, now)
}
