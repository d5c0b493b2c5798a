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

package logstream

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/proofd/proofserv/internal/protocol"
)

const chunkSize = 32 * 1024

// Streamer owns the session's log file: the write end is stdout/stderr
// (after RedirectOutput), the read end is an independent file handle
// with its own cursor, per spec.md §3's Log File entity.
type Streamer struct {
	path      string
	writeFile *os.File // stdout target, for Flush's fflush-equivalent
	readFile  *os.File
	readPos   int64
}

// Open creates (or truncates) the log file at path, binds it as the
// write end, and opens a second independent handle as the read end —
// the two-handle design spec.md §3's Log File entity requires so the
// streamer's cursor never interferes with the writer's append position.
func Open(path string) (*Streamer, error) {
	wf, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, ErrOpenLog.ErrorParent(err)
	}

	rf, err := os.Open(path)
	if err != nil {
		_ = wf.Close()
		return nil, ErrOpenLog.ErrorParent(err)
	}

	return &Streamer{path: path, writeFile: wf, readFile: rf}, nil
}

// WriteFile exposes the write end so RedirectOutput can rebind
// os.Stdout/os.Stderr onto it.
func (s *Streamer) WriteFile() *os.File { return s.writeFile }

// Purge removes any prior log files for the same role/ordinal,
// matching spec.md §4.1 RedirectOutput's "unlink any prior log files
// matching the role/ordinal glob".
func Purge(dir, glob string) error {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return err
	}
	for _, m := range matches {
		_ = os.Remove(m)
	}
	return nil
}

// Flush implements spec.md §4.5's log-shipping algorithm: flush stdout,
// compute the unread suffix, ship it in 32 KiB chunks via SendRaw, then
// always emit the LOGDONE terminator with status and participants —
// even when there was nothing new to send, since LOGDONE is the
// client-visible barrier spec.md §5 describes.
func (s *Streamer) Flush(codec *protocol.Codec, status, participants int32) error {
	if err := s.writeFile.Sync(); err != nil {
		return ErrFlushLog.ErrorParent(err)
	}

	info, err := s.writeFile.Stat()
	if err != nil {
		return ErrFlushLog.ErrorParent(err)
	}

	left := info.Size() - s.readPos
	if left > 0 {
		header := protocol.NewPayload()
		header.WriteInt64(left)
		if err := codec.Send(protocol.LOGFILE, header); err != nil {
			return ErrFlushLog.ErrorParent(err)
		}

		buf := make([]byte, chunkSize)
		for left > 0 {
			n := int64(len(buf))
			if left < n {
				n = left
			}

			read, err := s.readFile.Read(buf[:n])
			if err != nil && err != io.EOF {
				return ErrFlushLog.ErrorParent(err)
			}
			if read == 0 {
				break
			}

			if err := codec.SendRaw(buf[:read], protocol.RawNone); err != nil {
				return ErrFlushLog.ErrorParent(err)
			}

			s.readPos += int64(read)
			left -= int64(read)
		}
	}

	done := protocol.NewPayload()
	done.WriteInt32(status)
	done.WriteInt32(participants)
	if err := codec.Send(protocol.LOGDONE, done); err != nil {
		return ErrFlushLog.ErrorParent(err)
	}

	return nil
}

// Close releases both file handles.
func (s *Streamer) Close() error {
	err1 := s.writeFile.Close()
	err2 := s.readFile.Close()
	if err1 != nil {
		return fmt.Errorf("logstream: close write handle: %w", err1)
	}
	if err2 != nil {
		return fmt.Errorf("logstream: close read handle: %w", err2)
	}
	return nil
}
