//go:build !linux && !darwin

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

import (
	"fmt"
	"net"
)

// The urgent-data dance (spec.md §4.4, §9) is POSIX-specific; the
// daemon that forks this process is itself POSIX-only (spec.md §6), so
// these stubs only exist to keep the module buildable on other targets.

func sendOOB(conn net.Conn, b []byte) error {
	return fmt.Errorf("protocol: urgent data is not supported on this platform")
}

func recvOOB(conn net.Conn, buf []byte) (int, error) {
	return 0, fmt.Errorf("protocol: urgent data is not supported on this platform")
}

// isWouldBlockOOB never matches here: a platform that cannot do OOB at
// all has no would-block case to retry, it just fails once.
func isWouldBlockOOB(err error) bool {
	return false
}

func BytesAvailable(conn net.Conn) (int, error) {
	return 0, fmt.Errorf("protocol: unsupported on this platform")
}

func AtMark(conn net.Conn) (bool, error) {
	return false, fmt.Errorf("protocol: unsupported on this platform")
}

func SetControlSocketOptions(conn net.Conn) error {
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
		_ = tc.SetKeepAlive(true)
	}
	return nil
}
