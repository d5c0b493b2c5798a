//go:build linux || darwin

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
	"errors"
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

type syscallConner interface {
	SyscallConn() (syscall.RawConn, error)
}

func sendOOB(conn net.Conn, b []byte) error {
	sc, ok := conn.(syscallConner)
	if !ok {
		return fmt.Errorf("protocol: connection does not expose raw fd for urgent send")
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return fmt.Errorf("protocol: syscall conn: %w", err)
	}

	var sendErr error
	ctrlErr := raw.Write(func(fd uintptr) bool {
		sendErr = unix.Send(int(fd), b, unix.MSG_OOB)
		return true
	})
	if ctrlErr != nil {
		return fmt.Errorf("protocol: send oob: %w", ctrlErr)
	}
	return sendErr
}

// recvOOB issues a non-blocking urgent read. On some platforms recv
// with MSG_OOB does not return until non-urgent bytes ahead of it in
// the queue are consumed, so MSG_DONTWAIT is set and a would-block
// result is surfaced as unix.EAGAIN rather than left to block the
// caller indefinitely (spec.md §4.4/§9's urgent-byte portability note).
func recvOOB(conn net.Conn, buf []byte) (int, error) {
	sc, ok := conn.(syscallConner)
	if !ok {
		return 0, fmt.Errorf("protocol: connection does not expose raw fd for urgent recv")
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return 0, fmt.Errorf("protocol: syscall conn: %w", err)
	}

	var (
		n       int
		recvErr error
	)
	ctrlErr := raw.Read(func(fd uintptr) bool {
		n, _, recvErr = unix.Recvfrom(int(fd), buf, unix.MSG_OOB|unix.MSG_DONTWAIT)
		return true
	})
	if ctrlErr != nil {
		return 0, fmt.Errorf("protocol: recv oob: %w", ctrlErr)
	}
	return n, recvErr
}

// isWouldBlockOOB reports whether an recvOOB error is the MSG_DONTWAIT
// would-block result the urgent-byte read dance must retry on, rather
// than a genuine transport failure.
func isWouldBlockOOB(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

// BytesAvailable reports how many bytes are queued for read without
// consuming them, the FIONREAD-equivalent query the interrupt handler
// polls before attempting an urgent read (spec.md §4.4, §9).
func BytesAvailable(conn net.Conn) (int, error) {
	sc, ok := conn.(syscallConner)
	if !ok {
		return 0, fmt.Errorf("protocol: connection does not expose raw fd")
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return 0, fmt.Errorf("protocol: syscall conn: %w", err)
	}

	var (
		n       int
		ctlErr  error
	)
	err = raw.Control(func(fd uintptr) {
		n, ctlErr = unix.IoctlGetInt(int(fd), unix.FIONREAD)
	})
	if err != nil {
		return 0, err
	}
	return n, ctlErr
}

// AtMark reports whether the read cursor sits at the urgent-data mark,
// the at-mark query spec.md §4.2/§4.4 relies on to know when a hard
// interrupt's drain has consumed exactly up to the OOB boundary.
func AtMark(conn net.Conn) (bool, error) {
	sc, ok := conn.(syscallConner)
	if !ok {
		return false, fmt.Errorf("protocol: connection does not expose raw fd")
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return false, fmt.Errorf("protocol: syscall conn: %w", err)
	}

	var (
		mark   int
		ctlErr error
	)
	err = raw.Control(func(fd uintptr) {
		mark, ctlErr = unix.IoctlGetInt(int(fd), unix.SIOCATMARK)
	})
	if err != nil {
		return false, err
	}
	return mark != 0, ctlErr
}

// SetControlSocketOptions applies the three options spec.md §4.1's Setup
// subphase requires: process-group ownership (so urgent data raises
// SIGURG to this process), TCP no-delay, and keep-alive.
func SetControlSocketOptions(conn net.Conn) error {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}
	if err := tc.SetNoDelay(true); err != nil {
		return fmt.Errorf("protocol: set no-delay: %w", err)
	}
	if err := tc.SetKeepAlive(true); err != nil {
		return fmt.Errorf("protocol: set keep-alive: %w", err)
	}

	sc, ok := conn.(syscallConner)
	if !ok {
		return nil
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return fmt.Errorf("protocol: syscall conn: %w", err)
	}

	var ctlErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		ctlErr = unix.IoctlSetInt(int(fd), unix.SIOCSPGRP, unix.Getpid())
	})
	if ctrlErr != nil {
		return fmt.Errorf("protocol: set pgrp for urgent signal: %w", ctrlErr)
	}
	return ctlErr
}
