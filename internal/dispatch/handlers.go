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

package dispatch

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/proofd/proofserv/internal/logstream"
	"github.com/proofd/proofserv/internal/protocol"
	"github.com/proofd/proofserv/internal/session"
)

// Exit is the process-terminating call STOP and the shutdown interrupt
// use; overridable in specs so they can assert on it instead of ending
// the test binary.
var Exit = os.Exit

// handleCINT forwards the command string to the worker driver on a
// master in parallel mode; otherwise evaluates it locally, per spec.md
// §4.3's CINT row.
func handleCINT(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	cmd, err := msg.Payload.ReadString()
	if err != nil {
		return true, ErrBadPayload.ErrorParent(err)
	}

	if d.Session.Role == session.RoleMaster && d.Fleet != nil && d.Session.ParallelWorkers > 0 {
		payload := protocol.NewPayload()
		payload.WriteString(cmd)
		if _, err := d.Fleet.Broadcast(ctx, protocol.CINT, payload); err != nil {
			return true, ErrFleet.ErrorParent(err)
		}
		if _, _, err := d.Fleet.JoinLogDone(ctx); err != nil {
			return true, ErrFleet.ErrorParent(err)
		}
		return true, nil
	}

	_, err = d.Evaluator.Process(cmd)
	return true, err
}

// handleString reads and discards a peer diagnostic string.
func handleString(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	_, err := msg.Payload.ReadString()
	return false, err
}

// handleObject decodes and discards a peer diagnostic object.
func handleObject(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	_, err := protocol.DecodeObject(msg.Payload)
	return false, err
}

// handleGroupView parses "<group-id> <group-size>" and stores it on
// the session.
func handleGroupView(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	line, err := msg.Payload.ReadString()
	if err != nil {
		return false, ErrBadPayload.ErrorParent(err)
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return false, ErrBadPayload.ErrorParent(fmt.Errorf("groupview: want 2 fields, got %d", len(fields)))
	}
	id, err1 := strconv.Atoi(fields[0])
	size, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return false, ErrBadPayload.ErrorParent(fmt.Errorf("groupview: non-integer fields"))
	}

	d.Session.GroupID = int32(id)
	d.Session.GroupSize = int32(size)
	return false, nil
}

// handleLogLevel parses and stores the requested log level, propagating
// it to workers on a master.
func handleLogLevel(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	level, err := msg.Payload.ReadInt32()
	if err != nil {
		return false, ErrBadPayload.ErrorParent(err)
	}
	d.Session.LogLevel = level

	if d.Session.Role == session.RoleMaster && d.Fleet != nil {
		payload := protocol.NewPayload()
		payload.WriteInt32(level)
		_, _ = d.Fleet.Broadcast(ctx, protocol.LOGLEVEL, payload)
	}

	return false, nil
}

// handlePing lets a master ping its workers; a worker's own PING is a
// no-op since the round-trip is acknowledged by framing alone.
func handlePing(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	if d.Session.Role == session.RoleMaster && d.Fleet != nil {
		_, err := d.Fleet.Broadcast(ctx, protocol.PING, nil)
		return false, err
	}
	return false, nil
}

// handlePrint emits a status line: a master delegates to its driver,
// a worker prints its own hostname.
func handlePrint(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	if d.Session.Role == session.RoleMaster && d.Fleet != nil {
		_, err := d.Fleet.Broadcast(ctx, protocol.PRINT, nil)
		return true, err
	}

	host, err := os.Hostname()
	if err != nil {
		return true, err
	}
	fmt.Println(host)
	return true, nil
}

// handleReset chdirs to the named directory, clears the interpreter,
// drops every non-dataset object from the current directory's object
// list, and restores the evaluator globals captured at startup, per
// spec.md §4.3's RESET row.
func handleReset(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	dir, err := msg.Payload.ReadString()
	if err != nil {
		return false, ErrBadPayload.ErrorParent(err)
	}

	if err := d.Evaluator.Chdir(dir); err != nil {
		return false, err
	}
	if err := d.Evaluator.ClearExceptDatasets(); err != nil {
		return false, err
	}
	if err := d.Evaluator.Restore(d.Session.EvaluatorSnapshot); err != nil {
		return false, err
	}

	return false, nil
}

// handleStatus replies {bytes-read-from-files, realtime, cputime, cwd}
// on a worker; a master replies with its active worker count.
func handleStatus(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	reply := protocol.NewPayload()

	if d.Session.Role == session.RoleMaster {
		count := int32(0)
		if d.Fleet != nil {
			count = d.Fleet.ActiveCount()
		}
		reply.WriteInt32(count)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = ""
		}
		reply.WriteInt64(d.Session.BytesRead)
		reply.WriteInt64(int64(d.Session.RealTime))
		reply.WriteInt64(int64(d.Session.CPUTime))
		reply.WriteString(cwd)
	}

	return false, d.Codec.Send(protocol.STATUS|protocol.ACK, reply)
}

// handleStop terminates the process with exit 0.
func handleStop(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	Exit(0)
	return false, nil
}

// handleTreeDraw parses "<name> <max-virtual> <estimate>", locates the
// dataset, and applies the two tuning setters.
func handleTreeDraw(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	line, err := msg.Payload.ReadString()
	if err != nil {
		return false, ErrBadPayload.ErrorParent(err)
	}

	fields := strings.Fields(line)
	if len(fields) != 3 {
		return false, ErrBadPayload.ErrorParent(fmt.Errorf("treedraw: want 3 fields, got %d", len(fields)))
	}
	maxVirtual, err1 := strconv.ParseInt(fields[1], 10, 64)
	estimate, err2 := strconv.ParseInt(fields[2], 10, 64)
	if err1 != nil || err2 != nil {
		return false, ErrBadPayload.ErrorParent(fmt.Errorf("treedraw: non-integer fields"))
	}

	ds, ok := d.Datasets.Lookup(fields[0])
	if !ok {
		return false, ErrNoDataset.ErrorParent(fmt.Errorf("dataset %q", fields[0]))
	}

	ds.SetMaxVirtualSize(maxVirtual)
	ds.SetCacheEstimate(estimate)
	return false, nil
}

// handleSendFile parses "<name> <binary?> <size>" and enters the File
// Receiver loop (spec.md §4.5).
func handleSendFile(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	line, err := msg.Payload.ReadString()
	if err != nil {
		return false, ErrBadPayload.ErrorParent(err)
	}

	fields := strings.Fields(line)
	if len(fields) != 3 {
		return false, ErrBadPayload.ErrorParent(fmt.Errorf("sendfile: want 3 fields, got %d", len(fields)))
	}
	binary := fields[1] == "1" || strings.EqualFold(fields[1], "true")
	size, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return false, ErrBadPayload.ErrorParent(err)
	}

	return false, logstream.ReceiveFile(d.Codec, fields[0], binary, size)
}

// handleOpenFile builds an open-file command from {class, filename,
// options}; masters run a remote-file authentication probe first when
// the class names a remote-file class, workers evaluate unconditionally.
func handleOpenFile(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	class, err := msg.Payload.ReadString()
	if err != nil {
		return true, ErrBadPayload.ErrorParent(err)
	}
	filename, err := msg.Payload.ReadString()
	if err != nil {
		return true, ErrBadPayload.ErrorParent(err)
	}
	options, err := msg.Payload.ReadString()
	if err != nil {
		return true, ErrBadPayload.ErrorParent(err)
	}

	if d.Session.Role == session.RoleMaster && isRemoteClass(class) {
		host, user := remoteTarget(filename, d.Session.User)
		if d.Auth == nil {
			return true, ErrAuthDenied.ErrorParent(fmt.Errorf("no authentication prober configured"))
		}
		if err := d.Auth.Probe(host, user); err != nil {
			return true, ErrAuthDenied.ErrorParent(err)
		}
	}

	cmd := fmt.Sprintf("%s(%q, %q)", class, filename, options)
	_, err = d.Evaluator.Process(cmd)
	return true, err
}

// isRemoteClass reports whether class names a remote-file class, by the
// naming convention that such a class name contains "URL" or "Remote".
func isRemoteClass(class string) bool {
	return strings.Contains(class, "URL") || strings.Contains(class, "Remote")
}

// remoteTarget extracts host/user from a "user@host:path"-style
// filename for the authentication probe; defaults to the session user
// and an empty host when the filename carries no such prefix.
func remoteTarget(filename, sessionUser string) (host, user string) {
	at := strings.Index(filename, "@")
	colon := strings.Index(filename, ":")
	if at > 0 && colon > at {
		return filename[at+1 : colon], filename[:at]
	}
	if colon > 0 {
		return filename[:colon], sessionUser
	}
	return "", sessionUser
}

// handleParallel adjusts the worker-driver fan-out to <node-count>
// active workers (master only).
func handleParallel(ctx context.Context, d *Dispatcher, msg *protocol.Message) (bool, error) {
	n, err := msg.Payload.ReadInt32()
	if err != nil {
		return true, ErrBadPayload.ErrorParent(err)
	}

	if d.Session.Role != session.RoleMaster || d.Fleet == nil {
		return true, ErrNoFleet.ErrorParent(nil)
	}

	d.Fleet.Resize(n)
	d.Session.ParallelWorkers = n
	return true, nil
}
