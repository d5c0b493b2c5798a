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

package session

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/proofd/proofserv/internal/auth"
	"github.com/proofd/proofserv/internal/banner"
	"github.com/proofd/proofserv/internal/dataset"
	"github.com/proofd/proofserv/internal/evaluator"
	"github.com/proofd/proofserv/internal/fleet"
	"github.com/proofd/proofserv/internal/logstream"
	"github.com/proofd/proofserv/internal/protocol"
	"github.com/proofd/proofserv/internal/workspace"
	"github.com/proofd/proofserv/pkg/config"
	"github.com/proofd/proofserv/pkg/logger/hooksyslog"
)

// Args are the two launch-argument positionals spec.md §6 names:
// `proofserv <role-tag> <confdir>`.
type Args struct {
	RoleTag string // "proofserv" or "proofslave"
	ConfDir string

	// NoLogon suppresses the conffile's "Logon" startup script (spec.md
	// §4.1 step 8's "the latter suppressed by a no-logon flag"); "Load"
	// still runs unconditionally.
	NoLogon bool
}

// RoleFor maps a launch role-tag onto the internal Role enum.
func RoleFor(roleTag string) (Role, error) {
	switch roleTag {
	case "proofserv":
		return RoleMaster, nil
	case "proofslave":
		return RoleWorker, nil
	default:
		return 0, fmt.Errorf("session: unknown role tag %q", roleTag)
	}
}

// Controller runs the Session Controller's fixed bootstrap sequence
// (spec.md §4.1) and owns the session's collaborators once bootstrap
// completes.
type Controller struct {
	Session  *Session
	Codec    *protocol.Codec
	Streamer *logstream.Streamer
	Reporter *Reporter
	Fleet    *fleet.Fleet

	Evaluator evaluator.Evaluator
	Datasets  dataset.Engine
	Auth      auth.Prober

	confFile *config.ConfFile
	syslog   *hooksyslog.Writer
	args     Args
}

// NewController builds a Controller. ev/ds/pr are the external
// collaborators (spec.md §6); ev must be non-nil, ds and pr may be nil
// when a role does not need them.
func NewController(ev evaluator.Evaluator, ds dataset.Engine, pr auth.Prober) *Controller {
	return &Controller{Evaluator: ev, Datasets: ds, Auth: pr}
}

// Bootstrap runs seven steps in this order as a pkg/config Manager,
// stopping at the first failing step: socket, handshake, reporter,
// workspace, redirect, startup-script, fleet-dial. The error reporter is
// installed only after the socket and handshake steps, so a failure in
// either of those is returned without being reported. Banner shipping,
// signal registration and the event loop are not steps of Bootstrap;
// the caller runs them after it returns.
func (c *Controller) Bootstrap(ctx context.Context, args Args) error {
	role, err := RoleFor(args.RoleTag)
	if err != nil {
		return err
	}

	c.Session = New(role, -1)
	c.Session.ConfDir = args.ConfDir
	c.args = args

	mgr := config.NewManager(
		config.Func{Name: "socket", Fn: c.stepSocket},
		config.Func{Name: "handshake", Fn: c.stepHandshake},
		config.Func{Name: "reporter", Fn: c.stepReporter},
		config.Func{Name: "workspace", Fn: c.stepWorkspace},
		config.Func{Name: "redirect", Fn: c.stepRedirect},
		config.Func{Name: "startup-script", Fn: c.stepStartupScript},
		config.Func{Name: "fleet-dial", Fn: c.stepFleetDial},
	)

	return mgr.Start(ctx)
}

// stepSocket recovers a net.Conn from the inherited control socket on
// fd 0 (spec.md §6) and binds the codec. Go cannot rebind fd 0 to a
// net.Conn portably, so this uses os.NewFile + net.FileConn, the
// idiomatic equivalent of the original's socket-wrapper approach.
func (c *Controller) stepSocket(ctx context.Context) error {
	f := os.NewFile(0, "control")
	conn, err := net.FileConn(f)
	if err != nil {
		return fmt.Errorf("session: recover control socket: %w", err)
	}
	_ = f.Close()

	c.Codec = protocol.NewCodec(conn)
	c.Session.Codec = c.Codec
	return protocol.SetControlSocketOptions(conn)
}

// stepHandshake sends the greeting and reads the role-dependent
// handshake payload (spec.md §4.1, §6).
func (c *Controller) stepHandshake(ctx context.Context) error {
	if err := c.Codec.Send(protocol.GREETING, nil); err != nil {
		return fmt.Errorf("session: send greeting: %w", err)
	}

	msg, err := c.Codec.Recv()
	if err != nil {
		return fmt.Errorf("session: recv handshake: %w", err)
	}
	if msg.Tag.Base() != protocol.HANDSHAKE {
		return fmt.Errorf("session: expected handshake, got %s", msg.Tag.Base())
	}

	user, err := msg.Payload.ReadString()
	if err != nil {
		return fmt.Errorf("session: handshake user: %w", err)
	}
	c.Session.User = user

	if c.Session.Role == RoleMaster {
		secret, err := msg.Payload.ReadBytes()
		if err != nil {
			return fmt.Errorf("session: handshake secret: %w", err)
		}
		c.Session.Secret = Deobfuscate(secret)

		conffile, err := msg.Payload.ReadString()
		if err != nil {
			return fmt.Errorf("session: handshake conffile: %w", err)
		}
		c.Session.ConfFile = conffile

		proto, err := msg.Payload.ReadInt32()
		if err != nil {
			return fmt.Errorf("session: handshake protocol: %w", err)
		}
		c.Session.Protocol = proto

		cf, err := config.LoadConfFile(c.Session.ConfDir, conffile)
		if err != nil {
			return err
		}
		c.confFile = cf
	} else {
		proto, err := msg.Payload.ReadInt32()
		if err != nil {
			return fmt.Errorf("session: handshake protocol: %w", err)
		}
		c.Session.Protocol = proto

		ordinal, err := msg.Payload.ReadInt32()
		if err != nil {
			return fmt.Errorf("session: handshake ordinal: %w", err)
		}
		c.Session.Ordinal = ordinal
	}

	return nil
}

// stepReporter opens the syslog mirror for this role and installs the
// process-wide error reporter (spec.md §4.1 step 3).
func (c *Controller) stepReporter(ctx context.Context) error {
	fac := hooksyslog.FacilityLocal5
	tag := "proofserv"
	if c.Session.Role == RoleWorker {
		fac = hooksyslog.FacilityLocal6
		tag = "proofslave"
	}

	sl, err := hooksyslog.Dial(fac, tag, c.Session.User)
	if err != nil {
		return fmt.Errorf("session: open syslog: %w", err)
	}
	c.syslog = sl

	c.Reporter = NewReporter(c.Session, sl)
	Install(c.Reporter)
	return nil
}

// stepWorkspace creates/enters ~/proof and sets up the environment
// (spec.md §4.1 Setup subphase).
func (c *Controller) stepWorkspace(ctx context.Context) error {
	dir, err := workspace.Prepare(os.Getenv("HOME"))
	if err != nil {
		return err
	}
	c.Session.WorkDir = dir
	c.Session.LogDir = dir
	return nil
}

// stepRedirect implements spec.md §4.1's RedirectOutput: purge prior
// logs, open the new log file, and replace stdout/stderr.
func (c *Controller) stepRedirect(ctx context.Context) error {
	glob, name := logFileNames(c.Session)
	if err := logstream.Purge(c.Session.WorkDir, glob); err != nil {
		return err
	}

	path := name
	st, err := logstream.Open(path)
	if err != nil {
		return err
	}
	c.Streamer = st

	os.Stdout = st.WriteFile()
	os.Stderr = st.WriteFile()

	return nil
}

// stepStartupScript runs the optional "Load"/"Logon" startup macros
// named in the conffile (master only; Logon skipped when NoLogon is
// set), then snapshots evaluator globals once and stores the token on
// the Session, the state RESET later restores via Evaluator.Restore
// (spec.md §4.1 step 8, §9's "Interpreter save/restore").
func (c *Controller) stepStartupScript(ctx context.Context) error {
	if c.confFile != nil {
		if load := c.confFile.GetString("Load"); load != "" {
			if _, err := c.Evaluator.Process(load); err != nil {
				return err
			}
		}
		if logon := c.confFile.GetString("Logon"); logon != "" && !c.args.NoLogon {
			if _, err := c.Evaluator.Process(logon); err != nil {
				return err
			}
		}
	}

	token, err := c.Evaluator.Snapshot()
	if err != nil {
		return err
	}
	c.Session.EvaluatorSnapshot = token
	return nil
}

// stepFleetDial is a no-op on a worker; on a master it constructs an
// empty Fleet (spec.md's "driver" collaborator, supplemented per
// SPEC_FULL.md §4.7). It dials no workers, and no code path in this
// repository calls Fleet.Dial, so the master's fleet stays empty.
func (c *Controller) stepFleetDial(ctx context.Context) error {
	if c.Session.Role != RoleMaster {
		return nil
	}
	c.Fleet = fleet.New(c.Session.User, c.Session.Protocol)
	return nil
}

// ResolveBanner resolves the welcome banner on a master (spec.md §4.6)
// and returns an empty Resolution on a worker. It does not send the
// banner; the caller ships it before the event loop starts.
func (c *Controller) ResolveBanner() (banner.Resolution, error) {
	if c.Session.Role != RoleMaster {
		return banner.Resolution{}, nil
	}
	return banner.Resolve(c.Session.ConfDir, c.Session.WorkDir)
}

// Close releases the session's held resources.
func (c *Controller) Close() error {
	if c.syslog != nil {
		_ = c.syslog.Close()
	}
	if c.Streamer != nil {
		return c.Streamer.Close()
	}
	return nil
}

func logFileNames(s *Session) (glob, name string) {
	pid := os.Getpid()
	if s.Role == RoleMaster {
		return "proof_*.log", fmt.Sprintf("proof_%d.log", pid)
	}
	return fmt.Sprintf("proofs%d_*.log", s.Ordinal), fmt.Sprintf("proofs%d_%d.log", s.Ordinal, pid)
}
