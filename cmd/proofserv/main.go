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

// Command proofserv is the launcher for both session roles: invoked as
// "proofserv <role-tag> <confdir>" after the daemon (out of this
// repository's scope, spec.md §1) has forked it with the control
// socket bound to fd 0.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/proofd/proofserv/internal/auth"
	"github.com/proofd/proofserv/internal/banner"
	"github.com/proofd/proofserv/internal/dataset"
	"github.com/proofd/proofserv/internal/dispatch"
	"github.com/proofd/proofserv/internal/engine"
	"github.com/proofd/proofserv/internal/evaluator"
	"github.com/proofd/proofserv/internal/interrupt"
	"github.com/proofd/proofserv/internal/session"
)

func main() {
	var noLogon bool

	root := &cobra.Command{
		Use:           "proofserv <role-tag> <confdir>",
		Short:         "two-tier distributed analysis session endpoint",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], args[1], noLogon)
		},
	}
	root.Flags().BoolVar(&noLogon, "no-logon", false, "suppress the conffile's Logon startup script")

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "proofserv:", err)
		os.Exit(1)
	}
}

// run wires the Session Controller's bootstrap against the event loop.
// The embedded interpreter, dataset engine, and authentication probe
// are external collaborators this repository does not implement
// (spec.md §1, §6); AlwaysAllow and the Fake doubles stand in as the
// minimal wiring a real deployment replaces.
func run(ctx context.Context, roleTag, confDir string, noLogon bool) error {
	var ds dataset.Engine
	role, err := session.RoleFor(roleTag)
	if err != nil {
		return err
	}
	if role == session.RoleMaster {
		ds = dataset.NewFakeEngine()
	}

	ev := &evaluator.Fake{}
	ctl := session.NewController(ev, ds, auth.AlwaysAllow{})
	if err := ctl.Bootstrap(ctx, session.Args{RoleTag: roleTag, ConfDir: confDir, NoLogon: noLogon}); err != nil {
		return err
	}
	defer func() { _ = ctl.Close() }()

	if ctl.Session.Role == session.RoleMaster {
		res, err := ctl.ResolveBanner()
		if err != nil {
			return err
		}

		if res.Sent {
			fmt.Println(res.Text)

			participants := int32(0)
			if ctl.Fleet != nil {
				participants = ctl.Fleet.ActiveCount()
			}
			status := int32(0)
			if res.Closed {
				status = banner.StatusClosed
			}
			if err := ctl.Streamer.Flush(ctl.Codec, status, participants); err != nil {
				return err
			}
		}

		if res.Closed {
			return nil
		}
	}

	dp := dispatch.New(ctl.Session, ctl.Codec, ctl.Streamer, ctl.Evaluator, ctl.Datasets, ctl.Auth, ctl.Fleet)
	ih := interrupt.New(ctl.Session, ctl.Codec, ctl.Fleet)
	lp := &engine.Loop{Codec: ctl.Codec, Dispatcher: dp, Interrupt: ih}

	return lp.Run(ctx)
}
