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

// Package config expresses the Session Controller's fixed bootstrap
// order (spec.md §4.1) as a small ordered component registry, the same
// shape as the teacher's config.Component / config.Manage pattern
// trimmed to what a single bootstrap pass needs: no reload, no viper
// component auto-wiring, just Start-in-order-stop-on-first-error.
package config

import "context"

// Component is one step of the bootstrap sequence.
type Component interface {
	// Key names the step for logging and error messages, e.g.
	// "socket", "handshake", "workspace", "redirect".
	Key() string

	// Start runs the step. A non-nil error aborts the remaining
	// sequence — the Session Controller never continues past a failed
	// bootstrap step.
	Start(ctx context.Context) error
}

// Func adapts a plain function into a Component.
type Func struct {
	Name string
	Fn   func(ctx context.Context) error
}

func (f Func) Key() string { return f.Name }

func (f Func) Start(ctx context.Context) error { return f.Fn(ctx) }
