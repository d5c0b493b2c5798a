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

package config

import (
	"context"
	"fmt"
)

// Manager runs a fixed, ordered list of Components exactly once,
// mirroring the teacher's config.Manage "Start triggers each registered
// component in order, stopping at the first error" contract.
type Manager struct {
	steps []Component
}

// NewManager builds a Manager over the given steps, run in the order
// they are listed — the Session Controller lists its bootstrap steps in
// the order they run.
func NewManager(steps ...Component) *Manager {
	return &Manager{steps: steps}
}

// Start runs every registered step in order. It returns on the first
// error, wrapped with the failing step's Key so the error reporter can
// log which bootstrap phase failed.
func (m *Manager) Start(ctx context.Context) error {
	for _, s := range m.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Start(ctx); err != nil {
			return fmt.Errorf("config: step %q: %w", s.Key(), err)
		}
	}
	return nil
}
