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

package errors_test

import (
	stderrors "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github.com/proofd/proofserv/pkg/errors"
)

var _ = Describe("Error", func() {
	var tmpl liberr.Error

	BeforeEach(func() {
		tmpl = liberr.New("widget", 42, liberr.Error, "broke")
	})

	It("matches its own template via errors.Is across ErrorParent copies", func() {
		wrapped := tmpl.ErrorParent(stderrors.New("disk full"))
		Expect(stderrors.Is(wrapped, tmpl)).To(BeTrue())
	})

	It("does not match a different package's template at the same code", func() {
		other := liberr.New("gadget", 42, liberr.Error, "broke")
		Expect(stderrors.Is(tmpl, other)).To(BeFalse())
	})

	It("leaves the template unmodified by ErrorParent", func() {
		_ = tmpl.ErrorParent(stderrors.New("x"))
		Expect(tmpl.Error()).To(Equal("widget: broke"))
	})

	It("includes parent messages in Error()", func() {
		wrapped := tmpl.ErrorParent(stderrors.New("disk full"))
		Expect(wrapped.Error()).To(Equal("widget: broke: disk full"))
	})

	It("filters nil parents", func() {
		wrapped := tmpl.ErrorParent(nil)
		Expect(wrapped.Error()).To(Equal("widget: broke"))
	})

	DescribeTable("severity aborts exactly from SysError up",
		func(sev liberr.Severity, aborts bool) {
			Expect(sev.Aborts()).To(Equal(aborts))
		},
		Entry("Info", liberr.Info, false),
		Entry("Warning", liberr.Warning, false),
		Entry("Error", liberr.Error, false),
		Entry("SysError", liberr.SysError, true),
		Entry("Fatal", liberr.Fatal, true),
	)
})
