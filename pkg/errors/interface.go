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

// Package errors provides a small, typed error model shared by every
// package in this repository: a numeric CodeError (HTTP-status shaped),
// an Error interface that can chain parent causes, and a Severity that
// mirrors the error kinds this system's error reporter understands.
package errors

// Error is the interface every package-level Code constant produces.
type Error interface {
	error

	// Code returns the numeric code this error was raised with.
	Code() CodeError

	// Severity returns the reporting severity associated with this error.
	Severity() Severity

	// ErrorParent wraps one or more parent causes onto this error,
	// returning a new Error whose Error() string includes them.
	ErrorParent(parent ...error) Error

	// Unwrap exposes the immediate parent chain to errors.Is/errors.As.
	Unwrap() []error
}
