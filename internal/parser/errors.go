// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedToken is returned when a token appears where an argument
	// was required and it is not word text or a quote.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrUnexpectedEOF is returned when input ends mid-construct, such as an
	// open quote, a trailing redirect with no filename or a trailing pipe.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrUnexpectedChar is reserved for future single-character diagnostics.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrUnexpectedEOL is reserved for future line-boundary diagnostics.
	ErrUnexpectedEOL = errors.New("unexpected end of line")
)

// ParseError is the rejection of one input line. It carries the byte offset
// and, where available, the text of the offending token. No partial tree is
// ever returned alongside a ParseError and no process has been spawned.
type ParseError struct {
	// Pos is the byte offset into the input line.
	Pos int
	// Token is the offending token's text, empty at end of input.
	Token string
	// Err is one of the package sentinel errors.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Pos)
	}

	return fmt.Sprintf("%v %q at offset %d", e.Err, e.Token, e.Pos)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Err
}
