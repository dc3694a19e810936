// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer scans one line of input text and yields tokens on demand.
// It supports one-token lookahead via Peek and is restartable by
// constructing a new Tokenizer over the same input.
type Tokenizer struct {
	input string
	rest  string
}

// NewTokenizer creates a tokenizer over the given input line.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{
		input: input,
		rest:  input,
	}
}

// Empty reports whether all input has been consumed.
func (t *Tokenizer) Empty() bool {
	return len(t.rest) == 0
}

// Pos returns the byte offset of the next unconsumed character,
// used for error diagnostics.
func (t *Tokenizer) Pos() int {
	return len(t.input) - len(t.rest)
}

// SkipSpaces consumes any run of leading whitespace.
func (t *Tokenizer) SkipSpaces() {
	t.rest = strings.TrimLeftFunc(t.rest, unicode.IsSpace)
}

// Peek returns the next token without consuming it.
func (t *Tokenizer) Peek() (Token, bool) {
	return t.scan(false)
}

// Next returns the next token and consumes it.
func (t *Tokenizer) Next() (Token, bool) {
	return t.scan(true)
}

// isOperator reports whether r terminates a word: the single-character
// operators and whitespace each form their own token.
func isOperator(r rune) bool {
	switch r {
	case '|', '>', '<', '&', '\'', '"':
		return true
	}

	return unicode.IsSpace(r)
}

func (t *Tokenizer) scan(advance bool) (Token, bool) {
	if len(t.rest) == 0 {
		return Token{}, false
	}

	r, size := utf8.DecodeRuneInString(t.rest)
	if isOperator(r) {
		tok := New(t.rest[:size])
		if advance {
			t.rest = t.rest[size:]
		}

		return tok, true
	}

	// Maximal run of non-operator characters.
	end := len(t.rest)

	for i, c := range t.rest {
		if isOperator(c) {
			end = i
			break
		}
	}

	tok := New(t.rest[:end])
	if advance {
		t.rest = t.rest[end:]
	}

	return tok, true
}
