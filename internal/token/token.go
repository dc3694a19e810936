// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package token

import (
	"unicode"
	"unicode/utf8"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	// Word is a maximal run of characters that are not operators or spaces.
	Word Kind = iota
	// Pipe is the `|` operator.
	Pipe
	// RedirectOut is the `>` operator.
	RedirectOut
	// RedirectIn is the `<` operator.
	RedirectIn
	// Background is the `&` operator.
	Background
	// SingleQuote is a standalone `'` delimiter.
	SingleQuote
	// DoubleQuote is a standalone `"` delimiter.
	DoubleQuote
	// Space is a single whitespace character.
	Space
)

// String returns a human readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Pipe:
		return "pipe"
	case RedirectOut:
		return "redirect-out"
	case RedirectIn:
		return "redirect-in"
	case Background:
		return "background"
	case SingleQuote:
		return "single-quote"
	case DoubleQuote:
		return "double-quote"
	case Space:
		return "space"
	}

	return "unknown"
}

// Token is a non-owning view over a contiguous span of the input line.
// Its lifetime is bounded by the input line's lifetime.
type Token struct {
	Kind Kind
	Text string
}

// New classifies a span of input text as a token.
func New(text string) Token {
	switch text {
	case "|":
		return Token{Kind: Pipe, Text: text}
	case ">":
		return Token{Kind: RedirectOut, Text: text}
	case "<":
		return Token{Kind: RedirectIn, Text: text}
	case "&":
		return Token{Kind: Background, Text: text}
	case "'":
		return Token{Kind: SingleQuote, Text: text}
	case `"`:
		return Token{Kind: DoubleQuote, Text: text}
	}

	if r, size := utf8.DecodeRuneInString(text); size == len(text) && unicode.IsSpace(r) {
		return Token{Kind: Space, Text: text}
	}

	return Token{Kind: Word, Text: text}
}
