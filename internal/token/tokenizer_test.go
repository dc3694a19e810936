// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package token

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect consumes every token from the input.
func collect(input string) []Token {
	tz := NewTokenizer(input)

	var out []Token

	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}

		out = append(out, tok)
	}

	return out
}

func assertTokens(t *testing.T, input string, expected []Token) {
	t.Helper()

	actual := collect(input)
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("token mismatch for %q (-expected +actual):\n%s", input, diff)
	}
}

func TestTokenizerSimplePipeline(t *testing.T) {
	assertTokens(t, "ls -l | grep .rs", []Token{
		{Word, "ls"},
		{Space, " "},
		{Word, "-l"},
		{Space, " "},
		{Pipe, "|"},
		{Space, " "},
		{Word, "grep"},
		{Space, " "},
		{Word, ".rs"},
	})
}

func TestTokenizerBackgroundAndQuotes(t *testing.T) {
	assertTokens(t, `wc -l & echo "hello world"`, []Token{
		{Word, "wc"},
		{Space, " "},
		{Word, "-l"},
		{Space, " "},
		{Background, "&"},
		{Space, " "},
		{Word, "echo"},
		{Space, " "},
		{DoubleQuote, `"`},
		{Word, "hello"},
		{Space, " "},
		{Word, "world"},
		{DoubleQuote, `"`},
	})
}

func TestTokenizerTightSyntax(t *testing.T) {
	// Operators are their own tokens even with no surrounding whitespace.
	assertTokens(t, "ls>out.txt|grep .txt", []Token{
		{Word, "ls"},
		{RedirectOut, ">"},
		{Word, "out.txt"},
		{Pipe, "|"},
		{Word, "grep"},
		{Space, " "},
		{Word, ".txt"},
	})
}

func TestTokenizerSingleQuoteAndRedirectIn(t *testing.T) {
	assertTokens(t, "cat<'my file'", []Token{
		{Word, "cat"},
		{RedirectIn, "<"},
		{SingleQuote, "'"},
		{Word, "my"},
		{Space, " "},
		{Word, "file"},
		{SingleQuote, "'"},
	})
}

func TestTokenizerEmptyInput(t *testing.T) {
	tz := NewTokenizer("")

	assert.True(t, tz.Empty(), "expected empty tokenizer")

	_, ok := tz.Next()
	assert.False(t, ok, "expected no tokens for empty input")
}

func TestTokenizerRoundTrip(t *testing.T) {
	// Concatenating the text of every token must reproduce the input exactly.
	inputs := []string{
		"ls -l | grep .rs | wc -l",
		"ls>out.txt",
		`echo "hello   world" '&|<>' done`,
		"  leading and trailing  ",
		"héllo wörld|grep é",
		"a&b&c",
		"",
	}

	for _, input := range inputs {
		var sb strings.Builder

		for _, tok := range collect(input) {
			sb.WriteString(tok.Text)
		}

		assert.Equal(t, input, sb.String(), "round trip failed for %q", input)
	}
}

func TestTokenizerPeekDoesNotConsume(t *testing.T) {
	tz := NewTokenizer("echo hi")

	p1, ok := tz.Peek()
	require.True(t, ok)

	p2, ok := tz.Peek()
	require.True(t, ok)
	assert.Equal(t, p1, p2, "peek must be idempotent")

	n, ok := tz.Next()
	require.True(t, ok)
	assert.Equal(t, p1, n, "next must return the peeked token")
	assert.Equal(t, 4, tz.Pos(), "expected position after consuming 'echo'")
}

func TestTokenizerSkipSpaces(t *testing.T) {
	tz := NewTokenizer("   echo")
	tz.SkipSpaces()

	tok, ok := tz.Next()
	require.True(t, ok)
	assert.Equal(t, Token{Word, "echo"}, tok)
	assert.True(t, tz.Empty())
}

func TestTokenizerUTF8Width(t *testing.T) {
	// Multi-byte runes advance by their full width.
	tz := NewTokenizer("日本語>f")

	tok, ok := tz.Next()
	require.True(t, ok)
	assert.Equal(t, Token{Word, "日本語"}, tok)

	tok, ok = tz.Next()
	require.True(t, ok)
	assert.Equal(t, RedirectOut, tok.Kind)
}
