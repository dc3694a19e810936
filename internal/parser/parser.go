// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package parser

import (
	"strings"

	"github.com/matt-FFFFFF/lish/internal/token"
)

// Parser consumes tokens from a Tokenizer and builds the command tree.
type Parser struct {
	tz *token.Tokenizer
}

// New creates a parser over one input line.
func New(input string) *Parser {
	return &Parser{
		tz: token.NewTokenizer(input),
	}
}

// Parse is a convenience for New(input).Parse().
func Parse(input string) (Node, error) {
	return New(input).Parse()
}

// Parse builds the tree for the whole line.
func (p *Parser) Parse() (Node, error) {
	return p.parseCommand()
}

// parseCommand parses one simple command, then folds trailing operators onto
// the already-built left-hand node: a pipe recurses into the remainder and
// produces right-leaning chains, a redirect consumes one filename argument,
// a background token consumes nothing.
func (p *Parser) parseCommand() (Node, error) {
	cmd, err := p.parseSimpleCommand()
	if err != nil {
		return nil, err
	}

	for {
		// Whitespace between a consumed filename or background marker and the
		// next operator is not significant.
		p.tz.SkipSpaces()

		tok, ok := p.tz.Peek()
		if !ok {
			break
		}

		switch tok.Kind {
		case token.Pipe:
			p.tz.Next()

			right, err := p.parseCommand()
			if err != nil {
				return nil, err
			}

			cmd = &Pipe{Left: cmd, Right: right}

		case token.RedirectOut:
			p.tz.Next()

			mode := Write
			// A second `>` with no intervening space means append.
			if next, ok := p.tz.Peek(); ok && next.Kind == token.RedirectOut {
				p.tz.Next()

				mode = Append
			}

			file, err := p.parseArgument()
			if err != nil {
				return nil, err
			}

			cmd = &Redirect{Command: cmd, File: file, Mode: mode}

		case token.RedirectIn:
			p.tz.Next()

			file, err := p.parseArgument()
			if err != nil {
				return nil, err
			}

			cmd = &Redirect{Command: cmd, File: file, Mode: Read}

		case token.Background:
			p.tz.Next()

			cmd = &Background{Command: cmd}

		default:
			return cmd, nil
		}
	}

	return cmd, nil
}

// parseSimpleCommand parses an executable name followed by word or quoted
// arguments, skipping whitespace between them.
func (p *Parser) parseSimpleCommand() (Node, error) {
	name, err := p.parseArgument()
	if err != nil {
		return nil, err
	}

	var args []string

	for {
		tok, ok := p.tz.Peek()
		if !ok {
			break
		}

		switch tok.Kind {
		case token.Word, token.SingleQuote, token.DoubleQuote:
			arg, err := p.parseArgument()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

		case token.Space:
			p.tz.SkipSpaces()

		default:
			return &Command{Name: name, Args: args}, nil
		}
	}

	return &Command{Name: name, Args: args}, nil
}

// parseArgument parses one word, or one quoted run collected verbatim until
// the matching quote.
func (p *Parser) parseArgument() (string, error) {
	p.tz.SkipSpaces()

	if tok, ok := p.tz.Peek(); ok {
		switch tok.Kind {
		case token.SingleQuote, token.DoubleQuote:
			return p.parseUntil(tok.Kind)
		}
	}

	pos := p.tz.Pos()

	tok, ok := p.tz.Next()
	if !ok {
		return "", &ParseError{Pos: pos, Err: ErrUnexpectedEOF}
	}

	if tok.Kind != token.Word {
		return "", &ParseError{Pos: pos, Token: tok.Text, Err: ErrUnexpectedToken}
	}

	return tok.Text, nil
}

// parseUntil consumes the opening quote, then collects the literal text of
// every token, operators and whitespace included, until the matching quote.
// Input ending before the closing quote is a rejection: no partial argument
// is ever produced from an unterminated quote.
func (p *Parser) parseUntil(quote token.Kind) (string, error) {
	open := p.tz.Pos()
	p.tz.Next()

	var sb strings.Builder

	for {
		tok, ok := p.tz.Next()
		if !ok {
			return "", &ParseError{Pos: open, Err: ErrUnexpectedEOF}
		}

		if tok.Kind == quote {
			return sb.String(), nil
		}

		sb.WriteString(tok.Text)
	}
}
