// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package token turns one line of shell-syntax text into a lazy, restartable
// sequence of lexical tokens with one-token lookahead. Tokens are non-owning
// views over the input line: concatenating the text of every token, in order,
// reproduces the input exactly.
package token
