// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package parser builds a command tree from one line of shell-syntax text.
// It consumes tokens from the token package with recursive descent and
// explicit precedence for pipe, redirect and background operators.
// Parsing is purely functional over its input: no side effects, fully
// deterministic, restartable by constructing a new Parser.
package parser
