// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl implements the interactive shell loop: line editing and
// history via peterh/liner, prompt templating, the builtins that must run
// inside the shell process, and dispatch of everything else to the parser
// and the execution engine.
package repl
