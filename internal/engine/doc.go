// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package engine realizes a parsed command tree as live OS processes
// connected by pipes and redirected files, then supervises them to
// completion. Each execution produces an ExecutionContext that owns every
// spawned process and the intermediate pipe ends; the context guarantees
// that all of them are reaped on every exit path, including errors.
package engine
