// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color provides ANSI color codes and a small colorizer for console
// output. Whether color should be used is decided once at startup from the
// NO_COLOR and FORCE_COLOR environment variables and terminal detection via
// the golang.org/x/term package.
package color
