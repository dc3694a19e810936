// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package termsize reports the dimensions of the controlling terminal,
// falling back to a conventional 80x24 when stdout is not a terminal.
package termsize

import (
	"os"

	"golang.org/x/term"
)

const (
	// DefaultWidth is used when the terminal size cannot be determined.
	DefaultWidth = 80
	// DefaultHeight is used when the terminal size cannot be determined.
	DefaultHeight = 24
)

// getSize is a variable so tests can stub terminal detection.
var getSize = term.GetSize

// Size returns the current terminal width and height in character cells.
func Size() (width, height int) {
	w, h, err := getSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}

	return w, h
}

// Width returns the current terminal width in character cells.
func Width() int {
	w, _ := Size()

	return w
}
