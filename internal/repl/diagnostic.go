// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package repl

import (
	"github.com/matt-FFFFFF/lish/internal/termsize"
)

const ellipsis = "..."

// Diagnostic renders an error as a single shell diagnostic line, truncated
// to the terminal width so a long offending input cannot wrap the display.
func Diagnostic(err error) string {
	return truncate("lish: "+err.Error(), termsize.Width())
}

func truncate(s string, width int) string {
	if width <= len(ellipsis) {
		return s
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	return string(runes[:width-len(ellipsis)]) + ellipsis
}
