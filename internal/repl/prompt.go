// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package repl

import (
	"os"
	"os/user"
	"strings"
)

// Stubbed in tests.
var (
	currentUser = func() string {
		if u, err := user.Current(); err == nil && u.Username != "" {
			return u.Username
		}

		return os.Getenv("USER")
	}

	hostname = func() string {
		h, err := os.Hostname()
		if err != nil {
			return "localhost"
		}

		return h
	}

	workingDir = os.Getwd
	homeDir    = os.UserHomeDir
)

// ExpandPrompt renders a prompt template. Supported escapes are \u for the
// user name, \h for the host name and \w for the working directory with the
// home directory abbreviated to ~. An unrecognized escape is kept verbatim.
func ExpandPrompt(spec string) string {
	var sb strings.Builder

	sb.Grow(len(spec) + 32)

	for i := 0; i < len(spec); i++ {
		if spec[i] != '\\' || i+1 == len(spec) {
			sb.WriteByte(spec[i])
			continue
		}

		i++

		switch spec[i] {
		case 'u':
			sb.WriteString(currentUser())
		case 'h':
			sb.WriteString(hostname())
		case 'w':
			sb.WriteString(abbreviatedWd())
		default:
			sb.WriteByte('\\')
			sb.WriteByte(spec[i])
		}
	}

	return sb.String()
}

// abbreviatedWd returns the working directory with the home prefix replaced
// by ~.
func abbreviatedWd() string {
	wd, err := workingDir()
	if err != nil {
		return "?"
	}

	home, err := homeDir()
	if err != nil || home == "" {
		return wd
	}

	if wd == home {
		return "~"
	}

	if rest, ok := strings.CutPrefix(wd, home+string(os.PathSeparator)); ok {
		return "~" + string(os.PathSeparator) + rest
	}

	return wd
}
