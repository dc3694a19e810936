// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the shell's YAML configuration file. The file is
// optional: a missing file yields the built-in defaults.
package config
