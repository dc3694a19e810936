// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

// ErrInvalidConfig is returned when the configuration file cannot be parsed.
var ErrInvalidConfig = errors.New("invalid configuration file")

// FsFactory returns the filesystem used to read the configuration and the
// history file. It is a variable so tests can substitute a memory-backed
// filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

const (
	configFileName     = ".lish.yaml"
	historyFileName    = ".lish_history"
	defaultPromptSpec  = `\u@\h \w> `
	defaultHistorySize = 1000
)

// Config holds the user-tunable shell settings.
type Config struct {
	// Prompt is the prompt template. It supports \u (user), \h (hostname)
	// and \w (working directory, home abbreviated to ~).
	Prompt string `yaml:"prompt"`
	// HistoryFile is the path the interactive history is loaded from and
	// saved to. Empty disables persistent history.
	HistoryFile string `yaml:"history_file"`
	// HistorySize caps how many lines are kept in the history file.
	HistorySize int `yaml:"history_size"`
	// Color controls colored diagnostics. It does not affect the output of
	// the commands the shell runs.
	Color bool `yaml:"color"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	home, _ := os.UserHomeDir()

	return Config{
		Prompt:      defaultPromptSpec,
		HistoryFile: filepath.Join(home, historyFileName),
		HistorySize: defaultHistorySize,
		Color:       true,
	}
}

// DefaultPath returns the path of the user's configuration file.
func DefaultPath() string {
	home, _ := os.UserHomeDir()

	return filepath.Join(home, configFileName)
}

// Load reads the configuration file at path. A missing file is not an error:
// the defaults are returned. Fields absent from the file keep their default
// values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Join(ErrInvalidConfig, err)
	}

	if cfg.HistorySize <= 0 {
		cfg.HistorySize = defaultHistorySize
	}

	return cfg, nil
}
