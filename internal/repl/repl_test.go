// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/lish/internal/config"
	"github.com/matt-FFFFFF/lish/internal/ctxlog"
	"github.com/matt-FFFFFF/lish/internal/engine"
	"github.com/matt-FFFFFF/lish/internal/parser"
	"github.com/peterh/liner"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain is used to run the goleak verification before and after tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("skipping process test on windows")
	}
}

func testRepl(t *testing.T) (*Repl, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	r := New(config.Default())
	r.stdout = &stdout
	r.stderr = &stderr

	return r, &stdout, &stderr
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return ctxlog.New(ctx, ctxlog.DefaultLogger)
}

func TestEvalRunsPipeline(t *testing.T) {
	skipOnWindows(t)

	r, stdout, stderr := testRepl(t)

	require.NoError(t, r.Eval(testContext(t), "echo hello | cat"))
	assert.Equal(t, "hello\n", stdout.String())
	assert.Empty(t, stderr.String())
	assert.Equal(t, 0, r.LastExit())
}

func TestEvalBlankInputIsNoOp(t *testing.T) {
	r, stdout, _ := testRepl(t)

	require.NoError(t, r.Eval(testContext(t), "   "))
	assert.Empty(t, stdout.String())
}

func TestEvalParseErrorSetsExitCode(t *testing.T) {
	r, _, _ := testRepl(t)

	err := r.Eval(testContext(t), `echo "unterminated`)
	require.Error(t, err)

	var parseErr *parser.ParseError

	require.ErrorAs(t, err, &parseErr)
	assert.ErrorIs(t, err, parser.ErrUnexpectedEOF)
	assert.Equal(t, exitCodeParseError, r.LastExit())
}

func TestEvalCommandNotFoundSetsConventionalCode(t *testing.T) {
	skipOnWindows(t)

	r, _, _ := testRepl(t)

	err := r.Eval(testContext(t), "definitely-not-a-real-command-4cb2f")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrCommandNotFound)
	assert.Equal(t, exitCodeCommandNotFound, r.LastExit())
}

func TestEvalPropagatesCommandExitCode(t *testing.T) {
	skipOnWindows(t)

	r, _, _ := testRepl(t)

	require.NoError(t, r.Eval(testContext(t), `sh -c "exit 3"`))
	assert.Equal(t, 3, r.LastExit())
}

func TestBuiltinExit(t *testing.T) {
	r, _, _ := testRepl(t)

	err := r.Eval(testContext(t), "exit")
	assert.ErrorIs(t, err, ErrExit)
	assert.Equal(t, 0, r.LastExit())
}

func TestBuiltinExitWithCode(t *testing.T) {
	r, _, _ := testRepl(t)

	err := r.Eval(testContext(t), "exit 42")
	assert.ErrorIs(t, err, ErrExit)
	assert.Equal(t, 42, r.LastExit())
}

func TestBuiltinExitInvalidCode(t *testing.T) {
	r, _, _ := testRepl(t)

	err := r.Eval(testContext(t), "exit nope")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExit)
}

func TestBuiltinCd(t *testing.T) {
	skipOnWindows(t)

	r, _, _ := testRepl(t)

	orig, err := os.Getwd()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, os.Chdir(orig))
	})

	dir := t.TempDir()

	require.NoError(t, r.Eval(testContext(t), "cd "+dir))
	assert.Equal(t, 0, r.LastExit())

	wd, err := os.Getwd()
	require.NoError(t, err)
	// TempDir may sit behind a symlink, so compare the final element only.
	assert.Equal(t, filepath.Base(dir), filepath.Base(wd))
}

func TestBuiltinCdMissingDirectory(t *testing.T) {
	r, _, _ := testRepl(t)

	err := r.Eval(testContext(t), "cd /definitely/not/a/dir/4cb2f")
	require.Error(t, err)
	assert.Equal(t, exitCodeExecError, r.LastExit())
}

func TestTruncateHistory(t *testing.T) {
	tests := []struct {
		name    string
		history string
		limit   int
		want    string
	}{
		{
			name:    "under limit unchanged",
			history: "one\ntwo\n",
			limit:   5,
			want:    "one\ntwo\n",
		},
		{
			name:    "over limit keeps most recent",
			history: "one\ntwo\nthree\n",
			limit:   2,
			want:    "two\nthree\n",
		},
		{
			name:    "non-positive limit unchanged",
			history: "one\ntwo\n",
			limit:   0,
			want:    "one\ntwo\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateHistory(tt.history, tt.limit))
		})
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	stubs := gostub.Stub(&config.FsFactory, func() afero.Fs {
		return fs
	})
	t.Cleanup(stubs.Reset)

	cfg := config.Default()
	cfg.HistoryFile = "/home/user/.lish_history"
	cfg.HistorySize = 2

	r := New(cfg)
	ctx := testContext(t)

	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.AppendHistory("echo one")
	line.AppendHistory("echo two")
	line.AppendHistory("echo three")

	r.saveHistory(ctx, line)

	data, err := afero.ReadFile(fs, cfg.HistoryFile)
	require.NoError(t, err)
	assert.Equal(t, "echo two\necho three\n", string(data), "history capped to the most recent entries")

	// A fresh liner picks the saved lines back up.
	other := liner.NewLiner()
	defer other.Close() //nolint:errcheck

	r.loadHistory(ctx, other)

	var buf bytes.Buffer

	_, err = other.WriteHistory(&buf)
	require.NoError(t, err)
	assert.Equal(t, "echo two\necho three\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abcde", truncate("abcde", 10))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "abcdefgh", truncate("abcdefgh", 3), "width too small to truncate meaningfully")
}

