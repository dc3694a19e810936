// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerReturnsDefaultWhenAbsent(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{
			name: "plain context",
			ctx:  context.Background(),
		},
		{
			name: "nil logger value",
			ctx:  context.WithValue(context.Background(), loggerKey{}, nil),
		},
		{
			name: "wrong type value",
			ctx:  context.WithValue(context.Background(), loggerKey{}, "not a logger"),
		},
		{
			name: "New with nil logger",
			ctx:  New(context.Background(), nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, DefaultLogger, Logger(tt.ctx))
		})
	}
}

func TestLoggerReturnsCarriedLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := New(context.Background(), logger)

	assert.Same(t, logger, Logger(ctx))
}

func TestLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx := New(context.Background(), logger)

	tests := []struct {
		name    string
		logFunc func(context.Context, string, ...any)
		level   string
	}{
		{name: "debug", logFunc: Debug, level: "DEBUG"},
		{name: "info", logFunc: Info, level: "INFO"},
		{name: "warn", logFunc: Warn, level: "WARN"},
		{name: "error", logFunc: Error, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc(ctx, "test "+tt.name+" message", "key", "value")

			output := buf.String()
			assert.Contains(t, output, tt.level)
			assert.Contains(t, output, "test "+tt.name+" message")
			assert.Contains(t, output, "key=value")
		})
	}
}

func TestLoggingWithDefaultLogger(t *testing.T) {
	// Must not panic when the context carries no logger.
	ctx := context.Background()

	Debug(ctx, "test debug")
	Info(ctx, "test info")
	Warn(ctx, "test warn")
	Error(ctx, "test error")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{value: "DEBUG", want: slog.LevelDebug},
		{value: "INFO", want: slog.LevelInfo},
		{value: "WARN", want: slog.LevelWarn},
		{value: "ERROR", want: slog.LevelError},
		{value: "INVALID", want: slog.LevelWarn},
		{value: "", want: slog.LevelWarn},
		// Matching is case sensitive.
		{value: "debug", want: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.value))
		})
	}
}

func TestDefaultLoggerHonoursLevelVar(t *testing.T) {
	originalLevel := LevelVar.Level()
	defer LevelVar.Set(originalLevel)

	LevelVar.Set(slog.LevelError)
	assert.False(t, DefaultLogger.Enabled(context.Background(), slog.LevelInfo))

	LevelVar.Set(slog.LevelDebug)
	assert.True(t, DefaultLogger.Enabled(context.Background(), slog.LevelInfo))
}

func TestDefaultLoggerUsesPrettyHandler(t *testing.T) {
	h, ok := DefaultLogger.Handler().(*PrettyHandler)
	assert.True(t, ok)
	assert.NotNil(t, h.writer)
}
