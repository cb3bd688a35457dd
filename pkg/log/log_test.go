package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantryci/gantry/pkg/log"
)

func TestCreateHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantErr    error
		logLevel   string
		logFormat  string
		wantPrefix string
	}{
		"text format": {
			logLevel:   "info",
			logFormat:  "text",
			wantPrefix: "time=",
		},
		"logfmt alias": {
			logLevel:   "info",
			logFormat:  "logfmt",
			wantPrefix: "time=",
		},
		"empty format defaults to text": {
			logLevel:   "info",
			logFormat:  "",
			wantPrefix: "time=",
		},
		"json format": {
			logLevel:   "info",
			logFormat:  "json",
			wantPrefix: "{",
		},
		"auto format falls back to json off-terminal": {
			logLevel:   "info",
			logFormat:  "auto",
			wantPrefix: "{",
		},
		"unknown format": {
			logLevel:  "info",
			logFormat: "xml",
			wantErr:   log.ErrUnknownFormat,
		},
		"unknown level": {
			logLevel:  "loud",
			logFormat: "text",
			wantErr:   log.ErrUnknownLevel,
		},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}

			h, err := log.CreateHandler(buf, tc.logLevel, tc.logFormat)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)

			slog.New(h).Info("hello")
			assert.True(t, strings.HasPrefix(buf.String(), tc.wantPrefix),
				"output %q should start with %q", buf.String(), tc.wantPrefix)
		})
	}
}

func TestCreateHandlerLevelFiltering(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}

	h, err := log.CreateHandler(buf, "error", "text")
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Info("dropped")
	logger.Warn("dropped")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level string
		want  slog.Level
	}{
		"debug": {
			level: "debug",
			want:  slog.LevelDebug,
		},
		"trace aliases debug": {
			level: "trace",
			want:  slog.LevelDebug,
		},
		"info": {
			level: "info",
			want:  slog.LevelInfo,
		},
		"empty defaults to info": {
			level: "",
			want:  slog.LevelInfo,
		},
		"warn": {
			level: "warn",
			want:  slog.LevelWarn,
		},
		"warning": {
			level: "warning",
			want:  slog.LevelWarn,
		},
		"error": {
			level: "error",
			want:  slog.LevelError,
		},
		"fatal aliases error": {
			level: "fatal",
			want:  slog.LevelError,
		},
		"panic aliases error": {
			level: "panic",
			want:  slog.LevelError,
		},
		"mixed case": {
			level: "DeBuG",
			want:  slog.LevelDebug,
		},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseLevel(tc.level)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseLevelUnknown(t *testing.T) {
	t.Parallel()

	_, err := log.ParseLevel("verbose")
	require.Error(t, err)
	assert.ErrorIs(t, err, log.ErrUnknownLevel)
}

func TestCreateHandlerEnabled(t *testing.T) {
	t.Parallel()

	h, err := log.CreateHandler(&bytes.Buffer{}, "warn", "json")
	require.NoError(t, err)

	ctx := context.Background()
	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))
}
