package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewUserError("Could not reach the store", inner)

	assert.Equal(t, "Could not reach the store: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := NewUserError("Nothing to show", nil)
	assert.Equal(t, "Nothing to show", bare.Error())
}

func TestIsSoftBlock(t *testing.T) {
	assert.True(t, IsSoftBlock(fmt.Errorf("get: %w", ErrChallengePage)))
	assert.True(t, IsSoftBlock(fmt.Errorf("get: %w", ErrBlockedStatus)))
	assert.False(t, IsSoftBlock(ErrUnauthorized))
	assert.False(t, IsSoftBlock(nil))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, setupLogger(&buf, slog.LevelInfo, "json"))

	LogInfo("fetched catalog", Fields{"count": 3})
	LogDebug("hidden", nil)

	out := buf.String()
	assert.Contains(t, out, `"msg":"fetched catalog"`)
	assert.Contains(t, out, `"count":3`)
	assert.NotContains(t, out, "hidden")

	assert.ErrorIs(t, setupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}
