package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColor(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		name    string
		color   string
		noColor bool
		want    bool
	}{
		{"always", "always", false, true},
		{"default", "", false, true},
		{"never", "never", false, false},
		{"auto without terminal", "auto", false, false},
		{"no-color wins over always", "always", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveColor(tt.color, tt.noColor, &buf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveColor_Invalid(t *testing.T) {
	_, err := resolveColor("sometimes", false, &bytes.Buffer{})
	assert.Equal(t, exitUsageError, ExitCode(err))
}

func TestResolveColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	got, err := resolveColor("auto", false, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, got)

	got, err = resolveColor("always", false, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, got, "explicit always ignores NO_COLOR")
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
