package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseVerbosity verifies flag values map to levels and the empty value
// defaults to normal.
func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		input   string
		want    Verbosity
		wantErr bool
	}{
		{"", VerbosityNormal, false},
		{"normal", VerbosityNormal, false},
		{"quiet", VerbosityQuiet, false},
		{"debug", VerbosityDebug, false},
		{"loud", VerbosityNormal, true},
	}
	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			v, err := ParseVerbosity(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

// TestVerbosityString verifies the round trip back to flag values.
func TestVerbosityString(t *testing.T) {
	assert.Equal(t, "quiet", VerbosityQuiet.String())
	assert.Equal(t, "normal", VerbosityNormal.String())
	assert.Equal(t, "debug", VerbosityDebug.String())
}
