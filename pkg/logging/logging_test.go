package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      zerolog.Level
	}{
		{name: "default_is_warn", verbosity: 0, want: zerolog.WarnLevel},
		{name: "v_is_info", verbosity: 1, want: zerolog.InfoLevel},
		{name: "vv_is_debug", verbosity: 2, want: zerolog.DebugLevel},
		{name: "vvv_is_trace", verbosity: 3, want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_STATE_HOME", t.TempDir())
			SetupLogger(tt.verbosity)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("nixfile")
	assert.NotNil(t, logger)
}
