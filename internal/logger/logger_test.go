package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"Warn", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.NoError(t, setLogLevel(tt.in))
			require.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}

	require.Error(t, setLogLevel("verbose"))
}

func TestInit(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer viper.Reset()

	var buf bytes.Buffer
	output = &buf

	require.NoError(t, Init())
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	l := Logger()
	l.Warn().Msg("visible")
	l.Info().Msg("hidden")
	require.Contains(t, buf.String(), "visible")
	require.Contains(t, buf.String(), "WARN")
	require.NotContains(t, buf.String(), "hidden")

	viper.Set("log_level", "debug")
	require.NoError(t, Init())
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	viper.Set("log_level", "loud")
	require.Error(t, Init())
}
