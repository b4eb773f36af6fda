package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Level(t *testing.T) {
	tests := map[string]struct {
		cfg  Config
		env  string
		want zerolog.Level
	}{
		"default":           {want: zerolog.WarnLevel},
		"verbose":           {cfg: Config{Verbose: true}, want: zerolog.InfoLevel},
		"debug":             {cfg: Config{Debug: true}, want: zerolog.DebugLevel},
		"debug wins":        {cfg: Config{Verbose: true, Debug: true}, want: zerolog.DebugLevel},
		"env level":         {env: "error", want: zerolog.ErrorLevel},
		"flag beats env":    {cfg: Config{Verbose: true}, env: "error", want: zerolog.InfoLevel},
		"invalid env level": {env: "loud", want: zerolog.WarnLevel},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(EnvLevel, tt.env)
			assert.Equal(t, tt.want, tt.cfg.Level())
		})
	}
}

func TestNew_JSONForNonTerminal(t *testing.T) {
	t.Setenv(EnvLevel, "")

	var buf bytes.Buffer
	log := New(Config{Verbose: true, Output: &buf})
	log.Debug().Msg("hidden")
	log.Info().Str("path", "a.xcconfig").Msg("patched file")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "patched file", entry["message"])
	assert.Equal(t, "a.xcconfig", entry["path"])
	assert.Contains(t, entry, "time")
}
