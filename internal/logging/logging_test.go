package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
		InitDefault()
	})

	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zerolog.Level
		wantJSON  bool
	}{
		{name: "json debug", level: "debug", format: "json", wantLevel: zerolog.DebugLevel, wantJSON: true},
		{name: "console warn", level: "WARN", format: "console", wantLevel: zerolog.WarnLevel},
		{name: "invalid level", level: "loud", format: "json", wantLevel: zerolog.InfoLevel, wantJSON: true},
		{name: "empty level", level: "", format: "", wantLevel: zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set(LevelKey, tt.level)
			viper.Set(FormatKey, tt.format)
			viper.Set(NoColorKey, true)

			var buf bytes.Buffer
			Init(&buf)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			buf.Reset()
			log.Error().Str("k", "v").Msg("hello")

			var m map[string]any
			err := json.Unmarshal(buf.Bytes(), &m)
			if tt.wantJSON {
				require.NoError(t, err)
				assert.Equal(t, "hello", m["message"])
				assert.Equal(t, "v", m["k"])
			} else {
				assert.Error(t, err)
				assert.Contains(t, buf.String(), "hello")
			}
		})
	}
}
