package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	LevelKey   = "log.level"
	FormatKey  = "log.format"
	NoColorKey = "log.no_color"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// InitDefault installs a console logger at info level. It is used until flags
// and config files were read.
func InitDefault() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

// Init configures the global logger from the log.* viper keys.
// A nil out writes to stderr.
func Init(out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString(LevelKey)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = New(out, viper.GetString(FormatKey), viper.GetBool(NoColorKey))
	if err != nil {
		log.Warn().Str("level", viper.GetString(LevelKey)).Msg("unknown log level, using info")
	}
}

// New creates a logger writing in the given format. Unknown formats fall back to console.
func New(out io.Writer, format string, noColor bool) zerolog.Logger {
	if strings.EqualFold(format, FormatJSON) {
		return zerolog.New(out).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}).With().Timestamp().Logger()
}
