package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const defaultLevel = "WARN"

var (
	once   sync.Once
	output io.Writer = os.Stderr
)

// Init sets the global log level from the viper key log_level and, on the
// first call, installs the console writer.
func Init() error {
	logLevel := viper.GetString("log_level")
	if len(logLevel) == 0 {
		logLevel = defaultLevel
	}
	if err := setLogLevel(logLevel); err != nil {
		return err
	}
	once.Do(initLogger)
	return nil
}

// Logger returns the process logger, for handing to library options.
func Logger() zerolog.Logger {
	return log.Logger
}

func initLogger() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: "02-01-2006 15:04:05.000",
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%-6s", i))
		},
	}).With().Timestamp().Caller().Logger()

	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		parts := strings.Split(file, "/")
		return parts[len(parts)-1] + ":" + strconv.Itoa(line)
	}
}

func setLogLevel(logLevel string) error {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "INFO":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "DISABLED":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		return fmt.Errorf("incorrect log level %q", logLevel)
	}
	return nil
}
