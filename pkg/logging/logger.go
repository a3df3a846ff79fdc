package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Prefix marks human-readable log lines.
const Prefix = "🔧 "

// NewLogger creates a new hclog logger with standard settings.
//
// A level of the form "json" or "json:<level>" selects JSON output, as does
// CDEF_JSON_LOG=1.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	logger, _ := newLogger(name, level, output)
	return logger
}

func newLogger(name string, level string, output io.Writer) (hclog.Logger, *PrefixWriter) {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := os.Getenv("CDEF_JSON_LOG") == "1"
	if strings.HasPrefix(level, "json") {
		jsonFormat = true
		level = strings.TrimPrefix(strings.TrimPrefix(level, "json"), ":")
		if level == "" {
			level = "info"
		}
	}

	var pw *PrefixWriter
	if !jsonFormat {
		pw = NewPrefixWriter(Prefix, output)
		output = pw
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts), pw
}

// Setup builds the process logger from the CLI level, the environment and
// CDEF_LOG_PATH. The returned function must run before exit: it flushes a
// held-back partial line and closes the log file.
func Setup(name, cliLevel string) (hclog.Logger, func()) {
	level, source := ResolveLogLevel(cliLevel)
	output := Output()
	logger, pw := newLogger(name, level, output)
	logger.Debug("Log level", "level", level, "source", source)

	return logger, func() {
		if pw != nil {
			pw.Flush()
		}
		if f, ok := output.(*os.File); ok && f != os.Stderr {
			f.Close()
		}
	}
}

// ResolveLogLevel picks the log level from the CLI flag, then CDEF_LOG_LEVEL,
// then the default. It also reports where the level came from.
func ResolveLogLevel(cliLevel string) (level, source string) {
	if cliLevel != "" {
		return cliLevel, "CLI --log-level"
	}
	if envLevel := os.Getenv("CDEF_LOG_LEVEL"); envLevel != "" {
		return envLevel, "CDEF_LOG_LEVEL"
	}
	return "info", "default"
}

// Output returns the log destination: the file named by CDEF_LOG_PATH when
// it can be opened, stderr otherwise.
func Output() io.Writer {
	if logPath := os.Getenv("CDEF_LOG_PATH"); logPath != "" {
		if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			return file
		}
	}
	return os.Stderr
}
