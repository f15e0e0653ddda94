package log

import (
	"fmt"
	"io"
	golog "log"
	"os"
	"path/filepath"

	"github.com/kastheco/chartdesk/internal/sentry"
)

var (
	InfoLog    = golog.New(io.Discard, "", 0)
	WarningLog = golog.New(io.Discard, "", 0)
	ErrorLog   = golog.New(io.Discard, "", 0)
)

var (
	logFileName = filepath.Join(os.TempDir(), "chartdesk.log")
	globalFile  *os.File
)

// Initialize opens the log file in the temp dir and points the package
// loggers at it. With telemetry on, each line is also forwarded to Sentry.
// Until Initialize runs the loggers discard everything.
func Initialize(telemetry bool) {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		panic(fmt.Sprintf("could not open log file: %s", err))
	}
	globalFile = f

	wrap := func(level sentry.Level) io.Writer {
		if !telemetry {
			return f
		}
		return sentry.NewWriter(f, level)
	}

	flags := golog.Ldate | golog.Ltime | golog.Lshortfile
	InfoLog = golog.New(wrap(sentry.LevelInfo), "INFO:", flags)
	WarningLog = golog.New(wrap(sentry.LevelWarning), "WARNING:", flags)
	ErrorLog = golog.New(wrap(sentry.LevelError), "ERROR:", flags)
}

// Close closes the log file and reports where it lives.
func Close() {
	if globalFile == nil {
		return
	}
	_ = globalFile.Close()
	globalFile = nil
	fmt.Println("wrote logs to " + logFileName)
}

// Path returns the log file location.
func Path() string {
	return logFileName
}
