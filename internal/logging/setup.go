package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the application logger.
type Options struct {
	// Dir is where client.log is written; it must already exist.
	Dir string
	// Debug lowers the level to debug and mirrors output to Stderr.
	Debug bool
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// New builds the application logger: charmbracelet/log formatting on top of
// a size-rotated file. The returned closer releases the file.
func New(opts Options) (*SlogLogger, io.Closer) {
	file := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, "client.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}

	level := charmlog.InfoLevel
	var w io.Writer = file
	if opts.Debug {
		level = charmlog.DebugLevel
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		w = io.MultiWriter(stderr, file)
	}

	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		ReportCaller:    opts.Debug,
		Level:           level,
		Prefix:          "healthplanner",
		Formatter:       charmlog.LogfmtFormatter,
	})

	return NewSlogLogger(slog.New(handler)), file
}
