// Package logger owns the process-wide log. Records go to a rotating file
// under the config directory; in debug mode they are mirrored to stderr.
// The package-level helpers are safe to call before Init and drop records
// until it has run.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/weekboard/internal/constants"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

var (
	Logger *log.Logger

	logPath string
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Quiet keeps records off stderr even in debug mode, so they cannot
	// draw over the TUI's alt screen.
	Quiet bool
}

// Init opens <ConfigDir>/logs/weekboard.log and replaces the global logger.
// Without Debug only warnings and errors are recorded.
func Init(cfg Config) error {
	dir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	logPath = filepath.Join(dir, constants.AppName+".log")

	Logger = log.NewWithOptions(output(cfg, rotating(logPath)), log.Options{
		Prefix:          constants.AppName,
		Level:           level(cfg.Debug),
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
	})
	return nil
}

func rotating(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
}

func output(cfg Config, file io.Writer) io.Writer {
	if cfg.Debug && !cfg.Quiet {
		return io.MultiWriter(os.Stderr, file)
	}
	return file
}

func level(debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	return log.WarnLevel
}

// Path is the log file Init opened, or "" before Init.
func Path() string {
	return logPath
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal records msg and exits with status 1, even before Init.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
