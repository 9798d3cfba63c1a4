// Package logging routes the process-wide slog logger to a rotated file.
// Stdout and stderr belong to the frontends, so nothing is ever logged there.
package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"scandoc_cli/pkg/config"
	"scandoc_cli/pkg/version"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelTrace sits below Debug and is used for full request/response bodies.
const LevelTrace = slog.Level(-8)

var levels = map[string]slog.Level{
	"trace":   LevelTrace,
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Sink owns the log file behind the default logger.
type Sink struct {
	Logger *slog.Logger
	// Path is the resolved log file, or "" when records are discarded.
	Path string

	file *lumberjack.Logger
}

// Open resolves cfg.LogFile, installs a logger writing to it as the slog
// default and tags every record with the app, version, pid and command.
// When the log directory cannot be created the returned Sink discards
// records and err says why.
func Open(cfg config.Config, command string) (*Sink, error) {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(cfg.LogLevel),
		ReplaceAttr: traceLevelName,
	}

	sink := &Sink{}
	var out io.Writer = io.Discard

	path, err := ResolvePath(cfg.LogFile, os.UserHomeDir)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0700)
	}
	if err == nil {
		sink.Path = path
		sink.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    5, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
			LocalTime:  true,
			Compress:   true,
		}
		out = sink.file
	}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.LogFormat), "text") {
		h = slog.NewTextHandler(out, opts)
	} else {
		h = slog.NewJSONHandler(out, opts)
	}

	sink.Logger = slog.New(h).With(
		"app", "scandoc",
		"version", version.Version,
		"pid", os.Getpid(),
		"command", command,
	)
	slog.SetDefault(sink.Logger)
	return sink, err
}

// Close flushes and closes the log file. It is safe on a nil or discarding Sink.
func (s *Sink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// ResolvePath returns the log file for configured. An empty value selects
// ~/.scandoc/logs/scandoc.log and a leading "~/" is expanded with home.
func ResolvePath(configured string, home func() (string, error)) (string, error) {
	p := strings.TrimSpace(configured)
	if p != "" && p != "~" && !strings.HasPrefix(p, "~/") {
		return filepath.Clean(p), nil
	}

	dir, err := home()
	if err == nil && strings.TrimSpace(dir) == "" {
		err = errors.New("home directory is empty")
	}

	if p == "" {
		if err != nil {
			// No home: keep logs next to the working directory.
			return filepath.Join(".scandoc", "logs", "scandoc.log"), nil
		}
		return filepath.Join(dir, ".scandoc", "logs", "scandoc.log"), nil
	}
	if err != nil {
		return "", err
	}
	if p == "~" {
		return "", errors.New("log_file must name a file, not the home directory")
	}
	return filepath.Join(dir, p[2:]), nil
}

// ParseLevel maps a log_level value to a slog level. Unknown values fall back
// to info; config validation rejects them before they get here.
func ParseLevel(s string) slog.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl
	}
	return slog.LevelInfo
}

func traceLevelName(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
			return slog.String(slog.LevelKey, "TRACE")
		}
	}
	return a
}
