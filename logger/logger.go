// Package logger is a process-wide slog logger. Console output goes to
// stderr; stdout is reserved for command output.
//
// Attribute values whose key names a credential, such as a socket's
// SecureSocketWithKey or an environment variable called API_TOKEN, are
// replaced before they reach any handler.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config describes logger settings.
type Config struct {
	Enabled bool
	Level   string
	Format  string // text or json
	Stderr  bool
	File    string
}

const redacted = "[REDACTED]"

// sensitiveKeys are matched case-insensitively as substrings of attribute keys.
var sensitiveKeys = []string{
	"securesocketwithkey",
	"password",
	"passwd",
	"secret",
	"token",
	"apikey",
	"api_key",
}

var (
	mu   sync.RWMutex
	base *slog.Logger
	file *os.File
)

// Init replaces the process logger. A log file opened by an earlier call is
// closed. Failing to open the file still installs a logger on the remaining
// writers and returns the error.
func Init(cfg Config, configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	closeFile()
	base = nil
	if !cfg.Enabled {
		return nil
	}

	var (
		writers []io.Writer
		openErr error
	)
	if cfg.Stderr {
		writers = append(writers, os.Stderr)
	}
	if cfg.File != "" {
		f, err := openFile(expandPath(cfg.File, configDir))
		if err != nil {
			openErr = err
		} else {
			file = f
			writers = append(writers, f)
		}
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	handler, err := newHandler(cfg, io.MultiWriter(writers...))
	if err != nil {
		closeFile()
		return err
	}
	base = slog.New(handler)
	return openErr
}

// Close releases the log file, if any. Later calls log nothing until the
// next Init.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	base = nil
	return closeFile()
}

func closeFile() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func openFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("logger: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("logger: open log file: %w", err)
	}
	return f, nil
}

func newHandler(cfg Config, w io.Writer) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		ReplaceAttr: redact,
	}
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	}
	return nil, errors.New("logger: unknown format " + cfg.Format)
}

func Debug(msg string, args ...any) { log(slog.LevelDebug, msg, args...) }
func Info(msg string, args ...any) { log(slog.LevelInfo, msg, args...) }
func Warn(msg string, args ...any) { log(slog.LevelWarn, msg, args...) }
func Error(msg string, args ...any) { log(slog.LevelError, msg, args...) }

func log(level slog.Level, msg string, args ...any) {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l == nil {
		return
	}
	l.Log(context.Background(), level, msg, args...)
}

// redact is the ReplaceAttr hook. Numbers pass through: "secrets=2" is a count.
func redact(_ []string, a slog.Attr) slog.Attr {
	if !isSensitiveKey(a.Key) {
		return a
	}
	switch a.Value.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindBool:
		return a
	case slog.KindGroup:
		return a
	}
	return slog.String(a.Key, redacted)
}

func isSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

// parseLevel accepts slog level names, "warning", and offsets such as
// "debug+2". Anything else is info.
func parseLevel(level string) slog.Level {
	s := strings.ToLower(strings.TrimSpace(level))
	if s == "warning" {
		s = "warn"
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func expandPath(path, configDir string) string {
	switch {
	case path == "~" || strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
		return path
	case filepath.IsAbs(path), configDir == "":
		return path
	}
	return filepath.Join(configDir, path)
}
