// Package logging builds the leveled logger shared by the engine, the
// terminal preview and the HTTP API.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
)

// Logger is the subset of a leveled logger the engine packages depend on.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

var _ Logger = (*log.Logger)(nil)

const header = `${time_rfc3339} ${level} ${prefix}`

// ParseLevel maps a config level name onto a gommon level.
func ParseLevel(name string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off", "none":
		return log.OFF, nil
	}
	return log.OFF, errors.Errorf("logging: unknown level %q", name)
}

// New returns a logger writing to w (stderr when nil) at the named level.
func New(prefix, level string, w io.Writer) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	l := log.New(prefix)
	l.SetOutput(w)
	l.SetHeader(header)
	l.SetLevel(lvl)
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	l := log.New("-")
	l.SetOutput(io.Discard)
	l.SetLevel(log.OFF)
	return l
}
