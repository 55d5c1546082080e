// Package logging gates the standard logger by level. Output stays on the
// stdlib log package so every component writes through the same sink.
package logging

import (
	"log"
	"strings"
	"sync/atomic"
)

// Level orders log verbosity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var current atomic.Int32

func init() {
	current.Store(int32(LevelInfo))
}

// ParseLevel maps a config string to a Level. Unknown values select info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) {
	current.Store(int32(l))
}

// Enabled reports whether messages at l are written.
func Enabled(l Level) bool {
	return int32(l) >= current.Load()
}

// Debugf logs when debug output is enabled.
func Debugf(format string, args ...any) {
	if Enabled(LevelDebug) {
		log.Printf("DEBUG: "+format, args...)
	}
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	if Enabled(LevelInfo) {
		log.Printf(format, args...)
	}
}

// Warnf logs at warn level.
func Warnf(format string, args ...any) {
	if Enabled(LevelWarn) {
		log.Printf("WARN: "+format, args...)
	}
}

// Errorf always logs.
func Errorf(format string, args ...any) {
	log.Printf("ERROR: "+format, args...)
}
