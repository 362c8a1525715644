package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStep       = "step"
	KeyCommand    = "command"
	KeyArgs       = "args"
	KeyExitCode   = "exit_code"
	KeyBuildDir   = "build_dir"
	KeyPath       = "path"
	KeyProject    = "project"
	KeyDurationMS = "duration_ms"
	KeyGate       = "gate"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Step(name string) slog.Attr      { return slog.String(KeyStep, name) }
func Command(name string) slog.Attr   { return slog.String(KeyCommand, name) }
func Args(args []string) slog.Attr    { return slog.Any(KeyArgs, args) }
func ExitCode(code int) slog.Attr     { return slog.Int(KeyExitCode, code) }
func BuildDir(dir string) slog.Attr   { return slog.String(KeyBuildDir, dir) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Project(name string) slog.Attr   { return slog.String(KeyProject, name) }
func Gate(open bool) slog.Attr        { return slog.Bool(KeyGate, open) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Elapsed records a duration in milliseconds under the duration_ms key.
func Elapsed(d time.Duration) slog.Attr {
	return DurationMS(float64(d.Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
