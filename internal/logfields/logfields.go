package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile       = "file"
	KeyLine       = "line"
	KeyTarget     = "target"
	KeyCategory   = "category"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyPath       = "path"
	KeyRunID      = "run_id"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func File(path string) slog.Attr  { return slog.String(KeyFile, path) }
func Line(n int) slog.Attr        { return slog.Int(KeyLine, n) }
func Target(t string) slog.Attr   { return slog.String(KeyTarget, t) }
func Category(c string) slog.Attr { return slog.String(KeyCategory, c) }
func Status(code int) slog.Attr   { return slog.Int(KeyStatus, code) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func RunID(id string) slog.Attr   { return slog.String(KeyRunID, id) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
