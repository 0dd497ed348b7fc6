package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyVersion    = "version"
	KeyFragment   = "fragment"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyBranch     = "branch"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Fragment(f string) slog.Attr     { return slog.String(KeyFragment, f) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Branch(b string) slog.Attr       { return slog.String(KeyBranch, b) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
