package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySlug       = "slug"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyTemplate   = "template"
	KeyRunID      = "run_id"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
