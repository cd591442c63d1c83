package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyLocale     = "locale"
	KeyRequested  = "requested_locale"
	KeySlug       = "slug"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyOutcome    = "outcome"
	KeySource     = "source"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyAddr       = "addr"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Locale(l string) slog.Attr          { return slog.String(KeyLocale, l) }
func Requested(l string) slog.Attr       { return slog.String(KeyRequested, l) }
func Slug(s string) slog.Attr            { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func File(f string) slog.Attr            { return slog.String(KeyFile, f) }
func Outcome(o string) slog.Attr         { return slog.String(KeyOutcome, o) }
func Source(s string) slog.Attr          { return slog.String(KeySource, s) }
func Method(m string) slog.Attr          { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr          { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr      { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr   { return slog.String(KeyRemoteAddr, addr) }
func RequestID(id string) slog.Attr      { return slog.String(KeyRequestID, id) }
func Addr(addr string) slog.Attr         { return slog.String(KeyAddr, addr) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
