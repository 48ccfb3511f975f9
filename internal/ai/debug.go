package ai

import "sync/atomic"

// debugLoggingEnabled gates per-enemy debug logs in the driver hot path.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging toggles AI debug logs. Called from main after the log
// level is parsed.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether AI debug logs are on. Guard per-tick logs:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("enemy state changed", "enemyID", e.ID, "to", s)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
