package module

import (
	"time"

	"gripewatch/internal/platform/config"
)

// Options controls scheduler behavior
type Options struct {
	// Resume installs jobs from active ledger rows at boot
	Resume bool

	// InflightGuard skips a firing while the previous cycle for the entity runs
	InflightGuard bool

	// RetentionDays enables the nightly purge when > 0
	RetentionDays int

	// CycleTimeout bounds one fetch-and-persist cycle
	CycleTimeout time.Duration
}

// FromConfig reads MONITOR_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	mc := cfg.Prefix("MONITOR_")
	return Options{
		Resume:        mc.MayBool("RESUME", true),
		InflightGuard: mc.MayBool("INFLIGHT_GUARD", false),
		RetentionDays: mc.MayInt("RETENTION_DAYS", 0),
		CycleTimeout:  mc.MayDuration("CYCLE_TIMEOUT", 60*time.Second),
	}
}
