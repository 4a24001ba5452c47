package module

import "gripewatch/internal/platform/config"

// Options holds configuration settings for the complaints module
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CORE_COMPLAINTS_")
	return Options{
		DefaultLimit: cf.MayInt("DEFAULT_LIMIT", 50),
		MaxLimit:     cf.MayInt("MAX_LIMIT", 200),
	}
}
