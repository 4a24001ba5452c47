package service

import "gripewatch/internal/platform/logger"

// cronLog adapts zerolog to the cron runner's logger interface.
// Runner chatter (next run, wake) goes to debug; job panics surface as errors
type cronLog struct{ log *logger.Logger }

func (c cronLog) Info(msg string, kv ...any) {
	c.log.Debug().Fields(kv).Msg(msg)
}

func (c cronLog) Error(err error, msg string, kv ...any) {
	c.log.Error().Err(err).Fields(kv).Msg(msg)
}
