// Command gripewatch-sweeper removes stored complaints older than a keep
// window, either for real or as a dry-run count
package main

import (
	"context"
	"flag"

	"gripewatch/internal/platform/config"
	"gripewatch/internal/platform/logger"
	"gripewatch/internal/platform/store"

	comprepo "gripewatch/internal/services/complaints/repo"
	compsvc "gripewatch/internal/services/complaints/service"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	var (
		fDays   = flag.Int("days", 0, "purge complaints older than this many days (required)")
		fDryRun = flag.Bool("dryrun", false, "count matching rows without deleting")
	)
	flag.Parse()

	if *fDays < 1 {
		l.Panic().Int("days", *fDays).Msg("sweeper requires -days >= 1")
	}

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	svc := compsvc.New(st.PG, comprepo.NewPG(), compsvc.Config{})

	ctx := context.Background()
	if *fDryRun {
		n, err := svc.CountOlderThan(ctx, *fDays)
		if err != nil {
			l.Fatal().Err(err).Msg("sweeper count failed")
		}
		l.Info().Int("days", *fDays).Int64("would_remove", n).Msg("dry run, nothing deleted")
		return
	}

	n, err := svc.PurgeOlderThan(ctx, *fDays)
	if err != nil {
		l.Fatal().Err(err).Msg("sweeper purge failed")
	}
	l.Info().Int("days", *fDays).Int64("removed", n).Msg("purge complete")
}
