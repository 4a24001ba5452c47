// @title         Gripewatch API
// @version       0.1.0
// @description   Complaint monitoring commands and stored complaint queries

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"gripewatch/internal/platform/config"
	"gripewatch/internal/platform/logger"
	phttp "gripewatch/internal/platform/net/http"
	"gripewatch/internal/platform/store"

	"gripewatch/internal/modkit"
	"gripewatch/internal/modkit/module"

	"gripewatch/internal/services/api"
	complaintsmod "gripewatch/internal/services/complaints/module"
	monitormod "gripewatch/internal/services/monitor/module"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres + optional CH cycle journal)
	chURL := chCfg.MayString("DBURL", "")
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled:    chURL != "" && chCfg.MayBool("ENABLED", true),
				URL:        chURL,
				ClientName: "gripewatch",
				ClientTag:  "api",
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// worker modules: complaints persistence first, then the scheduler on top
	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}
	comp := complaintsmod.New(deps)
	cports := module.MustPortsOf[complaintsmod.Ports](comp)

	monOpts := monitormod.FromConfig(root)
	mon := monitormod.New(deps, monOpts, cports)
	mports := module.MustPortsOf[monitormod.Ports](mon)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// reconcile desired vs actual jobs from the ledger
	if monOpts.Resume {
		if n, err := mon.Resume(ctx); err != nil {
			l.Error().Err(err).Msg("resume from ledger failed")
		} else if n == 0 {
			l.Info().Msg("no active watches to resume")
		}
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			Monitor:        mports,
			Complaints:     cports,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until a termination signal, then drain http before the scheduler
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := mon.Shutdown(drainCtx); err != nil {
		l.Error().Err(err).Msg("scheduler drain aborted")
	}
}
