// Package api provides the HTTP API for the application
package api

import (
	"gripewatch/internal/platform/config"
	"gripewatch/internal/platform/logger"
	phttp "gripewatch/internal/platform/net/http"
	"gripewatch/internal/platform/store"

	"gripewatch/internal/modkit"
	"gripewatch/internal/modkit/httpkit"
	"gripewatch/internal/modkit/module"
	"gripewatch/internal/modkit/swaggerkit"

	apicomplaints "gripewatch/internal/services/api/complaints/module"
	metamod "gripewatch/internal/services/api/meta/module"
	apimonitor "gripewatch/internal/services/api/monitor/module"

	complaintsmod "gripewatch/internal/services/complaints/module"
	monitormod "gripewatch/internal/services/monitor/module"
)

// Options are the API options
// Monitor and Complaints carry the worker module ports built in main,
// so the binary keeps ownership of the scheduler lifecycle
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Monitor        monitormod.Ports
	Complaints     complaintsmod.Ports
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	apiMonitor := apimonitor.New(
		deps,
		modkit.WithPorts(apimonitor.Ports{
			Registry: opt.Monitor.Registry,
			Ledger:   opt.Monitor.Ledger,
			Journal:  opt.Monitor.Journal,
		}),
	)

	apiComplaints := apicomplaints.New(
		deps,
		modkit.WithPorts(apicomplaints.Ports{
			Query:     opt.Complaints.Query,
			Retention: opt.Complaints.Retention,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		apiMonitor,
		apiComplaints,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
