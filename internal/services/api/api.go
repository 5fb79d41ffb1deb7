// Package api provides the HTTP API for the application
package api

import (
	"fmt"

	"babyfood/internal/platform/config"
	"babyfood/internal/platform/logger"
	phttp "babyfood/internal/platform/net/http"
	"babyfood/internal/platform/net/middleware"
	"babyfood/internal/platform/store"

	"babyfood/internal/modkit"
	"babyfood/internal/modkit/httpkit"
	"babyfood/internal/modkit/module"
	"babyfood/internal/modkit/repokit"
	"babyfood/internal/modkit/swaggerkit"

	babiesmod "babyfood/internal/services/api/babies/module"
	calmod "babyfood/internal/services/api/calendar/module"
	foodlogs "babyfood/internal/services/api/foodlogs/domain"
	foodlogsmod "babyfood/internal/services/api/foodlogs/module"
	foods "babyfood/internal/services/api/foods/domain"
	foodsmod "babyfood/internal/services/api/foods/module"
	invitesmod "babyfood/internal/services/api/invites/module"
	metamod "babyfood/internal/services/api/meta/module"
	statsmod "babyfood/internal/services/api/stats/module"
	ident "babyfood/internal/services/ident/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
// it fails when no JWT secret is configured
func Mount(r phttp.Router, opt Options) error {
	verifier, err := ident.New(ident.FromConfig(opt.Config))
	if err != nil {
		return fmt.Errorf("api auth: %w", err)
	}
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:  *log,
		Cfg:  opt.Config,
		PG:   repokit.WithBeginHooks(opt.Store.PG, repokit.ActorHook()),
		CH:   opt.Store.CH,
		Auth: httpkit.NewPortFunc(verifier.Verify),
		Zone: opt.Config.MayLocation("DEFAULT_TZ", "UTC"),
	}

	// babies owns membership; every other module asks it for access
	babies := babiesmod.New(deps)
	bp := module.MustPortsOf[babiesmod.Ports](babies)

	foodsM := foodsmod.New(deps, modkit.WithPorts(bp.Access))
	logsM := foodlogsmod.New(deps, modkit.WithPorts(foodlogsmod.Needs{
		Access: bp.Access,
		Foods:  module.MustPortsOf[foods.Belongs](foodsM),
	}))

	var pg store.Pinger
	if p, ok := opt.Store.PG.(store.Pinger); ok {
		pg = p
	}
	var ch store.Pinger
	if opt.Store.CH != nil {
		ch = opt.Store.CH
	}

	mods := []module.Module{
		babies,
		invitesmod.New(deps, modkit.WithPorts(bp.Access)),
		foodsM,
		logsM,
		calmod.New(deps, modkit.WithPorts(calmod.Needs{
			Access: bp.Access,
			Zones:  bp.Zones,
			Logs:   module.MustPortsOf[foodlogs.Reader](logsM),
		})),
		statsmod.New(deps, modkit.WithPorts(bp.Access)),
		metamod.New(deps, modkit.WithPorts(metamod.Needs{PG: pg, CH: ch})),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORS: middleware.CORSOptions{
			AllowedOrigins:   opt.Config.MayCSV("CORS_ORIGINS", []string{"http://localhost:3000"}),
			AllowCredentials: true,
		},
		Timeout: opt.Config.MayDuration("TIMEOUT", 0),
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	log.Info().Strs("modules", module.Names()).Bool("clickhouse", opt.Store.CH != nil).Msg("api mounted")
	return nil
}
