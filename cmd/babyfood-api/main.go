// @title         Babyfood API
// @version       0.1.0
// @description   Shared baby feeding log: babies, invitations, foods, feedings and the feeding calendar
// @BasePath      /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os/signal"
	"syscall"

	"babyfood/internal/platform/config"
	"babyfood/internal/platform/logger"
	phttp "babyfood/internal/platform/net/http"
	"babyfood/internal/platform/store"

	"babyfood/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Get()

	// postgres is required, clickhouse only when SERVICE_CLICKHOUSE_DBURL is set
	st, err := store.Open(ctx, store.FromConfig(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	if err := api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	}); err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
