package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"babyfood/internal/modkit"
	"babyfood/internal/modkit/module"
	"babyfood/internal/modkit/repokit"
	"babyfood/internal/platform/config"
	"babyfood/internal/platform/logger"
	"babyfood/internal/platform/store"

	workermod "babyfood/internal/services/worker/module"
)

func main() {
	fOnce := flag.String("once", "", "run a single job and exit: sweep | rollup")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()
	l := logger.Get()

	st, err := store.Open(ctx, store.FromConfig(root, "worker"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{
		Log:  *l,
		Cfg:  root,
		PG:   repokit.TxRunner(st.PG),
		CH:   st.CH,
		Zone: root.Prefix("CORE_API_").MayLocation("DEFAULT_TZ", "UTC"),
	}

	w := workermod.New(deps, workermod.FromConfig(root))
	module.Register(w.Name(), w.Ports())

	if *fOnce != "" {
		if err := w.RunOnce(ctx, *fOnce); err != nil {
			l.Fatal().Err(err).Str("job", *fOnce).Msg("job failed")
		}
		return
	}
	if err := w.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("worker stopped")
	}
}
