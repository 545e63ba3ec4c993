package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"videoshare/api"
	"videoshare/api/handler"
	"videoshare/api/page"
	"videoshare/internal/client"
	"videoshare/internal/seed"
	"videoshare/internal/store"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and the browser UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	logger := newLogger("videoshare")

	svc, err := newCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Events.Close()

	var backend store.Backend = svc
	if cfg.APIURL != "" {
		logger.Infof("pages use remote API %s", cfg.APIURL)
		backend = client.New(cfg.APIURL)
	}
	st := store.New(backend,
		store.WithLogger(logger),
		store.WithStorage(store.FileStorage{Dir: cfg.StateDir}),
	)
	if err := st.Hydrate(seed.Channels(), seed.Videos()); err != nil {
		logger.Warnf("hydrate store: %v", err)
	}

	e, err := api.NewServer(logger, &handler.Handler{Catalog: svc}, &page.Pages{Store: st})
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		e.Logger.Infof("server starting on :%s", cfg.ServerPort)
		if err := e.Start(fmt.Sprintf(":%s", cfg.ServerPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Errorf("shutdown: %v", err)
	}
	if err := st.Save(); err != nil {
		e.Logger.Warnf("persist store: %v", err)
	}
	return nil
}
