package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourname/vault_lite/internal/app/resthttp"
	"github.com/yourname/vault_lite/internal/config"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the vault HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

// runServe поднимает REST-сервис, фоновый GC и завершает их по SIGINT/SIGTERM.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if logLevel == "" {
		if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
			zerolog.SetGlobalLevel(level)
		}
	}

	handler, srv, err := resthttp.NewServer(cfg, log.Logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopGC := srv.Vault.StartGC(ctx, cfg.GCTTL(), cfg.GCInterval())
	defer stopGC()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", cfg.ListenAddr).
			Str("data_dir", cfg.DataDir).
			Str("meta", cfg.MetaPath).
			Dur("gc_ttl", cfg.GCTTL()).
			Dur("gc_every", cfg.GCInterval()).
			Msg("vault listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("shutdown error")
			return err
		}
		log.Info().Msg("vault stopped")
		return nil
	})

	return g.Wait()
}

func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		return config.LoadFile(cfgPath)
	}
	return config.Load()
}
