package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/moneymate/backend/internal/clock"
	"github.com/moneymate/backend/internal/config"
	v1 "github.com/moneymate/backend/internal/controllers/v1"
	"github.com/moneymate/backend/internal/models"
	"github.com/moneymate/backend/internal/money"
	"github.com/moneymate/backend/internal/router"
	"github.com/moneymate/backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c clock.Clock) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			setup(cfg)

			return serve(cmd.Context(), cfg, c)
		},
	}
}

// serve runs the API until ctx is done.
func serve(ctx context.Context, cfg *config.Config, c clock.Clock) error {
	// Create data directory
	err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	err = models.Connect(cfg.DBPath)
	if err != nil {
		return err
	}

	f, err := money.NewFormatter(cfg.Currency, cfg.Language)
	if err != nil {
		return err
	}

	services := service.New(models.DB, c)
	defer services.Wait()

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		return err
	}
	router.AttachRoutes(v1.New(services, f), r.Group("/"), cfg.EnablePprof)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}
