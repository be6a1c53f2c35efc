package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kushalbajje/expense-management/internal/core/reducer"
	portssvc "github.com/kushalbajje/expense-management/internal/core/ports/services"
	"github.com/kushalbajje/expense-management/internal/core/services"
	"github.com/kushalbajje/expense-management/internal/dto"
	"github.com/kushalbajje/expense-management/internal/handlers"
	"github.com/kushalbajje/expense-management/internal/middleware"
	"github.com/kushalbajje/expense-management/internal/platform/config"
	"github.com/kushalbajje/expense-management/internal/repositories/memory"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), cfg, slog.Default())
		},
	}
	cmd.Flags().String("port", "", "port to listen on")
	cmd.Flags().Bool("seed", false, "load sample data before serving")
	_ = viper.BindPFlag("PORT", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("SEED_ON_START", cmd.Flags().Lookup("seed"))
	return cmd
}

// newServiceContainer builds the in-memory store and the services over it.
func newServiceContainer(cfg *config.Config, logger *slog.Logger) (*portssvc.ServiceContainer, error) {
	policy, err := reducer.ParseReferencePolicy(cfg.ReferencePolicy)
	if err != nil {
		return nil, err
	}
	repos := memory.NewRepositoryProvider(
		memory.WithReferencePolicy(policy),
		memory.WithLogger(logger),
	)
	return services.NewServiceContainer(cfg, repos), nil
}

func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	container, err := newServiceContainer(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.SeedOnStart {
		summary, err := container.Dataset.LoadMockData(ctx, dto.LoadMockDataRequest{})
		if err != nil {
			return fmt.Errorf("failed to load sample data: %w", err)
		}
		logger.Info("Sample data loaded",
			slog.Int("departments", summary.Departments),
			slog.Int("users", summary.Users),
			slog.Int("expenses", summary.Expenses))
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
