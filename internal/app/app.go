// Package app wires configuration, storage, services and transport into a
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kevin930119/CSPQWServer/internal/adapter/postgres"
	albumrepo "github.com/kevin930119/CSPQWServer/internal/adapter/postgres/album"
	counterrepo "github.com/kevin930119/CSPQWServer/internal/adapter/postgres/counter"
	progressrepo "github.com/kevin930119/CSPQWServer/internal/adapter/postgres/progress"
	userrepo "github.com/kevin930119/CSPQWServer/internal/adapter/postgres/user"
	"github.com/kevin930119/CSPQWServer/internal/config"
	albumsvc "github.com/kevin930119/CSPQWServer/internal/service/album"
	countersvc "github.com/kevin930119/CSPQWServer/internal/service/counter"
	progresssvc "github.com/kevin930119/CSPQWServer/internal/service/progress"
	usersvc "github.com/kevin930119/CSPQWServer/internal/service/user"
	"github.com/kevin930119/CSPQWServer/internal/transport/middleware"
	"github.com/kevin930119/CSPQWServer/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and handlers, and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	albums := albumrepo.New(pool)
	progress := progressrepo.New(pool)
	users := userrepo.New(pool)
	counters := counterrepo.New(pool)

	progressService := progresssvc.NewService(logger, albums, progress, users, txManager)
	albumService := albumsvc.NewService(logger, albums, progress,
		cfg.App.DefaultPageSize, cfg.App.MaxPageSize)
	userService := usersvc.NewService(logger, users, cfg.App.LeaderboardSize)
	counterService := countersvc.NewService(logger, counters)

	albumHandler := rest.NewAlbumHandler(albumService, progressService, logger)
	userHandler := rest.NewUserHandler(userService, logger)
	counterHandler := rest.NewCounterHandler(counterService, logger)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/albums", albumHandler.Albums)
	mux.HandleFunc("GET /api/album/images", albumHandler.AlbumImages)
	mux.HandleFunc("POST /api/album/image/complete", albumHandler.CompleteImage)
	mux.HandleFunc("GET /api/album/image/next", albumHandler.NextImage)
	mux.HandleFunc("GET /api/wx_openid", userHandler.WxOpenID)
	mux.HandleFunc("GET /api/rank", userHandler.Rank)
	mux.HandleFunc("GET /api/count", counterHandler.Get)
	mux.HandleFunc("POST /api/count", counterHandler.Update)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.WxIdentity,
		rateLimiter.Limit(cfg.App.RateLimitPerMinute),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
