package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/cache"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/config"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/grpc/client"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/upload"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/metrics"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/migrations"
	photoservice "github.com/Anubhav-Ghosh1/QR-Moments/internal/services/photo"
	qrservice "github.com/Anubhav-Ghosh1/QR-Moments/internal/services/qrcode"
	userservice "github.com/Anubhav-Ghosh1/QR-Moments/internal/services/user"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/storage/repository"
)

// App HTTP API и его ресурсы.
type App struct {
	server        *http.Server
	logger        *slog.Logger
	db            *repository.Storage
	cache         *cache.Cache
	authClient    *client.AuthClient
	shutdownAfter time.Duration
}

// New подключается к хранилищам, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "api.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authClient, err := client.NewAuthClient(cfg.GRPCAuthAddress)
	if err != nil {
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	disk, err := upload.NewDisk(cfg.UploadDir, cfg.PublicBaseURL, cfg.MaxUploadSize)
	if err != nil {
		_ = authClient.Close()
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		QRCodes: qrservice.New(db, cacheRedis, logger),
		Photos:  photoservice.New(db, disk, logger, cfg.UploadTimeout),
		Users:   userservice.New(db, disk, logger, cfg.UploadTimeout),
		Auth:    authClient,
		Metrics: metrics.New(prometheus.DefaultRegisterer),
		Health:  db,
		Uploads: cfg.Uploads,
		HTTP:    cfg.HTTPServer,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:        srv,
		logger:        logger,
		db:            db,
		cache:         cacheRedis,
		authClient:    authClient,
		shutdownAfter: cfg.ShutdownAfter,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем плавно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.shutdownAfter)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		runErr = a.server.Shutdown(timeoutCtx)
	}

	a.close()
	return runErr
}

func (a *App) close() {
	if err := a.authClient.Close(); err != nil {
		a.logger.Error("failed to close auth client", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
