// Package auth собирает gRPC-сервис авторизации.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/config"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/grpc/authpb"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/grpc/server"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/jwt"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/migrations"
	authservices "github.com/Anubhav-Ghosh1/QR-Moments/internal/services/auth"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/storage/repository"
)

// App gRPC-сервер авторизации.
type App struct {
	grpcServer *grpc.Server
	listener   net.Listener
	db         *repository.Storage
	logger     *slog.Logger
}

// New подключается к базе и регистрирует AuthService.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "auth.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL, cfg.RefreshSecretKey, cfg.RefreshTTL)
	authService := authservices.NewAuthService(db, jwtMaker, logger)

	lis, err := net.Listen("tcp", cfg.GRPCAuthAddress)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grpcServer := grpc.NewServer()
	authpb.RegisterAuthServiceServer(grpcServer, server.NewAuthServer(authService, logger))

	return &App{
		grpcServer: grpcServer,
		listener:   lis,
		db:         db,
		logger:     logger,
	}, nil
}

// Run обслуживает вызовы до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("auth gRPC service listening", slog.String("address", a.listener.Addr().String()))
		errCh <- a.grpcServer.Serve(a.listener)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("stopping auth gRPC service")
		a.grpcServer.GracefulStop()
	case runErr = <-errCh:
	}

	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	return runErr
}
