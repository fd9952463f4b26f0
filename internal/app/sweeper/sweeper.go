// Package sweeper собирает процесс ежедневной рассылки дайджестов
// по истекшим QR-кодам.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/cache"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/config"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/rabbitmq"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/smtp"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/metrics"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/scheduler"
	senderservice "github.com/Anubhav-Ghosh1/QR-Moments/internal/services/sender"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/sweep"
	"github.com/Anubhav-Ghosh1/QR-Moments/internal/storage/repository"
)

// LockKey ключ распределенной блокировки рассылки в Redis.
const LockKey = "sweep:lock"

// App планировщик рассылки и его ресурсы.
type App struct {
	scheduler     *scheduler.Scheduler
	metricsServer *http.Server
	runOnStart    bool
	logger        *slog.Logger
	closers       []io.Closer
}

// New подключается к хранилищам и выбирает способ доставки по cfg.Notifier.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "sweeper.New"
	a := &App{runOnStart: cfg.RunOnStart, logger: logger}

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.closers = append(a.closers, db)

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.closers = append(a.closers, cacheRedis)

	notifier, err := a.newNotifier(cfg, logger)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	svc := sweep.New(db, notifier, logger,
		sweep.WithSendTimeout(cfg.SendTimeout),
		sweep.WithLocker(cacheRedis.NewLock(LockKey, cfg.LockTTL)),
		sweep.WithObserver(m),
	)

	a.scheduler, err = scheduler.New(cfg.Schedule, Job(svc), logger)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	a.metricsServer = &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return a, nil
}

func (a *App) newNotifier(cfg *config.Config, logger *slog.Logger) (sweep.Notifier, error) {
	switch cfg.Notifier {
	case config.NotifierSMTP:
		return senderservice.NewSenderService(logger, smtp.NewTransport(cfg.SMTP, logger), cfg.SendTimeout), nil
	case config.NotifierQueue:
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, amqpCloser{conn})
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			return nil, err
		}
		return rabbitmq.NewPublisher(ch), nil
	default:
		return nil, fmt.Errorf("unknown notifier %q", cfg.Notifier)
	}
}

// Runner запуск рассылки.
type Runner interface {
	Run(ctx context.Context) (sweep.Report, error)
}

// Job превращает рассылку в задачу планировщика. Пропуск из-за
// чужой блокировки не считается ошибкой.
func Job(r Runner) scheduler.Job {
	return func(ctx context.Context) error {
		_, err := r.Run(ctx)
		if errors.Is(err, sweep.ErrSweepInProgress) {
			return nil
		}
		return err
	}
}

// Run запускает планировщик и сервер метрик до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	go func() {
		a.logger.Info("sweep metrics server starting", slog.String("address", a.metricsServer.Addr))
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", sl.Err(err))
		}
	}()

	if a.runOnStart {
		_ = a.scheduler.Trigger(ctx)
	}

	err := a.scheduler.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shErr := a.metricsServer.Shutdown(shutdownCtx); shErr != nil {
		a.logger.Error("failed to stop metrics server", sl.Err(shErr))
	}
	return err
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Error("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}

type amqpCloser struct {
	conn *amqp.Connection
}

func (c amqpCloser) Close() error {
	return c.conn.Close()
}
