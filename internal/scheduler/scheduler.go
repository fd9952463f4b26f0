// Package scheduler запускает периодическую задачу по cron расписанию.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/lib/sl"
)

// Job периодическая задача.
type Job func(ctx context.Context) error

// Scheduler вызывает Job по расписанию. Если предыдущий вызов не завершился,
// очередной пропускается; паника в задаче логируется и не останавливает планировщик.
type Scheduler struct {
	cron *cron.Cron
	spec string
	job  Job
	log  *slog.Logger
}

// New проверяет расписание в формате cron из пяти полей и создает Scheduler.
func New(spec string, job Job, log *slog.Logger) (*Scheduler, error) {
	const op = "scheduler.New"
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("%s: invalid schedule %q: %w", op, spec, err)
	}

	logger := cronLogger{log: log}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	return &Scheduler{
		cron: c,
		spec: spec,
		job:  job,
		log:  log,
	}, nil
}

// Trigger выполняет задачу один раз вне расписания.
func (s *Scheduler) Trigger(ctx context.Context) error {
	start := time.Now()
	err := s.job(ctx)
	if err != nil {
		s.log.Error("scheduled job failed", sl.Err(err), slog.Duration("took", time.Since(start)))
		return err
	}
	s.log.Debug("scheduled job finished", slog.Duration("took", time.Since(start)))
	return nil
}

// Run запускает расписание и блокируется до отмены ctx,
// после чего дожидается завершения текущего вызова.
func (s *Scheduler) Run(ctx context.Context) error {
	const op = "scheduler.Run"
	id, err := s.cron.AddFunc(s.spec, func() {
		_ = s.Trigger(ctx)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", slog.String("schedule", s.spec), slog.Time("next_run", s.cron.Entry(id).Next))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
	return nil
}

// cronLogger направляет журнал cron в slog.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append([]any{sl.Err(err)}, keysAndValues...)...)
}
