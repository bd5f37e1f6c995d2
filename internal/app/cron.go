package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	pkgcron "github.com/bankbot/core/internal/pkg/cron"
)

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs() {
	if !a.cfg.Archive.Enable {
		return
	}

	cronLogger := a.logger.Named("CronService")
	interval := time.Duration(a.cfg.Archive.IntervalHours) * time.Hour

	a.sched.Register(pkgcron.Job{
		Name:        "auto_archive",
		Description: "archive history, audit trail and chunk corpus",
		Interval:    interval,
		Fn: func(ctx context.Context) error {
			artifact, err := a.archiveSvc.Run(ctx)
			if err != nil {
				cronLogger.Warn("scheduled archive failed", zap.Error(err))
				return err
			}
			cronLogger.Info("scheduled archive finished", zap.String("location", artifact.Location))
			return nil
		},
	})
}
