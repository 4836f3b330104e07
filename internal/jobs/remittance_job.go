package jobs

import (
	"context"
	"log/slog"
	"time"

	"courierhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RemittanceJob computes the COD payout cycle for the previous day. Runs at
// 02:00 so the previous delivery day is complete when it fires. The handler
// skips sellers whose cycle already exists, so a rerun after downtime is
// safe.
type RemittanceJob struct {
	handler commands.ComputeRemittanceCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRemittanceJob creates the daily remittance job.
func NewRemittanceJob(handler commands.ComputeRemittanceCommandHandler, logger *slog.Logger) *RemittanceJob {
	return &RemittanceJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "remittance_job"),
	}
}

// Start schedules the job daily at 02:00.
func (j *RemittanceJob) Start() error {
	_, err := j.cron.AddFunc("0 0 2 * * *", func() {
		ctx := context.Background()
		cycle := time.Now().UTC().Add(-24 * time.Hour)

		cmd, cmdErr := commands.NewComputeRemittanceCommand(cycle)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Remittance job failed", "error", cmdErr)
			return
		}

		created, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Remittance job failed", "error", handleErr)
			return
		}
		j.logger.InfoContext(ctx, "Remittance cycle computed",
			"cycleDate", cmd.CycleDate().Format(time.DateOnly), "created", created)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Remittance job started (running daily at 02:00)")
	return nil
}

// Stop stops the remittance job.
func (j *RemittanceJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Remittance job stopped")
}
