package jobs

import (
	"fmt"
	"log/slog"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	tokenRefreshJob *TokenRefreshJob
	channelPollJob  *ChannelPollJob
	remittanceJob   *RemittanceJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	pool ports.VendorGatewayPool,
	pollHandler *commands.PollChannelCommandHandler,
	channels []string,
	remittanceHandler commands.ComputeRemittanceCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		tokenRefreshJob: NewTokenRefreshJob(pool, logger),
		channelPollJob:  NewChannelPollJob(pollHandler, channels, logger),
		remittanceJob:   NewRemittanceJob(remittanceHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.tokenRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start token refresh job: %w", err)
	}

	if err := jm.channelPollJob.Start(); err != nil {
		jm.tokenRefreshJob.Stop()
		return fmt.Errorf("failed to start channel poll job: %w", err)
	}

	if err := jm.remittanceJob.Start(); err != nil {
		jm.channelPollJob.Stop()
		jm.tokenRefreshJob.Stop()
		return fmt.Errorf("failed to start remittance job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.remittanceJob.Stop()
	jm.channelPollJob.Stop()
	jm.tokenRefreshJob.Stop()
}
