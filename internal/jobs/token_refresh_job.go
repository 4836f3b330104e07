package jobs

import (
	"context"
	"log/slog"
	"time"

	"courierhub/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// TokenRefreshJob keeps every vendor gateway's auth session warm. Runs every
// 30 minutes so a session never expires in the middle of a booking burst.
type TokenRefreshJob struct {
	pool   ports.VendorGatewayPool
	cron   *cron.Cron
	logger *slog.Logger
}

// NewTokenRefreshJob creates a job refreshing sessions across the gateway pool.
func NewTokenRefreshJob(pool ports.VendorGatewayPool, logger *slog.Logger) *TokenRefreshJob {
	return &TokenRefreshJob{
		pool:   pool,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "token_refresh_job"),
	}
}

// Start begins the token refresh job on a 30 minute schedule.
func (j *TokenRefreshJob) Start() error {
	_, err := j.cron.AddFunc("0 */30 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		for _, gateway := range j.pool.All() {
			if err := gateway.RefreshSession(ctx); err != nil {
				// One vendor being down must not block refreshing the rest.
				j.logger.ErrorContext(ctx, "Session refresh failed",
					"vendor", gateway.VendorID(), "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Token refresh job started (running every 30 minutes)")
	return nil
}

// Stop stops the token refresh job.
func (j *TokenRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Token refresh job stopped")
}
