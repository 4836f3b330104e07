// Package jobs provides scheduled background tasks for the rate shopping
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the service needs.
//
// # Available Jobs
//
// 1. TokenRefreshJob - refreshes every vendor gateway's auth session every 30 minutes
// 2. ChannelPollJob - imports new orders from external sales channels every 5 minutes
// 3. RemittanceJob - computes the previous day's COD payout cycle daily at 02:00
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(pool, pollHandler, channels, remittanceHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs log failures and carry on; the remittance and channel poll handlers
// are idempotent, so a missed or repeated run cannot double-import orders or
// double-pay a cycle.
package jobs
