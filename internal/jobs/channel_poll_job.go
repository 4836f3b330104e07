package jobs

import (
	"context"
	"log/slog"

	"courierhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ChannelPollJob imports new orders from the configured sales channels.
// Runs every five minutes per channel.
type ChannelPollJob struct {
	handler  *commands.PollChannelCommandHandler
	channels []string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewChannelPollJob creates a job polling the named channels.
func NewChannelPollJob(
	handler *commands.PollChannelCommandHandler,
	channels []string,
	logger *slog.Logger,
) *ChannelPollJob {
	return &ChannelPollJob{
		handler:  handler,
		channels: channels,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "channel_poll_job"),
	}
}

// Start begins polling every five minutes.
func (j *ChannelPollJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		ctx := context.Background()
		for _, channel := range j.channels {
			cmd, cmdErr := commands.NewPollChannelCommand(channel)
			if cmdErr != nil {
				j.logger.ErrorContext(ctx, "Channel poll job failed", "channel", channel, "error", cmdErr)
				continue
			}

			imported, handleErr := j.handler.Handle(ctx, cmd)
			if handleErr != nil {
				j.logger.ErrorContext(ctx, "Channel poll job failed", "channel", channel, "error", handleErr)
				continue
			}
			if imported > 0 {
				j.logger.InfoContext(ctx, "Imported channel orders", "channel", channel, "count", imported)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Channel poll job started (running every 5 minutes)")
	return nil
}

// Stop stops the channel poll job.
func (j *ChannelPollJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Channel poll job stopped")
}
