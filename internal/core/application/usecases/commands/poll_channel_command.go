package commands

import (
	"errors"

	"courierhub/internal/pkg/guard"
)

var (
	ErrPollChannelCommandIsNotConstructed = errors.New(
		"PollChannelCommand must be created via NewPollChannelCommand constructor",
	)
	ErrChannelNameIsRequired = errors.New("channel name is required")
)

// PollChannelCommand requests importing new orders from one sales channel.
type PollChannelCommand struct { //nolint:recvcheck //using for validation
	channelName string

	guard guard.ConstructorGuard
}

// NewPollChannelCommand creates a command to poll the named channel.
func NewPollChannelCommand(channelName string) (PollChannelCommand, error) {
	cmd := PollChannelCommand{guard: guard.NewConstructorGuard()}
	if channelName == "" {
		return PollChannelCommand{}, ErrChannelNameIsRequired
	}
	cmd.channelName = channelName
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PollChannelCommand) Validate() error {
	return c.guard.Validate(ErrPollChannelCommandIsNotConstructed)
}

// ChannelName returns the slug of the channel to poll.
func (c PollChannelCommand) ChannelName() string {
	return c.channelName
}
