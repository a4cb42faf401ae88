// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package port defines the gateway interfaces the services depend on.
// The Discord infrastructure implements them; the mock infrastructure
// implements them for tests.
package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
)

// Messenger defines the message delivery operations the workflows need.
// Failures are not retried; they abort the in-flight workflow.
type Messenger interface {
	// SendMessage posts content to a channel and returns the created message.
	SendMessage(ctx context.Context, channelID uint64, content string) (*model.Message, error)

	// ReplyToMessage posts content as a direct reply to an existing message.
	ReplyToMessage(ctx context.Context, channelID, messageID uint64, content string) (*model.Message, error)

	// AddReaction attaches an emoji reaction to a message.
	AddReaction(ctx context.Context, channelID, messageID uint64, emoji string) error

	// TriggerTyping signals a typing indicator on a channel. It is user
	// feedback only; the indicator clears when the bot next posts there.
	TriggerTyping(ctx context.Context, channelID uint64) error

	// OpenDirectChannel opens (or reuses) a private channel to a user and
	// returns its channel ID.
	OpenDirectChannel(ctx context.Context, userID uint64) (uint64, error)
}
