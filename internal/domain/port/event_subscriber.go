// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"time"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
)

// EventSubscriber provides bounded, single-workflow event waits. Each call
// owns its own timer and filter; nothing is shared between workflows.
type EventSubscriber interface {
	// AwaitReaction waits for the first reaction on the given message, not
	// counting the bot's own. The second return value is false when the
	// timeout elapsed with no reaction. Boundary policy: a reaction already
	// delivered when the deadline fires is honored over the timeout, so the
	// outcome is deterministic and the wait is always bounded.
	AwaitReaction(ctx context.Context, channelID, messageID uint64, timeout time.Duration) (*model.Reaction, bool, error)

	// SubscribeReplies returns a stream of messages in the channel that
	// directly reply to the given message. The channel is closed when the
	// timeout window elapses; the cancel function releases the subscription
	// early. The window is fixed from the moment of subscription, not
	// re-armed per reply.
	SubscribeReplies(ctx context.Context, channelID, messageID uint64, timeout time.Duration) (<-chan model.Message, func(), error)
}
