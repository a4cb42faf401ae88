// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package discord

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/utils"
)

// AwaitReaction implements port.EventSubscriber. A temporary handler filters
// reaction events down to the target message, excluding the bot's own vote
// affordances, and the first match races the deadline.
func (g *Gateway) AwaitReaction(ctx context.Context, channelID, messageID uint64, timeout time.Duration) (*model.Reaction, bool, error) {
	target := utils.FormatSnowflake(messageID)
	botID := g.botUserID()

	events := make(chan *model.Reaction, 1)
	remove := g.session.AddHandler(func(_ *discordgo.Session, event *discordgo.MessageReactionAdd) {
		if event.MessageID != target || event.UserID == botID {
			return
		}
		reaction, err := convertReaction(event)
		if err != nil {
			slog.WarnContext(ctx, "dropping malformed reaction event", "error", err)
			return
		}
		// Capacity one: the first reaction decides, later ones are ignored.
		select {
		case events <- reaction:
		default:
		}
	})
	defer remove()

	return awaitFirstReaction(ctx, events, timeout)
}

// awaitFirstReaction races the first delivered reaction against the deadline.
// A reaction already delivered when the deadline fires is honored, so the
// boundary outcome is deterministic and the wait is always bounded.
func awaitFirstReaction(ctx context.Context, events <-chan *model.Reaction, timeout time.Duration) (*model.Reaction, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case reaction := <-events:
		return reaction, true, nil
	case <-timer.C:
		select {
		case reaction := <-events:
			return reaction, true, nil
		default:
			return nil, false, nil
		}
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// SubscribeReplies implements port.EventSubscriber. A temporary handler
// filters new messages down to direct replies to the target message; the
// stream closes when the window elapses. The window is fixed from
// subscription, not re-armed per reply.
func (g *Gateway) SubscribeReplies(ctx context.Context, channelID, messageID uint64, timeout time.Duration) (<-chan model.Message, func(), error) {
	targetChannel := utils.FormatSnowflake(channelID)
	targetMessage := utils.FormatSnowflake(messageID)
	botID := g.botUserID()

	matches := make(chan model.Message, 16)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() { close(done) })
	}

	remove := g.session.AddHandler(func(_ *discordgo.Session, event *discordgo.MessageCreate) {
		if event.ChannelID != targetChannel ||
			event.MessageReference == nil ||
			event.MessageReference.MessageID != targetMessage {
			return
		}
		if event.Author != nil && event.Author.ID == botID {
			return
		}
		reply, err := convertMessage(event.Message)
		if err != nil {
			slog.WarnContext(ctx, "dropping malformed reply event", "error", err)
			return
		}
		select {
		case matches <- *reply:
		case <-done:
		}
	})

	out := make(chan model.Message)
	go func() {
		defer close(out)
		defer remove()
		defer cancel()

		timer := time.NewTimer(timeout)
		defer timer.Stop()

		for {
			select {
			case reply := <-matches:
				select {
				case out <- reply:
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			case <-timer.C:
				return
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cancel, nil
}

// convertReaction maps a discordgo reaction event to the domain model.
func convertReaction(event *discordgo.MessageReactionAdd) (*model.Reaction, error) {
	messageID, err := utils.ParseSnowflake(event.MessageID)
	if err != nil {
		return nil, err
	}
	userID, err := utils.ParseSnowflake(event.UserID)
	if err != nil {
		return nil, err
	}
	return &model.Reaction{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     event.Emoji.Name,
	}, nil
}
