// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package discord adapts the discordgo session to the domain ports.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/port"
	errs "github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/utils"
)

// Compile-time checks that the gateway satisfies every port.
var (
	_ port.Messenger        = (*Gateway)(nil)
	_ port.ContentSanitizer = (*Gateway)(nil)
	_ port.MemberReader     = (*Gateway)(nil)
	_ port.RoleWriter       = (*Gateway)(nil)
	_ port.EventSubscriber  = (*Gateway)(nil)
)

// Gateway wraps a discordgo session behind the domain ports. The session is
// the sole shared mutable resource; discordgo synchronizes it internally.
type Gateway struct {
	session *discordgo.Session
}

// NewGateway creates a gateway backed by the given session.
func NewGateway(session *discordgo.Session) *Gateway {
	return &Gateway{session: session}
}

// botUserID returns the bot's own user ID once the session is ready, or the
// empty string before that.
func (g *Gateway) botUserID() string {
	if g.session.State != nil && g.session.State.User != nil {
		return g.session.State.User.ID
	}
	return ""
}

// SendMessage implements port.Messenger.
func (g *Gateway) SendMessage(ctx context.Context, channelID uint64, content string) (*model.Message, error) {
	msg, err := g.session.ChannelMessageSend(utils.FormatSnowflake(channelID), content, discordgo.WithContext(ctx))
	if err != nil {
		return nil, errs.NewServiceUnavailable(fmt.Sprintf("failed to send message to channel %d", channelID), err)
	}
	return convertMessage(msg)
}

// ReplyToMessage implements port.Messenger.
func (g *Gateway) ReplyToMessage(ctx context.Context, channelID, messageID uint64, content string) (*model.Message, error) {
	reference := &discordgo.MessageReference{
		MessageID: utils.FormatSnowflake(messageID),
		ChannelID: utils.FormatSnowflake(channelID),
	}
	msg, err := g.session.ChannelMessageSendReply(utils.FormatSnowflake(channelID), content, reference, discordgo.WithContext(ctx))
	if err != nil {
		return nil, errs.NewServiceUnavailable(fmt.Sprintf("failed to reply to message %d", messageID), err)
	}
	return convertMessage(msg)
}

// AddReaction implements port.Messenger.
func (g *Gateway) AddReaction(ctx context.Context, channelID, messageID uint64, emoji string) error {
	err := g.session.MessageReactionAdd(utils.FormatSnowflake(channelID), utils.FormatSnowflake(messageID), emoji, discordgo.WithContext(ctx))
	if err != nil {
		return errs.NewServiceUnavailable(fmt.Sprintf("failed to react to message %d", messageID), err)
	}
	return nil
}

// TriggerTyping implements port.Messenger.
func (g *Gateway) TriggerTyping(ctx context.Context, channelID uint64) error {
	if err := g.session.ChannelTyping(utils.FormatSnowflake(channelID), discordgo.WithContext(ctx)); err != nil {
		return errs.NewServiceUnavailable(fmt.Sprintf("failed to trigger typing in channel %d", channelID), err)
	}
	return nil
}

// OpenDirectChannel implements port.Messenger.
func (g *Gateway) OpenDirectChannel(ctx context.Context, userID uint64) (uint64, error) {
	channel, err := g.session.UserChannelCreate(utils.FormatSnowflake(userID), discordgo.WithContext(ctx))
	if err != nil {
		return 0, errs.NewServiceUnavailable(fmt.Sprintf("failed to open direct channel to user %d", userID), err)
	}
	return utils.ParseSnowflake(channel.ID)
}

// GetMember implements port.MemberReader.
func (g *Gateway) GetMember(ctx context.Context, guildID, userID uint64) (*model.Member, error) {
	member, err := g.session.GuildMember(utils.FormatSnowflake(guildID), utils.FormatSnowflake(userID), discordgo.WithContext(ctx))
	if err != nil {
		return nil, errs.NewNotFound(fmt.Sprintf("user %d is not a member of guild %d", userID, guildID), err)
	}
	return convertMember(member, userID)
}

// GetGuildRoles implements port.MemberReader.
func (g *Gateway) GetGuildRoles(ctx context.Context, guildID uint64) ([]model.Role, error) {
	roles, err := g.session.GuildRoles(utils.FormatSnowflake(guildID), discordgo.WithContext(ctx))
	if err != nil {
		return nil, errs.NewServiceUnavailable(fmt.Sprintf("failed to list roles of guild %d", guildID), err)
	}

	out := make([]model.Role, 0, len(roles))
	for _, role := range roles {
		id, err := utils.ParseSnowflake(role.ID)
		if err != nil {
			continue
		}
		out = append(out, model.Role{ID: id, Name: role.Name})
	}
	return out, nil
}

// AddMemberRoles implements port.RoleWriter.
func (g *Gateway) AddMemberRoles(ctx context.Context, guildID, userID uint64, roleIDs []uint64) error {
	guild := utils.FormatSnowflake(guildID)
	user := utils.FormatSnowflake(userID)
	for _, roleID := range roleIDs {
		if err := g.session.GuildMemberRoleAdd(guild, user, utils.FormatSnowflake(roleID), discordgo.WithContext(ctx)); err != nil {
			return errs.NewServiceUnavailable(fmt.Sprintf("failed to add role %d to user %d", roleID, userID), err)
		}
	}
	return nil
}

// RemoveMemberRoles implements port.RoleWriter.
func (g *Gateway) RemoveMemberRoles(ctx context.Context, guildID, userID uint64, roleIDs []uint64) error {
	guild := utils.FormatSnowflake(guildID)
	user := utils.FormatSnowflake(userID)
	for _, roleID := range roleIDs {
		if err := g.session.GuildMemberRoleRemove(guild, user, utils.FormatSnowflake(roleID), discordgo.WithContext(ctx)); err != nil {
			return errs.NewServiceUnavailable(fmt.Sprintf("failed to remove role %d from user %d", roleID, userID), err)
		}
	}
	return nil
}

// convertMessage maps a discordgo message to the domain model. GuildID is
// empty for direct messages and maps to zero.
func convertMessage(msg *discordgo.Message) (*model.Message, error) {
	id, err := utils.ParseSnowflake(msg.ID)
	if err != nil {
		return nil, errs.NewUnexpected("message has invalid ID", err)
	}
	channelID, err := utils.ParseSnowflake(msg.ChannelID)
	if err != nil {
		return nil, errs.NewUnexpected("message has invalid channel ID", err)
	}

	out := &model.Message{
		ID:        id,
		ChannelID: channelID,
		Content:   msg.Content,
	}

	if msg.GuildID != "" {
		if out.GuildID, err = utils.ParseSnowflake(msg.GuildID); err != nil {
			return nil, errs.NewUnexpected("message has invalid guild ID", err)
		}
	}
	if msg.Author != nil {
		if out.AuthorID, err = utils.ParseSnowflake(msg.Author.ID); err != nil {
			return nil, errs.NewUnexpected("message has invalid author ID", err)
		}
		out.AuthorUsername = msg.Author.Username
	}
	if msg.MessageReference != nil && msg.MessageReference.MessageID != "" {
		if out.ReferencedMessageID, err = utils.ParseSnowflake(msg.MessageReference.MessageID); err != nil {
			return nil, errs.NewUnexpected("message has invalid reference ID", err)
		}
	}

	return out, nil
}

// convertMember maps a discordgo guild member to the domain model.
func convertMember(member *discordgo.Member, userID uint64) (*model.Member, error) {
	out := &model.Member{UserID: userID}
	if member.User != nil {
		out.Username = member.User.Username
	}
	for _, roleID := range member.Roles {
		id, err := utils.ParseSnowflake(roleID)
		if err != nil {
			return nil, errs.NewUnexpected("member has invalid role ID", err)
		}
		out.Roles = append(out.Roles, id)
	}
	return out, nil
}
