// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package discord

import (
	"context"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/utils"
)

var (
	userMentionPattern    = regexp.MustCompile(`<@!?(\d+)>`)
	roleMentionPattern    = regexp.MustCompile(`<@&(\d+)>`)
	channelMentionPattern = regexp.MustCompile(`<#(\d+)>`)
)

// zeroWidthSpace breaks the platform's ping parsing without changing how the
// text renders.
const zeroWidthSpace = "\u200b"

// nameResolver looks up display names for mention rewriting. The gateway
// resolves against the session state with a REST fallback; tests use a fake.
type nameResolver interface {
	userName(guildID, userID string) (string, bool)
	roleName(guildID, roleID string) (string, bool)
	channelName(channelID string) (string, bool)
}

// Sanitize implements port.ContentSanitizer. User, role, and channel
// mentions become plain display names and everyone/here pings are broken
// with a zero-width space, so forwarded payloads cannot ping anyone.
func (g *Gateway) Sanitize(ctx context.Context, guildID uint64, content string) (string, error) {
	resolver := &sessionResolver{ctx: ctx, session: g.session}
	return sanitizeContent(content, utils.FormatSnowflake(guildID), resolver), nil
}

// sanitizeContent rewrites all mention forms in content using the resolver.
func sanitizeContent(content, guildID string, resolver nameResolver) string {
	out := userMentionPattern.ReplaceAllStringFunc(content, func(match string) string {
		id := userMentionPattern.FindStringSubmatch(match)[1]
		if name, ok := resolver.userName(guildID, id); ok {
			return "@" + name
		}
		return "@invalid-user"
	})

	out = roleMentionPattern.ReplaceAllStringFunc(out, func(match string) string {
		id := roleMentionPattern.FindStringSubmatch(match)[1]
		if name, ok := resolver.roleName(guildID, id); ok {
			return "@" + name
		}
		return "@deleted-role"
	})

	out = channelMentionPattern.ReplaceAllStringFunc(out, func(match string) string {
		id := channelMentionPattern.FindStringSubmatch(match)[1]
		if name, ok := resolver.channelName(id); ok {
			return "#" + name
		}
		return "#deleted-channel"
	})

	out = strings.ReplaceAll(out, "@everyone", "@"+zeroWidthSpace+"everyone")
	out = strings.ReplaceAll(out, "@here", "@"+zeroWidthSpace+"here")

	return out
}

// sessionResolver resolves names from the session state, falling back to the
// REST API for users that are not cached.
type sessionResolver struct {
	ctx     context.Context
	session *discordgo.Session
}

func (r *sessionResolver) userName(guildID, userID string) (string, bool) {
	if r.session.State != nil {
		if member, err := r.session.State.Member(guildID, userID); err == nil && member.User != nil {
			return member.User.Username, true
		}
	}
	if user, err := r.session.User(userID, discordgo.WithContext(r.ctx)); err == nil {
		return user.Username, true
	}
	return "", false
}

func (r *sessionResolver) roleName(guildID, roleID string) (string, bool) {
	if r.session.State != nil {
		if role, err := r.session.State.Role(guildID, roleID); err == nil {
			return role.Name, true
		}
	}
	return "", false
}

func (r *sessionResolver) channelName(channelID string) (string, bool) {
	if r.session.State != nil {
		if channel, err := r.session.State.Channel(channelID); err == nil {
			return channel.Name, true
		}
	}
	return "", false
}
