// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mock provides an in-memory gateway implementation of the domain
// ports for testing.
package mock

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/port"
	errs "github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/errors"
)

// Compile-time checks that the mock satisfies every port.
var (
	_ port.Messenger        = (*Gateway)(nil)
	_ port.ContentSanitizer = (*Gateway)(nil)
	_ port.MemberReader     = (*Gateway)(nil)
	_ port.RoleWriter       = (*Gateway)(nil)
	_ port.EventSubscriber  = (*Gateway)(nil)
)

var mentionPattern = regexp.MustCompile(`<@[!&]?(\d+)>`)

// SentMessage records one SendMessage or ReplyToMessage call.
type SentMessage struct {
	ID        uint64
	ChannelID uint64
	ReplyToID uint64
	Content   string
}

// AddedReaction records one AddReaction call.
type AddedReaction struct {
	ChannelID uint64
	MessageID uint64
	Emoji     string
}

// RoleMutation records one batch role add or remove.
type RoleMutation struct {
	GuildID uint64
	UserID  uint64
	RoleIDs []uint64
}

// Gateway is an in-memory implementation of all gateway ports. Event waits
// are scripted and resolve immediately, so tests never block: an unscripted
// vote is a timeout and an exhausted reply script closes the stream.
type Gateway struct {
	mu sync.Mutex

	members map[uint64]*model.Member
	roles   []model.Role

	nextID     uint64
	dmChannels map[uint64]uint64

	sent        []SentMessage
	reactions   []AddedReaction
	typing      []uint64
	roleAdds    []RoleMutation
	roleRemoves []RoleMutation
	sanitized   []string

	voteReaction *model.Reaction
	replies      []model.Message

	failChannels map[uint64]bool
}

// NewGateway creates an empty mock gateway.
func NewGateway() *Gateway {
	return &Gateway{
		members:      make(map[uint64]*model.Member),
		dmChannels:   make(map[uint64]uint64),
		failChannels: make(map[uint64]bool),
		nextID:       1000,
	}
}

// AddMember registers a guild member snapshot.
func (g *Gateway) AddMember(member *model.Member) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members[member.UserID] = member
}

// SetGuildRoles registers the guild's role list.
func (g *Gateway) SetGuildRoles(roles []model.Role) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roles = roles
}

// ScriptVoteReaction makes the next AwaitReaction resolve with the given
// reaction. Without a script, AwaitReaction reports a timeout.
func (g *Gateway) ScriptVoteReaction(reaction *model.Reaction) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.voteReaction = reaction
}

// ScriptReply queues a committee reply for the next SubscribeReplies stream.
func (g *Gateway) ScriptReply(reply model.Message) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies = append(g.replies, reply)
}

// FailChannel makes sends to the given channel fail, simulating a platform
// communication failure.
func (g *Gateway) FailChannel(channelID uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failChannels[channelID] = true
}

// SendMessage implements port.Messenger.
func (g *Gateway) SendMessage(ctx context.Context, channelID uint64, content string) (*model.Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failChannels[channelID] {
		return nil, errs.NewServiceUnavailable("send failed")
	}
	g.nextID++
	g.sent = append(g.sent, SentMessage{ID: g.nextID, ChannelID: channelID, Content: content})
	return &model.Message{ID: g.nextID, ChannelID: channelID, Content: content}, nil
}

// ReplyToMessage implements port.Messenger.
func (g *Gateway) ReplyToMessage(ctx context.Context, channelID, messageID uint64, content string) (*model.Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failChannels[channelID] {
		return nil, errs.NewServiceUnavailable("reply failed")
	}
	g.nextID++
	g.sent = append(g.sent, SentMessage{ID: g.nextID, ChannelID: channelID, ReplyToID: messageID, Content: content})
	return &model.Message{ID: g.nextID, ChannelID: channelID, ReferencedMessageID: messageID, Content: content}, nil
}

// AddReaction implements port.Messenger.
func (g *Gateway) AddReaction(ctx context.Context, channelID, messageID uint64, emoji string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reactions = append(g.reactions, AddedReaction{ChannelID: channelID, MessageID: messageID, Emoji: emoji})
	return nil
}

// TriggerTyping implements port.Messenger.
func (g *Gateway) TriggerTyping(ctx context.Context, channelID uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.typing = append(g.typing, channelID)
	return nil
}

// OpenDirectChannel implements port.Messenger.
func (g *Gateway) OpenDirectChannel(ctx context.Context, userID uint64) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id, ok := g.dmChannels[userID]; ok {
		return id, nil
	}
	g.nextID++
	g.dmChannels[userID] = g.nextID
	return g.nextID, nil
}

// Sanitize implements port.ContentSanitizer. Mentions become plain @names
// and everyone/here pings gain a zero-width space, mirroring the real
// sanitizer closely enough for round-trip assertions. Inputs are recorded so
// tests can assert sanitization happened exactly once per payload.
func (g *Gateway) Sanitize(ctx context.Context, guildID uint64, content string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sanitized = append(g.sanitized, content)

	out := mentionPattern.ReplaceAllString(content, "@member-$1")
	out = strings.ReplaceAll(out, "@everyone", "@\u200beveryone")
	out = strings.ReplaceAll(out, "@here", "@\u200bhere")
	return out, nil
}

// GetMember implements port.MemberReader.
func (g *Gateway) GetMember(ctx context.Context, guildID, userID uint64) (*model.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	member, ok := g.members[userID]
	if !ok {
		return nil, errs.NewNotFound("member not found")
	}
	snapshot := *member
	snapshot.Roles = append([]uint64(nil), member.Roles...)
	return &snapshot, nil
}

// GetGuildRoles implements port.MemberReader.
func (g *Gateway) GetGuildRoles(ctx context.Context, guildID uint64) ([]model.Role, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.Role(nil), g.roles...), nil
}

// AddMemberRoles implements port.RoleWriter. The stored member snapshot is
// mutated so a subsequent GetMember sees the new role set.
func (g *Gateway) AddMemberRoles(ctx context.Context, guildID, userID uint64, roleIDs []uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roleAdds = append(g.roleAdds, RoleMutation{GuildID: guildID, UserID: userID, RoleIDs: roleIDs})
	if member, ok := g.members[userID]; ok {
		member.Roles = append(member.Roles, roleIDs...)
	}
	return nil
}

// RemoveMemberRoles implements port.RoleWriter.
func (g *Gateway) RemoveMemberRoles(ctx context.Context, guildID, userID uint64, roleIDs []uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roleRemoves = append(g.roleRemoves, RoleMutation{GuildID: guildID, UserID: userID, RoleIDs: roleIDs})
	member, ok := g.members[userID]
	if !ok {
		return nil
	}
	kept := member.Roles[:0]
	for _, held := range member.Roles {
		removed := false
		for _, roleID := range roleIDs {
			if held == roleID {
				removed = true
				break
			}
		}
		if !removed {
			kept = append(kept, held)
		}
	}
	member.Roles = kept
	return nil
}

// AwaitReaction implements port.EventSubscriber. The scripted reaction, if
// any, resolves the vote; otherwise the call reports an immediate timeout.
// Either way the wait is bounded.
func (g *Gateway) AwaitReaction(ctx context.Context, channelID, messageID uint64, timeout time.Duration) (*model.Reaction, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.voteReaction == nil {
		return nil, false, nil
	}
	reaction := g.voteReaction
	g.voteReaction = nil
	return reaction, true, nil
}

// SubscribeReplies implements port.EventSubscriber. All scripted replies are
// delivered and the stream closes, standing in for the window elapsing.
func (g *Gateway) SubscribeReplies(ctx context.Context, channelID, messageID uint64, timeout time.Duration) (<-chan model.Message, func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	stream := make(chan model.Message, len(g.replies)+1)
	for _, reply := range g.replies {
		stream <- reply
	}
	close(stream)
	g.replies = nil
	return stream, func() {}, nil
}

// SentMessages returns a copy of every recorded send and reply, in order.
func (g *Gateway) SentMessages() []SentMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]SentMessage(nil), g.sent...)
}

// SentTo returns the messages sent to one channel, in order.
func (g *Gateway) SentTo(channelID uint64) []SentMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []SentMessage
	for _, m := range g.sent {
		if m.ChannelID == channelID {
			out = append(out, m)
		}
	}
	return out
}

// Reactions returns a copy of every recorded reaction, in order.
func (g *Gateway) Reactions() []AddedReaction {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]AddedReaction(nil), g.reactions...)
}

// RoleAdds returns a copy of every role-add batch, in order.
func (g *Gateway) RoleAdds() []RoleMutation {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]RoleMutation(nil), g.roleAdds...)
}

// RoleRemoves returns a copy of every role-remove batch, in order.
func (g *Gateway) RoleRemoves() []RoleMutation {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]RoleMutation(nil), g.roleRemoves...)
}

// SanitizedInputs returns every payload passed to Sanitize, in order.
func (g *Gateway) SanitizedInputs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.sanitized...)
}

// TypingChannels returns the channels a typing indicator was triggered on.
func (g *Gateway) TypingChannels() []uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]uint64(nil), g.typing...)
}

// DirectChannelFor returns the private channel opened for a user, or zero.
func (g *Gateway) DirectChannelFor(userID uint64) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dmChannels[userID]
}
