// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service implements the bot's use-cases: request authorization, the
// relay workflow, and committee role assignment.
package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/port"
	errs "github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/errors"
)

// Authorizer resolves whether a user may initiate relay requests and which
// committee they act for. Pure query; no side effects.
type Authorizer struct {
	config  *model.Config
	members port.MemberReader
}

// NewAuthorizer creates a new authorizer.
func NewAuthorizer(config *model.Config, members port.MemberReader) *Authorizer {
	return &Authorizer{
		config:  config,
		members: members,
	}
}

// Authorize checks that the user is a member of the configured guild, holds
// the delegate role, and belongs to a configured committee. Each failure
// carries its own user-facing reply. When several committee roles are held,
// the first committee in configured order wins.
func (a *Authorizer) Authorize(ctx context.Context, userID uint64) (*model.Member, *model.Committee, error) {
	member, err := a.members.GetMember(ctx, a.config.GuildID, userID)
	if err != nil {
		slog.DebugContext(ctx, "requester is not a resolvable guild member",
			"user_id", userID,
			"guild_id", a.config.GuildID,
			"error", err)
		return nil, nil, errs.NewForbidden(msgUnacquainted, err)
	}

	if !member.HasRole(a.config.DelegateRoleID) {
		slog.DebugContext(ctx, "requester lacks the delegate role", "user_id", userID)
		return nil, nil, errs.NewForbidden(msgDelegatesOnly)
	}

	committee := a.config.CommitteeForMember(member)
	if committee == nil {
		slog.DebugContext(ctx, "requester matches no configured committee", "user_id", userID)
		return nil, nil, errs.NewForbidden(msgUnknownCommittee)
	}

	return member, committee, nil
}
