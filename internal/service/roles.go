// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/errors"
)

// RoleService handles committee self-assignment. The operation is
// idempotent: repeating a join that is already in effect issues no role
// mutations and still acknowledges.
type RoleService struct {
	config    *model.Config
	members   port.MemberReader
	roles     port.RoleWriter
	messenger port.Messenger
}

// NewRoleService creates a new role assignment service.
func NewRoleService(config *model.Config, members port.MemberReader, roles port.RoleWriter, messenger port.Messenger) *RoleService {
	return &RoleService{
		config:    config,
		members:   members,
		roles:     roles,
		messenger: messenger,
	}
}

// Join resolves msg.Content to a configured committee by case-insensitive
// match against the committee's display name or its guild role's name, swaps
// the member onto that committee's role plus the delegate role, and
// acknowledges with a positive reaction. Other committee roles are all
// removed, defensively, even though members are expected to hold at most one.
func (s *RoleService) Join(ctx context.Context, msg model.Message) error {
	if msg.GuildID != s.config.GuildID {
		return errs.NewForbidden(msgWrongGuild)
	}

	committee, err := s.resolveCommittee(ctx, msg.Content)
	if err != nil {
		return err
	}

	member, err := s.members.GetMember(ctx, s.config.GuildID, msg.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to resolve member %d: %w", msg.AuthorID, err)
	}

	var removals []uint64
	for _, roleID := range s.config.CommitteeRoleIDs() {
		if roleID != committee.RoleID && member.HasRole(roleID) {
			removals = append(removals, roleID)
		}
	}

	var additions []uint64
	for _, roleID := range []uint64{committee.RoleID, s.config.DelegateRoleID} {
		if !member.HasRole(roleID) {
			additions = append(additions, roleID)
		}
	}

	// Remove-then-add, each batch only when non-empty.
	if len(removals) > 0 {
		if err := s.roles.RemoveMemberRoles(ctx, s.config.GuildID, member.UserID, removals); err != nil {
			return fmt.Errorf("failed to remove committee roles: %w", err)
		}
	}
	if len(additions) > 0 {
		if err := s.roles.AddMemberRoles(ctx, s.config.GuildID, member.UserID, additions); err != nil {
			return fmt.Errorf("failed to add committee roles: %w", err)
		}
	}

	slog.InfoContext(ctx, "committee membership updated",
		"user_id", member.UserID,
		"committee", committee.Name,
		"roles_removed", len(removals),
		"roles_added", len(additions))

	if err := s.messenger.AddReaction(ctx, msg.ChannelID, msg.ID, constants.ReactionApprove); err != nil {
		return fmt.Errorf("failed to acknowledge role assignment: %w", err)
	}

	return nil
}

// resolveCommittee matches the free-text query against committee display
// names and the underlying guild role names, case-insensitively.
func (s *RoleService) resolveCommittee(ctx context.Context, query string) (*model.Committee, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, errs.NewNotFound(msgUnknownName)
	}

	guildRoles, err := s.members.GetGuildRoles(ctx, s.config.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild roles: %w", err)
	}

	roleNames := make(map[uint64]string, len(guildRoles))
	for _, role := range guildRoles {
		roleNames[role.ID] = strings.ToLower(role.Name)
	}

	for i := range s.config.Committees {
		committee := &s.config.Committees[i]
		if query == strings.ToLower(committee.Name) || query == roleNames[committee.RoleID] {
			return committee, nil
		}
	}

	slog.DebugContext(ctx, "no committee matched join query", "query", query)
	return nil, errs.NewNotFound(msgUnknownName)
}
