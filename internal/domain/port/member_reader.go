// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
)

// MemberReader resolves guild members and roles. Reads only; the platform
// owns the data.
type MemberReader interface {
	// GetMember fetches a fresh snapshot of a guild member and their roles.
	GetMember(ctx context.Context, guildID, userID uint64) (*model.Member, error)

	// GetGuildRoles lists the guild's roles.
	GetGuildRoles(ctx context.Context, guildID uint64) ([]model.Role, error)
}
