// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import "context"

// RoleWriter mutates a member's role set. Callers issue each batch only when
// it is non-empty, and removals before additions.
type RoleWriter interface {
	// AddMemberRoles grants the given roles to a member.
	AddMemberRoles(ctx context.Context, guildID, userID uint64, roleIDs []uint64) error

	// RemoveMemberRoles revokes the given roles from a member.
	RemoveMemberRoles(ctx context.Context, guildID, userID uint64, roleIDs []uint64) error
}
