// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "slices"

// Member is a snapshot of a guild member's identity and role set. The
// platform owns the member; the bot fetches a fresh snapshot per command and
// never caches it beyond the command's duration.
type Member struct {
	// UserID is the member's platform identifier.
	UserID uint64

	// Username is the member's display name.
	Username string

	// Roles are the role IDs currently held by the member.
	Roles []uint64
}

// HasRole reports whether the member holds the given role.
func (m *Member) HasRole(roleID uint64) bool {
	return slices.Contains(m.Roles, roleID)
}
