// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package model contains the domain entities for the committee relay bot.
package model

// Config is the static description of the guild the bot serves. It is
// immutable after load and shared by reference across concurrent workflows.
type Config struct {
	// Token is the bot authentication token for the platform gateway.
	Token string

	// GuildID is the identifier of the guild the bot is configured to serve.
	GuildID uint64

	// DelegateRoleID is the role that authorizes members to initiate relay
	// requests.
	DelegateRoleID uint64

	// StaffRoleID is the role held by organizing staff.
	StaffRoleID uint64

	// ChairRoleID is the role held by committee chairs.
	ChairRoleID uint64

	// Committees are the configured committees, in priority order.
	Committees []Committee
}

// Committee is a named working group with its own role and private channel.
type Committee struct {
	// Name is the display name, matched case-insensitively by the join command.
	Name string

	// RoleID is the guild role that marks membership of this committee.
	RoleID uint64

	// ChannelID is the committee's private channel.
	ChannelID uint64
}

// CommitteeForMember returns the first configured committee whose role the
// member holds. Role assignment keeps members on a single committee, but the
// platform does not enforce that, so the configured order decides
// deterministically when several match.
func (c *Config) CommitteeForMember(member *Member) *Committee {
	for i := range c.Committees {
		if member.HasRole(c.Committees[i].RoleID) {
			return &c.Committees[i]
		}
	}
	return nil
}

// CommitteeRoleIDs returns the role IDs of every configured committee.
func (c *Config) CommitteeRoleIDs() []uint64 {
	ids := make([]uint64, 0, len(c.Committees))
	for i := range c.Committees {
		ids = append(ids, c.Committees[i].RoleID)
	}
	return ids
}
