// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// CommandPrefix is the leading character that marks a chat message as a
	// bot command. Mentioning the bot works as an alternative prefix.
	CommandPrefix = "!"

	// CommandForward relays a moderated message to the requester's committee.
	CommandForward = "forward"

	// CommandJoin self-assigns a committee role plus the delegate role.
	CommandJoin = "join"
)
