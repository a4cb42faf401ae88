// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// Message is a chat message as seen by the bot.
type Message struct {
	// ID is the message identifier.
	ID uint64

	// ChannelID is the channel the message was posted in.
	ChannelID uint64

	// GuildID is the guild the message belongs to, zero for direct messages.
	GuildID uint64

	// AuthorID is the author's platform identifier.
	AuthorID uint64

	// AuthorUsername is the author's display name.
	AuthorUsername string

	// Content is the raw message text.
	Content string

	// ReferencedMessageID is the message this one replies to, zero when the
	// message is not a reply.
	ReferencedMessageID uint64
}

// Reaction is a single emoji reaction on a message.
type Reaction struct {
	// MessageID is the message the reaction was added to.
	MessageID uint64

	// UserID is the user who reacted.
	UserID uint64

	// Emoji is the reaction emoji.
	Emoji string
}

// Role is a guild role as seen by the bot.
type Role struct {
	// ID is the role identifier.
	ID uint64

	// Name is the role's display name.
	Name string
}
