// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/utils"
)

// User-facing reply texts. Every authorization and timeout outcome has its
// own distinct message.
const (
	msgUnacquainted     = "Umm... have I made your acquaintance?"
	msgDelegatesOnly    = "This command is only available to delegates."
	msgUnknownCommittee = "Sorry, but I'm not sure which committee you're on."
	msgWrongGuild       = "I'm not configured to work here."
	msgUnknownName      = "Sorry, I couldn't find a committee by that name."
	msgInvalidReaction  = "Invalid reaction; rejecting request."
)

// quoteLines renders content as a chat quote, one marker per line.
func quoteLines(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

// committeeAnnouncement is the message posted to the committee channel when a
// request is forwarded.
func committeeAnnouncement(req *model.RelayRequest) string {
	var b strings.Builder
	b.WriteString("Received request from ")
	b.WriteString(utils.Mention(req.RequesterID))
	if req.External() {
		b.WriteString(" to forward message to ")
		b.WriteString(utils.Mention(req.RecipientID))
	}
	b.WriteString(":\n")
	b.WriteString(quoteLines(req.Content))
	b.WriteString("\n\n")
	if req.External() {
		b.WriteString("Use the reactions below to approve or deny this request. ")
		b.WriteString("Reply to this message after voting to send a response.")
	} else {
		b.WriteString("Reply to this message to send a response.")
	}
	return b.String()
}

// forwardConfirmation acknowledges the requester after the forward is posted.
func forwardConfirmation(committee *model.Committee, external bool) string {
	if external {
		return fmt.Sprintf("Your message has been forwarded to **%s** for approval.", committee.Name)
	}
	return fmt.Sprintf("Your message has been forwarded to **%s**.", committee.Name)
}

// voteOutcomeNotice states the vote result, in the same terms for the
// committee and the requester.
func voteOutcomeNotice(approved bool) string {
	if approved {
		return "This request has been **approved**."
	}
	return "This request has been **rejected**."
}

// noConsensusNotice is posted to the committee when the voting window
// elapses with no reaction.
func noConsensusNotice(window time.Duration) string {
	if minutes := int(window.Minutes()); minutes >= 1 && window == time.Duration(minutes)*time.Minute {
		unit := "minutes"
		if minutes == 1 {
			unit = "minute"
		}
		return fmt.Sprintf("No consensus reached in %d %s; rejecting request.", minutes, unit)
	}
	return fmt.Sprintf("No consensus reached in %s; rejecting request.", window)
}

// directDelivery is the private message delivered to the recipient of an
// approved external request.
func directDelivery(req *model.RelayRequest) string {
	return fmt.Sprintf("Received message from %s:\n%s", utils.Mention(req.RequesterID), quoteLines(req.Content))
}

// relayedReply forwards a committee reply back to the requester's channel.
func relayedReply(authorID uint64, content string) string {
	return fmt.Sprintf("Received reply from %s:\n%s", utils.Mention(authorID), quoteLines(content))
}
