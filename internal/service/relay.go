// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/log"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/utils"
)

// recipientMentionPattern matches an optional leading user mention that marks
// a forward request external.
var recipientMentionPattern = regexp.MustCompile(`^<@!?(\d+)>\s*`)

// RelayService orchestrates the forward workflow: authorize, forward to the
// committee channel, run the approval vote for external requests, deliver on
// approval, and relay committee replies back to the requester. One instance
// serves all invocations; each invocation owns its request state, timers, and
// event filters, so concurrent workflows share nothing mutable.
type RelayService struct {
	config     *model.Config
	messenger  port.Messenger
	sanitizer  port.ContentSanitizer
	events     port.EventSubscriber
	authorizer *Authorizer

	voteTimeout time.Duration
	replyWindow time.Duration
}

// NewRelayService creates a new relay service. Zero timeouts select the
// defaults (10 minutes each).
func NewRelayService(
	config *model.Config,
	messenger port.Messenger,
	sanitizer port.ContentSanitizer,
	events port.EventSubscriber,
	authorizer *Authorizer,
	voteTimeout time.Duration,
	replyWindow time.Duration,
) *RelayService {
	if voteTimeout <= 0 {
		voteTimeout = constants.DefaultVoteTimeout
	}
	if replyWindow <= 0 {
		replyWindow = constants.DefaultReplyWindow
	}
	return &RelayService{
		config:      config,
		messenger:   messenger,
		sanitizer:   sanitizer,
		events:      events,
		authorizer:  authorizer,
		voteTimeout: voteTimeout,
		replyWindow: replyWindow,
	}
}

// Forward handles one forward invocation end to end. msg.Content carries the
// command arguments: an optional leading recipient mention followed by the
// payload. Authorization failures return Forbidden errors for the router to
// reply with; platform failures abort the workflow.
func (s *RelayService) Forward(ctx context.Context, msg model.Message) error {
	_, committee, err := s.authorizer.Authorize(ctx, msg.AuthorID)
	if err != nil {
		return err
	}

	recipientID, payload := parseForwardArgs(msg.Content)

	req := &model.RelayRequest{
		ID:                 uuid.NewString(),
		RequesterID:        msg.AuthorID,
		RequesterChannelID: msg.ChannelID,
		RequesterMessageID: msg.ID,
		Committee:          committee,
		RawContent:         payload,
		RecipientID:        recipientID,
		State:              model.ApprovalPending,
	}

	ctx = log.AppendCtx(ctx, slog.String("relay_request_id", req.ID))
	slog.InfoContext(ctx, "relay request authorized",
		"requester_id", req.RequesterID,
		"committee", committee.Name,
		"external", req.External())

	// Sanitized exactly once; committee, recipient, and requester all see
	// this form.
	req.Content, err = s.sanitizer.Sanitize(ctx, msg.GuildID, payload)
	if err != nil {
		return fmt.Errorf("failed to sanitize payload: %w", err)
	}

	if err := s.forward(ctx, req); err != nil {
		return err
	}

	if req.External() {
		if err := s.runVote(ctx, req); err != nil {
			return err
		}
		if err := s.deliver(ctx, req); err != nil {
			return err
		}
	}

	return s.relayReplies(ctx, req)
}

// forward posts the sanitized payload to the committee channel, attaches the
// vote affordances for external requests, and confirms to the requester.
func (s *RelayService) forward(ctx context.Context, req *model.RelayRequest) error {
	// User feedback only; the indicator clears once the confirmation posts.
	if err := s.messenger.TriggerTyping(ctx, req.RequesterChannelID); err != nil {
		slog.WarnContext(ctx, "failed to trigger typing indicator", "error", err)
	}

	posted, err := s.messenger.SendMessage(ctx, req.Committee.ChannelID, committeeAnnouncement(req))
	if err != nil {
		return fmt.Errorf("failed to post to committee channel: %w", err)
	}
	req.ForwardedMessageID = posted.ID

	if req.External() {
		for _, emoji := range []string{constants.ReactionApprove, constants.ReactionReject} {
			if err := s.messenger.AddReaction(ctx, req.Committee.ChannelID, posted.ID, emoji); err != nil {
				return fmt.Errorf("failed to attach vote reaction: %w", err)
			}
		}
	}

	if _, err := s.messenger.ReplyToMessage(ctx, req.RequesterChannelID, req.RequesterMessageID,
		forwardConfirmation(req.Committee, req.External())); err != nil {
		return fmt.Errorf("failed to confirm forward to requester: %w", err)
	}

	slog.InfoContext(ctx, "request forwarded to committee",
		"committee_channel_id", req.Committee.ChannelID,
		"forwarded_message_id", req.ForwardedMessageID)

	return nil
}

// runVote waits for the first committee reaction, bounded by the voting
// timeout, and records the outcome. The first valid reaction or the deadline
// decides exclusively; late reactions are ignored.
func (s *RelayService) runVote(ctx context.Context, req *model.RelayRequest) error {
	reaction, voted, err := s.events.AwaitReaction(ctx, req.Committee.ChannelID, req.ForwardedMessageID, s.voteTimeout)
	if err != nil {
		return fmt.Errorf("failed to await committee reaction: %w", err)
	}

	var committeeNotice string
	switch {
	case !voted:
		req.State = model.ApprovalTimedOut
		committeeNotice = noConsensusNotice(s.voteTimeout)
	case reaction.Emoji == constants.ReactionApprove:
		req.State = model.ApprovalApproved
		committeeNotice = voteOutcomeNotice(true)
	case reaction.Emoji == constants.ReactionReject:
		req.State = model.ApprovalRejected
		committeeNotice = voteOutcomeNotice(false)
	default:
		// An unrecognized reaction rejects rather than being ignored.
		req.State = model.ApprovalRejected
		committeeNotice = msgInvalidReaction
	}

	slog.InfoContext(ctx, "vote resolved", "state", req.State.String())

	if _, err := s.messenger.ReplyToMessage(ctx, req.Committee.ChannelID, req.ForwardedMessageID, committeeNotice); err != nil {
		return fmt.Errorf("failed to post vote outcome to committee: %w", err)
	}

	if _, err := s.messenger.ReplyToMessage(ctx, req.RequesterChannelID, req.RequesterMessageID,
		voteOutcomeNotice(req.State.Delivered())); err != nil {
		return fmt.Errorf("failed to notify requester of vote outcome: %w", err)
	}

	return nil
}

// deliver sends the sanitized payload to the recipient's private channel if
// the vote approved it.
func (s *RelayService) deliver(ctx context.Context, req *model.RelayRequest) error {
	if !req.State.Delivered() {
		return nil
	}

	dmChannelID, err := s.messenger.OpenDirectChannel(ctx, req.RecipientID)
	if err != nil {
		return fmt.Errorf("failed to open direct channel to recipient: %w", err)
	}

	if _, err := s.messenger.SendMessage(ctx, dmChannelID, directDelivery(req)); err != nil {
		return fmt.Errorf("failed to deliver message to recipient: %w", err)
	}

	slog.InfoContext(ctx, "payload delivered to recipient", "recipient_id", req.RecipientID)
	return nil
}

// relayReplies forwards every direct reply to the committee message back to
// the requester for the duration of the reply window. Continuous, not
// single-shot; each relayed reply is acknowledged on the committee side.
func (s *RelayService) relayReplies(ctx context.Context, req *model.RelayRequest) error {
	replies, cancel, err := s.events.SubscribeReplies(ctx, req.Committee.ChannelID, req.ForwardedMessageID, s.replyWindow)
	if err != nil {
		return fmt.Errorf("failed to subscribe to committee replies: %w", err)
	}
	defer cancel()

	for reply := range replies {
		content, err := s.sanitizer.Sanitize(ctx, s.config.GuildID, reply.Content)
		if err != nil {
			return fmt.Errorf("failed to sanitize committee reply: %w", err)
		}

		if _, err := s.messenger.SendMessage(ctx, req.RequesterChannelID, relayedReply(reply.AuthorID, content)); err != nil {
			return fmt.Errorf("failed to relay committee reply: %w", err)
		}

		if err := s.messenger.AddReaction(ctx, reply.ChannelID, reply.ID, constants.ReactionSent); err != nil {
			return fmt.Errorf("failed to acknowledge relayed reply: %w", err)
		}

		slog.InfoContext(ctx, "committee reply relayed", "reply_id", reply.ID, "author_id", reply.AuthorID)
	}

	slog.InfoContext(ctx, "relay workflow closed", "state", req.State.String())
	return nil
}

// parseForwardArgs splits the command arguments into an optional leading
// recipient mention and the payload text.
func parseForwardArgs(args string) (recipientID uint64, payload string) {
	args = strings.TrimSpace(args)
	if m := recipientMentionPattern.FindStringSubmatch(args); m != nil {
		if id, err := utils.ParseSnowflake(m[1]); err == nil {
			return id, strings.TrimSpace(args[len(m[0]):])
		}
	}
	return 0, args
}
