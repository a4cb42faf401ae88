// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-committee-relay-bot/pkg/errors"
)

const (
	testRequesterID      = uint64(1)
	testRecipientID      = uint64(50)
	testRequesterChannel = uint64(400)
	testRequestMessageID = uint64(500)
)

func newRelayFixture(t *testing.T) (*RelayService, *mock.Gateway) {
	t.Helper()
	cfg := testConfig()
	gateway := mock.NewGateway()
	gateway.AddMember(&model.Member{
		UserID:   testRequesterID,
		Username: "alice",
		Roles:    []uint64{testDelegateRoleID, testLegalRoleID},
	})
	authorizer := NewAuthorizer(cfg, gateway)
	relay := NewRelayService(cfg, gateway, gateway, gateway, authorizer, 0, 0)
	return relay, gateway
}

func forwardMessage(content string) model.Message {
	return model.Message{
		ID:        testRequestMessageID,
		ChannelID: testRequesterChannel,
		GuildID:   testGuildID,
		AuthorID:  testRequesterID,
		Content:   content,
	}
}

func TestForwardExternalApproved(t *testing.T) {
	relay, gateway := newRelayFixture(t)
	gateway.ScriptVoteReaction(&model.Reaction{UserID: 7, Emoji: constants.ReactionApprove})
	gateway.ScriptReply(model.Message{
		ID:        900,
		ChannelID: testLegalChannel,
		AuthorID:  8,
		Content:   "We accept the proposal.",
	})

	err := relay.Forward(context.Background(), forwardMessage("<@50> Hello there"))
	require.NoError(t, err)

	committeePosts := gateway.SentTo(testLegalChannel)
	require.Len(t, committeePosts, 2)
	assert.Contains(t, committeePosts[0].Content, "<@1>")
	assert.Contains(t, committeePosts[0].Content, "<@50>")
	assert.Contains(t, committeePosts[0].Content, "> Hello there")
	assert.Contains(t, committeePosts[0].Content, "approve or deny")
	assert.Equal(t, "This request has been **approved**.", committeePosts[1].Content)
	assert.Equal(t, committeePosts[0].ID, committeePosts[1].ReplyToID)

	// Vote affordances attached in approve-then-reject order.
	reactions := gateway.Reactions()
	require.GreaterOrEqual(t, len(reactions), 2)
	assert.Equal(t, constants.ReactionApprove, reactions[0].Emoji)
	assert.Equal(t, constants.ReactionReject, reactions[1].Emoji)
	assert.Equal(t, committeePosts[0].ID, reactions[0].MessageID)

	requesterReplies := gateway.SentTo(testRequesterChannel)
	require.Len(t, requesterReplies, 3)
	assert.Equal(t, "Your message has been forwarded to **Legal** for approval.", requesterReplies[0].Content)
	assert.Equal(t, testRequestMessageID, requesterReplies[0].ReplyToID)
	assert.Equal(t, "This request has been **approved**.", requesterReplies[1].Content)

	// Approved payload delivered to the recipient's private channel.
	dm := gateway.DirectChannelFor(testRecipientID)
	require.NotZero(t, dm)
	dmMessages := gateway.SentTo(dm)
	require.Len(t, dmMessages, 1)
	assert.Equal(t, "Received message from <@1>:\n> Hello there", dmMessages[0].Content)

	// The committee reply is relayed back and acknowledged.
	assert.Equal(t, "Received reply from <@8>:\n> We accept the proposal.", requesterReplies[2].Content)
	last := reactions[len(reactions)-1]
	assert.Equal(t, constants.ReactionSent, last.Emoji)
	assert.Equal(t, uint64(900), last.MessageID)
}

func TestForwardExternalRejected(t *testing.T) {
	relay, gateway := newRelayFixture(t)
	gateway.ScriptVoteReaction(&model.Reaction{UserID: 7, Emoji: constants.ReactionReject})

	err := relay.Forward(context.Background(), forwardMessage("<@50> Hello there"))
	require.NoError(t, err)

	committeePosts := gateway.SentTo(testLegalChannel)
	require.Len(t, committeePosts, 2)
	assert.Equal(t, "This request has been **rejected**.", committeePosts[1].Content)

	requesterReplies := gateway.SentTo(testRequesterChannel)
	require.Len(t, requesterReplies, 2)
	assert.Equal(t, "This request has been **rejected**.", requesterReplies[1].Content)

	assert.Zero(t, gateway.DirectChannelFor(testRecipientID))
}

func TestForwardExternalTimeout(t *testing.T) {
	relay, gateway := newRelayFixture(t)
	// No scripted reaction: the voting window elapses.

	err := relay.Forward(context.Background(), forwardMessage("<@50> Hello there"))
	require.NoError(t, err)

	committeePosts := gateway.SentTo(testLegalChannel)
	require.Len(t, committeePosts, 2)
	assert.Equal(t, "No consensus reached in 10 minutes; rejecting request.", committeePosts[1].Content)

	requesterReplies := gateway.SentTo(testRequesterChannel)
	require.Len(t, requesterReplies, 2)
	assert.Equal(t, "This request has been **rejected**.", requesterReplies[1].Content)

	assert.Zero(t, gateway.DirectChannelFor(testRecipientID))
}

func TestForwardExternalInvalidReaction(t *testing.T) {
	relay, gateway := newRelayFixture(t)
	gateway.ScriptVoteReaction(&model.Reaction{UserID: 7, Emoji: "🎉"})

	err := relay.Forward(context.Background(), forwardMessage("<@50> Hello there"))
	require.NoError(t, err)

	committeePosts := gateway.SentTo(testLegalChannel)
	require.Len(t, committeePosts, 2)
	assert.Equal(t, "Invalid reaction; rejecting request.", committeePosts[1].Content)

	assert.Zero(t, gateway.DirectChannelFor(testRecipientID))
}

func TestForwardInternal(t *testing.T) {
	relay, gateway := newRelayFixture(t)
	gateway.ScriptReply(model.Message{
		ID:        901,
		ChannelID: testLegalChannel,
		AuthorID:  9,
		Content:   "Noted, thanks.",
	})

	err := relay.Forward(context.Background(), forwardMessage("Please review the agenda"))
	require.NoError(t, err)

	committeePosts := gateway.SentTo(testLegalChannel)
	require.Len(t, committeePosts, 1)
	assert.Contains(t, committeePosts[0].Content, "> Please review the agenda")
	assert.NotContains(t, committeePosts[0].Content, "approve or deny")

	// Internal requests skip voting entirely: no vote affordances, only the
	// relayed-reply acknowledgement.
	reactions := gateway.Reactions()
	require.Len(t, reactions, 1)
	assert.Equal(t, constants.ReactionSent, reactions[0].Emoji)

	requesterReplies := gateway.SentTo(testRequesterChannel)
	require.Len(t, requesterReplies, 2)
	assert.Equal(t, "Your message has been forwarded to **Legal**.", requesterReplies[0].Content)
	assert.Equal(t, "Received reply from <@9>:\n> Noted, thanks.", requesterReplies[1].Content)
}

func TestForwardSanitizesPayloadOnce(t *testing.T) {
	relay, gateway := newRelayFixture(t)
	gateway.ScriptVoteReaction(&model.Reaction{UserID: 7, Emoji: constants.ReactionApprove})

	err := relay.Forward(context.Background(), forwardMessage("<@50> ping @everyone and <@77>"))
	require.NoError(t, err)

	// The payload passed through the sanitizer exactly once, and every
	// audience saw the sanitized form.
	inputs := gateway.SanitizedInputs()
	require.Len(t, inputs, 1)
	assert.Equal(t, "ping @everyone and <@77>", inputs[0])

	sanitized := "ping @\u200beveryone and @member-77"
	committeePosts := gateway.SentTo(testLegalChannel)
	require.NotEmpty(t, committeePosts)
	assert.Contains(t, committeePosts[0].Content, "> "+sanitized)

	dmMessages := gateway.SentTo(gateway.DirectChannelFor(testRecipientID))
	require.Len(t, dmMessages, 1)
	assert.Contains(t, dmMessages[0].Content, "> "+sanitized)
}

func TestForwardUnauthorized(t *testing.T) {
	relay, gateway := newRelayFixture(t)

	msg := forwardMessage("<@50> Hello there")
	msg.AuthorID = 99 // not a known member

	err := relay.Forward(context.Background(), msg)
	require.Error(t, err)
	_, ok := errs.UserFacing(err)
	assert.True(t, ok)

	// A refused request never reaches the committee channel.
	assert.Empty(t, gateway.SentTo(testLegalChannel))
	assert.Empty(t, gateway.SanitizedInputs())
}

func TestForwardCommitteeChannelFailureAborts(t *testing.T) {
	relay, gateway := newRelayFixture(t)
	gateway.FailChannel(testLegalChannel)

	err := relay.Forward(context.Background(), forwardMessage("<@50> Hello there"))
	require.Error(t, err)
	_, userFacing := errs.UserFacing(err)
	assert.False(t, userFacing)

	// The workflow aborted before confirming to the requester.
	assert.Empty(t, gateway.SentTo(testRequesterChannel))
}

func TestParseForwardArgs(t *testing.T) {
	tests := []struct {
		name              string
		args              string
		expectedRecipient uint64
		expectedPayload   string
	}{
		{
			name:              "leading mention marks the request external",
			args:              "<@50> hello",
			expectedRecipient: 50,
			expectedPayload:   "hello",
		},
		{
			name:              "nickname mention form accepted",
			args:              "<@!50> hello",
			expectedRecipient: 50,
			expectedPayload:   "hello",
		},
		{
			name:            "no mention means internal",
			args:            "hello committee",
			expectedPayload: "hello committee",
		},
		{
			name:            "mention not in leading position stays payload",
			args:            "hello <@50>",
			expectedPayload: "hello <@50>",
		},
		{
			name:            "role mention is not a recipient",
			args:            "<@&50> hello",
			expectedPayload: "<@&50> hello",
		},
		{
			name:              "whitespace around the mention tolerated",
			args:              "  <@50>   hello  ",
			expectedRecipient: 50,
			expectedPayload:   "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipient, payload := parseForwardArgs(tt.args)
			assert.Equal(t, tt.expectedRecipient, recipient)
			assert.Equal(t, tt.expectedPayload, payload)
		})
	}
}
