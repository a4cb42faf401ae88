// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linuxfoundation/lfx-v2-committee-relay-bot/internal/domain/model"
)

func TestQuoteLines(t *testing.T) {
	assert.Equal(t, "> one", quoteLines("one"))
	assert.Equal(t, "> one\n> two", quoteLines("one\ntwo"))
	assert.Equal(t, "> one\n> \n> three", quoteLines("one\n\nthree"))
}

func TestNoConsensusNotice(t *testing.T) {
	tests := []struct {
		name     string
		window   time.Duration
		expected string
	}{
		{
			name:     "default ten minutes",
			window:   10 * time.Minute,
			expected: "No consensus reached in 10 minutes; rejecting request.",
		},
		{
			name:     "single minute",
			window:   time.Minute,
			expected: "No consensus reached in 1 minute; rejecting request.",
		},
		{
			name:     "sub-minute window falls back to duration form",
			window:   30 * time.Second,
			expected: "No consensus reached in 30s; rejecting request.",
		},
		{
			name:     "fractional minutes fall back to duration form",
			window:   90 * time.Second,
			expected: "No consensus reached in 1m30s; rejecting request.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, noConsensusNotice(tt.window))
		})
	}
}

func TestCommitteeAnnouncement(t *testing.T) {
	committee := &model.Committee{Name: "Legal", RoleID: 1, ChannelID: 2}

	t.Run("external announcement names both parties and the vote", func(t *testing.T) {
		req := &model.RelayRequest{
			RequesterID: 10,
			RecipientID: 20,
			Committee:   committee,
			Content:     "line one\nline two",
		}
		got := committeeAnnouncement(req)
		assert.Contains(t, got, "Received request from <@10> to forward message to <@20>:")
		assert.Contains(t, got, "> line one\n> line two")
		assert.Contains(t, got, "approve or deny")
	})

	t.Run("internal announcement asks only for replies", func(t *testing.T) {
		req := &model.RelayRequest{
			RequesterID: 10,
			Committee:   committee,
			Content:     "hello",
		}
		got := committeeAnnouncement(req)
		assert.Contains(t, got, "Received request from <@10>:")
		assert.NotContains(t, got, "forward message to")
		assert.NotContains(t, got, "approve or deny")
		assert.Contains(t, got, "Reply to this message to send a response.")
	})
}
