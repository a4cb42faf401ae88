// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	users    map[string]string
	roles    map[string]string
	channels map[string]string
}

func (f *fakeResolver) userName(_, userID string) (string, bool) {
	name, ok := f.users[userID]
	return name, ok
}

func (f *fakeResolver) roleName(_, roleID string) (string, bool) {
	name, ok := f.roles[roleID]
	return name, ok
}

func (f *fakeResolver) channelName(channelID string) (string, bool) {
	name, ok := f.channels[channelID]
	return name, ok
}

func TestSanitizeContent(t *testing.T) {
	resolver := &fakeResolver{
		users:    map[string]string{"111": "alice"},
		roles:    map[string]string{"222": "Legal"},
		channels: map[string]string{"333": "legal-committee"},
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "hello committee",
			expected: "hello committee",
		},
		{
			name:     "user mention resolved",
			input:    "ask <@111> about it",
			expected: "ask @alice about it",
		},
		{
			name:     "nickname mention form resolved",
			input:    "ask <@!111> about it",
			expected: "ask @alice about it",
		},
		{
			name:     "unknown user neutralized",
			input:    "ask <@999> about it",
			expected: "ask @invalid-user about it",
		},
		{
			name:     "role mention resolved",
			input:    "ping <@&222> please",
			expected: "ping @Legal please",
		},
		{
			name:     "unknown role neutralized",
			input:    "ping <@&888> please",
			expected: "ping @deleted-role please",
		},
		{
			name:     "channel mention resolved",
			input:    "see <#333>",
			expected: "see #legal-committee",
		},
		{
			name:     "unknown channel neutralized",
			input:    "see <#777>",
			expected: "see #deleted-channel",
		},
		{
			name:     "everyone ping broken",
			input:    "hey @everyone look",
			expected: "hey @\u200beveryone look",
		},
		{
			name:     "here ping broken",
			input:    "hey @here look",
			expected: "hey @\u200bhere look",
		},
		{
			name:     "mixed abuse neutralized",
			input:    "<@111> says @everyone should ping <@&222> in <#333>",
			expected: "@alice says @\u200beveryone should ping @Legal in #legal-committee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeContent(tt.input, "100", resolver))
		})
	}
}

func TestSanitizeContentIsStable(t *testing.T) {
	// Sanitizing already-sanitized text must not change it further, since the
	// same payload is displayed to several audiences.
	resolver := &fakeResolver{users: map[string]string{"111": "alice"}}
	once := sanitizeContent("<@111> and @everyone", "100", resolver)
	twice := sanitizeContent(once, "100", resolver)
	assert.Equal(t, once, twice)
}
