// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := ParseOptions()
	require.NoError(t, err)

	assert.Equal(t, "config.yaml", opts.Path)
	assert.Equal(t, 10*time.Minute, opts.VoteTimeout)
	assert.Equal(t, 10*time.Minute, opts.ReplyWindow)
}

func TestParseOptionsFromEnvironment(t *testing.T) {
	t.Setenv("BOT_CONFIG_PATH", "/etc/relay/guild.yaml")
	t.Setenv("BOT_VOTE_TIMEOUT", "30s")
	t.Setenv("BOT_REPLY_WINDOW", "2m")

	opts, err := ParseOptions()
	require.NoError(t, err)

	assert.Equal(t, "/etc/relay/guild.yaml", opts.Path)
	assert.Equal(t, 30*time.Second, opts.VoteTimeout)
	assert.Equal(t, 2*time.Minute, opts.ReplyWindow)
}

func TestParseOptionsInvalidDuration(t *testing.T) {
	t.Setenv("BOT_VOTE_TIMEOUT", "soon")

	_, err := ParseOptions()
	assert.Error(t, err)
}
