// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants provides shared constant values used across the bot.
package constants

const (
	// ServiceName is the name of the service used for identification purposes,
	// such as in logging and the gateway connection name.
	ServiceName = "lfx-v2-committee-relay-bot"
)
