// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package utils provides utility functions for the committee relay bot.
package utils

import (
	"fmt"
	"strconv"
)

// ParseSnowflake converts a decimal-string platform identifier to its uint64
// runtime form. Discord transports IDs as strings to survive JSON number
// precision limits; the bot works with them as integers.
func ParseSnowflake(id string) (uint64, error) {
	parsed, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", id, err)
	}
	return parsed, nil
}

// FormatSnowflake converts a uint64 runtime identifier back to the
// decimal-string form the platform API expects.
func FormatSnowflake(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// Mention renders a user mention for the given identifier.
func Mention(userID uint64) string {
	return "<@" + FormatSnowflake(userID) + ">"
}
