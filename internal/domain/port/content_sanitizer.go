// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import "context"

// ContentSanitizer neutralizes mention and everyone-ping abuse in arbitrary
// text before it is displayed. Workflows apply it exactly once per payload,
// so every audience sees the identical sanitized form.
type ContentSanitizer interface {
	// Sanitize returns content with user/role/channel mentions resolved to
	// plain names and everyone/here pings neutralized.
	Sanitize(ctx context.Context, guildID uint64, content string) (string, error)
}
