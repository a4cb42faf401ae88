// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

import "time"

const (
	// ReactionApprove is attached to external requests as the approval vote
	// affordance, and acknowledges successful role assignment.
	ReactionApprove = "✅"

	// ReactionReject is attached to external requests as the rejection vote
	// affordance.
	ReactionReject = "❌"

	// ReactionSent acknowledges a committee reply that has been relayed back
	// to the requester.
	ReactionSent = "📨"

	// DefaultVoteTimeout bounds how long an external request waits for the
	// first committee reaction before it is rejected.
	DefaultVoteTimeout = 10 * time.Minute

	// DefaultReplyWindow bounds how long committee replies to a forwarded
	// message keep being relayed back to the requester.
	DefaultReplyWindow = 10 * time.Minute
)
