// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// ApprovalState tracks the vote outcome of a relay request.
type ApprovalState int

const (
	// ApprovalPending means no vote outcome has been recorded yet.
	ApprovalPending ApprovalState = iota

	// ApprovalApproved means the first committee reaction was the approve
	// affordance; the payload will be delivered to the recipient.
	ApprovalApproved

	// ApprovalRejected means the first committee reaction was the reject
	// affordance or an unrecognized emoji; no delivery occurs.
	ApprovalRejected

	// ApprovalTimedOut means the voting window elapsed with no reaction;
	// treated as a rejection.
	ApprovalTimedOut
)

// String returns the human-readable name of the approval state.
func (s ApprovalState) String() string {
	switch s {
	case ApprovalPending:
		return "pending"
	case ApprovalApproved:
		return "approved"
	case ApprovalRejected:
		return "rejected"
	case ApprovalTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Delivered reports whether the state permits delivery to the recipient.
func (s ApprovalState) Delivered() bool {
	return s == ApprovalApproved
}

// RelayRequest is the transient state of one forward invocation. It exists
// only for the duration of the handling goroutine and is never persisted.
type RelayRequest struct {
	// ID correlates the workflow's log records.
	ID string

	// RequesterID is the delegate who initiated the request.
	RequesterID uint64

	// RequesterChannelID is the channel the command was issued in; outcome
	// notifications and relayed replies are delivered there.
	RequesterChannelID uint64

	// RequesterMessageID is the invoking command message, replied to for
	// confirmations and outcomes.
	RequesterMessageID uint64

	// Committee is the requester's resolved committee.
	Committee *Committee

	// RawContent is the payload exactly as typed.
	RawContent string

	// Content is the sanitized payload. Sanitization happens exactly once;
	// the committee, the recipient, and the requester all see this form.
	Content string

	// RecipientID names the delivery target for external requests; zero
	// marks the request internal.
	RecipientID uint64

	// ForwardedMessageID is the message posted to the committee channel.
	ForwardedMessageID uint64

	// State is the vote outcome, pending until the vote resolves. Internal
	// requests never leave pending.
	State ApprovalState
}

// External reports whether the request names a recipient and therefore
// requires committee approval before delivery.
func (r *RelayRequest) External() bool {
	return r.RecipientID != 0
}
