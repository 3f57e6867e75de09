package entities

import "time"

// Notification event types emitted by the transition engine.
const (
	EventProposalClaimed = "proposal.claimed"
	EventProposalUpdated = "proposal.updated"
)

// ProposalEvent is the fire-and-forget payload handed to the notification
// dispatcher for downstream email / real-time push.
type ProposalEvent struct {
	Type       string    `json:"type"`
	ProposalID string    `json:"proposal_id"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
