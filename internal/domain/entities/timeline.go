package entities

import "time"

// TimelineEvent is one status-change event reconstructed from the audit
// trail. Timelines are derived on read and never persisted.
type TimelineEvent struct {
	Status ProposalStatus `json:"status"`
	At     time.Time      `json:"at"`
}
