package entities

import "time"

// Goal is the per-user goal row persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: user_id
//
// AchievedValue is derived state kept as a running total for read efficiency:
// it must always equal the sum of Value over the user's proposals currently in
// status "implantado". The ledger maintains it with atomic ADD deltas; the
// recompute repair path rebuilds it from the proposals table.

type Goal struct {
	UserID        string    `json:"user_id"`
	TargetValue   float64   `json:"target_value"`
	AchievedValue float64   `json:"achieved_value"`
	UpdatedAt     time.Time `json:"updated_at"`
}
