package interfaces

import (
	"context"

	"corretora_xpto/internal/domain/entities"
)

// IGoalRepository abstracts DynamoDB persistence for Goal.
//
// AddAchieved must be a store-level atomic increment (DynamoDB ADD), never a
// read-modify-write in application memory: two proposals of the same user
// crossing the "implantado" boundary concurrently must not lose an update.
// The increment upserts, so goal rows are created lazily on first delta.

type IGoalRepository interface {
	Get(ctx context.Context, userID string) (entities.Goal, error)
	AddAchieved(ctx context.Context, userID string, delta float64) error
	SetAchieved(ctx context.Context, userID string, value float64) (entities.Goal, error)
	SetTarget(ctx context.Context, userID string, target float64) (entities.Goal, error)
}
