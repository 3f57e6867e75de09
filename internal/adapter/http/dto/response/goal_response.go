package response

import (
	"time"

	"corretora_xpto/internal/domain/entities"
)

type GoalResponse struct {
	UserID        string    `json:"user_id"`
	TargetValue   float64   `json:"target_value"`
	AchievedValue float64   `json:"achieved_value"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromGoal(g entities.Goal) GoalResponse {
	return GoalResponse{
		UserID:        g.UserID,
		TargetValue:   g.TargetValue,
		AchievedValue: g.AchievedValue,
		UpdatedAt:     g.UpdatedAt,
	}
}
