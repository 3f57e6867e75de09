package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/internal/usecase/interfaces"
)

var (
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrGoalNotFound       = errors.New("goal not found")
	ErrInvalidTargetValue = errors.New("invalid target value")
)

// IGoalUseCase exposes the goal ledger read/repair surface.
//
// The incremental achieved-value deltas themselves are applied by the
// transition engine through the goal repository's atomic ADD; this usecase
// covers the management surface: reading a goal, adjusting its target and
// the recompute repair path that rebuilds achieved_value from the source
// of truth.

type IGoalUseCase interface {
	Get(ctx context.Context, actor entities.Identity, userID string) (entities.Goal, error)
	SetTarget(ctx context.Context, actor entities.Identity, userID string, target float64) (entities.Goal, error)
	Recompute(ctx context.Context, actor entities.Identity, userID string) (entities.Goal, error)
}

type GoalUseCase struct {
	goals     interfaces.IGoalRepository
	proposals interfaces.IProposalRepository
}

var _ IGoalUseCase = (*GoalUseCase)(nil)

func NewGoalUseCase(goals interfaces.IGoalRepository, proposals interfaces.IProposalRepository) *GoalUseCase {
	return &GoalUseCase{goals: goals, proposals: proposals}
}

func (u *GoalUseCase) Get(ctx context.Context, actor entities.Identity, userID string) (entities.Goal, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Goal{}, ErrInvalidUserID
	}
	if !actor.Role.IsManager() && actor.UserID != userID {
		return entities.Goal{}, ErrForbidden
	}

	g, err := u.goals.Get(ctx, userID)
	if err != nil {
		return entities.Goal{}, err
	}
	if g.UserID == "" {
		return entities.Goal{}, ErrGoalNotFound
	}
	return g, nil
}

func (u *GoalUseCase) SetTarget(ctx context.Context, actor entities.Identity, userID string, target float64) (entities.Goal, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Goal{}, ErrInvalidUserID
	}
	if !actor.Role.IsManager() {
		return entities.Goal{}, ErrForbidden
	}
	if target < 0 {
		return entities.Goal{}, ErrInvalidTargetValue
	}
	return u.goals.SetTarget(ctx, userID, target)
}

// Recompute rebuilds achieved_value by summing the value of the user's
// proposals currently in "implantado" and overwriting the running total.
// It is the reconciliation path for the incremental ledger, needed when an
// audit/goal side effect was lost after a successful primary write.
func (u *GoalUseCase) Recompute(ctx context.Context, actor entities.Identity, userID string) (entities.Goal, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Goal{}, ErrInvalidUserID
	}
	if !actor.Role.IsManager() {
		return entities.Goal{}, ErrForbidden
	}

	implanted, err := u.proposals.ListByCreatorAndStatus(ctx, userID, entities.StatusImplantado)
	if err != nil {
		return entities.Goal{}, err
	}
	total := 0.0
	for _, p := range implanted {
		total += p.Value
	}

	g, err := u.goals.SetAchieved(ctx, userID, total)
	if err != nil {
		return entities.Goal{}, err
	}
	log.Printf("[goal][usecase] recompute user=%s proposals=%d achieved=%.2f", userID, len(implanted), total)
	return g, nil
}
