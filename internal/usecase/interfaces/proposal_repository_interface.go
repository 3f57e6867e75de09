package interfaces

import (
	"context"
	"errors"
	"time"

	"corretora_xpto/internal/domain/entities"
)

// ErrConditionFailed is returned by conditional writes (claim, guarded patch)
// when the store's condition expression did not hold. Callers disambiguate
// "row missing" from "condition lost" with a follow-up read.
var ErrConditionFailed = errors.New("conditional write did not apply")

// IProposalRepository abstracts DynamoDB persistence for Proposal.
//
// The engine relies on two store-level atomicity guarantees:
//   - Claim is a single conditional update (no read-then-write), so at most
//     one concurrent claimer ever succeeds.
//   - Patch can fold an implicit claim or a handler guard into the same
//     conditional update, so claim-then-patch is one atomic operation.

type IProposalRepository interface {
	Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	Claim(ctx context.Context, id, handlerID string, at time.Time) (entities.Proposal, error)
	Patch(ctx context.Context, id string, patch entities.ProposalPatch) (entities.Proposal, error)
	ListByCreatedRange(ctx context.Context, start, end time.Time) ([]entities.Proposal, error)
	ListByCreatorAndStatus(ctx context.Context, creatorID string, status entities.ProposalStatus) ([]entities.Proposal, error)
}
