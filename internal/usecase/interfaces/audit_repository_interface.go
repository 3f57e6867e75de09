package interfaces

import (
	"context"

	"corretora_xpto/internal/domain/entities"
)

// IAuditRepository abstracts DynamoDB persistence for AuditEntry.
//
// Append-only: there is deliberately no update or delete operation.

type IAuditRepository interface {
	Append(ctx context.Context, e entities.AuditEntry) (entities.AuditEntry, error)
	ListByProposalID(ctx context.Context, proposalID string) ([]entities.AuditEntry, error)
}
