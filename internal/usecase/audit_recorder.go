package usecase

import (
	"context"
	"time"

	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// AuditRecorder computes whitelist-restricted field diffs and appends
// immutable audit entries. It is invoked by the transition engine on every
// successful mutation; an empty diff writes nothing.

type AuditRecorder struct {
	repo interfaces.IAuditRepository
}

func NewAuditRecorder(repo interfaces.IAuditRepository) *AuditRecorder {
	return &AuditRecorder{repo: repo}
}

// Diff returns the whitelisted changes between two proposal snapshots.
// Values are compared as normalized strings so numeric formatting never
// produces a false positive. A handler appearing on the after snapshot is
// reported as a "claim" change.
func (r *AuditRecorder) Diff(before, after entities.Proposal) entities.ChangeSet {
	changes := entities.ChangeSet{}

	diffField := func(name string, b, a interface{}) {
		if entities.NormalizeAuditValue(b) != entities.NormalizeAuditValue(a) {
			changes[name] = entities.FieldChange{Before: b, After: a}
		}
	}

	diffField(entities.AuditFieldStatus, string(before.Status), string(after.Status))
	diffField(entities.AuditFieldQuantity, before.Quantity, after.Quantity)
	diffField(entities.AuditFieldValue, before.Value, after.Value)
	diffField(entities.AuditFieldTargetDate, before.TargetDate, after.TargetDate)
	diffField(entities.AuditFieldOperator, before.Operator, after.Operator)
	diffField(entities.AuditFieldConsultantName, before.ConsultantName, after.ConsultantName)
	diffField(entities.AuditFieldConsultantEmail, before.ConsultantEmail, after.ConsultantEmail)

	if before.HandlerID == "" && after.HandlerID != "" {
		changes[entities.AuditFieldClaim] = entities.FieldChange{
			Before: nil,
			After: map[string]interface{}{
				"handler_id": after.HandlerID,
				"handled_at": after.HandledAt.UTC().Format(time.RFC3339Nano),
			},
		}
	}

	return changes
}

// Record filters the change set to the audit whitelist and appends one entry.
// No-op mutations (empty diff after filtering) are not recorded.
func (r *AuditRecorder) Record(ctx context.Context, proposalID, actorID string, changes entities.ChangeSet) (entities.AuditEntry, error) {
	filtered := entities.ChangeSet{}
	for name, change := range changes {
		if entities.AuditableFields[name] {
			filtered[name] = change
		}
	}
	if len(filtered) == 0 {
		return entities.AuditEntry{}, nil
	}

	entry := entities.AuditEntry{
		ID:         uuid.NewString(),
		ProposalID: proposalID,
		ActorID:    actorID,
		Changes:    filtered,
		CreatedAt:  time.Now().UTC(),
	}
	return r.repo.Append(ctx, entry)
}
