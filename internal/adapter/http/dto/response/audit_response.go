package response

import (
	"time"

	"corretora_xpto/internal/domain/entities"
)

type AuditEntryResponse struct {
	ID        string             `json:"id"`
	ActorID   string             `json:"actor_id"`
	Changes   entities.ChangeSet `json:"changes"`
	CreatedAt time.Time          `json:"created_at"`
}

func FromAuditEntry(e entities.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        e.ID,
		ActorID:   e.ActorID,
		Changes:   e.Changes,
		CreatedAt: e.CreatedAt,
	}
}

func FromAuditEntries(entries []entities.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromAuditEntry(e))
	}
	return out
}
