package usecase

import (
	"sort"

	"corretora_xpto/internal/domain/entities"
)

// BuildTimeline reconstructs the ordered status history of a proposal from
// its audit trail. The first event is always the proposal's status at
// creation; every audit entry whose diff touches "status" contributes one
// event carrying the entry's after-status and timestamp.
//
// The function is pure: identical inputs always yield an identical sequence,
// and entries sharing a timestamp keep their audit-log order.
func BuildTimeline(p entities.Proposal, auditEntries []entities.AuditEntry) []entities.TimelineEvent {
	statusEntries := make([]entities.AuditEntry, 0, len(auditEntries))
	for _, e := range auditEntries {
		if _, ok := e.Changes[entities.AuditFieldStatus]; ok {
			statusEntries = append(statusEntries, e)
		}
	}
	sort.SliceStable(statusEntries, func(i, j int) bool {
		return statusEntries[i].CreatedAt.Before(statusEntries[j].CreatedAt)
	})

	initial := p.Status
	if len(statusEntries) > 0 {
		if before := statusEntries[0].Changes[entities.AuditFieldStatus].Before; before != nil {
			initial = entities.ProposalStatus(entities.NormalizeAuditValue(before))
		}
	}

	events := make([]entities.TimelineEvent, 0, len(statusEntries)+1)
	events = append(events, entities.TimelineEvent{Status: initial, At: p.CreatedAt})
	for _, e := range statusEntries {
		after := e.Changes[entities.AuditFieldStatus].After
		events = append(events, entities.TimelineEvent{
			Status: entities.ProposalStatus(entities.NormalizeAuditValue(after)),
			At:     e.CreatedAt,
		})
	}
	return events
}
