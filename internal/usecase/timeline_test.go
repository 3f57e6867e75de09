package usecase

import (
	"testing"
	"time"

	"corretora_xpto/internal/domain/entities"
)

func statusEntry(id string, at time.Time, before, after entities.ProposalStatus) entities.AuditEntry {
	return entities.AuditEntry{
		ID:         id,
		ProposalID: "p-1",
		Changes: entities.ChangeSet{
			entities.AuditFieldStatus: {Before: string(before), After: string(after)},
		},
		CreatedAt: at,
	}
}

func TestBuildTimeline(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	t.Run("no audit entries yields creation event only", func(t *testing.T) {
		p := entities.Proposal{ID: "p-1", Status: entities.StatusRecepcionado, CreatedAt: created}
		tl := BuildTimeline(p, nil)
		if len(tl) != 1 {
			t.Fatalf("expected 1 event, got %d", len(tl))
		}
		if tl[0].Status != entities.StatusRecepcionado || !tl[0].At.Equal(created) {
			t.Fatalf("unexpected initial event: %+v", tl[0])
		}
	})

	t.Run("entries out of order are sorted by timestamp", func(t *testing.T) {
		p := entities.Proposal{ID: "p-1", Status: entities.StatusPendencia, CreatedAt: created}
		entries := []entities.AuditEntry{
			statusEntry("a-2", created.AddDate(0, 0, 10), entities.StatusAnalise, entities.StatusPendencia),
			statusEntry("a-1", created.AddDate(0, 0, 3), entities.StatusRecepcionado, entities.StatusAnalise),
		}
		tl := BuildTimeline(p, entries)
		if len(tl) != 3 {
			t.Fatalf("expected 3 events, got %d", len(tl))
		}
		want := []entities.ProposalStatus{entities.StatusRecepcionado, entities.StatusAnalise, entities.StatusPendencia}
		for i, s := range want {
			if tl[i].Status != s {
				t.Fatalf("event %d: expected %q, got %q", i, s, tl[i].Status)
			}
		}
	})

	t.Run("initial status comes from the earliest entry's before", func(t *testing.T) {
		// Proposal already moved on; the first audit entry remembers where
		// it started.
		p := entities.Proposal{ID: "p-1", Status: entities.StatusImplantado, CreatedAt: created}
		entries := []entities.AuditEntry{
			statusEntry("a-1", created.AddDate(0, 0, 1), entities.StatusRecepcionado, entities.StatusImplantado),
		}
		tl := BuildTimeline(p, entries)
		if tl[0].Status != entities.StatusRecepcionado {
			t.Fatalf("expected initial recepcionado, got %q", tl[0].Status)
		}
		if tl[1].Status != entities.StatusImplantado {
			t.Fatalf("expected implantado, got %q", tl[1].Status)
		}
	})

	t.Run("non-status entries are ignored", func(t *testing.T) {
		p := entities.Proposal{ID: "p-1", Status: entities.StatusRecepcionado, CreatedAt: created}
		entries := []entities.AuditEntry{
			{
				ID:        "a-1",
				CreatedAt: created.AddDate(0, 0, 1),
				Changes: entities.ChangeSet{
					entities.AuditFieldValue: {Before: 100.0, After: 200.0},
				},
			},
		}
		tl := BuildTimeline(p, entries)
		if len(tl) != 1 {
			t.Fatalf("expected value-only entry to be skipped, got %d events", len(tl))
		}
	})

	t.Run("same timestamp keeps audit-log order", func(t *testing.T) {
		at := created.AddDate(0, 0, 2)
		p := entities.Proposal{ID: "p-1", Status: entities.StatusPendencia, CreatedAt: created}
		entries := []entities.AuditEntry{
			statusEntry("a-1", at, entities.StatusRecepcionado, entities.StatusAnalise),
			statusEntry("a-2", at, entities.StatusAnalise, entities.StatusPendencia),
		}
		tl := BuildTimeline(p, entries)
		if tl[1].Status != entities.StatusAnalise || tl[2].Status != entities.StatusPendencia {
			t.Fatalf("expected stable order, got %+v", tl)
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		p := entities.Proposal{ID: "p-1", Status: entities.StatusAnalise, CreatedAt: created}
		entries := []entities.AuditEntry{
			statusEntry("a-1", created.AddDate(0, 0, 5), entities.StatusRecepcionado, entities.StatusAnalise),
		}
		first := BuildTimeline(p, entries)
		second := BuildTimeline(p, entries)
		if len(first) != len(second) {
			t.Fatalf("non-deterministic length: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("event %d differs: %+v vs %+v", i, first[i], second[i])
			}
		}
	})
}
