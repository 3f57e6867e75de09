package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"corretora_xpto/internal/domain/entities"
)

func TestWebhookDispatcher_Notify(t *testing.T) {
	t.Run("delivers the event as json", func(t *testing.T) {
		received := make(chan entities.ProposalEvent, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected json content type, got %q", ct)
			}
			var ev entities.ProposalEvent
			if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
				t.Errorf("decode event: %v", err)
			}
			received <- ev
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		d := NewWebhookDispatcher(srv.URL)
		d.Notify(context.Background(), entities.ProposalEvent{
			Type:       entities.EventProposalClaimed,
			ProposalID: "p-1",
			Code:       "PROP-1",
			Status:     "recepcionado",
			ActorID:    "an-1",
			OccurredAt: time.Now().UTC(),
		})

		select {
		case ev := <-received:
			if ev.Type != entities.EventProposalClaimed || ev.ProposalID != "p-1" {
				t.Fatalf("unexpected event: %+v", ev)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("event never delivered")
		}
	})

	t.Run("unconfigured dispatcher is a no-op", func(t *testing.T) {
		d := NewWebhookDispatcher("  ")
		// Must not panic or block.
		d.Notify(context.Background(), entities.ProposalEvent{Type: entities.EventProposalUpdated, ProposalID: "p-1"})
	})

	t.Run("caller never blocks on a slow webhook", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			<-release
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()
		defer close(release)

		d := NewWebhookDispatcher(srv.URL)
		done := make(chan struct{})
		go func() {
			d.Notify(context.Background(), entities.ProposalEvent{Type: entities.EventProposalUpdated, ProposalID: "p-1"})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("Notify blocked on delivery")
		}
	})
}
