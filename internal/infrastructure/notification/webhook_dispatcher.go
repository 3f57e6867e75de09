package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/internal/usecase/interfaces"
)

const dispatchTimeout = 5 * time.Second

// WebhookDispatcher delivers proposal events to a downstream webhook
// (email / real-time push fan-out lives behind it). Delivery is
// fire-and-forget: the POST runs on its own goroutine with its own timeout,
// and failures are only logged. With no URL configured the dispatcher is a
// no-op, mirroring how the service runs without optional collaborators.

type WebhookDispatcher struct {
	url    string
	client *http.Client
}

var _ interfaces.INotificationDispatcher = (*WebhookDispatcher)(nil)

func NewWebhookDispatcher(url string) *WebhookDispatcher {
	url = strings.TrimSpace(url)
	if url == "" {
		log.Printf("[notification][dispatcher] no webhook configured; events will be dropped")
	}
	return &WebhookDispatcher{
		url:    url,
		client: &http.Client{Timeout: dispatchTimeout},
	}
}

func (d *WebhookDispatcher) Notify(_ context.Context, event entities.ProposalEvent) {
	if d == nil || d.url == "" {
		return
	}

	// Detached from the request context on purpose: the caller's response
	// must not wait on, or be failed by, notification delivery.
	go func() {
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("[notification][dispatcher] marshal failed type=%s proposal_id=%s err=%v", event.Type, event.ProposalID, err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
		if err != nil {
			log.Printf("[notification][dispatcher] request build failed type=%s err=%v", event.Type, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.client.Do(req)
		if err != nil {
			log.Printf("[notification][dispatcher] delivery failed type=%s proposal_id=%s err=%v", event.Type, event.ProposalID, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			log.Printf("[notification][dispatcher] delivery rejected type=%s proposal_id=%s status=%d", event.Type, event.ProposalID, resp.StatusCode)
			return
		}
		log.Printf("[notification][dispatcher] delivered type=%s proposal_id=%s", event.Type, event.ProposalID)
	}()
}
