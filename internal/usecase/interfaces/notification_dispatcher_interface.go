package interfaces

import (
	"context"

	"corretora_xpto/internal/domain/entities"
)

// INotificationDispatcher is the fire-and-forget sink for proposal events
// (downstream email / push delivery is out of scope). Implementations must
// never block the caller on delivery and must swallow delivery failures
// after logging them.
type INotificationDispatcher interface {
	Notify(ctx context.Context, event entities.ProposalEvent)
}
