package timechange

import (
	"context"

	"zmina/models"
)

// TimeChangeService is the chat-facing entry point of the pipeline: one
// incoming message in, zero or more reply strings out. A nil/empty reply
// means the turn produced nothing actionable.
type TimeChangeService interface {
	HandleMessage(ctx context.Context, userID, text string) ([]string, error)
	// ResetConversation drops the user's carry-over context ("start over").
	ResetConversation(ctx context.Context, userID string) error
}

// Notifier queues a best-effort push about an applied change. Delivery never
// affects the outcome of the apply itself.
type Notifier interface {
	EnqueueTimeChange(ctx context.Context, p models.TimeChangePayload) error
}
