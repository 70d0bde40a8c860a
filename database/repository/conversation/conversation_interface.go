package conversationRepo

import (
	"context"
	"time"

	"zmina/models"
)

// ConversationRepository is the per-user short-term memory of the chat
// pipeline. State is persisted so it survives restarts and is shared by any
// number of stateless request handlers.
type ConversationRepository interface {
	// Load returns the user's conversation state, or a fresh zero state with
	// MessageCount 0 when none exists. A missing record is not an error.
	Load(ctx context.Context, userID string) (*models.ConversationState, error)
	// Save merges the last message and carry-over context into the user's
	// record, increments the message counter and stamps lastUpdated.
	// Last write wins; user turns are inherently serialized by the chat.
	Save(ctx context.Context, userID, lastMessage string, lastContext *models.ConversationContext) error
	// Reset drops the user's record ("start over").
	Reset(ctx context.Context, userID string) error
	// Prune removes records idle since before the given time and returns how
	// many were deleted.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}
