package models

import "time"

// ConversationContext is the opaque carry-over between turns: the last
// resolved booking and change, or a pending ambiguity/clarification payload
// waiting for the user's next message.
type ConversationContext struct {
	Booking              *BookingRef    `bson:"booking,omitempty" json:"booking,omitempty"`
	ChangeType           ChangeType     `bson:"changeType,omitempty" json:"changeType,omitempty"`
	SuggestedTime        string         `bson:"suggestedTime,omitempty" json:"suggestedTime,omitempty"`
	PendingCandidates    []BookingRef   `bson:"pendingCandidates,omitempty" json:"pendingCandidates,omitempty"`
	PendingClarification *Clarification `bson:"pendingClarification,omitempty" json:"pendingClarification,omitempty"`
}

// ConversationState is the per-user short-term memory. Exactly one record
// exists per user; it is overwritten wholesale every turn.
type ConversationState struct {
	UserID       string               `bson:"_id" json:"userId"`
	LastMessage  string               `bson:"lastMessage" json:"lastMessage"`
	LastContext  *ConversationContext `bson:"lastContext,omitempty" json:"lastContext,omitempty"`
	LastUpdated  time.Time            `bson:"lastUpdated" json:"lastUpdated"`
	MessageCount int                  `bson:"messageCount" json:"messageCount"`
}
