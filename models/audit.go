package models

import "time"

// AuditEntry is the immutable record of one applied time change. Entries are
// written in the same transaction as the booking mutation and never updated
// or deleted afterwards.
type AuditEntry struct {
	ID          string      `bson:"_id" json:"id"`
	BookingID   string      `bson:"bookingId" json:"bookingId"`
	ApartmentID string      `bson:"apartmentId" json:"apartmentId"`
	Address     string      `bson:"address" json:"address"`
	Date        string      `bson:"date" json:"date"`
	OldTime     string      `bson:"oldTime" json:"oldTime"`
	NewTime     string      `bson:"newTime" json:"newTime"`
	BookingType BookingType `bson:"bookingType" json:"bookingType"`
	GuestName   string      `bson:"guestName" json:"guestName"`
	ChangeType  ChangeType  `bson:"changeType" json:"changeType"`
	Reasoning   string      `bson:"reasoning" json:"reasoning"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy   string      `bson:"updatedBy" json:"updatedBy"`
}
