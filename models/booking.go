package models

import (
	"fmt"
	"time"
)

// BookingType distinguishes arrival and departure events.
type BookingType string

const (
	BookingCheckin  BookingType = "checkin"
	BookingCheckout BookingType = "checkout"
)

// ChangeType identifies which time field a request wants to move.
type ChangeType string

const (
	ChangeCheckin  ChangeType = "checkin"
	ChangeCheckout ChangeType = "checkout"
	ChangeCleaning ChangeType = "cleaning"
)

// Booking is one check-in or check-out event for an apartment on a specific
// date. Records are created and refreshed by the external reservation
// ingestion job; this service mutates time fields only through the
// transactional applier.
type Booking struct {
	ID                string      `bson:"_id" json:"id"`
	ApartmentID       string      `bson:"apartmentId" json:"apartmentId"`
	Address           string      `bson:"address" json:"address"`
	Type              BookingType `bson:"type" json:"type"`
	Date              string      `bson:"date" json:"date"` // YYYY-MM-DD
	CheckinTime       *string     `bson:"checkinTime,omitempty" json:"checkinTime,omitempty"`
	CheckoutTime      *string     `bson:"checkoutTime,omitempty" json:"checkoutTime,omitempty"`
	CleaningTime      *string     `bson:"cleaningTime,omitempty" json:"cleaningTime,omitempty"` // checkout bookings only
	HasSameDayCheckin bool        `bson:"hasSameDayCheckin" json:"hasSameDayCheckin"`
	SumToCollect      int         `bson:"sumToCollect" json:"sumToCollect"`
	KeysCount         int         `bson:"keysCount" json:"keysCount"`
	GuestName         string      `bson:"guestName" json:"guestName"`
	GuestContact      string      `bson:"guestContact" json:"guestContact"`
	UpdatedAt         time.Time   `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy         string      `bson:"updatedBy" json:"updatedBy"`
}

// BookingID derives the stable document key. At most one booking exists per
// (date, apartment, type), so the key is their concatenation.
func BookingID(date, apartmentID string, t BookingType) string {
	return fmt.Sprintf("%s_%s_%s", date, apartmentID, t)
}

// TimeFor returns the booking's current value of the field addressed by the
// given change type, or nil when unset.
func (b *Booking) TimeFor(ct ChangeType) *string {
	switch ct {
	case ChangeCheckin:
		return b.CheckinTime
	case ChangeCheckout:
		return b.CheckoutTime
	case ChangeCleaning:
		return b.CleaningTime
	}
	return nil
}
