package bookingRepo

import (
	"context"
	"errors"

	"zmina/models"
)

// Sentinel errors surfaced by the repository. The time-change service maps
// them onto user-facing replies.
var (
	// ErrNotFound means the booking id does not exist (e.g. a stale
	// reference after ingestion replaced the record).
	ErrNotFound = errors.New("booking not found")
	// ErrTypeMismatch means the requested change type is incompatible with
	// the booking's type. Terminal, never retried.
	ErrTypeMismatch = errors.New("change type incompatible with booking type")
	// ErrTxnConflict means the apply transaction lost to a concurrent writer
	// after the internal retry.
	ErrTxnConflict = errors.New("booking transaction conflict")
)

// BookingRepository provides access to the bookings collection and the
// append-only timeChanges audit log.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByDateRange returns bookings with date in [from, to], both
	// inclusive, dates formatted YYYY-MM-DD.
	GetByDateRange(ctx context.Context, from, to string) ([]models.Booking, error)
	// GetByApartmentAndDate returns every booking for one apartment on one
	// day, the input set for same-day conflict detection.
	GetByApartmentAndDate(ctx context.Context, apartmentID, date string) ([]models.Booking, error)
	// Upsert writes a booking under its deterministic id. Used by the
	// ingestion adapter and by operational tooling; the chat pipeline never
	// calls it.
	Upsert(ctx context.Context, b *models.Booking) error

	// ApplyTimeChange atomically writes the new time plus updatedAt/updatedBy
	// and inserts one audit entry. Both commit together or neither does.
	ApplyTimeChange(ctx context.Context, bookingID string, changeType models.ChangeType, newTime, actorID, reasoning string) (*models.AuditEntry, error)

	// AuditForBooking returns the audit trail of one booking, newest first.
	AuditForBooking(ctx context.Context, bookingID string) ([]models.AuditEntry, error)
}
