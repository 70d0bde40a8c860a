package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zmina/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// timeFieldFor maps a change type onto the booking document field it mutates
// and rejects incompatible combinations: checkin changes apply only to
// checkin bookings, checkout and cleaning changes only to checkout bookings.
func timeFieldFor(ct models.ChangeType, bt models.BookingType) (string, bool) {
	switch ct {
	case models.ChangeCheckin:
		if bt != models.BookingCheckin {
			return "", false
		}
		return "checkinTime", true
	case models.ChangeCheckout:
		if bt != models.BookingCheckout {
			return "", false
		}
		return "checkoutTime", true
	case models.ChangeCleaning:
		if bt != models.BookingCheckout {
			return "", false
		}
		return "cleaningTime", true
	}
	return "", false
}

func isTransientTxnError(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorLabel("TransientTransactionError") || se.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}

// ApplyTimeChange performs the read-modify-write apply as one Mongo
// transaction: load the booking, re-check change/booking type compatibility,
// write the new time plus updatedAt/updatedBy, and insert one audit entry.
// Either both writes commit or neither does. A transient transaction error is
// retried once; a second failure surfaces as ErrTxnConflict.
func (r *MongoBookingRepo) ApplyTimeChange(ctx context.Context, bookingID string, changeType models.ChangeType, newTime, actorID, reasoning string) (*models.AuditEntry, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var entry *models.AuditEntry

	txnFn := func(sc mongo.SessionContext) error {
		var b models.Booking
		if err := r.coll.FindOne(sc, bson.M{"_id": bookingID}).Decode(&b); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("read booking failed: %w", err)
		}

		field, ok := timeFieldFor(changeType, b.Type)
		if !ok {
			return ErrTypeMismatch
		}

		oldTime := ""
		if t := b.TimeFor(changeType); t != nil {
			oldTime = *t
		}

		now := time.Now()
		update := bson.M{"$set": bson.M{
			field:       newTime,
			"updatedAt": now,
			"updatedBy": actorID,
		}}
		res, err := r.coll.UpdateOne(sc, bson.M{"_id": bookingID}, update)
		if err != nil {
			return fmt.Errorf("update booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}

		entry = &models.AuditEntry{
			ID:          uuid.New().String(),
			BookingID:   b.ID,
			ApartmentID: b.ApartmentID,
			Address:     b.Address,
			Date:        b.Date,
			OldTime:     oldTime,
			NewTime:     newTime,
			BookingType: b.Type,
			GuestName:   b.GuestName,
			ChangeType:  changeType,
			Reasoning:   reasoning,
			UpdatedAt:   now,
			UpdatedBy:   actorID,
		}
		if _, err := r.auditColl.InsertOne(sc, entry); err != nil {
			return fmt.Errorf("insert audit entry failed: %w", err)
		}
		return nil
	}

	runTxn := func() error {
		return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := txnFn(sc); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
	}

	err = runTxn()
	if err != nil && isTransientTxnError(err) {
		// One retry on contention; after that the caller reports "try again".
		err = runTxn()
		if err != nil && isTransientTxnError(err) {
			return nil, fmt.Errorf("%w: %v", ErrTxnConflict, err)
		}
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTypeMismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("time change transaction failed: %w", err)
	}

	return entry, nil
}
