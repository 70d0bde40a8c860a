package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"zmina/database"
	"zmina/models"
	"zmina/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll      *mongo.Collection
	auditColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	repo := &MongoBookingRepo{
		coll:      db.Collection("bookings"),
		auditColl: db.Collection("timeChanges"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	bookingIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "apartmentId", Value: 1}, {Key: "date", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, bookingIdx); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	auditIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookingId", Value: 1}, {Key: "updatedAt", Value: -1}}},
	}
	if _, err := r.auditColl.Indexes().CreateMany(ctx, auditIdx); err != nil {
		return fmt.Errorf("failed to create audit indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its deterministic id.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

// GetByDateRange returns bookings within [from, to] sorted by date then apartment.
func (r *MongoBookingRepo) GetByDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "apartmentId", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings %s..%s: %w", from, to, err)
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return out, nil
}

// GetByApartmentAndDate returns all bookings for one apartment on one day.
func (r *MongoBookingRepo) GetByApartmentAndDate(ctx context.Context, apartmentID, date string) ([]models.Booking, error) {
	filter := bson.M{"apartmentId": apartmentID, "date": date}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for apartment %s on %s: %w", apartmentID, date, err)
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return out, nil
}

// Upsert writes a booking under its deterministic id.
func (r *MongoBookingRepo) Upsert(ctx context.Context, b *models.Booking) error {
	if b.ID == "" {
		b.ID = models.BookingID(b.Date, b.ApartmentID, b.Type)
	}
	b.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": b.ID}, b, opts); err != nil {
		return fmt.Errorf("failed to upsert booking %s: %w", b.ID, err)
	}
	return nil
}

// AuditForBooking returns the audit trail of one booking, newest first.
func (r *MongoBookingRepo) AuditForBooking(ctx context.Context, bookingID string) ([]models.AuditEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cur, err := r.auditColl.Find(ctx, bson.M{"bookingId": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trail for %s: %w", bookingID, err)
	}
	defer cur.Close(ctx)

	var out []models.AuditEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}
	return out, nil
}
