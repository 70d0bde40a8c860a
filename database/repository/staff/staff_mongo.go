package staffRepo

import (
	"context"
	"fmt"
	"time"

	"zmina/database"
	"zmina/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	userColl       *mongo.Collection
	assignmentColl *mongo.Collection
}

// NewMongoStaffRepo creates a new instance of StaffRepository using MongoDB.
func NewMongoStaffRepo() StaffRepository {
	db := database.DB()
	return &MongoStaffRepo{
		userColl:       db.Collection("users"),
		assignmentColl: db.Collection("cleaningAssignments"),
	}
}

// GetUser retrieves a staff user by id.
func (r *MongoStaffRepo) GetUser(ctx context.Context, id string) (*models.StaffUser, error) {
	var u models.StaffUser
	err := r.userColl.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff user %s: %w", id, err)
	}
	return &u, nil
}

// UpsertUser writes a staff user record.
func (r *MongoStaffRepo) UpsertUser(ctx context.Context, u *models.StaffUser) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	if _, err := r.userColl.ReplaceOne(ctx, bson.M{"_id": u.ID}, u, opts); err != nil {
		return fmt.Errorf("failed to upsert staff user %s: %w", u.ID, err)
	}
	return nil
}

// GetAssignments returns the user's assigned apartment ids.
func (r *MongoStaffRepo) GetAssignments(ctx context.Context, userID string) ([]string, error) {
	var a models.CleaningAssignment
	err := r.assignmentColl.FindOne(ctx, bson.M{"_id": userID}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for %s: %w", userID, err)
	}
	return a.ApartmentIDs, nil
}

// GetAssigneesForApartment returns ids of users assigned to an apartment.
func (r *MongoStaffRepo) GetAssigneesForApartment(ctx context.Context, apartmentID string) ([]string, error) {
	cur, err := r.assignmentColl.Find(ctx, bson.M{"apartmentIds": apartmentID})
	if err != nil {
		return nil, fmt.Errorf("failed to query assignees for apartment %s: %w", apartmentID, err)
	}
	defer cur.Close(ctx)

	var assignments []models.CleaningAssignment
	if err := cur.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("failed to decode assignments: %w", err)
	}

	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.UserID)
	}
	return ids, nil
}

// SetAssignments replaces the user's assigned apartment list.
func (r *MongoStaffRepo) SetAssignments(ctx context.Context, userID string, apartmentIDs []string) error {
	a := models.CleaningAssignment{
		UserID:       userID,
		ApartmentIDs: apartmentIDs,
		UpdatedAt:    time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.assignmentColl.ReplaceOne(ctx, bson.M{"_id": userID}, a, opts); err != nil {
		return fmt.Errorf("failed to set assignments for %s: %w", userID, err)
	}
	return nil
}
