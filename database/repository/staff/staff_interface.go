package staffRepo

import (
	"context"
	"errors"

	"zmina/models"
)

// ErrUserNotFound means no staff record exists for the id.
var ErrUserNotFound = errors.New("staff user not found")

// StaffRepository provides access to the users and cleaningAssignments
// collections.
type StaffRepository interface {
	GetUser(ctx context.Context, id string) (*models.StaffUser, error)
	UpsertUser(ctx context.Context, u *models.StaffUser) error
	// GetAssignments returns the apartment ids assigned to a user; an absent
	// record yields an empty list, not an error.
	GetAssignments(ctx context.Context, userID string) ([]string, error)
	SetAssignments(ctx context.Context, userID string, apartmentIDs []string) error
	// GetAssigneesForApartment returns ids of users assigned to an apartment.
	GetAssigneesForApartment(ctx context.Context, apartmentID string) ([]string, error)
}
