package models

import "time"

// Staff roles.
const (
	RoleAdmin   = "admin"
	RoleCleaner = "cleaner"
)

// StaffUser is a cleaning-staff member or administrator interacting over chat.
type StaffUser struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Role      string    `bson:"role" json:"role"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the user has unrestricted apartment access.
func (u *StaffUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CleaningAssignment holds the apartment ids a non-admin user may act on.
type CleaningAssignment struct {
	UserID       string    `bson:"_id" json:"userId"`
	ApartmentIDs []string  `bson:"apartmentIds" json:"apartmentIds"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
