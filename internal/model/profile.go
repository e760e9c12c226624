package model

import "time"

// UserProfile holds the descriptive fields a user fills in after sign-up.
// One row per user, created empty alongside the user.
type UserProfile struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	UserType     *string   `db:"user_type" json:"user_type,omitempty"`
	Organization *string   `db:"organization" json:"organization,omitempty"`
	Designation  *string   `db:"designation" json:"designation,omitempty"`
	Bio          *string   `db:"bio" json:"bio,omitempty"`
	Location     *string   `db:"location" json:"location,omitempty"`
	Timezone     string    `db:"timezone" json:"timezone"`
	Language     string    `db:"language" json:"language"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
