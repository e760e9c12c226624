package model

import "time"

// User represents a user account created from Google sign-in
type User struct {
	ID            string     `db:"id" json:"id"`
	Email         string     `db:"email" json:"email"`
	Name          string     `db:"name" json:"name"`
	Username      *string    `db:"username" json:"username,omitempty"`
	Image         *string    `db:"image" json:"image,omitempty"`
	GoogleID      *string    `db:"google_id" json:"google_id,omitempty"`
	EmailVerified bool       `db:"email_verified" json:"email_verified"`
	IsActive      bool       `db:"is_active" json:"is_active"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	LastLoginAt   *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

// UserOverview is the joined user + profile + subscription view used by the
// dashboard. Profile and subscription fields are nil until the rows exist.
type UserOverview struct {
	User
	FullName           *string `db:"full_name" json:"full_name,omitempty"`
	Phone              *string `db:"phone" json:"phone,omitempty"`
	UserType           *string `db:"user_type" json:"user_type,omitempty"`
	Organization       *string `db:"organization" json:"organization,omitempty"`
	Designation        *string `db:"designation" json:"designation,omitempty"`
	Bio                *string `db:"bio" json:"bio,omitempty"`
	Location           *string `db:"location" json:"location,omitempty"`
	PlanType           *string `db:"plan_type" json:"plan_type,omitempty"`
	PlanName           *string `db:"plan_name" json:"plan_name,omitempty"`
	CreditsTotal       *int    `db:"credits_total" json:"credits_total,omitempty"`
	CreditsUsed        *int    `db:"credits_used" json:"credits_used,omitempty"`
	CreditsRemaining   *int    `db:"credits_remaining" json:"credits_remaining,omitempty"`
	SubscriptionStatus *string `db:"subscription_status" json:"subscription_status,omitempty"`
}
