package dto

import "time"

// UserResponseDTO is returned in API responses
type UserResponseDTO struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Image         *string    `json:"image,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// UserOverviewResponseDTO is the dashboard view: user columns plus whatever
// profile and subscription data exists.
type UserOverviewResponseDTO struct {
	UserResponseDTO
	FullName           *string `json:"full_name,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	UserType           *string `json:"user_type,omitempty"`
	Organization       *string `json:"organization,omitempty"`
	Designation        *string `json:"designation,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	Location           *string `json:"location,omitempty"`
	PlanType           *string `json:"plan_type,omitempty"`
	PlanName           *string `json:"plan_name,omitempty"`
	CreditsTotal       *int    `json:"credits_total,omitempty"`
	CreditsUsed        *int    `json:"credits_used,omitempty"`
	CreditsRemaining   *int    `json:"credits_remaining,omitempty"`
	SubscriptionStatus *string `json:"subscription_status,omitempty"`
}

// AuthTokenResponseDTO is returned from the OAuth callback.
type AuthTokenResponseDTO struct {
	Token string          `json:"token"`
	User  UserResponseDTO `json:"user"`
}
