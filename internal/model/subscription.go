package model

import "time"

// Subscription holds a user's plan and credit counters. One row per user.
// CreditsRemaining is a generated column (credits_total - credits_used) and
// is never written directly.
type Subscription struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"user_id"`
	PlanType         string     `db:"plan_type" json:"plan_type"`
	PlanName         *string    `db:"plan_name" json:"plan_name,omitempty"`
	CreditsTotal     int        `db:"credits_total" json:"credits_total"`
	CreditsUsed      int        `db:"credits_used" json:"credits_used"`
	CreditsRemaining int        `db:"credits_remaining" json:"credits_remaining"`
	BillingCycle     *string    `db:"billing_cycle" json:"billing_cycle,omitempty"`
	Amount           *float64   `db:"amount" json:"amount,omitempty"`
	Currency         string     `db:"currency" json:"currency"`
	Status           string     `db:"status" json:"status"`
	StartDate        time.Time  `db:"start_date" json:"start_date"`
	EndDate          *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// CreditTransaction is one append-only ledger entry. Amount is signed:
// negative for usage, positive for purchases and adjustments.
type CreditTransaction struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	TransactionType string    `db:"transaction_type" json:"transaction_type"`
	Amount          int       `db:"amount" json:"amount"`
	Description     string    `db:"description" json:"description"`
	Category        *string   `db:"category" json:"category,omitempty"`
	BalanceBefore   int       `db:"balance_before" json:"balance_before"`
	BalanceAfter    int       `db:"balance_after" json:"balance_after"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Credit transaction types.
const (
	TransactionUsage      = "usage"
	TransactionPurchase   = "purchase"
	TransactionAdjustment = "adjustment"
)
