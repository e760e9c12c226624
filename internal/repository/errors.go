package repository

import "errors"

var (
	// ErrNoFieldsToUpdate is returned when a partial update contains no
	// updatable fields after filtering.
	ErrNoFieldsToUpdate = errors.New("no_fields_to_update")

	// ErrInsufficientCredits is returned when a debit would push
	// credits_used past credits_total. No mutation is performed.
	ErrInsufficientCredits = errors.New("insufficient_credits")

	// ErrSubscriptionNotFound is returned when a ledger operation targets a
	// user with no subscription row.
	ErrSubscriptionNotFound = errors.New("subscription_not_found")
)
