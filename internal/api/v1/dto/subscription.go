package dto

import "time"

// SubscriptionResponseDTO is returned in API responses
type SubscriptionResponseDTO struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	PlanType         string     `json:"plan_type"`
	PlanName         *string    `json:"plan_name,omitempty"`
	CreditsTotal     int        `json:"credits_total"`
	CreditsUsed      int        `json:"credits_used"`
	CreditsRemaining int        `json:"credits_remaining"`
	BillingCycle     *string    `json:"billing_cycle,omitempty"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty"`
}

// SubscriptionUpdateDTO carries a partial plan update. Credit counters are
// not updatable here; they move only through the credit endpoints.
type SubscriptionUpdateDTO struct {
	PlanType     *string  `json:"plan_type,omitempty" validate:"omitempty,oneof=free starter pro enterprise"`
	PlanName     *string  `json:"plan_name,omitempty" validate:"omitempty,max=100"`
	BillingCycle *string  `json:"billing_cycle,omitempty" validate:"omitempty,oneof=monthly yearly"`
	Amount       *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Currency     *string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=active cancelled expired"`
}

func (d *SubscriptionUpdateDTO) Fields() map[string]any {
	fields := make(map[string]any)
	if d.PlanType != nil {
		fields["plan_type"] = *d.PlanType
	}
	if d.PlanName != nil {
		fields["plan_name"] = *d.PlanName
	}
	if d.BillingCycle != nil {
		fields["billing_cycle"] = *d.BillingCycle
	}
	if d.Amount != nil {
		fields["amount"] = *d.Amount
	}
	if d.Currency != nil {
		fields["currency"] = *d.Currency
	}
	if d.Status != nil {
		fields["status"] = *d.Status
	}
	return fields
}

// CreditRequestDTO is the body for the credit debit and top-up endpoints.
type CreditRequestDTO struct {
	Amount      int    `json:"amount" validate:"required,gt=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// TransactionResponseDTO is one ledger log entry.
type TransactionResponseDTO struct {
	ID              string    `json:"id"`
	TransactionType string    `json:"transaction_type"`
	Amount          int       `json:"amount"`
	Description     string    `json:"description"`
	Category        *string   `json:"category,omitempty"`
	BalanceBefore   int       `json:"balance_before"`
	BalanceAfter    int       `json:"balance_after"`
	CreatedAt       time.Time `json:"created_at"`
}
