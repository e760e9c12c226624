package model

import (
	"encoding/json"
	"time"
)

// ActivityLog is one append-only audit row. Write-only in this service.
type ActivityLog struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user_id"`
	Action      string          `db:"action" json:"action"`
	Category    string          `db:"category" json:"category"`
	Description *string         `db:"description" json:"description,omitempty"`
	Metadata    json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	IPAddress   *string         `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent   *string         `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
