package checkout

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// CheckoutToken maps an issued token to the provider-side invoice. The token
// equals the reference record's own identifier, so re-requesting a checkout
// for the same reference supersedes the previous row. Rows are never deleted;
// they double as the audit trail.
type CheckoutToken struct {
	Token             string         `gorm:"type:varchar(64);primaryKey"`
	ProviderInvoiceID string         `gorm:"type:varchar(128);not null"`
	Status            string         `gorm:"type:varchar(32);not null"`
	RawOutput         datatypes.JSON `gorm:"type:json"`
	ReferenceType     string         `gorm:"type:varchar(64);not null"`
	ReferenceID       string         `gorm:"type:varchar(64);not null;index:ix_checkout_tokens_reference"`
	CreatedAt         time.Time      `gorm:"type:datetime(3);not null"`
	UpdatedAt         time.Time      `gorm:"type:datetime(3);not null"`
}

func (CheckoutToken) TableName() string { return "checkout_tokens" }

// ConfirmEvent records each confirmation attempt and what the provider
// reported at that moment. Best effort; settlement never depends on it.
type ConfirmEvent struct {
	ID             string    `gorm:"type:char(36);primaryKey"`
	Token          string    `gorm:"type:varchar(64);not null;index:ix_confirm_events_token"`
	ProviderStatus string    `gorm:"type:varchar(32);not null"`
	MappedStatus   string    `gorm:"type:varchar(32);not null"`
	Notified       bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"type:datetime(3);not null"`
}

func (ConfirmEvent) TableName() string { return "checkout_confirm_events" }
