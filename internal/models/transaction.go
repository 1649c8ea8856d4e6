package models

import "time"

// TransactionSource records which capture flow produced a transaction.
type TransactionSource string

const (
	TransactionSourceVoice   TransactionSource = "voice"
	TransactionSourceReceipt TransactionSource = "receipt"
	TransactionSourceManual  TransactionSource = "manual"
)

// Transaction represents a submitted expense. Rows are immutable once
// written; edits happen on the draft before submission.
type Transaction struct {
	Base
	UserID      string            `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *string           `gorm:"type:uuid" json:"category_id,omitempty"`
	VendorName  string            `json:"vendor_name"`
	Description string            `json:"description"`
	AmountCents int64             `gorm:"type:bigint;not null" json:"amount_cents"`
	PaymentType string            `json:"payment_type"`
	Source      TransactionSource `gorm:"not null;default:voice" json:"source"`
	OccurredAt  time.Time         `gorm:"not null" json:"occurred_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
