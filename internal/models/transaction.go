package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a completed card-to-card transfer.
// Card references are nullable so the record survives card deletion: deleting
// a card nulls its side instead of cascading.
type Transaction struct {
	ID          uint            `gorm:"primarykey"`
	Reference   string          `gorm:"uniqueIndex;not null"`
	FromCardID  *uint           `gorm:"index"`
	ToCardID    *uint           `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	Description string
	CreatedAt   time.Time
}
