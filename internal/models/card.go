package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardStatus is the lifecycle state stored on a card. A card whose expiry date
// has passed is treated as expired regardless of the stored status.
type CardStatus string

const (
	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusBlocked CardStatus = "BLOCKED"
	CardStatusExpired CardStatus = "EXPIRED"
)

// Card is a monetary account owned by exactly one user. The card number is
// stored encrypted; LastFour is kept redundantly for display and search.
type Card struct {
	ID         uint            `gorm:"primarykey"`
	OwnerID    uint            `gorm:"not null;index"`
	Owner      *User           `gorm:"foreignKey:OwnerID"`
	Number     string          `gorm:"column:card_number;not null"`
	LastFour   string          `gorm:"size:4;not null"`
	ExpiryDate time.Time       `gorm:"type:date;not null"`
	Balance    decimal.Decimal `gorm:"type:decimal(19,2);not null;default:0"`
	Status     CardStatus      `gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (c *Card) IsActive() bool {
	return c.Status == CardStatusActive
}

// IsExpired reports whether the current date is past the card's expiry date.
// The comparison is at calendar-date granularity: a card stays valid through
// the whole of its expiry day.
func (c *Card) IsExpired() bool {
	y, m, d := time.Now().In(c.ExpiryDate.Location()).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, c.ExpiryDate.Location())
	return today.After(c.ExpiryDate)
}
