package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User roles. There is no separate role table: a single role column is enough
// for the two roles the API distinguishes.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	FirstName    string `gorm:"size:50;not null"`
	LastName     string `gorm:"size:50;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Role         string `gorm:"default:'user'"`
	TokenVersion int    `gorm:"default:1"`
	Cards        []Card `gorm:"foreignKey:OwnerID"`
}

// TotalBalance sums the balances of the loaded cards. The Cards association
// must be preloaded first.
func (u *User) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, card := range u.Cards {
		total = total.Add(card.Balance)
	}
	return total
}
