package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func TestCard_IsExpired(t *testing.T) {
	now := time.Now()

	t.Run("valid through the whole expiry day", func(t *testing.T) {
		// Date columns load as midnight; a card expiring today must still be
		// usable at any time of day.
		card := Card{ExpiryDate: midnight(now)}
		assert.False(t, card.IsExpired())
	})

	t.Run("expired the day after", func(t *testing.T) {
		card := Card{ExpiryDate: midnight(now.AddDate(0, 0, -1))}
		assert.True(t, card.IsExpired())
	})

	t.Run("not expired before the expiry date", func(t *testing.T) {
		card := Card{ExpiryDate: midnight(now.AddDate(0, 0, 1))}
		assert.False(t, card.IsExpired())
	})
}

func TestCard_IsActive(t *testing.T) {
	assert.True(t, (&Card{Status: CardStatusActive}).IsActive())
	assert.False(t, (&Card{Status: CardStatusBlocked}).IsActive())
	assert.False(t, (&Card{Status: CardStatusExpired}).IsActive())
}
