package card

import (
	"time"

	"bankcards/internal/models"
	"bankcards/internal/utils/cardnumber"

	"github.com/shopspring/decimal"
)

// expiryDateFormat is the ISO-8601 calendar date layout used on the wire.
const expiryDateFormat = "2006-01-02"

// defaultTransferDescription is recorded when the caller supplies none.
const defaultTransferDescription = "card-to-card transfer"

// TransferRequest moves funds between two cards owned by the same caller.
type TransferRequest struct {
	FromCardID  uint            `json:"from_card_id"`
	ToCardID    uint            `json:"to_card_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// SearchRequest filters a cardholder's own card listing.
type SearchRequest struct {
	Search string
	Status models.CardStatus
	Limit  int
	Offset int
}

// CreateCardRequest is the admin card-issuance input. The card number arrives
// raw and is encrypted before it is persisted.
type CreateCardRequest struct {
	OwnerID        uint
	CardNumber     string
	ExpiryDate     time.Time
	InitialBalance decimal.Decimal
}

// Dto is the display form of a card. The number is masked; the balance
// serializes as an exact decimal string.
type Dto struct {
	ID           uint              `json:"id"`
	MaskedNumber string            `json:"masked_card_number"`
	ExpiryDate   string            `json:"expiry_date"`
	Balance      decimal.Decimal   `json:"balance"`
	Status       models.CardStatus `json:"status"`
	OwnerID      uint              `json:"owner_id"`
	OwnerEmail   string            `json:"owner_email,omitempty"`
}

// newDto builds the display form of a card. Decryption happens only here,
// and only to produce the masked value.
func newDto(card *models.Card, enc *cardnumber.Encryptor) (Dto, error) {
	raw, err := enc.Decrypt(card.Number)
	if err != nil {
		return Dto{}, err
	}

	dto := Dto{
		ID:           card.ID,
		MaskedNumber: cardnumber.Mask(raw),
		ExpiryDate:   card.ExpiryDate.Format(expiryDateFormat),
		Balance:      card.Balance,
		Status:       card.Status,
		OwnerID:      card.OwnerID,
	}
	if card.Owner != nil {
		dto.OwnerEmail = card.Owner.Email
	}
	return dto, nil
}
