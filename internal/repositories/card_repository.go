package repositories

import (
	"errors"

	"bankcards/internal/models"
)

var ErrCardNotFound = errors.New("card not found")

// CardFilter narrows a cardholder's card listing. Search matches the stored
// last-four digits.
type CardFilter struct {
	Search string
	Status models.CardStatus
	Limit  int
	Offset int
}

// CardRepository is the durable store for cards and their dependent records
// (transaction log entries and block requests). Mutations that must be atomic
// run inside ExecuteInTransaction against the transactional repository it
// passes to the callback.
type CardRepository interface {
	// GetByID retrieves a card by id.
	GetByID(id uint) (*models.Card, error)

	// GetByIDForUpdate retrieves a card by id holding a row-level write lock.
	// Only valid inside ExecuteInTransaction.
	GetByIDForUpdate(id uint) (*models.Card, error)

	// ExistsByIDAndOwner reports whether the card exists and belongs to the
	// owner, in one query.
	ExistsByIDAndOwner(cardID, ownerID uint) (bool, error)

	// Save persists a card, creating it when new.
	Save(card *models.Card) error

	// SaveAll persists several cards.
	SaveAll(cards []*models.Card) error

	// Delete removes a card row. Dependent records must be detached first.
	Delete(card *models.Card) error

	// ListByOwner retrieves one owner's cards with filtering and pagination.
	ListByOwner(ownerID uint, filter CardFilter) ([]models.Card, int64, error)

	// ListAll retrieves all cards with pagination.
	ListAll(limit, offset int) ([]models.Card, int64, error)

	// CreateTransaction appends a transfer record to the transaction log.
	CreateTransaction(tx *models.Transaction) error

	// CreateBlockRequest inserts a block request.
	CreateBlockRequest(req *models.BlockCardRequest) error

	// DetachCard nulls every transaction-log and block-request reference to
	// the card so historical records survive its deletion.
	DetachCard(cardID uint) error

	// ExecuteInTransaction runs fn inside a single database transaction.
	ExecuteInTransaction(fn func(CardRepository) error) error
}
