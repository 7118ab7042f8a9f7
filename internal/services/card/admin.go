package card

import (
	"errors"
	"fmt"

	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/utils/cardnumber"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// AdminService is the admin card-management surface: issuance, lifecycle
// transitions, and deletion.
type AdminService interface {
	// CreateCard issues a new ACTIVE card for the owner. The raw number is
	// encrypted before persisting; the last four digits are derived from it.
	CreateCard(req CreateCardRequest) (Dto, error)

	// ActivateCard sets the card status to ACTIVE. An expired card can never
	// be activated, whatever its stored status.
	ActivateCard(cardID uint) error

	// BlockCard sets the card status to BLOCKED. The balance must be zero.
	// Blocking an already-blocked zero-balance card succeeds silently.
	BlockCard(cardID uint) error

	// DeleteCard removes a zero-balance card, first detaching it from
	// transaction-log and block-request rows so history survives.
	DeleteCard(cardID uint) error

	// ListAllCards lists every card with pagination.
	ListAllCards(limit, offset int) ([]Dto, int64, error)
}

type adminService struct {
	cardRepo  repositories.CardRepository
	userRepo  repositories.UserRepository
	encryptor *cardnumber.Encryptor
}

// NewAdminService creates a new admin card-management service.
func NewAdminService(cardRepo repositories.CardRepository, userRepo repositories.UserRepository, encryptor *cardnumber.Encryptor) AdminService {
	if cardRepo == nil {
		panic("card repository is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	if encryptor == nil {
		panic("encryptor is required")
	}
	return &adminService{
		cardRepo:  cardRepo,
		userRepo:  userRepo,
		encryptor: encryptor,
	}
}

func (s *adminService) CreateCard(req CreateCardRequest) (Dto, error) {
	owner, err := s.userRepo.GetByID(req.OwnerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return Dto{}, ErrUserNotFound
		}
		return Dto{}, fmt.Errorf("failed to resolve owner: %w", err)
	}

	balance := req.InitialBalance
	if balance.IsNegative() {
		return Dto{}, ErrInvalidAmount
	}

	encrypted, err := s.encryptor.Encrypt(req.CardNumber)
	if err != nil {
		return Dto{}, fmt.Errorf("failed to encrypt card number: %w", err)
	}

	card := &models.Card{
		OwnerID:    owner.ID,
		Number:     encrypted,
		LastFour:   cardnumber.LastFour(req.CardNumber),
		ExpiryDate: req.ExpiryDate,
		Balance:    balance,
		Status:     models.CardStatusActive,
	}
	if err := s.cardRepo.Save(card); err != nil {
		return Dto{}, err
	}

	logrus.WithFields(logrus.Fields{
		"card_id":  card.ID,
		"owner_id": owner.ID,
	}).Info("card issued")

	card.Owner = owner
	return newDto(card, s.encryptor)
}

// Lifecycle transitions lock the current row inside a transaction. Writing a
// cache-served copy back would overwrite a balance committed by a concurrent
// transfer.
func (s *adminService) ActivateCard(cardID uint) error {
	return s.cardRepo.ExecuteInTransaction(func(tx repositories.CardRepository) error {
		card, err := tx.GetByIDForUpdate(cardID)
		if err != nil {
			return translateNotFound(err)
		}

		if card.IsExpired() {
			return ErrCardExpired
		}

		card.Status = models.CardStatusActive
		return tx.Save(card)
	})
}

func (s *adminService) BlockCard(cardID uint) error {
	return s.cardRepo.ExecuteInTransaction(func(tx repositories.CardRepository) error {
		card, err := tx.GetByIDForUpdate(cardID)
		if err != nil {
			return translateNotFound(err)
		}

		if !card.Balance.Equal(decimal.Zero) {
			return ErrNonZeroBalance
		}

		card.Status = models.CardStatusBlocked
		return tx.Save(card)
	})
}

func (s *adminService) DeleteCard(cardID uint) error {
	// Detach-then-delete must be one transaction: historical records keep
	// nulled references, and neither step survives without the other.
	err := s.cardRepo.ExecuteInTransaction(func(tx repositories.CardRepository) error {
		card, err := tx.GetByIDForUpdate(cardID)
		if err != nil {
			return translateNotFound(err)
		}

		if !card.Balance.Equal(decimal.Zero) {
			return ErrNonZeroBalance
		}

		if err := tx.DetachCard(card.ID); err != nil {
			return err
		}
		return tx.Delete(card)
	})
	if err != nil {
		return err
	}

	logrus.WithField("card_id", cardID).Info("card deleted")
	return nil
}

func (s *adminService) ListAllCards(limit, offset int) ([]Dto, int64, error) {
	cards, total, err := s.cardRepo.ListAll(limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}

	dtos := make([]Dto, 0, len(cards))
	for i := range cards {
		dto, err := newDto(&cards[i], s.encryptor)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to build card dto: %w", err)
		}
		dtos = append(dtos, dto)
	}
	return dtos, total, nil
}
