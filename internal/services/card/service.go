// Package card implements the card ledger: balance-mutating transfers,
// card lifecycle transitions, and block requests.
package card

import (
	"errors"
	"fmt"

	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/utils/cardnumber"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service is the cardholder surface. Every operation takes the caller's user
// id explicitly; nothing is read from ambient state.
type Service interface {
	// ListOwnCards lists the caller's cards with optional search and status
	// filters.
	ListOwnCards(callerID uint, req SearchRequest) ([]Dto, int64, error)

	// Transfer atomically debits one of the caller's cards and credits
	// another, appending a transaction record. Both cards must belong to the
	// caller.
	Transfer(callerID uint, req TransferRequest) error

	// GetBalance returns the current balance of one of the caller's cards.
	GetBalance(callerID, cardID uint) (decimal.Decimal, error)

	// RequestBlock files a pending block request for one of the caller's
	// active cards.
	RequestBlock(callerID, cardID uint, reason string) error
}

type service struct {
	cardRepo  repositories.CardRepository
	userRepo  repositories.UserRepository
	encryptor *cardnumber.Encryptor
}

// NewService creates a new cardholder card service.
func NewService(cardRepo repositories.CardRepository, userRepo repositories.UserRepository, encryptor *cardnumber.Encryptor) Service {
	if cardRepo == nil {
		panic("card repository is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	if encryptor == nil {
		panic("encryptor is required")
	}
	return &service{
		cardRepo:  cardRepo,
		userRepo:  userRepo,
		encryptor: encryptor,
	}
}

func (s *service) ListOwnCards(callerID uint, req SearchRequest) ([]Dto, int64, error) {
	cards, total, err := s.cardRepo.ListByOwner(callerID, repositories.CardFilter{
		Search: req.Search,
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
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

func (s *service) Transfer(callerID uint, req TransferRequest) error {
	if !req.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if req.FromCardID == req.ToCardID {
		return ErrSameCard
	}

	ownsFrom, err := s.cardRepo.ExistsByIDAndOwner(req.FromCardID, callerID)
	if err != nil {
		return fmt.Errorf("failed to check card ownership: %w", err)
	}
	ownsTo, err := s.cardRepo.ExistsByIDAndOwner(req.ToCardID, callerID)
	if err != nil {
		return fmt.Errorf("failed to check card ownership: %w", err)
	}
	if !ownsFrom || !ownsTo {
		return ErrAccessDenied
	}

	description := req.Description
	if description == "" {
		description = defaultTransferDescription
	}

	err = s.cardRepo.ExecuteInTransaction(func(tx repositories.CardRepository) error {
		fromCard, toCard, err := lockPair(tx, req.FromCardID, req.ToCardID)
		if err != nil {
			return err
		}

		if !fromCard.IsActive() || !toCard.IsActive() {
			return ErrCardNotActive
		}
		if fromCard.Balance.LessThan(req.Amount) {
			return ErrInsufficientFunds
		}

		fromCard.Balance = fromCard.Balance.Sub(req.Amount)
		toCard.Balance = toCard.Balance.Add(req.Amount)
		if err := tx.SaveAll([]*models.Card{fromCard, toCard}); err != nil {
			return err
		}

		return tx.CreateTransaction(&models.Transaction{
			Reference:   uuid.NewString(),
			FromCardID:  &fromCard.ID,
			ToCardID:    &toCard.ID,
			Amount:      req.Amount,
			Description: description,
		})
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"from_card": req.FromCardID,
		"to_card":   req.ToCardID,
		"amount":    req.Amount.String(),
	}).Info("transfer completed")
	return nil
}

// lockPair loads both cards with row-level write locks, always locking in
// ascending id order so two opposing transfers cannot deadlock.
func lockPair(tx repositories.CardRepository, fromID, toID uint) (*models.Card, *models.Card, error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := tx.GetByIDForUpdate(firstID)
	if err != nil {
		return nil, nil, translateNotFound(err)
	}
	second, err := tx.GetByIDForUpdate(secondID)
	if err != nil {
		return nil, nil, translateNotFound(err)
	}

	if first.ID == fromID {
		return first, second, nil
	}
	return second, first, nil
}

func (s *service) GetBalance(callerID, cardID uint) (decimal.Decimal, error) {
	card, err := s.cardRepo.GetByID(cardID)
	if err != nil {
		return decimal.Zero, translateNotFound(err)
	}
	if card.OwnerID != callerID {
		return decimal.Zero, ErrAccessDenied
	}
	return card.Balance, nil
}

func (s *service) RequestBlock(callerID, cardID uint, reason string) error {
	if _, err := s.userRepo.GetByID(callerID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to resolve caller: %w", err)
	}

	card, err := s.cardRepo.GetByID(cardID)
	if err != nil {
		return translateNotFound(err)
	}
	if card.OwnerID != callerID {
		return ErrAccessDenied
	}
	if card.Status == models.CardStatusBlocked {
		return ErrAlreadyBlocked
	}

	return s.cardRepo.CreateBlockRequest(&models.BlockCardRequest{
		CardID: &card.ID,
		UserID: callerID,
		Reason: reason,
		Status: models.BlockRequestPending,
	})
}

func translateNotFound(err error) error {
	if errors.Is(err, repositories.ErrCardNotFound) {
		return ErrCardNotFound
	}
	return err
}
