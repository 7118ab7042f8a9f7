package repositories

import (
	"context"
	"errors"
	"fmt"

	"bankcards/internal/models"
	"bankcards/internal/repositories/cache"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cardRepository struct {
	db    *gorm.DB
	cache *cache.CacheService

	// pending collects card ids touched inside a transaction. Invalidating
	// before commit would let a concurrent read re-cache the pre-commit row,
	// so the flush happens only after the transaction returns.
	pending *[]uint
}

// NewCardRepository creates a new instance of CardRepository.
func NewCardRepository(db *gorm.DB, cache *cache.CacheService) CardRepository {
	return &cardRepository{
		db:    db,
		cache: cache,
	}
}

func (r *cardRepository) GetByID(id uint) (*models.Card, error) {
	if card, err := r.cache.GetCard(context.Background(), id); err == nil {
		return card, nil
	}

	var card models.Card
	if err := r.db.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if err := r.cache.CacheCard(context.Background(), &card); err != nil {
		logrus.Warnf("failed to cache card %d: %v", card.ID, err)
	}
	return &card, nil
}

// GetByIDForUpdate bypasses the cache: a locked read must see the current row.
func (r *cardRepository) GetByIDForUpdate(id uint) (*models.Card, error) {
	var card models.Card
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&card, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to lock card: %w", err)
	}
	return &card, nil
}

func (r *cardRepository) ExistsByIDAndOwner(cardID, ownerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Card{}).
		Where("id = ? AND owner_id = ?", cardID, ownerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check card ownership: %w", err)
	}
	return count > 0, nil
}

func (r *cardRepository) Save(card *models.Card) error {
	if err := r.db.Save(card).Error; err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}
	r.invalidate(card.ID)
	return nil
}

func (r *cardRepository) SaveAll(cards []*models.Card) error {
	for _, card := range cards {
		if err := r.db.Save(card).Error; err != nil {
			return fmt.Errorf("failed to save card %d: %w", card.ID, err)
		}
	}
	for _, card := range cards {
		r.invalidate(card.ID)
	}
	return nil
}

func (r *cardRepository) Delete(card *models.Card) error {
	result := r.db.Delete(&models.Card{}, card.ID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	r.invalidate(card.ID)
	return nil
}

func (r *cardRepository) ListByOwner(ownerID uint, filter CardFilter) ([]models.Card, int64, error) {
	query := r.db.Model(&models.Card{}).Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		query = query.Where("last_four LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}

	var cards []models.Card
	err := query.Order("id").Limit(filter.Limit).Offset(filter.Offset).Find(&cards).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, total, nil
}

func (r *cardRepository) ListAll(limit, offset int) ([]models.Card, int64, error) {
	var total int64
	if err := r.db.Model(&models.Card{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}

	var cards []models.Card
	err := r.db.Preload("Owner").Order("id").Limit(limit).Offset(offset).Find(&cards).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, total, nil
}

func (r *cardRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *cardRepository) CreateBlockRequest(req *models.BlockCardRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return fmt.Errorf("failed to create block request: %w", err)
	}
	return nil
}

func (r *cardRepository) DetachCard(cardID uint) error {
	err := r.db.Model(&models.Transaction{}).
		Where("from_card_id = ?", cardID).
		Update("from_card_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to detach outgoing transactions: %w", err)
	}

	err = r.db.Model(&models.Transaction{}).
		Where("to_card_id = ?", cardID).
		Update("to_card_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to detach incoming transactions: %w", err)
	}

	err = r.db.Model(&models.BlockCardRequest{}).
		Where("card_id = ?", cardID).
		Update("card_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to detach block requests: %w", err)
	}
	return nil
}

func (r *cardRepository) ExecuteInTransaction(fn func(CardRepository) error) error {
	var touched []uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&cardRepository{db: tx, cache: r.cache, pending: &touched})
	})
	if err != nil {
		return err
	}
	for _, id := range touched {
		r.evict(id)
	}
	return nil
}

func (r *cardRepository) invalidate(cardID uint) {
	if r.pending != nil {
		*r.pending = append(*r.pending, cardID)
		return
	}
	r.evict(cardID)
}

func (r *cardRepository) evict(cardID uint) {
	if err := r.cache.InvalidateCard(context.Background(), cardID); err != nil {
		logrus.Warnf("failed to invalidate card cache %d: %v", cardID, err)
	}
}
