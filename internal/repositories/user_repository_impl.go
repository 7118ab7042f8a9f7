package repositories

import (
	"context"
	"errors"

	"bankcards/internal/models"
	"bankcards/internal/repositories/cache"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB, cache *cache.CacheService) UserRepository {
	return &userRepository{
		db:    db,
		cache: cache,
	}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return translateCreateError(err)
	}
	return nil
}

// translateCreateError maps a unique-violation on the email index, surfaced
// as gorm.ErrDuplicatedKey via TranslateError, to ErrEmailTaken. Two
// registrations racing past ExistsByEmail land here.
func translateCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return ErrDatabaseOperation
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	key := r.cache.GenerateKey("user", "id", id)
	if user, err := r.cache.GetUser(context.Background(), key); err == nil {
		return user, nil
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := r.cache.CacheUser(context.Background(), &user); err != nil {
		logrus.Warnf("failed to cache user %d: %v", user.ID, err)
	}
	return &user, nil
}

func (r *userRepository) GetByIDWithCards(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Cards").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	key := r.cache.GenerateKey("user", "email", email)
	if user, err := r.cache.GetUser(context.Background(), key); err == nil {
		return user, nil
	}

	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}

	if err := r.cache.CacheUser(context.Background(), &user); err != nil {
		logrus.Warnf("failed to cache user %d: %v", user.ID, err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, ErrDatabaseOperation
	}
	return count > 0, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return ErrDatabaseOperation
	}

	if err := r.cache.InvalidateUser(context.Background(), user.ID, user.Email); err != nil {
		logrus.Warnf("failed to invalidate user cache %d: %v", user.ID, err)
	}
	return nil
}

func (r *userRepository) Delete(id uint) error {
	user, err := r.GetByID(id)
	if err != nil {
		return err
	}

	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	if err := r.cache.InvalidateUser(context.Background(), id, user.Email); err != nil {
		logrus.Warnf("failed to invalidate user cache %d: %v", id, err)
	}
	return nil
}

func (r *userRepository) IncrementTokenVersion(userID uint) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error; err != nil {
		return ErrDatabaseOperation
	}

	user, err := r.GetByID(userID)
	if err == nil {
		if err := r.cache.InvalidateUser(context.Background(), userID, user.Email); err != nil {
			logrus.Warnf("failed to invalidate user cache %d: %v", userID, err)
		}
	}
	return nil
}

func (r *userRepository) List(offset, limit int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, ErrDatabaseOperation
	}

	var users []models.User
	err := r.db.Preload("Cards").
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, ErrDatabaseOperation
	}
	return users, total, nil
}
