package repositories

import (
	"errors"

	"bankcards/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create creates a new user.
	Create(user *models.User) error

	// GetByID retrieves a user by id.
	GetByID(id uint) (*models.User, error)

	// GetByIDWithCards retrieves a user with the Cards association preloaded.
	GetByIDWithCards(id uint) (*models.User, error)

	// GetByEmail retrieves a user by email address.
	GetByEmail(email string) (*models.User, error)

	// ExistsByEmail reports whether a user with the email exists.
	ExistsByEmail(email string) (bool, error)

	// Update updates an existing user.
	Update(user *models.User) error

	// Delete removes a user.
	Delete(id uint) error

	// IncrementTokenVersion invalidates all issued tokens for the user.
	IncrementTokenVersion(userID uint) error

	// List retrieves users with pagination, Cards preloaded.
	List(offset, limit int) ([]models.User, int64, error)
}
