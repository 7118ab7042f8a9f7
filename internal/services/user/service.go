// Package user implements admin user management.
package user

import (
	"errors"
	"fmt"

	"bankcards/internal/models"
	"bankcards/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
	ErrHasBalance   = errors.New("cannot delete a user whose cards hold a balance")
)

// CreateRequest is the admin user-creation input.
type CreateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateRequest carries optional field updates; nil means unchanged.
type UpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// Dto is the display form of a user. Card count and total balance are derived
// from the owned cards, never stored.
type Dto struct {
	ID           uint            `json:"id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	CardsCount   int             `json:"cards_count"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

type Service interface {
	CreateUser(req CreateRequest) (Dto, error)
	GetUser(id uint) (Dto, error)
	UpdateUser(id uint, req UpdateRequest) (Dto, error)
	DeleteUser(id uint) error
	ListUsers(limit, offset int) ([]Dto, int64, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	if userRepo == nil {
		panic("user repository is required")
	}
	return &service{userRepo: userRepo}
}

func (s *service) CreateUser(req CreateRequest) (Dto, error) {
	taken, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return Dto{}, err
	}
	if taken {
		return Dto{}, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Dto{}, err
	}

	u := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     string(hashed),
		Role:         models.RoleUser,
		TokenVersion: 1,
	}
	if err := s.userRepo.Create(u); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return Dto{}, ErrEmailTaken
		}
		return Dto{}, err
	}

	logrus.WithField("user_id", u.ID).Info("user created by admin")
	return newDto(u), nil
}

func (s *service) GetUser(id uint) (Dto, error) {
	u, err := s.userRepo.GetByIDWithCards(id)
	if err != nil {
		return Dto{}, translateNotFound(err)
	}
	return newDto(u), nil
}

func (s *service) UpdateUser(id uint, req UpdateRequest) (Dto, error) {
	u, err := s.userRepo.GetByIDWithCards(id)
	if err != nil {
		return Dto{}, translateNotFound(err)
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil && *req.Email != u.Email {
		taken, err := s.userRepo.ExistsByEmail(*req.Email)
		if err != nil {
			return Dto{}, err
		}
		if taken {
			return Dto{}, ErrEmailTaken
		}
		u.Email = *req.Email
	}

	if err := s.userRepo.Update(u); err != nil {
		return Dto{}, fmt.Errorf("failed to update user: %w", err)
	}
	return newDto(u), nil
}

func (s *service) DeleteUser(id uint) error {
	u, err := s.userRepo.GetByIDWithCards(id)
	if err != nil {
		return translateNotFound(err)
	}

	for _, card := range u.Cards {
		if !card.Balance.IsZero() {
			return ErrHasBalance
		}
	}

	if err := s.userRepo.Delete(id); err != nil {
		return translateNotFound(err)
	}

	logrus.WithField("user_id", id).Info("user deleted")
	return nil
}

func (s *service) ListUsers(limit, offset int) ([]Dto, int64, error) {
	users, total, err := s.userRepo.List(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	dtos := make([]Dto, 0, len(users))
	for i := range users {
		dtos = append(dtos, newDto(&users[i]))
	}
	return dtos, total, nil
}

func newDto(u *models.User) Dto {
	return Dto{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role,
		CardsCount:   len(u.Cards),
		TotalBalance: u.TotalBalance(),
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}
