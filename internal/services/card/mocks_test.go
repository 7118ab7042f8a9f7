package card

import (
	"bankcards/internal/models"
	"bankcards/internal/repositories"

	"github.com/stretchr/testify/mock"
)

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) GetByID(id uint) (*models.Card, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) GetByIDForUpdate(id uint) (*models.Card, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) ExistsByIDAndOwner(cardID, ownerID uint) (bool, error) {
	args := m.Called(cardID, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCardRepository) Save(card *models.Card) error {
	args := m.Called(card)
	return args.Error(0)
}

func (m *MockCardRepository) SaveAll(cards []*models.Card) error {
	args := m.Called(cards)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(card *models.Card) error {
	args := m.Called(card)
	return args.Error(0)
}

func (m *MockCardRepository) ListByOwner(ownerID uint, filter repositories.CardFilter) ([]models.Card, int64, error) {
	args := m.Called(ownerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Card), args.Get(1).(int64), args.Error(2)
}

func (m *MockCardRepository) ListAll(limit, offset int) ([]models.Card, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Card), args.Get(1).(int64), args.Error(2)
}

func (m *MockCardRepository) CreateTransaction(tx *models.Transaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func (m *MockCardRepository) CreateBlockRequest(req *models.BlockCardRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockCardRepository) DetachCard(cardID uint) error {
	args := m.Called(cardID)
	return args.Error(0)
}

// ExecuteInTransaction runs the callback against the same mock so the
// transactional path is exercised and its error propagates.
func (m *MockCardRepository) ExecuteInTransaction(fn func(repositories.CardRepository) error) error {
	m.Called()
	return fn(m)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDWithCards(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementTokenVersion(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) List(offset, limit int) ([]models.User, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}
