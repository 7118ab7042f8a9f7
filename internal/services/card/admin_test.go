package card

import (
	"testing"
	"time"

	"bankcards/internal/models"
	"bankcards/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminService_CreateCard(t *testing.T) {
	enc := testEncryptor(t)

	owner := &models.User{Email: "owner@example.com"}
	owner.ID = 7

	t.Run("encrypts the number and derives the last four", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		userRepo.On("GetByID", uint(7)).Return(owner, nil)

		var saved *models.Card
		cardRepo.On("Save", mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(0).(*models.Card)
			saved.ID = 11
		}).Return(nil)

		dto, err := svc.CreateCard(CreateCardRequest{
			OwnerID:        7,
			CardNumber:     "1234567812345678",
			ExpiryDate:     time.Now().AddDate(3, 0, 0),
			InitialBalance: mustDec(t, "250.00"),
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.NotEqual(t, "1234567812345678", saved.Number, "raw number must never be persisted")
		assert.NotContains(t, saved.Number, "5678")
		assert.Equal(t, "5678", saved.LastFour)
		assert.Equal(t, models.CardStatusActive, saved.Status)
		assert.True(t, saved.Balance.Equal(mustDec(t, "250.00")))

		stored, decErr := enc.Decrypt(saved.Number)
		require.NoError(t, decErr)
		assert.Equal(t, "1234567812345678", stored)

		assert.Equal(t, uint(11), dto.ID)
		assert.Equal(t, "**** **** **** 5678", dto.MaskedNumber)
		assert.Equal(t, "owner@example.com", dto.OwnerEmail)
	})

	t.Run("rejects an unknown owner", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		userRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrUserNotFound)

		_, err := svc.CreateCard(CreateCardRequest{OwnerID: 99, CardNumber: "1234567812345678"})
		assert.ErrorIs(t, err, ErrUserNotFound)
		cardRepo.AssertNotCalled(t, "Save", mock.Anything)
	})

	t.Run("rejects a negative initial balance", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		userRepo.On("GetByID", uint(7)).Return(owner, nil)

		_, err := svc.CreateCard(CreateCardRequest{
			OwnerID:        7,
			CardNumber:     "1234567812345678",
			InitialBalance: mustDec(t, "-1.00"),
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
		cardRepo.AssertNotCalled(t, "Save", mock.Anything)
	})
}

func TestAdminService_ActivateCard(t *testing.T) {
	enc := testEncryptor(t)

	t.Run("activates a blocked card", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		card := activeCard(3, 7, "0.00")
		card.Status = models.CardStatusBlocked

		cardRepo.On("ExecuteInTransaction").Return()
		cardRepo.On("GetByIDForUpdate", uint(3)).Return(card, nil)
		cardRepo.On("Save", card).Return(nil)

		require.NoError(t, svc.ActivateCard(3))
		assert.Equal(t, models.CardStatusActive, card.Status)
	})

	t.Run("writes the locked row, never a cached copy", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		// The locked read sees a balance a concurrent transfer just committed;
		// saving it must not lose that update.
		current := activeCard(3, 7, "900.00")
		current.Status = models.CardStatusBlocked

		cardRepo.On("ExecuteInTransaction").Return()
		cardRepo.On("GetByIDForUpdate", uint(3)).Return(current, nil)

		var saved *models.Card
		cardRepo.On("Save", mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(0).(*models.Card)
		}).Return(nil)

		require.NoError(t, svc.ActivateCard(3))
		require.NotNil(t, saved)
		assert.True(t, saved.Balance.Equal(mustDec(t, "900.00")))
		cardRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	})

	t.Run("activates a card expiring today", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		card := activeCard(3, 7, "0.00")
		card.Status = models.CardStatusBlocked
		now := time.Now()
		card.ExpiryDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		cardRepo.On("ExecuteInTransaction").Return()
		cardRepo.On("GetByIDForUpdate", uint(3)).Return(card, nil)
		cardRepo.On("Save", card).Return(nil)

		require.NoError(t, svc.ActivateCard(3))
		assert.Equal(t, models.CardStatusActive, card.Status)
	})

	t.Run("never activates an expired card", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		card := activeCard(3, 7, "0.00")
		card.Status = models.CardStatusExpired
		card.ExpiryDate = time.Now().AddDate(0, 0, -1)

		cardRepo.On("ExecuteInTransaction").Return()
		cardRepo.On("GetByIDForUpdate", uint(3)).Return(card, nil)

		err := svc.ActivateCard(3)
		assert.ErrorIs(t, err, ErrCardExpired)
		assert.Equal(t, models.CardStatusExpired, card.Status)
		cardRepo.AssertNotCalled(t, "Save", mock.Anything)
	})
}

func TestAdminService_BlockCard(t *testing.T) {
	enc := testEncryptor(t)

	t.Run("blocks a zero-balance card", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		card := activeCard(3, 7, "0.00")
		cardRepo.On("ExecuteInTransaction").Return()
		cardRepo.On("GetByIDForUpdate", uint(3)).Return(card, nil)
		cardRepo.On("Save", card).Return(nil)

		require.NoError(t, svc.BlockCard(3))
		assert.Equal(t, models.CardStatusBlocked, card.Status)
	})

	t.Run("refuses while funds remain, checked under lock", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		card := activeCard(3, 7, "0.01")
		cardRepo.On("ExecuteInTransaction").Return()
		cardRepo.On("GetByIDForUpdate", uint(3)).Return(card, nil)

		err := svc.BlockCard(3)
		assert.ErrorIs(t, err, ErrNonZeroBalance)
		assert.Equal(t, models.CardStatusActive, card.Status)
		cardRepo.AssertNotCalled(t, "Save", mock.Anything)
		cardRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	})

	t.Run("re-blocking is a no-op success", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		card := activeCard(3, 7, "0.00")
		card.Status = models.CardStatusBlocked
		cardRepo.On("ExecuteInTransaction").Return()
		cardRepo.On("GetByIDForUpdate", uint(3)).Return(card, nil)
		cardRepo.On("Save", card).Return(nil)

		require.NoError(t, svc.BlockCard(3))
		assert.Equal(t, models.CardStatusBlocked, card.Status)
	})
}

func TestAdminService_DeleteCard(t *testing.T) {
	enc := testEncryptor(t)

	t.Run("detaches history before deleting", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		card := activeCard(3, 7, "0.00")

		var order []string
		cardRepo.On("ExecuteInTransaction").Return()
		cardRepo.On("GetByIDForUpdate", uint(3)).Return(card, nil)
		cardRepo.On("DetachCard", uint(3)).Run(func(mock.Arguments) {
			order = append(order, "detach")
		}).Return(nil)
		cardRepo.On("Delete", card).Run(func(mock.Arguments) {
			order = append(order, "delete")
		}).Return(nil)

		require.NoError(t, svc.DeleteCard(3))
		assert.Equal(t, []string{"detach", "delete"}, order)
	})

	t.Run("refuses while funds remain", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		card := activeCard(3, 7, "12.00")
		cardRepo.On("ExecuteInTransaction").Return()
		cardRepo.On("GetByIDForUpdate", uint(3)).Return(card, nil)

		err := svc.DeleteCard(3)
		assert.ErrorIs(t, err, ErrNonZeroBalance)
		cardRepo.AssertNotCalled(t, "DetachCard", mock.Anything)
		cardRepo.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("maps missing cards", func(t *testing.T) {
		cardRepo := new(MockCardRepository)
		userRepo := new(MockUserRepository)
		svc := NewAdminService(cardRepo, userRepo, enc)

		cardRepo.On("ExecuteInTransaction").Return()
		cardRepo.On("GetByIDForUpdate", uint(99)).Return(nil, repositories.ErrCardNotFound)

		err := svc.DeleteCard(99)
		assert.ErrorIs(t, err, ErrCardNotFound)
	})
}

func TestAdminService_ListAllCards(t *testing.T) {
	enc := testEncryptor(t)
	cardRepo := new(MockCardRepository)
	userRepo := new(MockUserRepository)
	svc := NewAdminService(cardRepo, userRepo, enc)

	encrypted, err := enc.Encrypt("9999888877776666")
	require.NoError(t, err)

	owner := &models.User{Email: "owner@example.com"}
	owner.ID = 7

	stored := *activeCard(4, 7, "80.00")
	stored.Number = encrypted
	stored.Owner = owner
	stored.Balance = decimal.RequireFromString("80.00")

	cardRepo.On("ListAll", 20, 0).Return([]models.Card{stored}, int64(1), nil)

	dtos, total, err := svc.ListAllCards(20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, dtos, 1)
	assert.Equal(t, "**** **** **** 6666", dtos[0].MaskedNumber)
	assert.Equal(t, "owner@example.com", dtos[0].OwnerEmail)
}
