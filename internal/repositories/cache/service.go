package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bankcards/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService is a JSON-over-Redis cache for users and cards. All mutating
// card operations must invalidate the card entry; stale balances are never
// acceptable.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

// Get unmarshals the cached value into dest. The bool result reports whether
// the key was present.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching. Users are cached by id and by email because principal
// resolution looks callers up by email on every authenticated request.

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}

	keys := []string{
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	}
	for _, key := range keys {
		if err := s.Set(ctx, key, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("user not found in cache")
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint, email string) error {
	keys := []string{s.GenerateKey("user", "id", userID)}
	if email != "" {
		keys = append(keys, s.GenerateKey("user", "email", email))
	}
	return s.Delete(ctx, keys...)
}

// Card caching.

func (s *CacheService) CacheCard(ctx context.Context, card *models.Card) error {
	if card == nil {
		return errors.New("cannot cache nil card")
	}
	return s.Set(ctx, s.GenerateKey("card", "id", card.ID), card)
}

func (s *CacheService) GetCard(ctx context.Context, cardID uint) (*models.Card, error) {
	var card models.Card
	found, err := s.Get(ctx, s.GenerateKey("card", "id", cardID), &card)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("card not found in cache")
	}
	return &card, nil
}

func (s *CacheService) InvalidateCard(ctx context.Context, cardID uint) error {
	return s.Delete(ctx, s.GenerateKey("card", "id", cardID))
}

// FlushAll flushes all keys from the cache.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
