package services

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CityStore persists each user's selected locality string. A missing
// selection reads back as the empty string, not an error.
type CityStore interface {
	GetCity(ctx context.Context, userID string) (string, error)
	SetCity(ctx context.Context, userID, city string) error
}

// RedisCityStore keeps selections under city:<userID> with no TTL so they
// survive restarts.
type RedisCityStore struct {
	Client *redis.Client
}

func cityKey(userID string) string {
	return "city:" + userID
}

func (s *RedisCityStore) GetCity(ctx context.Context, userID string) (string, error) {
	city, err := s.Client.Get(ctx, cityKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return city, nil
}

func (s *RedisCityStore) SetCity(ctx context.Context, userID, city string) error {
	return s.Client.Set(ctx, cityKey(userID), city, 0).Err()
}
