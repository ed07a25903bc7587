package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"droneport/internal/models"
	"droneport/internal/security"
)

var ErrNotFound = errors.New("session not found")

// Store keeps sessions server-side in redis, keyed by an opaque token. The
// client only ever holds the token; expiry is the redis TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

func key(token string) string {
	return "session:" + token
}

func (s *Store) Create(ctx context.Context, user models.SessionUser) (string, error) {
	token, err := security.GenerateSessionToken(32)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, key(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *Store) Get(ctx context.Context, token string) (models.SessionUser, error) {
	payload, err := s.client.Get(ctx, key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.SessionUser{}, ErrNotFound
		}
		return models.SessionUser{}, fmt.Errorf("load session: %w", err)
	}

	var user models.SessionUser
	if err := json.Unmarshal(payload, &user); err != nil {
		return models.SessionUser{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return user, nil
}

func (s *Store) Destroy(ctx context.Context, token string) error {
	deleted, err := s.client.Del(ctx, key(token)).Result()
	if err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
