package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

const keyPrefix = "booking:session:"

// RedisStore хранит сессии в Redis в виде JSON с TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создает хранилище сессий поверх клиента Redis
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Save сохраняет сессию и продлевает TTL
func (s *RedisStore) Save(ctx context.Context, sess *domain.BookingSession) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := s.client.Set(ctx, key(sess.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set %s: %v", ErrStore, sess.ID, err)
	}
	return nil
}

// Get загружает сессию по ID
func (s *RedisStore) Get(ctx context.Context, id string) (*domain.BookingSession, error) {
	payload, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get %s: %v", ErrStore, id, err)
	}

	var sess domain.BookingSession
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &sess, nil
}

// Delete удаляет сессию
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del %s: %v", ErrStore, id, err)
	}
	return nil
}

func key(id string) string {
	return keyPrefix + id
}
