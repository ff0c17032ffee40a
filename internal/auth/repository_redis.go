package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// RedisSessionRepository stores each session as a JSON value that expires
// together with the token.
type RedisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) Save(ctx context.Context, user *SessionUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKeyPrefix+user.Email, data, r.ttl).Err()
}

func (r *RedisSessionRepository) FindByEmail(ctx context.Context, email string) (*SessionUser, error) {
	raw, err := r.rdb.Get(ctx, sessionKeyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var user SessionUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, email string) error {
	return r.rdb.Del(ctx, sessionKeyPrefix+email).Err()
}
