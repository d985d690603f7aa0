package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/redis/go-redis/v9"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

const sessionKeyPrefix = "storebot:wizard:"

// RedisSessionRegistry shares wizard sessions between instances. Each
// session is one JSON value, so Set and Clear are single-key writes.
type RedisSessionRegistry struct {
	client *redis.Client
	ttl    time.Duration // 0 keeps sessions until cleared
}

func NewRedisSessionRegistry(client *redis.Client, ttl time.Duration) *RedisSessionRegistry {
	return &RedisSessionRegistry{client: client, ttl: ttl}
}

func (r *RedisSessionRegistry) Get(ctx context.Context, userID int64) (models.WizardSession, bool, error) {
	var s models.WizardSession

	data, err := r.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return s, false, nil
	}
	if err != nil {
		return s, false, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return s, false, e.Wrap(whereami.WhereAmI(), err)
	}
	return s, true, nil
}

func (r *RedisSessionRegistry) Set(ctx context.Context, userID int64, session models.WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := r.client.Set(ctx, sessionKey(userID), data, r.ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *RedisSessionRegistry) Clear(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

// Ping checks the redis connection
func (r *RedisSessionRegistry) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}
