package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/internal/domain/repository"
	"flightbook-service/pkg/logger"
)

// RedisSessionRepository stores sessions in redis with a sliding TTL
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisSessionRepository creates a new redis session repository
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration, log logger.Logger) repository.SessionRepository {
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Get loads a session; expired or absent sessions return nil
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var sess entity.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		r.logger.Warn("Dropping undecodable session", "id", id, "error", err)
		return nil, nil
	}
	return &sess, nil
}

// Save writes a session and renews its TTL
func (r *RedisSessionRepository) Save(ctx context.Context, sess *entity.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(sess.ID), data, r.ttl).Err()
}
