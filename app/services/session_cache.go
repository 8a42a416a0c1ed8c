package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/orgdesk/orgdesk/models"
	"github.com/redis/go-redis/v9"
)

// SessionCache keeps active sessions in redis so the auth middleware can
// resolve a cookie token without hitting the database on every request.
// Entries expire together with the session itself; a miss is not an error,
// callers fall back to the session repository.
type SessionCache interface {
	Get(ctx context.Context, token string) (*models.UserSession, error)
	Set(ctx context.Context, session *models.UserSession) error
	Delete(ctx context.Context, token string) error
}

type cachedSession struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	ExpiresAt time.Time `json:"expires_at"`
}

type redisSessionCache struct {
	rc     *redis.Client
	prefix string
}

// NewRedisSessionCache creates a redis-backed session cache. prefix
// namespaces keys so the instance can share a redis database.
func NewRedisSessionCache(rc *redis.Client, prefix string) SessionCache {
	return &redisSessionCache{rc: rc, prefix: prefix}
}

func (c *redisSessionCache) key(token string) string {
	return c.prefix + "session:" + token
}

func (c *redisSessionCache) Get(ctx context.Context, token string) (*models.UserSession, error) {
	bs, err := c.rc.Get(ctx, c.key(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry cachedSession
	if err := json.Unmarshal(bs, &entry); err != nil {
		// stale or corrupt entry, drop it and treat as a miss
		_ = c.rc.Del(ctx, c.key(token)).Err()
		return nil, nil
	}

	active := true
	return &models.UserSession{
		ID:           entry.ID,
		SessionToken: token,
		UserID:       entry.UserID,
		UserEmail:    entry.UserEmail,
		UserName:     entry.UserName,
		IsActive:     &active,
		ExpiresAt:    entry.ExpiresAt,
	}, nil
}

func (c *redisSessionCache) Set(ctx context.Context, session *models.UserSession) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	entry := cachedSession{
		ID:        session.ID,
		UserID:    session.UserID,
		UserEmail: session.UserEmail,
		UserName:  session.UserName,
		ExpiresAt: session.ExpiresAt,
	}
	bs, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.rc.Set(ctx, c.key(session.SessionToken), bs, ttl).Err()
}

func (c *redisSessionCache) Delete(ctx context.Context, token string) error {
	return c.rc.Del(ctx, c.key(token)).Err()
}

// noopSessionCache is used when caching is disabled; every lookup is a miss.
type noopSessionCache struct{}

// NewNoopSessionCache returns a SessionCache that stores nothing.
func NewNoopSessionCache() SessionCache {
	return noopSessionCache{}
}

func (noopSessionCache) Get(ctx context.Context, token string) (*models.UserSession, error) {
	return nil, nil
}

func (noopSessionCache) Set(ctx context.Context, session *models.UserSession) error { return nil }

func (noopSessionCache) Delete(ctx context.Context, token string) error { return nil }
