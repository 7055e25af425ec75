// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package csrf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/secureblog/internal/platform/constants"
	"github.com/taibuivan/secureblog/internal/platform/sec"
)

// KeyValue is the subset of the Redis client the store needs.
type KeyValue interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps secrets server-side; the cookie only carries an opaque session id.
//
// Secrets expire with the cookie, and a leaked cookie jar never reveals them.
type RedisStore struct {
	client  KeyValue
	options CookieOptions
}

// NewRedisStore creates a Redis-backed [SecretStore].
func NewRedisStore(client KeyValue, options CookieOptions) *RedisStore {
	return &RedisStore{client: client, options: options}
}

// Load implements [SecretStore].
func (store *RedisStore) Load(ctx context.Context, request *http.Request) (string, error) {
	sessionID, ok := store.options.read(request)
	if !ok {
		return "", ErrNoSecret
	}

	secret, err := store.client.Get(ctx, key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSecret
		}
		return "", fmt.Errorf("redis_csrf_secret_get_failed: %w", err)
	}
	return secret, nil
}

// Establish implements [SecretStore].
func (store *RedisStore) Establish(ctx context.Context, writer http.ResponseWriter, request *http.Request) (string, error) {
	secret, err := store.Load(ctx, request)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, ErrNoSecret) {
		return "", err
	}

	// A fresh session id every time, so a client-chosen cookie value is never adopted.
	sessionID, err := sec.GenerateSecureToken(secretBytes)
	if err != nil {
		return "", err
	}
	secret, err = NewSecret()
	if err != nil {
		return "", err
	}

	if err := store.client.Set(ctx, key(sessionID), secret, store.options.TTL).Err(); err != nil {
		return "", fmt.Errorf("redis_csrf_secret_set_failed: %w", err)
	}

	store.options.write(writer, sessionID)
	return secret, nil
}

func key(sessionID string) string {
	return constants.RedisPrefixCSRF + sessionID
}
