// Package auth holds login-adjacent helpers that sit outside the lifecycle
// core.
package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginThrottle bounds failed login attempts per username over a sliding
// window, backed by redis. It is best-effort: a redis outage never blocks an
// otherwise valid login, and the counter is cleared on success.
type LoginThrottle struct {
	client      *redis.Client
	logger      *zap.Logger
	maxFailures int
	window      time.Duration
}

// NewLoginThrottle builds the throttle; a nil client disables it.
func NewLoginThrottle(client *redis.Client, logger *zap.Logger, maxFailures int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		client:      client,
		logger:      logger,
		maxFailures: maxFailures,
		window:      window,
	}
}

// Allow reports whether a login attempt for the username may proceed.
func (t *LoginThrottle) Allow(ctx context.Context, username string) bool {
	if t == nil || t.client == nil || t.maxFailures <= 0 {
		return true
	}
	count, err := t.client.Get(ctx, t.key(username)).Int()
	if err != nil {
		if err != redis.Nil {
			t.logger.Warn("login throttle lookup failed", zap.Error(err))
		}
		return true
	}
	return count < t.maxFailures
}

// RecordFailure counts a failed attempt.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) {
	if t == nil || t.client == nil {
		return
	}
	key := t.key(username)
	if err := t.client.Incr(ctx, key).Err(); err != nil {
		t.logger.Warn("login throttle increment failed", zap.Error(err))
		return
	}
	if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
		t.logger.Warn("login throttle expire failed", zap.Error(err))
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) {
	if t == nil || t.client == nil {
		return
	}
	if err := t.client.Del(ctx, t.key(username)).Err(); err != nil {
		t.logger.Warn("login throttle reset failed", zap.Error(err))
	}
}

func (t *LoginThrottle) key(username string) string {
	return "staff:login_failures:" + username
}
