package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

const defaultKeyPrefix = "quizbank:revoked:"

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// TokenDenylist keeps revoked token ids as expiring redis keys.
type TokenDenylist struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	now    func() time.Time
}

func NewTokenDenylist(log *logger.Logger, cfg Config) (*TokenDenylist, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewTokenDenylistFromClient(log, rdb, cfg.KeyPrefix), nil
}

func NewTokenDenylistFromClient(log *logger.Logger, rdb *goredis.Client, prefix string) *TokenDenylist {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultKeyPrefix
	}
	return &TokenDenylist{
		log:    log.With("service", "RedisTokenDenylist"),
		rdb:    rdb,
		prefix: prefix,
		now:    time.Now,
	}
}

func (d *TokenDenylist) key(tokenID string) string {
	return d.prefix + tokenID
}

// ttlUntil is how long a revocation must live; zero means already expired.
func ttlUntil(now, expiresAt time.Time) time.Duration {
	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		return 0
	}
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}

func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error {
	ttl := ttlUntil(d.now(), expiresAt)
	if ttl == 0 {
		return nil
	}
	if err := d.rdb.Set(ctx, d.key(tokenID), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	d.log.Debug("Token revoked", "user_id", userID, "ttl", ttl.String())
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.rdb.Get(ctx, d.key(tokenID)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, goredis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("redis get: %w", err)
	}
}

func (d *TokenDenylist) Close() error {
	return d.rdb.Close()
}
