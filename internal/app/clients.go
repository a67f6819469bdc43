package app

import (
	"fmt"

	"github.com/yungbote/quizbank-backend/internal/clients/redis"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

type Clients struct {
	// Nil when REDIS_ADDR is unset.
	RedisDenylist *redis.TokenDenylist
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var denylist *redis.TokenDenylist
	if cfg.Redis.Addr != "" {
		d, err := redis.NewTokenDenylist(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis token denylist: %w", err)
		}
		denylist = d
	}
	return Clients{RedisDenylist: denylist}, nil
}

func (c Clients) Close() {
	if c.RedisDenylist != nil {
		_ = c.RedisDenylist.Close()
	}
}
