package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/quizbank-backend/internal/data/repos"
	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

// TokenDenylist remembers revoked token ids until their expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type dbTokenDenylist struct {
	log  *logger.Logger
	repo repos.RevokedTokenRepo
	now  func() time.Time
}

// NewDBTokenDenylist stores revocations in the revoked_token table.
func NewDBTokenDenylist(log *logger.Logger, repo repos.RevokedTokenRepo) TokenDenylist {
	return &dbTokenDenylist{log: log.With("service", "DBTokenDenylist"), repo: repo, now: time.Now}
}

func (d *dbTokenDenylist) Revoke(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error {
	dbc := dbctx.New(ctx)
	if n, err := d.repo.FullDeleteExpired(dbc, d.now().UTC()); err != nil {
		d.log.Warn("Pruning expired revocations failed", "error", err)
	} else if n > 0 {
		d.log.Debug("Pruned expired revocations", "count", n)
	}
	return d.repo.Create(dbc, []*types.RevokedToken{{
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
	}})
}

func (d *dbTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return d.repo.Exists(dbctx.New(ctx), tokenID, d.now().UTC())
}
