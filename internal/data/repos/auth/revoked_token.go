package auth

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

type RevokedTokenRepo interface {
	Create(dbc dbctx.Context, rows []*types.RevokedToken) error
	Exists(dbc dbctx.Context, tokenID string, now time.Time) (bool, error)
	FullDeleteExpired(dbc dbctx.Context, before time.Time) (int64, error)
}

type revokedTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRevokedTokenRepo(db *gorm.DB, baseLog *logger.Logger) RevokedTokenRepo {
	return &revokedTokenRepo{db: db, log: baseLog.With("repo", "RevokedTokenRepo")}
}

func (r *revokedTokenRepo) Create(dbc dbctx.Context, rows []*types.RevokedToken) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_id"}}, DoNothing: true}).
		Create(&rows).Error
}

// Exists reports whether tokenID is revoked and the revocation has not lapsed.
func (r *revokedTokenRepo) Exists(dbc dbctx.Context, tokenID string, now time.Time) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.RevokedToken{}).
		Where("token_id = ? AND expires_at > ?", tokenID, now).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *revokedTokenRepo) FullDeleteExpired(dbc dbctx.Context, before time.Time) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Where("expires_at <= ?", before).
		Delete(&types.RevokedToken{})
	return res.RowsAffected, res.Error
}
