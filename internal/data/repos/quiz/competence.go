package quiz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

type CompetenceRepo interface {
	Create(dbc dbctx.Context, rows []*types.Competence) ([]*types.Competence, error)
	List(dbc dbctx.Context) ([]*types.Competence, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Competence, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Competence, error)
	GetByTitles(dbc dbctx.Context, titles []string) ([]*types.Competence, error)
	Update(dbc dbctx.Context, row *types.Competence) error
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type competenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompetenceRepo(db *gorm.DB, baseLog *logger.Logger) CompetenceRepo {
	return &competenceRepo{db: db, log: baseLog.With("repo", "CompetenceRepo")}
}

func (r *competenceRepo) Create(dbc dbctx.Context, rows []*types.Competence) ([]*types.Competence, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Competence{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *competenceRepo) List(dbc dbctx.Context) ([]*types.Competence, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Competence
	if err := t.WithContext(dbc.Ctx).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *competenceRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Competence, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Competence
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *competenceRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Competence, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// GetByTitles matches titles exactly. Titles are not unique, so several rows
// may come back for one title.
func (r *competenceRepo) GetByTitles(dbc dbctx.Context, titles []string) ([]*types.Competence, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Competence
	if len(titles) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("title IN ?", titles).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *competenceRepo) Update(dbc dbctx.Context, row *types.Competence) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(row).
		Select("title", "description", "updated_at").
		Updates(row).Error
}

func (r *competenceRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Delete(&types.Competence{}).Error
}
