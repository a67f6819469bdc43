package quiz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

type QuestionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Question) ([]*types.Question, error)
	List(dbc dbctx.Context) ([]*types.Question, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Question, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Question, error)
	FindConflicting(dbc dbctx.Context, title, statement string, excludeID uuid.UUID) (*types.Question, error)
	Update(dbc dbctx.Context, row *types.Question) error
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) Create(dbc dbctx.Context, rows []*types.Question) ([]*types.Question, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Question{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *questionRepo) List(dbc dbctx.Context) ([]*types.Question, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Question
	if err := t.WithContext(dbc.Ctx).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *questionRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Question, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Question
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

func (r *questionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Question, error) {
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

// FindConflicting returns a question other than excludeID already using title or statement.
func (r *questionRepo) FindConflicting(dbc dbctx.Context, title, statement string, excludeID uuid.UUID) (*types.Question, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).Where("title = ? OR statement = ?", title, statement)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var out []*types.Question
	if err := q.Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *questionRepo) Update(dbc dbctx.Context, row *types.Question) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(row).
		Select("title", "statement", "image", "type", "font", "year", "alternatives", "response", "updated_at").
		Updates(row).Error
}

func (r *questionRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Delete(&types.Question{}).Error
}
