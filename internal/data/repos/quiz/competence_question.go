package quiz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

type CompetenceQuestionRepo interface {
	Create(dbc dbctx.Context, rows []*types.CompetenceQuestion) ([]*types.CompetenceQuestion, error)
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.CompetenceQuestion) (int, error)

	GetByPair(dbc dbctx.Context, competenceID, questionID uuid.UUID) (*types.CompetenceQuestion, error)
	GetByQuestionIDs(dbc dbctx.Context, questionIDs []uuid.UUID) ([]*types.CompetenceQuestion, error)
	GetByCompetenceIDs(dbc dbctx.Context, competenceIDs []uuid.UUID) ([]*types.CompetenceQuestion, error)

	FullDeleteByPair(dbc dbctx.Context, competenceID, questionID uuid.UUID) (int64, error)
	FullDeleteByQuestionIDs(dbc dbctx.Context, questionIDs []uuid.UUID) error
	FullDeleteByCompetenceIDs(dbc dbctx.Context, competenceIDs []uuid.UUID) error
}

type competenceQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompetenceQuestionRepo(db *gorm.DB, baseLog *logger.Logger) CompetenceQuestionRepo {
	return &competenceQuestionRepo{db: db, log: baseLog.With("repo", "CompetenceQuestionRepo")}
}

func (r *competenceQuestionRepo) Create(dbc dbctx.Context, rows []*types.CompetenceQuestion) ([]*types.CompetenceQuestion, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.CompetenceQuestion{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *competenceQuestionRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.CompetenceQuestion) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "competence_id"}, {Name: "question_id"}},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *competenceQuestionRepo) GetByPair(dbc dbctx.Context, competenceID, questionID uuid.UUID) (*types.CompetenceQuestion, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.CompetenceQuestion
	if err := t.WithContext(dbc.Ctx).
		Where("competence_id = ? AND question_id = ?", competenceID, questionID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *competenceQuestionRepo) GetByQuestionIDs(dbc dbctx.Context, questionIDs []uuid.UUID) ([]*types.CompetenceQuestion, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.CompetenceQuestion
	if len(questionIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("question_id IN ?", questionIDs).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *competenceQuestionRepo) GetByCompetenceIDs(dbc dbctx.Context, competenceIDs []uuid.UUID) ([]*types.CompetenceQuestion, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.CompetenceQuestion
	if len(competenceIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("competence_id IN ?", competenceIDs).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *competenceQuestionRepo) FullDeleteByPair(dbc dbctx.Context, competenceID, questionID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Where("competence_id = ? AND question_id = ?", competenceID, questionID).
		Delete(&types.CompetenceQuestion{})
	return res.RowsAffected, res.Error
}

func (r *competenceQuestionRepo) FullDeleteByQuestionIDs(dbc dbctx.Context, questionIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(questionIDs) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("question_id IN ?", questionIDs).
		Delete(&types.CompetenceQuestion{}).Error
}

func (r *competenceQuestionRepo) FullDeleteByCompetenceIDs(dbc dbctx.Context, competenceIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(competenceIDs) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("competence_id IN ?", competenceIDs).
		Delete(&types.CompetenceQuestion{}).Error
}
