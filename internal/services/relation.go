package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/quizbank-backend/internal/data/repos"
	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/apierr"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

const (
	msgCompetenceNotFound = "Competence not found"
	msgQuestionNotFound   = "Question not found"
	msgRelationExists     = "Exist relation"
	msgRelationNotFound   = "Relation not found"
)

// RelationService is the only writer of competence_question rows.
type RelationService interface {
	CreateLink(ctx context.Context, questionID, competenceID string) error
	DeleteLink(ctx context.Context, questionID, competenceID string) error
	// ReplaceLinksForQuestion links questionID to the competences named by
	// titles. Unknown titles are skipped; repeated titles count once. When
	// purge is set every existing link of the question is removed first.
	ReplaceLinksForQuestion(dbc dbctx.Context, questionID uuid.UUID, titles []string, purge bool) (int, error)
	PurgeQuestion(dbc dbctx.Context, questionID uuid.UUID) error
	PurgeCompetence(dbc dbctx.Context, competenceID uuid.UUID) error
}

type relationService struct {
	db             *gorm.DB
	log            *logger.Logger
	competenceRepo repos.CompetenceRepo
	questionRepo   repos.QuestionRepo
	linkRepo       repos.CompetenceQuestionRepo
}

func NewRelationService(
	db *gorm.DB,
	log *logger.Logger,
	competenceRepo repos.CompetenceRepo,
	questionRepo repos.QuestionRepo,
	linkRepo repos.CompetenceQuestionRepo,
) RelationService {
	return &relationService{
		db:             db,
		log:            log.With("service", "RelationService"),
		competenceRepo: competenceRepo,
		questionRepo:   questionRepo,
		linkRepo:       linkRepo,
	}
}

func (rs *relationService) CreateLink(ctx context.Context, questionID, competenceID string) error {
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		competence, question, err := rs.resolvePair(dbc, questionID, competenceID)
		if err != nil {
			return err
		}
		existing, err := rs.linkRepo.GetByPair(dbc, competence.ID, question.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.Conflict(msgRelationExists)
		}
		if _, err := rs.linkRepo.Create(dbc, []*types.CompetenceQuestion{{
			CompetenceID: competence.ID,
			QuestionID:   question.ID,
		}}); err != nil {
			return apierr.FromStore(err, msgRelationExists)
		}
		rs.log.Info("Relation created", "competence", competence.ID, "question", question.ID)
		return nil
	})
}

func (rs *relationService) DeleteLink(ctx context.Context, questionID, competenceID string) error {
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		competence, question, err := rs.resolvePair(dbc, questionID, competenceID)
		if err != nil {
			return err
		}
		n, err := rs.linkRepo.FullDeleteByPair(dbc, competence.ID, question.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierr.NotFound(msgRelationNotFound)
		}
		rs.log.Info("Relation deleted", "competence", competence.ID, "question", question.ID)
		return nil
	})
}

// resolvePair checks the competence before the question.
func (rs *relationService) resolvePair(dbc dbctx.Context, questionID, competenceID string) (*types.Competence, *types.Question, error) {
	competence, err := findCompetence(dbc, rs.competenceRepo, competenceID)
	if err != nil {
		return nil, nil, err
	}
	question, err := findQuestion(dbc, rs.questionRepo, questionID)
	if err != nil {
		return nil, nil, err
	}
	return competence, question, nil
}

func (rs *relationService) ReplaceLinksForQuestion(dbc dbctx.Context, questionID uuid.UUID, titles []string, purge bool) (int, error) {
	if purge {
		if err := rs.linkRepo.FullDeleteByQuestionIDs(dbc, []uuid.UUID{questionID}); err != nil {
			return 0, err
		}
	}
	unique := uniqueStrings(titles)
	if len(unique) == 0 {
		return 0, nil
	}
	matches, err := rs.competenceRepo.GetByTitles(dbc, unique)
	if err != nil {
		return 0, err
	}
	// First match per title, oldest first.
	byTitle := make(map[string]*types.Competence, len(matches))
	for _, c := range matches {
		if _, ok := byTitle[c.Title]; !ok {
			byTitle[c.Title] = c
		}
	}
	rows := make([]*types.CompetenceQuestion, 0, len(unique))
	seen := make(map[uuid.UUID]bool, len(unique))
	for _, title := range unique {
		c, ok := byTitle[title]
		if !ok {
			rs.log.Debug("Skipping unknown competence title", "title", title)
			continue
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		rows = append(rows, &types.CompetenceQuestion{CompetenceID: c.ID, QuestionID: questionID})
	}
	return rs.linkRepo.CreateIgnoreDuplicates(dbc, rows)
}

func (rs *relationService) PurgeQuestion(dbc dbctx.Context, questionID uuid.UUID) error {
	return rs.linkRepo.FullDeleteByQuestionIDs(dbc, []uuid.UUID{questionID})
}

func (rs *relationService) PurgeCompetence(dbc dbctx.Context, competenceID uuid.UUID) error {
	return rs.linkRepo.FullDeleteByCompetenceIDs(dbc, []uuid.UUID{competenceID})
}

func findCompetence(dbc dbctx.Context, repo repos.CompetenceRepo, id string) (*types.Competence, error) {
	competenceID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierr.NotFound(msgCompetenceNotFound)
	}
	competence, err := repo.GetByID(dbc, competenceID)
	if err != nil {
		return nil, err
	}
	if competence == nil {
		return nil, apierr.NotFound(msgCompetenceNotFound)
	}
	return competence, nil
}

func findQuestion(dbc dbctx.Context, repo repos.QuestionRepo, id string) (*types.Question, error) {
	questionID, err := uuid.Parse(id)
	if err != nil {
		return nil, apierr.NotFound(msgQuestionNotFound)
	}
	question, err := repo.GetByID(dbc, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apierr.NotFound(msgQuestionNotFound)
	}
	return question, nil
}

func uniqueStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
