package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/quizbank-backend/internal/data/repos"
	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/apierr"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

// AggregationService answers the read paths that join questions and
// competences. Results are always resolved from the join table.
type AggregationService interface {
	// CompetencesForQuestion returns nil when the question exists but has no links.
	CompetencesForQuestion(ctx context.Context, questionID string) (*types.QuestionCompetences, error)
	// QuestionsForCompetence returns nil when the competence exists but has no links.
	QuestionsForCompetence(ctx context.Context, competenceID string) (*types.CompetenceQuestions, error)
	QuestionWithCompetences(ctx context.Context, questionID string) (*types.QuestionWithCompetences, error)
	AllQuestionsWithCompetences(ctx context.Context) ([]*types.QuestionWithCompetences, error)
}

type aggregationService struct {
	db             *gorm.DB
	log            *logger.Logger
	competenceRepo repos.CompetenceRepo
	questionRepo   repos.QuestionRepo
	linkRepo       repos.CompetenceQuestionRepo
}

func NewAggregationService(
	db *gorm.DB,
	log *logger.Logger,
	competenceRepo repos.CompetenceRepo,
	questionRepo repos.QuestionRepo,
	linkRepo repos.CompetenceQuestionRepo,
) AggregationService {
	return &aggregationService{
		db:             db,
		log:            log.With("service", "AggregationService"),
		competenceRepo: competenceRepo,
		questionRepo:   questionRepo,
		linkRepo:       linkRepo,
	}
}

func (as *aggregationService) CompetencesForQuestion(ctx context.Context, questionID string) (*types.QuestionCompetences, error) {
	dbc := dbctx.New(ctx)
	question, err := findQuestion(dbc, as.questionRepo, questionID)
	if err != nil {
		return nil, err
	}
	links, err := as.linkRepo.GetByQuestionIDs(dbc, []uuid.UUID{question.ID})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}
	competences, err := as.competencesByLinks(dbc, links)
	if err != nil {
		return nil, err
	}
	return &types.QuestionCompetences{
		ID:          question.ID,
		Title:       question.Title,
		Competences: merge(question, competences).Competences,
	}, nil
}

func (as *aggregationService) QuestionsForCompetence(ctx context.Context, competenceID string) (*types.CompetenceQuestions, error) {
	dbc := dbctx.New(ctx)
	competence, err := findCompetence(dbc, as.competenceRepo, competenceID)
	if err != nil {
		return nil, err
	}
	links, err := as.linkRepo.GetByCompetenceIDs(dbc, []uuid.UUID{competence.ID})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.QuestionID)
	}
	rows, err := as.questionRepo.GetByIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Question, len(rows))
	for _, q := range rows {
		byID[q.ID] = q
	}
	questions := make([]*types.Question, 0, len(links))
	for _, l := range links {
		if q, ok := byID[l.QuestionID]; ok {
			questions = append(questions, q)
		}
	}
	return &types.CompetenceQuestions{
		ID:        competence.ID,
		Title:     competence.Title,
		Questions: questions,
	}, nil
}

func (as *aggregationService) QuestionWithCompetences(ctx context.Context, questionID string) (*types.QuestionWithCompetences, error) {
	id, err := uuid.Parse(questionID)
	if err != nil {
		return nil, apierr.NotFound(msgQuestionNotFound)
	}

	var (
		question *types.Question
		links    []*types.CompetenceQuestion
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		question, err = as.questionRepo.GetByID(dbctx.New(gctx), id)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = as.linkRepo.GetByQuestionIDs(dbctx.New(gctx), []uuid.UUID{id})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apierr.NotFound(msgQuestionNotFound)
	}
	competences, err := as.competencesByLinks(dbctx.New(ctx), links)
	if err != nil {
		return nil, err
	}
	return merge(question, competences), nil
}

func (as *aggregationService) AllQuestionsWithCompetences(ctx context.Context) ([]*types.QuestionWithCompetences, error) {
	dbc := dbctx.New(ctx)
	questions, err := as.questionRepo.List(dbc)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	links, err := as.linkRepo.GetByQuestionIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	competences, err := as.competencesByLinks(dbc, links)
	if err != nil {
		return nil, err
	}
	out := make([]*types.QuestionWithCompetences, 0, len(questions))
	for _, q := range questions {
		out = append(out, merge(q, competences))
	}
	return out, nil
}

// competencesByLinks groups the linked competences by question id, in link order.
func (as *aggregationService) competencesByLinks(dbc dbctx.Context, links []*types.CompetenceQuestion) (map[uuid.UUID][]*types.Competence, error) {
	out := make(map[uuid.UUID][]*types.Competence)
	if len(links) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.CompetenceID)
	}
	rows, err := as.competenceRepo.GetByIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Competence, len(rows))
	for _, c := range rows {
		byID[c.ID] = c
	}
	for _, l := range links {
		if c, ok := byID[l.CompetenceID]; ok {
			out[l.QuestionID] = append(out[l.QuestionID], c)
		}
	}
	return out, nil
}

func merge(q *types.Question, competences map[uuid.UUID][]*types.Competence) *types.QuestionWithCompetences {
	list := competences[q.ID]
	if list == nil {
		list = []*types.Competence{}
	}
	return &types.QuestionWithCompetences{Question: q, Competences: list}
}
