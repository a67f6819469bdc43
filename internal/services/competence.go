package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/quizbank-backend/internal/data/repos"
	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/validation"
)

type CompetenceInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var competenceRules = validation.Schema[CompetenceInput]{
	{Field: "title", Value: func(in CompetenceInput) any { return in.Title }, Tag: "required", Message: "Title isn`t empty"},
	{Field: "title", Value: func(in CompetenceInput) any { return in.Title }, Tag: "min=3,max=100", Message: "Title need minimum 3 characters and maximum 100 characters"},
	{Field: "description", Value: func(in CompetenceInput) any { return in.Description }, Tag: "required", Message: "Description isn`t empty"},
	{Field: "description", Value: func(in CompetenceInput) any { return in.Description }, Tag: "min=3,max=255", Message: "Description need minimum 3 characters and maximum 255 characters"},
}

type CompetenceService interface {
	List(ctx context.Context) ([]*types.Competence, error)
	Get(ctx context.Context, id string) (*types.Competence, error)
	Create(ctx context.Context, in CompetenceInput) (*types.Competence, error)
	Update(ctx context.Context, id string, in CompetenceInput) (*types.Competence, error)
	Delete(ctx context.Context, id string) (*types.Competence, error)
}

type competenceService struct {
	db             *gorm.DB
	log            *logger.Logger
	competenceRepo repos.CompetenceRepo
	relations      RelationService
}

func NewCompetenceService(db *gorm.DB, log *logger.Logger, competenceRepo repos.CompetenceRepo, relations RelationService) CompetenceService {
	return &competenceService{
		db:             db,
		log:            log.With("service", "CompetenceService"),
		competenceRepo: competenceRepo,
		relations:      relations,
	}
}

func (cs *competenceService) List(ctx context.Context) ([]*types.Competence, error) {
	return cs.competenceRepo.List(dbctx.New(ctx))
}

func (cs *competenceService) Get(ctx context.Context, id string) (*types.Competence, error) {
	return findCompetence(dbctx.New(ctx), cs.competenceRepo, id)
}

func (cs *competenceService) Create(ctx context.Context, in CompetenceInput) (*types.Competence, error) {
	in = sanitizeCompetence(in)
	if err := competenceRules.Validate(in); err != nil {
		return nil, err
	}
	competence := &types.Competence{Title: in.Title, Description: in.Description}
	if _, err := cs.competenceRepo.Create(dbctx.New(ctx), []*types.Competence{competence}); err != nil {
		return nil, fmt.Errorf("create competence: %w", err)
	}
	cs.log.Info("Competence created", "competence", competence.ID)
	return competence, nil
}

func (cs *competenceService) Update(ctx context.Context, id string, in CompetenceInput) (*types.Competence, error) {
	in = sanitizeCompetence(in)
	if err := competenceRules.Validate(in); err != nil {
		return nil, err
	}
	dbc := dbctx.New(ctx)
	competence, err := findCompetence(dbc, cs.competenceRepo, id)
	if err != nil {
		return nil, err
	}
	competence.Title = in.Title
	competence.Description = in.Description
	if err := cs.competenceRepo.Update(dbc, competence); err != nil {
		return nil, fmt.Errorf("update competence: %w", err)
	}
	return competence, nil
}

// Delete removes the competence together with its links.
func (cs *competenceService) Delete(ctx context.Context, id string) (*types.Competence, error) {
	var deleted *types.Competence
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		competence, err := findCompetence(dbc, cs.competenceRepo, id)
		if err != nil {
			return err
		}
		if err := cs.relations.PurgeCompetence(dbc, competence.ID); err != nil {
			return err
		}
		if err := cs.competenceRepo.FullDeleteByIDs(dbc, []uuid.UUID{competence.ID}); err != nil {
			return err
		}
		deleted = competence
		return nil
	})
	if err != nil {
		return nil, err
	}
	cs.log.Info("Competence deleted", "competence", deleted.ID)
	return deleted, nil
}

func sanitizeCompetence(in CompetenceInput) CompetenceInput {
	return CompetenceInput{
		Title:       validation.Sanitize(in.Title),
		Description: validation.Sanitize(in.Description),
	}
}
