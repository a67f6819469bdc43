package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/quizbank-backend/internal/data/repos"
	types "github.com/yungbote/quizbank-backend/internal/domain"
	"github.com/yungbote/quizbank-backend/internal/platform/apierr"
	"github.com/yungbote/quizbank-backend/internal/platform/dbctx"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/validation"
)

type QuestionInput struct {
	Title        string   `json:"title"`
	Statement    string   `json:"statement"`
	Image        *string  `json:"image"`
	Type         string   `json:"type"`
	Font         string   `json:"font"`
	Year         *int     `json:"year"`
	Alternatives []string `json:"alternatives"`
	Response     string   `json:"response"`
	// Competences names linked competences by title.
	Competences []string `json:"competences"`
}

var questionRules = validation.Schema[QuestionInput]{
	{Field: "title", Value: func(in QuestionInput) any { return in.Title }, Tag: "required", Message: "Title isn`t empty"},
	{Field: "title", Value: func(in QuestionInput) any { return in.Title }, Tag: "min=3,max=100", Message: "Title need minimum 3 characters and maximum 100 characters"},
	{Field: "statement", Value: func(in QuestionInput) any { return in.Statement }, Tag: "required", Message: "Statement isn`t empty"},
	{Field: "type", Value: func(in QuestionInput) any { return in.Type }, Tag: "required", Message: "Type isn`t empty"},
	{Field: "type", Value: func(in QuestionInput) any { return in.Type }, Tag: "min=3,max=50", Message: "Type need minimum 3 characters and maximum 50 characters"},
	{Field: "font", Value: func(in QuestionInput) any { return in.Font }, Tag: "required", Message: "Font isn`t empty"},
	{Field: "font", Value: func(in QuestionInput) any { return in.Font }, Tag: "oneof=" + strings.Join(types.QuestionFonts, " "), Message: "Font is invalid"},
	{Field: "year", Value: func(in QuestionInput) any { return in.Year }, Tag: "gte=1900", Message: "Year is invalid", Optional: true},
	{Field: "alternatives", Value: func(in QuestionInput) any { return in.Alternatives }, Tag: "min=2", Message: "Need at least two alternatives", Optional: true},
	{Field: "response", Value: func(in QuestionInput) any { return in.Response }, Tag: "required", Message: "Response isn`t empty"},
	{Field: "response", Value: func(in QuestionInput) any { return in.Response }, Tag: "max=255", Message: "Response need maximum 255 characters"},
}

func (in QuestionInput) sanitized() QuestionInput {
	out := QuestionInput{
		Title:        validation.SanitizeKeepSlash(in.Title),
		Statement:    validation.SanitizeKeepSlash(in.Statement),
		Type:         validation.Sanitize(in.Type),
		Font:         validation.Sanitize(in.Font),
		Year:         in.Year,
		Alternatives: validation.SanitizeAll(in.Alternatives, validation.SanitizeKeepSlash),
		Response:     validation.SanitizeKeepSlash(in.Response),
		// Stored competence titles are escaped, so lookups must be too.
		Competences: validation.SanitizeAll(in.Competences, validation.Sanitize),
	}
	if in.Image != nil {
		if img := validation.SanitizeKeepSlash(*in.Image); img != "" {
			out.Image = &img
		}
	}
	return out
}

func (in QuestionInput) apply(q *types.Question) {
	q.Title = in.Title
	q.Statement = in.Statement
	q.Image = in.Image
	q.Type = in.Type
	q.Font = in.Font
	q.Year = in.Year
	if in.Alternatives != nil {
		q.Alternatives = datatypes.JSONSlice[string](in.Alternatives)
	} else {
		q.Alternatives = nil
	}
	q.Response = in.Response
}

type QuestionService interface {
	List(ctx context.Context) ([]*types.QuestionWithCompetences, error)
	Get(ctx context.Context, id string) (*types.QuestionWithCompetences, error)
	Create(ctx context.Context, in QuestionInput) (*types.Question, error)
	Update(ctx context.Context, id string, in QuestionInput) (*types.Question, error)
	Delete(ctx context.Context, id string) (*types.Question, error)
}

type questionService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuestionRepo
	relations    RelationService
	aggregation  AggregationService
}

func NewQuestionService(
	db *gorm.DB,
	log *logger.Logger,
	questionRepo repos.QuestionRepo,
	relations RelationService,
	aggregation AggregationService,
) QuestionService {
	return &questionService{
		db:           db,
		log:          log.With("service", "QuestionService"),
		questionRepo: questionRepo,
		relations:    relations,
		aggregation:  aggregation,
	}
}

func (qs *questionService) List(ctx context.Context) ([]*types.QuestionWithCompetences, error) {
	return qs.aggregation.AllQuestionsWithCompetences(ctx)
}

func (qs *questionService) Get(ctx context.Context, id string) (*types.QuestionWithCompetences, error) {
	return qs.aggregation.QuestionWithCompetences(ctx, id)
}

func (qs *questionService) Create(ctx context.Context, in QuestionInput) (*types.Question, error) {
	in = in.sanitized()
	if err := questionRules.Validate(in); err != nil {
		return nil, err
	}
	question := &types.Question{}
	in.apply(question)
	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := qs.checkConflict(dbc, in, uuid.Nil); err != nil {
			return err
		}
		if _, err := qs.questionRepo.Create(dbc, []*types.Question{question}); err != nil {
			return apierr.FromStore(err, "Exist question with: "+in.Title)
		}
		n, err := qs.relations.ReplaceLinksForQuestion(dbc, question.ID, in.Competences, false)
		if err != nil {
			return err
		}
		qs.log.Info("Question created", "question", question.ID, "links", n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// Update rewrites the question and replaces its links wholesale.
func (qs *questionService) Update(ctx context.Context, id string, in QuestionInput) (*types.Question, error) {
	in = in.sanitized()
	if err := questionRules.Validate(in); err != nil {
		return nil, err
	}
	var updated *types.Question
	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		question, err := findQuestion(dbc, qs.questionRepo, id)
		if err != nil {
			return err
		}
		if err := qs.checkConflict(dbc, in, question.ID); err != nil {
			return err
		}
		in.apply(question)
		if err := qs.questionRepo.Update(dbc, question); err != nil {
			return apierr.FromStore(err, "Exist question with: "+in.Title)
		}
		n, err := qs.relations.ReplaceLinksForQuestion(dbc, question.ID, in.Competences, true)
		if err != nil {
			return err
		}
		qs.log.Info("Question updated", "question", question.ID, "links", n)
		updated = question
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (qs *questionService) Delete(ctx context.Context, id string) (*types.Question, error) {
	var deleted *types.Question
	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		question, err := findQuestion(dbc, qs.questionRepo, id)
		if err != nil {
			return err
		}
		if err := qs.relations.PurgeQuestion(dbc, question.ID); err != nil {
			return err
		}
		if err := qs.questionRepo.FullDeleteByIDs(dbc, []uuid.UUID{question.ID}); err != nil {
			return err
		}
		deleted = question
		return nil
	})
	if err != nil {
		return nil, err
	}
	qs.log.Info("Question deleted", "question", deleted.ID)
	return deleted, nil
}

func (qs *questionService) checkConflict(dbc dbctx.Context, in QuestionInput, self uuid.UUID) error {
	existing, err := qs.questionRepo.FindConflicting(dbc, in.Title, in.Statement, self)
	if err != nil {
		return err
	}
	if existing != nil {
		return apierr.Conflict("Exist question with: " + in.Title)
	}
	return nil
}
