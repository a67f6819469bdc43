package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/quizbank-backend/internal/data/repos"
	"github.com/yungbote/quizbank-backend/internal/data/repos/testutil"
	"github.com/yungbote/quizbank-backend/internal/platform/apierr"
	"github.com/yungbote/quizbank-backend/internal/platform/ctxutil"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

const testSecret = "test-secret"

type harness struct {
	db  *gorm.DB
	log *logger.Logger

	userRepo       repos.UserRepo
	competenceRepo repos.CompetenceRepo
	questionRepo   repos.QuestionRepo
	linkRepo       repos.CompetenceQuestionRepo

	auth        AuthService
	users       UserService
	competences CompetenceService
	questions   QuestionService
	relations   RelationService
	aggregation AggregationService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	h := &harness{
		db:             db,
		log:            log,
		userRepo:       repos.NewUserRepo(db, log),
		competenceRepo: repos.NewCompetenceRepo(db, log),
		questionRepo:   repos.NewQuestionRepo(db, log),
		linkRepo:       repos.NewCompetenceQuestionRepo(db, log),
	}
	denylist := NewDBTokenDenylist(log, repos.NewRevokedTokenRepo(db, log))
	h.auth = NewAuthService(db, log, h.userRepo, denylist, testSecret, 24*time.Hour)
	h.users = NewUserService(db, log, h.userRepo)
	h.relations = NewRelationService(db, log, h.competenceRepo, h.questionRepo, h.linkRepo)
	h.aggregation = NewAggregationService(db, log, h.competenceRepo, h.questionRepo, h.linkRepo)
	h.competences = NewCompetenceService(db, log, h.competenceRepo, h.relations)
	h.questions = NewQuestionService(db, log, h.questionRepo, h.relations, h.aggregation)
	return h
}

func requireStatus(t *testing.T, err error, status int, msg string) {
	t.Helper()
	require.Error(t, err)
	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr), "expected apierr, got %T: %v", err, err)
	require.Equal(t, status, apiErr.Status, err.Error())
	if msg != "" {
		require.Equal(t, msg, err.Error())
	}
}

func asUser(ctx context.Context, id string) context.Context {
	uid, _ := uuid.Parse(id)
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: uid, Subject: id})
}
