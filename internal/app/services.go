package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/quizpdf"
	"github.com/yungbote/quizbank-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Competence  services.CompetenceService
	Question    services.QuestionService
	Relation    services.RelationService
	Aggregation services.AggregationService
	QuizExport  services.QuizExportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	var denylist services.TokenDenylist
	if clients.RedisDenylist != nil {
		denylist = clients.RedisDenylist
	} else {
		denylist = services.NewDBTokenDenylist(log, repos.RevokedToken)
	}

	authService := services.NewAuthService(db, log, repos.User, denylist, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	userService := services.NewUserService(db, log, repos.User)
	relationService := services.NewRelationService(db, log, repos.Competence, repos.Question, repos.CompetenceQuestion)
	aggregationService := services.NewAggregationService(db, log, repos.Competence, repos.Question, repos.CompetenceQuestion)
	competenceService := services.NewCompetenceService(db, log, repos.Competence, relationService)
	questionService := services.NewQuestionService(db, log, repos.Question, relationService, aggregationService)
	quizExportService := services.NewQuizExportService(log, quizpdf.NewRenderer(quizpdf.Options{Banner: cfg.PDFBanner}))

	return Services{
		Auth:        authService,
		User:        userService,
		Competence:  competenceService,
		Question:    questionService,
		Relation:    relationService,
		Aggregation: aggregationService,
		QuizExport:  quizExportService,
	}
}
