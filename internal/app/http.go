package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizbank-backend/internal/http"
	httpH "github.com/yungbote/quizbank-backend/internal/http/handlers"
	httpMW "github.com/yungbote/quizbank-backend/internal/http/middleware"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	User       *httpH.UserHandler
	Competence *httpH.CompetenceHandler
	Question   *httpH.QuestionHandler
	Relation   *httpH.RelationHandler
	PDF        *httpH.PDFHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Auth:       httpH.NewAuthHandler(log, services.Auth),
		User:       httpH.NewUserHandler(log, services.User),
		Competence: httpH.NewCompetenceHandler(log, services.Competence),
		Question:   httpH.NewQuestionHandler(log, services.Question),
		Relation:   httpH.NewRelationHandler(log, services.Relation, services.Aggregation),
		PDF:        httpH.NewPDFHandler(log, services.QuizExport),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func routerConfig(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) http.RouterConfig {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.RouterConfig{
		Log:               log,
		ServiceName:       serviceName,
		CORSOrigins:       cfg.CORSOrigins,
		HealthHandler:     handlers.Health,
		AuthHandler:       handlers.Auth,
		AuthMiddleware:    middleware.Auth,
		UserHandler:       handlers.User,
		CompetenceHandler: handlers.Competence,
		QuestionHandler:   handlers.Question,
		RelationHandler:   handlers.Relation,
		PDFHandler:        handlers.PDF,
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(routerConfig(log, cfg, handlers, middleware))
}
