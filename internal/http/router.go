package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/quizbank-backend/internal/http/handlers"
	httpMW "github.com/yungbote/quizbank-backend/internal/http/middleware"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	CompetenceHandler *httpH.CompetenceHandler
	QuestionHandler   *httpH.QuestionHandler
	RelationHandler   *httpH.RelationHandler
	PDFHandler        *httpH.PDFHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestScope())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
		}

		// Competences are open for reads and writes.
		if cfg.CompetenceHandler != nil {
			api.GET("/competences", cfg.CompetenceHandler.List)
			api.GET("/competences/:id", cfg.CompetenceHandler.Get)
			api.POST("/competences", cfg.CompetenceHandler.Create)
			api.PUT("/competences/:id", cfg.CompetenceHandler.Update)
			api.DELETE("/competences/:id", cfg.CompetenceHandler.Delete)
		}

		if cfg.UserHandler != nil {
			api.POST("/users", cfg.UserHandler.Create)
		}

		if cfg.PDFHandler != nil {
			api.POST("/pdf", cfg.PDFHandler.Export)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Questions
		if cfg.QuestionHandler != nil {
			protected.GET("/questions", cfg.QuestionHandler.List)
			protected.GET("/questions/:id", cfg.QuestionHandler.Get)
			protected.POST("/questions", cfg.QuestionHandler.Create)
			protected.PUT("/questions/:id", cfg.QuestionHandler.Update)
			protected.DELETE("/questions/:id", cfg.QuestionHandler.Delete)
		}

		// Competence <-> question relations
		if cfg.RelationHandler != nil {
			protected.POST("/questions/competences", cfg.RelationHandler.Create)
			protected.DELETE("/questions/:id/competences/:competenceId", cfg.RelationHandler.Delete)
			protected.GET("/questions/:id/competences", cfg.RelationHandler.CompetencesForQuestion)
			protected.GET("/competences/:id/questions", cfg.RelationHandler.QuestionsForCompetence)
		}

		// Users (self-service)
		if cfg.UserHandler != nil {
			protected.GET("/users", cfg.UserHandler.List)
			protected.GET("/users/:id", cfg.UserHandler.Get)
			protected.PUT("/users/:id", cfg.UserHandler.Update)
			protected.DELETE("/users/:id", cfg.UserHandler.Delete)
		}
	}

	return r
}
