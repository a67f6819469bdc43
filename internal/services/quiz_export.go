package services

import (
	"bytes"
	"context"
	"strings"

	"github.com/yungbote/quizbank-backend/internal/platform/apierr"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/quizpdf"
)

type QuizExportService interface {
	Export(ctx context.Context, quiz quizpdf.Quiz) ([]byte, error)
}

type quizExportService struct {
	log      *logger.Logger
	renderer *quizpdf.Renderer
}

func NewQuizExportService(log *logger.Logger, renderer *quizpdf.Renderer) QuizExportService {
	return &quizExportService{
		log:      log.With("service", "QuizExportService"),
		renderer: renderer,
	}
}

func (qs *quizExportService) Export(ctx context.Context, quiz quizpdf.Quiz) ([]byte, error) {
	if strings.TrimSpace(quiz.Title) == "" {
		return nil, apierr.BadRequest("Title isn`t empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := qs.renderer.Render(&buf, quiz); err != nil {
		qs.log.Error("Quiz render failed", "error", err)
		return nil, apierr.BadRequest("Quiz could not be rendered")
	}
	qs.log.Debug("Quiz rendered", "questions", len(quiz.Questions), "bytes", buf.Len())
	return buf.Bytes(), nil
}
