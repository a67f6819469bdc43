package handlers

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizbank-backend/internal/http/response"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/quizpdf"
	"github.com/yungbote/quizbank-backend/internal/services"
)

type PDFHandler struct {
	log        *logger.Logger
	quizExport services.QuizExportService
}

func NewPDFHandler(log *logger.Logger, quizExport services.QuizExportService) *PDFHandler {
	return &PDFHandler{
		log:        log.With("handler", "PDFHandler"),
		quizExport: quizExport,
	}
}

// POST /pdf
// body: { "title": "...", "questions": [ ... ] }
func (h *PDFHandler) Export(c *gin.Context) {
	var quiz quizpdf.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		response.RespondBadRequest(c)
		return
	}
	out, err := h.quizExport.Export(c.Request.Context(), quiz)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	c.Header("Content-Disposition", attachment(quiz.Title+".pdf"))
	c.Data(http.StatusOK, "application/pdf", out)
}

// attachment quotes or RFC 2231-encodes filename as the header requires.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
