package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizbank-backend/internal/http/response"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/services"
)

type QuestionHandler struct {
	log             *logger.Logger
	questionService services.QuestionService
}

func NewQuestionHandler(log *logger.Logger, questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		log:             log.With("handler", "QuestionHandler"),
		questionService: questionService,
	}
}

// GET /questions
func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, questions)
}

// GET /questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	question, err := h.questionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, question)
}

// POST /questions
// body: question fields plus "competences": ["<competence title>", ...]
func (h *QuestionHandler) Create(c *gin.Context) {
	var req services.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c)
		return
	}
	question, err := h.questionService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusCreated, fmt.Sprintf("Created '%s' with success", question.Title))
}

// PUT /questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	var req services.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c)
		return
	}
	question, err := h.questionService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, fmt.Sprintf("Updated '%s' with success", question.Title))
}

// DELETE /questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	question, err := h.questionService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, fmt.Sprintf("Delete question '%s' with success", question.Title))
}
