package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizbank-backend/internal/http/response"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/services"
)

type RelationHandler struct {
	log         *logger.Logger
	relations   services.RelationService
	aggregation services.AggregationService
}

func NewRelationHandler(log *logger.Logger, relations services.RelationService, aggregation services.AggregationService) *RelationHandler {
	return &RelationHandler{
		log:         log.With("handler", "RelationHandler"),
		relations:   relations,
		aggregation: aggregation,
	}
}

// POST /questions/competences
// body: { "questionId": "...", "competenceId": "..." }
func (h *RelationHandler) Create(c *gin.Context) {
	var req struct {
		QuestionID   string `json:"questionId"`
		CompetenceID string `json:"competenceId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c)
		return
	}
	if err := h.relations.CreateLink(c.Request.Context(), req.QuestionID, req.CompetenceID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusCreated, "Created with success")
}

// DELETE /questions/:id/competences/:competenceId
func (h *RelationHandler) Delete(c *gin.Context) {
	if err := h.relations.DeleteLink(c.Request.Context(), c.Param("id"), c.Param("competenceId")); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "Delete relation with success")
}

// GET /questions/:id/competences
func (h *RelationHandler) CompetencesForQuestion(c *gin.Context) {
	out, err := h.aggregation.CompetencesForQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if out == nil {
		response.RespondOK(c, []any{})
		return
	}
	response.RespondOK(c, out)
}

// GET /competences/:id/questions
func (h *RelationHandler) QuestionsForCompetence(c *gin.Context) {
	out, err := h.aggregation.QuestionsForCompetence(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if out == nil {
		response.RespondOK(c, []any{})
		return
	}
	response.RespondOK(c, out)
}
