package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizbank-backend/internal/http/response"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/services"
)

type CompetenceHandler struct {
	log               *logger.Logger
	competenceService services.CompetenceService
}

func NewCompetenceHandler(log *logger.Logger, competenceService services.CompetenceService) *CompetenceHandler {
	return &CompetenceHandler{
		log:               log.With("handler", "CompetenceHandler"),
		competenceService: competenceService,
	}
}

func (h *CompetenceHandler) List(c *gin.Context) {
	competences, err := h.competenceService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, competences)
}

func (h *CompetenceHandler) Get(c *gin.Context) {
	competence, err := h.competenceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, competence)
}

// Create echoes the stored record.
func (h *CompetenceHandler) Create(c *gin.Context) {
	var req services.CompetenceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c)
		return
	}
	competence, err := h.competenceService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, competence)
}

func (h *CompetenceHandler) Update(c *gin.Context) {
	var req services.CompetenceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c)
		return
	}
	competence, err := h.competenceService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, competence)
}

func (h *CompetenceHandler) Delete(c *gin.Context) {
	competence, err := h.competenceService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, fmt.Sprintf("Delete competence '%s' with success", competence.Title))
}
