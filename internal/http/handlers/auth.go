package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizbank-backend/internal/http/response"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
	}
}

// POST /login
// body: { "username": "...", "email": "...", "password": "..." }
func (ah *AuthHandler) Login(c *gin.Context) {
	var req services.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c)
		return
	}
	token, err := ah.authService.Login(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"token": token})
}

// POST /logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, response.Message{Message: "Logout with success"})
}
