package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizbank-backend/internal/http/response"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

// GET /users
func (uh *UserHandler) List(c *gin.Context) {
	users, err := uh.userService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, users)
}

// POST /users
func (uh *UserHandler) Create(c *gin.Context) {
	var req services.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c)
		return
	}
	u, err := uh.userService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusCreated, fmt.Sprintf("Created '%s' with success", u.Username))
}

// GET /users/:id
func (uh *UserHandler) Get(c *gin.Context) {
	u, err := uh.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// PUT /users/:id
func (uh *UserHandler) Update(c *gin.Context) {
	var req services.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c)
		return
	}
	u, err := uh.userService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, fmt.Sprintf("Updated '%s' with success", u.Username))
}

// DELETE /users/:id
func (uh *UserHandler) Delete(c *gin.Context) {
	u, err := uh.userService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, fmt.Sprintf("Delete user '%s' with success", u.Username))
}
