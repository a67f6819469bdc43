package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizbank-backend/internal/platform/apierr"
)

const msgInternal = "Internal Server Error"

type Message struct {
	Message string `json:"message"`
}

// RespondError writes {message} with the status carried by err. Failures
// without a client-facing status are reported as 500 and recorded on the
// gin context for the request logger.
func RespondError(c *gin.Context, err error) {
	status := apierr.StatusOf(err)
	msg := msgInternal
	var apiErr *apierr.Error
	if status < http.StatusInternalServerError && errors.As(err, &apiErr) {
		msg = apiErr.Error()
	}
	if status >= http.StatusInternalServerError && err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, Message{Message: msg})
}

// AbortWithError is RespondError for middleware.
func AbortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, Message{Message: msg})
}

// RespondBadRequest reports a body that could not be decoded.
func RespondBadRequest(c *gin.Context) {
	RespondError(c, apierr.BadRequest("Invalid request body"))
}
