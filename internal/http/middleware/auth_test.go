package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/quizbank-backend/internal/platform/apierr"
	"github.com/yungbote/quizbank-backend/internal/platform/ctxutil"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
	"github.com/yungbote/quizbank-backend/internal/services"
)

type stubAuth struct {
	services.AuthService
	userID uuid.UUID
	seen   string
}

func (s *stubAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	s.seen = token
	switch token {
	case "":
		return ctx, apierr.Unauthorized("Authentication token not provided.")
	case "good":
		return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: s.userID, Subject: s.userID.String()}), nil
	default:
		return ctx, apierr.Forbidden("Invalid token.")
	}
}

func (s *stubAuth) GetAccessTTL() time.Duration { return time.Hour }

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", extractToken("Bearer abc"))
	assert.Equal(t, "abc", extractToken("Token   abc"))
	assert.Equal(t, "", extractToken("abc"))
	assert.Equal(t, "", extractToken(""))
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubAuth{userID: uuid.New()}
	am := NewAuthMiddleware(logger.Nop(), stub)

	r := gin.New()
	r.GET("/private", am.RequireAuth(), func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.String(http.StatusOK, rd.Subject)
	})

	cases := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing", "", http.StatusUnauthorized, "Authentication token not provided."},
		{"scheme only", "Bearer", http.StatusUnauthorized, "Authentication token not provided."},
		{"invalid", "Bearer nope", http.StatusForbidden, "Invalid token."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.message, body["message"])
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stub.userID.String(), rec.Body.String())
	assert.Equal(t, "good", stub.seen)
}
