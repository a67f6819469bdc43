package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/quizbank-backend/internal/platform/ctxutil"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

func scopedEngine(log *logger.Logger, seen **ctxutil.TraceData) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachRequestScope())
	if log != nil {
		r.Use(RequestLogger(log))
	}
	capture := func(c *gin.Context) {
		*seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	}
	api := r.Group("/api")
	api.GET("/questions/:id", capture)
	api.GET("/competences/:id/questions", capture)
	api.DELETE("/questions/:id/competences/:competenceId", capture)
	api.GET("/users/:id", capture)
	api.GET("/competences", capture)
	return r
}

func TestAttachRequestScopeIDs(t *testing.T) {
	var td *ctxutil.TraceData
	r := scopedEngine(nil, &td)

	req := httptest.NewRequest(http.MethodGet, "/api/competences", nil)
	req.Header.Set("X-Request-Id", "req-1")
	req.Header.Set("X-Trace-Id", "trace-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.NotNil(t, td)
	assert.Equal(t, "req-1", td.RequestID)
	assert.Equal(t, "trace-1", td.TraceID)
	assert.Equal(t, "/api/competences", td.Route)
	assert.Empty(t, td.Resources)
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "trace-1", rec.Header().Get("X-Trace-Id"))

	for _, bad := range []string{"has space", "tab\tid", strings.Repeat("x", 129), "ação"} {
		req = httptest.NewRequest(http.MethodGet, "/api/competences", nil)
		req.Header.Set("X-Request-Id", bad)
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		got := rec.Header().Get("X-Request-Id")
		assert.NotEqual(t, bad, got)
		assert.Len(t, got, 36, "replaced with a generated uuid")
	}
}

func TestAttachRequestScopeResources(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   []ctxutil.RouteResource
	}{
		{http.MethodGet, "/api/questions/q1", []ctxutil.RouteResource{{Key: "question_id", ID: "q1"}}},
		{http.MethodGet, "/api/competences/c1/questions", []ctxutil.RouteResource{{Key: "competence_id", ID: "c1"}}},
		{http.MethodDelete, "/api/questions/q1/competences/c1", []ctxutil.RouteResource{
			{Key: "question_id", ID: "q1"},
			{Key: "competence_id", ID: "c1"},
		}},
		{http.MethodGet, "/api/users/u1", []ctxutil.RouteResource{{Key: "target_user_id", ID: "u1"}}},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			var td *ctxutil.TraceData
			r := scopedEngine(nil, &td)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, td)
			assert.Equal(t, tc.want, td.Resources)
		})
	}
}

func TestRequestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	var td *ctxutil.TraceData
	r := scopedEngine(log, &td)

	req := httptest.NewRequest(http.MethodDelete, "/api/questions/q1/competences/c1", nil)
	req.Header.Set("X-Request-Id", "req-9")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/questions/:id/competences/:competenceId", fields["path"])
	assert.Equal(t, "req-9", fields["request_id"])
	assert.Equal(t, "q1", fields["question_id"])
	assert.Equal(t, "c1", fields["competence_id"])

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/missing", nil))
	entries = logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "/api/missing", entries[1].ContextMap()["path"])
}
