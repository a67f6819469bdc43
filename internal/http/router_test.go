package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/quizbank-backend/internal/data/repos"
	"github.com/yungbote/quizbank-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/quizbank-backend/internal/http/handlers"
	httpMW "github.com/yungbote/quizbank-backend/internal/http/middleware"
	"github.com/yungbote/quizbank-backend/internal/quizpdf"
	"github.com/yungbote/quizbank-backend/internal/services"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	competenceRepo := repos.NewCompetenceRepo(db, log)
	questionRepo := repos.NewQuestionRepo(db, log)
	linkRepo := repos.NewCompetenceQuestionRepo(db, log)
	denylist := services.NewDBTokenDenylist(log, repos.NewRevokedTokenRepo(db, log))

	authService := services.NewAuthService(db, log, userRepo, denylist, "router-test-secret", 24*time.Hour)
	relations := services.NewRelationService(db, log, competenceRepo, questionRepo, linkRepo)
	aggregation := services.NewAggregationService(db, log, competenceRepo, questionRepo, linkRepo)

	engine := NewRouter(RouterConfig{
		Log:               log,
		AuthHandler:       httpH.NewAuthHandler(log, authService),
		AuthMiddleware:    httpMW.NewAuthMiddleware(log, authService),
		UserHandler:       httpH.NewUserHandler(log, services.NewUserService(db, log, userRepo)),
		CompetenceHandler: httpH.NewCompetenceHandler(log, services.NewCompetenceService(db, log, competenceRepo, relations)),
		QuestionHandler:   httpH.NewQuestionHandler(log, services.NewQuestionService(db, log, questionRepo, relations, aggregation)),
		RelationHandler:   httpH.NewRelationHandler(log, relations, aggregation),
		PDFHandler:        httpH.NewPDFHandler(log, services.NewQuizExportService(log, quizpdf.NewRenderer(quizpdf.Options{}))),
		HealthHandler:     httpH.NewHealthHandler(),
	})
	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequestWithContext(context.Background(), method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) decode(rec *httptest.ResponseRecorder, out any) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func (s *testServer) message(rec *httptest.ResponseRecorder) string {
	s.t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	s.decode(rec, &body)
	return body.Message
}

// signup creates a user and returns its id with a fresh token.
func (s *testServer) signup(username string) (string, string) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/users", "", gin.H{
		"name": "Test", "username": username, "email": username + "@example.com", "password": "Secret1!",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(s.t, "Created '"+username+"' with success", s.message(rec))

	rec = s.do(http.MethodPost, "/api/login", "", gin.H{"username": username, "password": "Secret1!"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	s.decode(rec, &login)
	require.NotEmpty(s.t, login.Token)

	rec = s.do(http.MethodGet, "/api/users", login.Token, nil)
	require.Equal(s.t, http.StatusOK, rec.Code)
	var users []map[string]any
	s.decode(rec, &users)
	for _, u := range users {
		assert.NotContains(s.t, u, "password")
		if u["username"] == username {
			return u["id"].(string), login.Token
		}
	}
	s.t.Fatalf("user %s not listed", username)
	return "", ""
}

func (s *testServer) createCompetence(title string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/competences", "", gin.H{"title": title, "description": "About " + title})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var c struct {
		ID string `json:"id"`
	}
	s.decode(rec, &c)
	return c.ID
}

func (s *testServer) createQuestion(token, title string, competences ...string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/questions", token, gin.H{
		"title":        title,
		"statement":    "Statement for " + title,
		"type":         "multiple",
		"font":         "enem",
		"year":         2020,
		"alternatives": []string{"a", "b"},
		"response":     "a",
		"competences":  competences,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(s.t, "Created '"+title+"' with success", s.message(rec))

	rec = s.do(http.MethodGet, "/api/questions", token, nil)
	require.Equal(s.t, http.StatusOK, rec.Code)
	var list []map[string]any
	s.decode(rec, &list)
	for _, q := range list {
		if q["title"] == title {
			return q["id"].(string)
		}
	}
	s.t.Fatalf("question %s not listed", title)
	return ""
}

func TestHealthcheck(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAuthGate(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/questions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication token not provided.", s.message(rec))

	rec = s.do(http.MethodGet, "/api/questions", "not.a.token", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid token.", s.message(rec))

	rec = s.do(http.MethodPost, "/api/login", "", gin.H{"username": "ghost", "password": "Secret1!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Credenciais inválidas", s.message(rec))

	_, token := s.signup("alice")
	rec = s.do(http.MethodGet, "/api/questions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = s.do(http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/questions", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCompetenceEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/competences", "", gin.H{"title": "  ", "description": "ok description"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Title isn`t empty,Title need minimum 3 characters and maximum 100 characters", s.message(rec))

	rec = s.do(http.MethodPost, "/api/competences", "", gin.H{})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, s.message(rec), "Title isn`t empty")
	assert.Contains(t, s.message(rec), "Description isn`t empty")

	rec = s.do(http.MethodPost, "/api/competences", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	id := s.createCompetence("Reading")

	rec = s.do(http.MethodPut, "/api/competences/"+id, "", gin.H{"title": "Writing", "description": "Writes texts"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated map[string]any
	s.decode(rec, &updated)
	assert.Equal(t, "Writing", updated["title"])

	rec = s.do(http.MethodDelete, "/api/competences/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delete competence 'Writing' with success", s.message(rec))

	rec = s.do(http.MethodGet, "/api/competences/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Competence not found", s.message(rec))
}

func TestRelationEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup("alice")
	cid := s.createCompetence("Reading")
	qid := s.createQuestion(token, "Essay")

	rec := s.do(http.MethodGet, "/api/questions/"+qid+"/competences", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	link := gin.H{"questionId": qid, "competenceId": cid}
	rec = s.do(http.MethodPost, "/api/questions/competences", token, link)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Created with success", s.message(rec))

	rec = s.do(http.MethodPost, "/api/questions/competences", token, link)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Exist relation", s.message(rec))

	rec = s.do(http.MethodGet, "/api/questions/"+qid+"/competences", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var qc struct {
		ID          string           `json:"id"`
		Title       string           `json:"title"`
		Competences []map[string]any `json:"competences"`
	}
	s.decode(rec, &qc)
	assert.Equal(t, qid, qc.ID)
	require.Len(t, qc.Competences, 1)
	assert.Equal(t, cid, qc.Competences[0]["id"])

	rec = s.do(http.MethodGet, "/api/competences/"+cid+"/questions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cq struct {
		Questions []map[string]any `json:"questions"`
	}
	s.decode(rec, &cq)
	require.Len(t, cq.Questions, 1)

	rec = s.do(http.MethodDelete, "/api/questions/"+qid+"/competences/"+cid, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delete relation with success", s.message(rec))

	rec = s.do(http.MethodDelete, "/api/questions/"+qid+"/competences/"+cid, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Relation not found", s.message(rec))
}

func TestQuestionEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup("alice")
	s.createCompetence("Algebra")
	qid := s.createQuestion(token, "Equations", "Algebra")

	rec := s.do(http.MethodGet, "/api/questions/"+qid, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var q map[string]any
	s.decode(rec, &q)
	assert.Equal(t, "Equations", q["title"])
	assert.Len(t, q["competences"], 1)

	rec = s.do(http.MethodPut, "/api/questions/"+qid, token, gin.H{
		"title": "Equations II", "statement": "New statement", "type": "open", "font": "school", "response": "x",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Updated 'Equations II' with success", s.message(rec))

	rec = s.do(http.MethodDelete, "/api/questions/"+qid, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delete question 'Equations II' with success", s.message(rec))

	rec = s.do(http.MethodGet, "/api/questions/"+qid, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Question not found", s.message(rec))
}

func TestUserOwnershipEndpoints(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.signup("alice")
	bobID, _ := s.signup("bob")

	rec := s.do(http.MethodGet, "/api/users/"+bobID, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to access this information.", s.message(rec))

	// Foreign ids are refused before the user is looked up.
	ghost := uuid.NewString()
	rec = s.do(http.MethodGet, "/api/users/"+ghost, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodPut, "/api/users/"+ghost, aliceToken, gin.H{
		"username": "ghost", "email": "ghost@example.com", "password": "Secret1!",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to modify this information.", s.message(rec))
	rec = s.do(http.MethodDelete, "/api/users/"+ghost, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to delete this information.", s.message(rec))

	rec = s.do(http.MethodPost, "/api/users", "", gin.H{
		"username": "alice", "email": "new@example.com", "password": "Secret1!",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Exist user with: alice", s.message(rec))

	rec = s.do(http.MethodPut, "/api/users/"+aliceID, aliceToken, gin.H{
		"name": "Alice", "username": "alicia", "email": "alice@example.com", "password": "Secret2?",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Updated 'alicia' with success", s.message(rec))

	rec = s.do(http.MethodDelete, "/api/users/"+aliceID, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delete user 'alicia' with success", s.message(rec))
}

func TestPDFEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/pdf", "", gin.H{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/pdf", "", gin.H{
		"title": "Simulado",
		"questions": []gin.H{{
			"title": "Q1", "statement": "2+2?", "type": "multiple", "font": "enem", "year": 2022,
			"alternatives": []string{"3", "4"}, "response": "4",
		}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Simulado.pdf", rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	for _, title := range []string{"Simulado ENEM; 2024", "Avaliação diagnóstica"} {
		rec = s.do(http.MethodPost, "/api/pdf", "", gin.H{"title": title})
		require.Equal(t, http.StatusOK, rec.Code)
		disposition, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
		require.NoError(t, err, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "attachment", disposition)
		assert.Equal(t, title+".pdf", params["filename"])
	}
}
