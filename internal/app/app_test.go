package app

import (
	"bytes"
	"encoding/json"
	"engineer_connect_backend/internal/config"
	"engineer_connect_backend/internal/testutil"
	"engineer_connect_backend/internal/util"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Kind    util.ErrorKind  `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: gin.TestMode},
		JWT:     config.JWTConfig{Secret: "e2e-secret", ExpireTime: 24 * time.Hour},
		Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir(), MaxFileSizeMB: 10},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Retry:   config.RetryConfig{Attempts: 1},
	}
	return &testServer{t: t, router: New(cfg, testutil.NewDB(t), nil).Router}
}

func (s *testServer) call(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		s.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func (s *testServer) register(body map[string]interface{}) (string, uint) {
	s.t.Helper()
	code, env := s.call(http.MethodPost, "/api/users/register", "", body)
	if code != http.StatusCreated {
		s.t.Fatalf("register %v: %d %s", body["username"], code, env.Message)
	}
	var result struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	json.Unmarshal(env.Data, &result)
	return result.Token, result.User.ID
}

func (s *testServer) createProblem(token string, quiz map[string]interface{}) uint {
	s.t.Helper()
	body := map[string]interface{}{
		"company":     "Acme",
		"branch":      "computer",
		"title":       "Flaky tests",
		"description": "Half our integration tests are flaky",
		"difficulty":  "beginner",
		"tags":        "testing, ci",
	}
	if quiz != nil {
		body["quiz"] = quiz
	}
	code, env := s.call(http.MethodPost, "/api/problems", token, body)
	if code != http.StatusCreated {
		s.t.Fatalf("create problem: %d %s", code, env.Message)
	}
	var problem struct {
		ID uint `json:"id"`
	}
	json.Unmarshal(env.Data, &problem)
	return problem.ID
}

func TestRegisterLoginIdeaDuplicate(t *testing.T) {
	s := newTestServer(t)

	s.register(map[string]interface{}{"username": "alice", "password": "pw12345", "role": "student", "university": "MIT"})
	companyToken, _ := s.register(map[string]interface{}{"username": "acme", "password": "pw12345", "role": "company"})

	code, env := s.call(http.MethodPost, "/api/users/login", "", map[string]string{"username": "alice", "password": "pw12345"})
	if code != http.StatusOK {
		t.Fatalf("login: %d %s", code, env.Message)
	}
	var login struct {
		Token string `json:"token"`
	}
	json.Unmarshal(env.Data, &login)

	code, env = s.call(http.MethodPost, "/api/users/login", "", map[string]string{"username": "alice", "password": "nope"})
	if code != http.StatusUnauthorized || env.Kind != util.KindInvalidCredential {
		t.Fatalf("bad login: %d %s", code, env.Kind)
	}

	problemID := s.createProblem(companyToken, nil)
	idea := map[string]interface{}{"problemId": problemID, "ideaText": "Quarantine flaky tests"}

	code, env = s.call(http.MethodPost, "/api/ideas", login.Token, idea)
	if code != http.StatusCreated {
		t.Fatalf("first idea: %d %s", code, env.Message)
	}

	code, env = s.call(http.MethodPost, "/api/ideas", login.Token, idea)
	if code != http.StatusBadRequest || env.Kind != util.KindDuplicateSubmission {
		t.Fatalf("duplicate idea: %d %s", code, env.Kind)
	}

	code, env = s.call(http.MethodGet, fmt.Sprintf("/api/ideas/problem/%d", problemID), companyToken, nil)
	if code != http.StatusOK {
		t.Fatalf("company ideas: %d %s", code, env.Message)
	}
	var ideas []map[string]interface{}
	json.Unmarshal(env.Data, &ideas)
	if len(ideas) != 1 {
		t.Fatalf("ideas = %d", len(ideas))
	}

	if code, env = s.call(http.MethodPost, "/api/ideas", companyToken, idea); code != http.StatusForbidden {
		t.Fatalf("company submitting idea: %d %s", code, env.Kind)
	}
	if code, env = s.call(http.MethodPost, "/api/ideas", "", idea); code != http.StatusUnauthorized || env.Kind != util.KindNoCredential {
		t.Fatalf("anonymous idea: %d %s", code, env.Kind)
	}
}

func TestProblemDeletionOwnership(t *testing.T) {
	s := newTestServer(t)
	c1, _ := s.register(map[string]interface{}{"username": "c1", "password": "pw12345", "role": "company"})
	c2, _ := s.register(map[string]interface{}{"username": "c2", "password": "pw12345", "role": "company"})
	admin, _ := s.register(map[string]interface{}{"username": "root", "password": "pw12345", "role": "admin"})

	first := s.createProblem(c1, nil)
	second := s.createProblem(c1, nil)

	code, env := s.call(http.MethodDelete, fmt.Sprintf("/api/problems/%d", first), c2, nil)
	if code != http.StatusForbidden || env.Kind != util.KindOwnershipDenied {
		t.Fatalf("foreign company delete: %d %s", code, env.Kind)
	}
	if code, env = s.call(http.MethodDelete, fmt.Sprintf("/api/problems/%d", first), c1, nil); code != http.StatusOK {
		t.Fatalf("owner delete: %d %s", code, env.Message)
	}
	if code, env = s.call(http.MethodDelete, fmt.Sprintf("/api/problems/%d", second), admin, nil); code != http.StatusOK {
		t.Fatalf("admin delete: %d %s", code, env.Message)
	}
	if code, env = s.call(http.MethodGet, fmt.Sprintf("/api/problems/%d", second), "", nil); code != http.StatusNotFound {
		t.Fatalf("deleted problem still visible: %d", code)
	}
}

func TestQuizFlow(t *testing.T) {
	s := newTestServer(t)
	company, _ := s.register(map[string]interface{}{"username": "acme", "password": "pw12345", "role": "company"})
	student, _ := s.register(map[string]interface{}{"username": "bob", "password": "pw12345", "university": "ETH"})

	problemID := s.createProblem(company, map[string]interface{}{
		"enabled": true,
		"questions": []map[string]interface{}{
			{"question": "Capital of France?", "type": "multiple-choice", "options": []map[string]interface{}{
				{"text": "Paris", "isCorrect": true}, {"text": "Nice"},
			}},
			{"question": "Is Go compiled?", "type": "boolean", "correctAnswer": "true"},
		},
	})

	code, env := s.call(http.MethodGet, fmt.Sprintf("/api/problems/%d", problemID), "", nil)
	if code != http.StatusOK {
		t.Fatalf("get problem: %d", code)
	}
	if bytes.Contains(env.Data, []byte("isCorrect\":true")) || bytes.Contains(env.Data, []byte("correctAnswer")) {
		t.Fatalf("answer keys leaked: %s", env.Data)
	}

	submission := map[string]interface{}{
		"problemId": problemID,
		"timeSpent": 42,
		"answers": []map[string]interface{}{
			{"questionIndex": 0, "answer": "Paris"},
			{"questionIndex": 1, "answer": " TRUE "},
		},
	}
	code, env = s.call(http.MethodPost, "/api/quiz/submit", student, submission)
	if code != http.StatusCreated {
		t.Fatalf("submit quiz: %d %s", code, env.Message)
	}
	var outcome struct {
		Percentage int  `json:"percentage"`
		Passed     bool `json:"passed"`
	}
	json.Unmarshal(env.Data, &outcome)
	if outcome.Percentage != 100 || !outcome.Passed {
		t.Fatalf("outcome: %+v", outcome)
	}

	if code, env = s.call(http.MethodPost, "/api/quiz/submit", student, submission); code != http.StatusBadRequest || env.Kind != util.KindDuplicateSubmission {
		t.Fatalf("second submit: %d %s", code, env.Kind)
	}

	if code, _ = s.call(http.MethodGet, fmt.Sprintf("/api/quiz/responses/%d", problemID), company, nil); code != http.StatusOK {
		t.Fatalf("company responses: %d", code)
	}
	if code, _ = s.call(http.MethodDelete, fmt.Sprintf("/api/quiz/response/%d", problemID), student, nil); code != http.StatusOK {
		t.Fatalf("retake: %d", code)
	}
	if code, _ = s.call(http.MethodGet, fmt.Sprintf("/api/quiz/response/%d", problemID), student, nil); code != http.StatusNotFound {
		t.Fatalf("response after retake: %d", code)
	}

	plain := s.createProblem(company, nil)
	submission["problemId"] = plain
	if code, env = s.call(http.MethodPost, "/api/quiz/submit", student, submission); code != http.StatusNotFound || env.Kind != util.KindQuizNotEnabled {
		t.Fatalf("quiz not enabled: %d %s", code, env.Kind)
	}
}
