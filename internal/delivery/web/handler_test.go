package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/tiara-archive-bot/internal/domain/entities"
	"github.com/aliskhannn/tiara-archive-bot/internal/quiz"
	"github.com/aliskhannn/tiara-archive-bot/internal/quiz/quiztest"
	"github.com/aliskhannn/tiara-archive-bot/internal/repository"
	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

const testOrigin = "http://localhost:5173"

func newTestRouter(t *testing.T) (*gin.Engine, *quiztest.Scheduler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.NewQuizRepositoryFromQuizzes([]entities.Quiz{
		{
			Title:    "Пустая витрина",
			Subtitle: "Осмотр",
			Questions: []entities.Question{
				{ID: 1, Text: "Витрина разбита?", Options: []string{"Нет", "Да"}, CorrectAnswer: entities.IntPtr(0), Hints: []string{"", "Осколков нет"}},
				{ID: 2, Text: "Кто видел тиару?", Options: []string{"Охранник", "Реставратор"}, CorrectAnswer: entities.IntPtr(1)},
			},
			CompletionText: "Витрина вскрыта ключом.",
		},
		{
			Title:     "Журнал",
			Questions: []entities.Question{{ID: 1, Text: "Кто?", Options: []string{"a", "b"}, CorrectAnswer: entities.IntPtr(0)}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	sched := quiztest.NewScheduler()
	session := service.NewSession(repo, service.AttemptSettings{Scheduler: sched}, zap.NewNop())
	router := NewRouter(RouterConfig{
		Handler:        NewHandler(session, zap.NewNop()),
		Logger:         zap.NewNop(),
		AllowedOrigins: []string{testOrigin},
	})
	return router, sched
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestHealthCheckAndIndex(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/healthcheck", "")
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("unexpected healthcheck %d %q", rr.Code, rr.Body.String())
	}

	rr = do(t, router, http.MethodGet, "/", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "<title>Архив Тиары Афродиты</title>") {
		t.Fatalf("unexpected index page %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestQuizWalkThrough(t *testing.T) {
	router, sched := newTestRouter(t)

	menu := decode[menuResponse](t, do(t, router, http.MethodGet, "/api/quizzes", ""))
	if len(menu.Entries) != 2 || menu.Entries[0].QuestionsLabel != "2 вопроса" || menu.Entries[0].Completed {
		t.Fatalf("unexpected menu %+v", menu)
	}

	rr := do(t, router, http.MethodPost, "/api/quizzes/0/start", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("start: %d %s", rr.Code, rr.Body.String())
	}
	state := decode[stateResponse](t, rr)
	if state.View != "quiz" || state.Attempt == nil || state.Attempt.Question != "Витрина разбита?" {
		t.Fatalf("unexpected state %+v", state)
	}

	// Wrong answer: only the pick is marked, the hint is shown.
	state = decode[stateResponse](t, do(t, router, http.MethodPost, "/api/answer", `{"option":1}`))
	a := state.Attempt
	if a.Feedback == nil || a.Feedback.Correct || a.Feedback.Hint != "Осколков нет" || !a.Locked {
		t.Fatalf("unexpected feedback %+v", a.Feedback)
	}
	if a.Options[1].State != "wrong" || a.Options[0].State != "idle" {
		t.Fatalf("unexpected option states %+v", a.Options)
	}

	sched.Advance(quiz.DefaultIncorrectDelay)
	state = decode[stateResponse](t, do(t, router, http.MethodGet, "/api/state", ""))
	if state.Attempt.Feedback != nil || state.Attempt.Locked || state.Attempt.Current != 0 {
		t.Fatalf("expected the question to reset, got %+v", state.Attempt)
	}

	state = decode[stateResponse](t, do(t, router, http.MethodPost, "/api/answer", `{"option":0}`))
	if state.Attempt.Options[0].State != "correct" {
		t.Fatalf("expected correct mark, got %+v", state.Attempt.Options)
	}
	sched.Advance(quiz.DefaultCorrectDelay)

	do(t, router, http.MethodPost, "/api/answer", `{"option":1}`)
	sched.Advance(quiz.DefaultCorrectDelay)

	state = decode[stateResponse](t, do(t, router, http.MethodGet, "/api/state", ""))
	if state.View != "menu" || !state.Completed[0] || state.Completed[1] {
		t.Fatalf("expected the first quiz completed, got %+v", state)
	}
	if state.LastCompleted == nil || state.LastCompleted.Text != "Витрина вскрыта ключом." {
		t.Fatalf("unexpected completion panel %+v", state.LastCompleted)
	}

	menu = decode[menuResponse](t, do(t, router, http.MethodGet, "/api/quizzes", ""))
	if !menu.Entries[0].Completed || menu.Entries[0].Action != service.ActionRetake || menu.AllCompleted {
		t.Fatalf("unexpected menu %+v", menu)
	}

	state = decode[stateResponse](t, do(t, router, http.MethodPost, "/api/menu", ""))
	if state.LastCompleted != nil {
		t.Fatalf("menu must dismiss the completion panel")
	}
}

func TestCongratulationsAndRestart(t *testing.T) {
	router, sched := newTestRouter(t)

	do(t, router, http.MethodPost, "/api/quizzes/1/start", "")
	do(t, router, http.MethodPost, "/api/answer", `{"option":0}`)
	sched.Advance(quiz.DefaultCorrectDelay)
	do(t, router, http.MethodPost, "/api/quizzes/0/start", "")
	do(t, router, http.MethodPost, "/api/answer", `{"option":0}`)
	sched.Advance(quiz.DefaultCorrectDelay)
	do(t, router, http.MethodPost, "/api/answer", `{"option":1}`)
	sched.Advance(quiz.DefaultCorrectDelay)

	menu := decode[menuResponse](t, do(t, router, http.MethodGet, "/api/quizzes", ""))
	if !menu.AllCompleted || menu.Congratulations == nil {
		t.Fatalf("expected congratulations, got %+v", menu)
	}

	state := decode[stateResponse](t, do(t, router, http.MethodPost, "/api/restart", ""))
	if state.AllCompleted || state.Completed[0] || state.Completed[1] || state.View != "menu" {
		t.Fatalf("restart must clear progress, got %+v", state)
	}
}

func TestErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{name: "bad index", method: http.MethodPost, path: "/api/quizzes/abc/start", status: http.StatusBadRequest, code: "invalid_index"},
		{name: "negative index", method: http.MethodPost, path: "/api/quizzes/-1/start", status: http.StatusBadRequest, code: "invalid_index"},
		{name: "unknown quiz", method: http.MethodPost, path: "/api/quizzes/7/start", status: http.StatusNotFound, code: "quiz_not_found"},
		{name: "no attempt", method: http.MethodPost, path: "/api/answer", body: `{"option":0}`, status: http.StatusConflict, code: "no_active_quiz"},
		{name: "malformed body", method: http.MethodPost, path: "/api/answer", body: `{"option":`, status: http.StatusBadRequest, code: "invalid_body"},
		{name: "missing option", method: http.MethodPost, path: "/api/answer", body: `{}`, status: http.StatusBadRequest, code: "invalid_body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, tt.method, tt.path, tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d %s", tt.status, rr.Code, rr.Body.String())
			}
			env := decode[ErrorEnvelope](t, rr)
			if env.Error.Code != tt.code || env.Error.Message == "" {
				t.Fatalf("unexpected error %+v", env.Error)
			}
		})
	}
}

func TestOutOfRangeAnswerIsIgnored(t *testing.T) {
	router, _ := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/quizzes/0/start", "")

	rr := do(t, router, http.MethodPost, "/api/answer", `{"option":5}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	state := decode[stateResponse](t, rr)
	if state.Attempt.Feedback != nil || state.Attempt.Locked {
		t.Fatalf("out-of-range option must not change state, got %+v", state.Attempt)
	}
}

func TestCORS(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Origin", testOrigin)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != testOrigin {
		t.Fatalf("expected CORS header for %s, got %q", testOrigin, got)
	}
}
