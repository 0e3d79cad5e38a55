package web

import (
	_ "embed"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

//go:embed static/index.html
var indexHTML []byte

var ErrInvalidQuizIndex = errors.New("quiz index must be a non-negative integer")

// Handler serves a single process-wide session over HTTP.
type Handler struct {
	session *service.Session
	logger  *zap.Logger
}

func NewHandler(session *service.Session, logger *zap.Logger) *Handler {
	return &Handler{
		session: session,
		logger:  logger,
	}
}

// GET /
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// GET /healthcheck
func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/quizzes
// Menu entries with completion flags.
func (h *Handler) GetQuizzes(c *gin.Context) {
	RespondOK(c, newMenuResponse(h.session.Menu()))
}

// GET /api/state
func (h *Handler) GetState(c *gin.Context) {
	RespondOK(c, newStateResponse(h.session))
}

// POST /api/quizzes/:index/start
func (h *Handler) StartQuiz(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		RespondError(c, http.StatusBadRequest, "invalid_index", ErrInvalidQuizIndex)
		return
	}

	if _, err := h.session.StartQuiz(index); err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			RespondError(c, http.StatusNotFound, "quiz_not_found", err)
			return
		}
		h.logger.Error("failed to start quiz", zap.Int("quiz_index", index), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	RespondOK(c, newStateResponse(h.session))
}

// POST /api/answer
// Body: {"option": n}. Out-of-range options and picks during feedback are ignored.
func (h *Handler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	if err := h.session.SelectAnswer(*req.Option); err != nil {
		if errors.Is(err, service.ErrNoActiveAttempt) {
			RespondError(c, http.StatusConflict, "no_active_quiz", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	RespondOK(c, newStateResponse(h.session))
}

// POST /api/menu
func (h *Handler) ShowMenu(c *gin.Context) {
	h.session.ShowMenu()
	RespondOK(c, newStateResponse(h.session))
}

// POST /api/restart
func (h *Handler) Restart(c *gin.Context) {
	h.session.Restart()
	RespondOK(c, newStateResponse(h.session))
}
