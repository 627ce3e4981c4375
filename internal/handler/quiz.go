package handler

import (
	"net/http"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/service"
	"github.com/cleberrangel/studyplan-api/internal/websocket"
	"github.com/gin-gonic/gin"
)

// QuizHandler manipula requisições de quizzes e resultados
type QuizHandler struct {
	quiz        *service.QuizService
	leaderboard *service.LeaderboardService
	hub         *websocket.Hub
}

// NewQuizHandler cria um novo handler de quizzes.
// hub pode ser nil quando o broadcast do ranking está desabilitado.
func NewQuizHandler(quiz *service.QuizService, leaderboard *service.LeaderboardService, hub *websocket.Hub) *QuizHandler {
	return &QuizHandler{
		quiz:        quiz,
		leaderboard: leaderboard,
		hub:         hub,
	}
}

// Sample monta um quiz aleatório a partir do banco de questões
// @Summary      Monta um quiz
// @Description  Sorteia questões do banco sem expor as respostas
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.QuizSampleRequest true "Matéria e dificuldade"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Failure      404 {object} model.ErrorResponse
// @Router       /api/v1/quizzes/sample [post]
func (h *QuizHandler) Sample(c *gin.Context) {
	var req model.QuizSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Code:    model.CodeInvalidInput,
			Details: err.Error(),
		})
		return
	}

	questions, err := h.quiz.Sample(c.Request.Context(), req.Subject, req.Difficulty, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    gin.H{"questions": questions},
	})
}

// SubmitResult registra o resultado de um quiz e atualiza o ranking
// @Summary      Registra resultado de quiz
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.QuizResult true "Resultado do quiz"
// @Success      201 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Router       /api/v1/quizzes/results [post]
func (h *QuizHandler) SubmitResult(c *gin.Context) {
	log := logger.FromGin(c)

	var res model.QuizResult
	if err := c.ShouldBindJSON(&res); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Code:    model.CodeInvalidInput,
			Details: err.Error(),
		})
		return
	}

	if err := h.leaderboard.AddResult(c.Request.Context(), res); err != nil {
		respondError(c, err)
		return
	}

	log.Info().
		Str("user_id", res.UserID).
		Str("subject", res.Subject).
		Str("difficulty", res.Difficulty).
		Msg("Resultado de quiz registrado")

	// Empurra o ranking atualizado para os clientes conectados
	if h.hub != nil {
		h.hub.BroadcastStandings(h.leaderboard.Standings(res.Subject))
	}

	c.JSON(http.StatusCreated, model.Response{
		Success: true,
	})
}
