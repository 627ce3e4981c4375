package handler

import (
	"net/http"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/service"
	"github.com/gin-gonic/gin"
)

// LeaderboardHandler manipula requisições do ranking ponderado
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler cria um novo handler de ranking
func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// TrainRequest representa os hiperparâmetros opcionais do treino de pesos
type TrainRequest struct {
	LearningRate float64 `json:"learning_rate"`
	Epochs       int     `json:"epochs"`
}

// Standings retorna o ranking ponderado por dificuldade
// @Summary      Ranking de usuários
// @Description  Pontuação acumulada ponderada pelos pesos de dificuldade
// @Tags         leaderboard
// @Produce      json
// @Security     BearerAuth
// @Param        subject query string false "Filtra por matéria"
// @Success      200 {object} model.Response
// @Router       /api/v1/leaderboard [get]
func (h *LeaderboardHandler) Standings(c *gin.Context) {
	board := h.leaderboard.Standings(c.Query("subject"))

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    board,
	})
}

// Train reajusta os pesos de dificuldade por gradiente descendente
// @Summary      Treina pesos de dificuldade
// @Tags         leaderboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TrainRequest false "Hiperparâmetros"
// @Success      200 {object} model.Response
// @Router       /api/v1/leaderboard/train [post]
func (h *LeaderboardHandler) Train(c *gin.Context) {
	log := logger.FromGin(c)

	var req TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Code:    model.CodeInvalidInput,
			Details: err.Error(),
		})
		return
	}

	if req.LearningRate <= 0 {
		req.LearningRate = service.DefaultLearningRate
	}
	if req.Epochs <= 0 {
		req.Epochs = service.DefaultTrainEpochs
	}

	weights := h.leaderboard.TrainWeights(c.Request.Context(), req.LearningRate, req.Epochs)

	log.Info().
		Float64("learning_rate", req.LearningRate).
		Int("epochs", req.Epochs).
		Msg("Pesos de dificuldade treinados")

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    gin.H{"weights": weights},
	})
}
