package handler

import (
	"net/http"

	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/service"
	"github.com/gin-gonic/gin"
)

// InsightsHandler manipula requisições de lacunas de conhecimento
type InsightsHandler struct {
	insights *service.InsightsService
}

// NewInsightsHandler cria um novo handler de análises
func NewInsightsHandler(insights *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// Report agrupa o desempenho por matéria e aponta onde focar
// @Summary      Analisa lacunas de conhecimento
// @Tags         insights
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.InsightsRequest true "Usuário e resultados opcionais"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Failure      404 {object} model.ErrorResponse
// @Router       /api/v1/insights [post]
func (h *InsightsHandler) Report(c *gin.Context) {
	var req model.InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Code:    model.CodeInvalidInput,
			Details: err.Error(),
		})
		return
	}

	report, err := h.insights.Report(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    report,
	})
}
