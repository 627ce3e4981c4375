package handler

import (
	"net/http"

	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/service"
	"github.com/gin-gonic/gin"
)

// GradebookHandler manipula requisições de análise de notas
type GradebookHandler struct {
	gradebook *service.GradebookService
}

// NewGradebookHandler cria um novo handler de boletim
func NewGradebookHandler(gradebook *service.GradebookService) *GradebookHandler {
	return &GradebookHandler{gradebook: gradebook}
}

// Analyze calcula projeções, tendência e sugestão de estudo para um curso
// @Summary      Analisa boletim de um curso
// @Tags         gradebook
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.GradebookRequest true "Avaliações do curso"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Router       /api/v1/gradebook/analyze [post]
func (h *GradebookHandler) Analyze(c *gin.Context) {
	var req model.GradebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Code:    model.CodeInvalidInput,
			Details: err.Error(),
		})
		return
	}

	analysis, err := h.gradebook.Analyze(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    analysis,
	})
}
