package handler

import (
	"net/http"

	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/service"
	"github.com/gin-gonic/gin"
)

// ReviewHandler manipula requisições de repetição espaçada
type ReviewHandler struct {
	review *service.ReviewService
}

// NewReviewHandler cria um novo handler de revisões
func NewReviewHandler(review *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{review: review}
}

// PlanReviews calcula os intervalos ótimos de revisão
// @Summary      Calcula intervalos de revisão
// @Description  Atualiza a taxa de esquecimento de cada conceito e deriva o próximo intervalo
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.ReviewRequest true "Conceitos e parâmetros do modelo"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) PlanReviews(c *gin.Context) {
	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Code:    model.CodeInvalidInput,
			Details: err.Error(),
		})
		return
	}

	entries, err := h.review.Plan(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    gin.H{"reviews": entries},
	})
}
