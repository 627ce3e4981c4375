package handler

import (
	"errors"
	"net/http"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/gin-gonic/gin"
)

// respondError trata erros de serviço e retorna a resposta apropriada
func respondError(c *gin.Context, err error) {
	log := logger.FromGin(c)

	switch {
	case errors.Is(err, model.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   model.ErrInvalidInput.Error(),
			Code:    model.CodeInvalidInput,
			Details: err.Error(),
		})
	case errors.Is(err, model.ErrNoFeasibleAllocation):
		c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{
			Success: false,
			Error:   model.ErrNoFeasibleAllocation.Error(),
			Code:    model.CodeNoFeasibleAllocation,
			Details: "reduza os mínimos por matéria ou aumente as horas disponíveis",
		})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Success: false,
			Error:   model.ErrNotFound.Error(),
			Details: err.Error(),
		})
	case errors.Is(err, model.ErrHistoryUnavailable):
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Success: false,
			Error:   model.ErrHistoryUnavailable.Error(),
			Details: "configure DB_HOST e DB_NAME para habilitar o histórico",
		})
	case errors.Is(err, model.ErrSolverError):
		log.Error().Err(err).Msg("Falha do solver")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   model.ErrSolverError.Error(),
			Code:    model.CodeSolverError,
			Details: err.Error(),
		})
	default:
		log.Error().Err(err).Msg("Erro interno")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro interno",
			Details: err.Error(),
		})
	}
}
