package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/repository"
	"github.com/cleberrangel/studyplan-api/internal/service"
	"github.com/gin-gonic/gin"
)

// PlanHandler manipula requisições de plano de estudos
type PlanHandler struct {
	planner  *service.PlannerService
	exporter *service.PlanExporter
	history  *repository.HistoryRepository
}

// NewPlanHandler cria um novo handler de planos.
// history pode ser nil quando o banco não está configurado.
func NewPlanHandler(planner *service.PlannerService, exporter *service.PlanExporter, history *repository.HistoryRepository) *PlanHandler {
	return &PlanHandler{
		planner:  planner,
		exporter: exporter,
		history:  history,
	}
}

// GeneratePlan gera um plano de estudos otimizado
// @Summary      Gera plano de estudos
// @Description  Distribui as horas disponíveis entre as matérias maximizando a cobertura
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.PlanRequest true "Matérias e horas disponíveis"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Failure      422 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/v1/plans [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	log := logger.FromGin(c)

	var req model.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Code:    model.CodeInvalidInput,
			Details: err.Error(),
		})
		return
	}

	result, err := h.planner.Allocate(c.Request.Context(), req.AvailableHours, req.Subjects)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Info().
		Float64("available_hours", req.AvailableHours).
		Int("subjects", len(req.Subjects)).
		Int("selected", result.SelectedCount).
		Float64("total_hours", result.TotalHours).
		Msg("Plano de estudos gerado")

	h.saveHistory(c, req, result)

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    result,
	})
}

// ExportPlan gera um plano e retorna como planilha Excel
// @Summary      Exporta plano de estudos em Excel
// @Tags         plans
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        request body model.PlanRequest true "Matérias e horas disponíveis"
// @Success      200 {file} binary
// @Failure      400 {object} model.ErrorResponse
// @Failure      422 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/v1/plans/export [post]
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	log := logger.FromGin(c)

	var req model.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Code:    model.CodeInvalidInput,
			Details: err.Error(),
		})
		return
	}

	result, err := h.planner.Allocate(c.Request.Context(), req.AvailableHours, req.Subjects)
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := h.exporter.Generate(result, req.AvailableHours)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Info().
		Int("selected", result.SelectedCount).
		Int("bytes", buf.Len()).
		Msg("Plano exportado em Excel")

	h.saveHistory(c, req, result)

	filename := fmt.Sprintf("plano_estudos_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Header("X-Selected-Subjects", fmt.Sprintf("%d", result.SelectedCount))

	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// History lista os planos mais recentes
// @Summary      Lista histórico de planos
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Máximo de entradas (default 20)"
// @Success      200 {object} model.Response
// @Failure      503 {object} model.ErrorResponse
// @Router       /api/v1/plans/history [get]
func (h *PlanHandler) History(c *gin.Context) {
	if h.history == nil {
		respondError(c, model.ErrHistoryUnavailable)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    entries,
	})
}

// saveHistory persiste o plano quando o banco está configurado.
// Falha de escrita não derruba a resposta, apenas registra o erro.
func (h *PlanHandler) saveHistory(c *gin.Context, req model.PlanRequest, result *model.PlanResult) {
	if h.history == nil {
		return
	}

	if err := h.history.Save(c.Request.Context(), req.AvailableHours, len(req.Subjects), result); err != nil {
		logger.FromGin(c).Warn().Err(err).Msg("Erro ao salvar plano no histórico")
	}
}
