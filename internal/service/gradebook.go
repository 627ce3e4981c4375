package service

import (
	"context"
	"fmt"
	"math"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
	"gonum.org/v1/gonum/stat"
)

// GradebookService analisa o desempenho em um curso: nota atual e
// projetada, nota necessária nas avaliações restantes, tendência por
// regressão linear e divisão sugerida das horas de estudo
type GradebookService struct{}

// NewGradebookService cria o serviço de análise de notas
func NewGradebookService() *GradebookService {
	return &GradebookService{}
}

// Analyze calcula a análise completa do curso
func (s *GradebookService) Analyze(ctx context.Context, req model.GradebookRequest) (*model.GradeAnalysis, error) {
	if err := validateGradebook(req); err != nil {
		return nil, err
	}

	analysis := &model.GradeAnalysis{Course: req.Course}

	var completed []model.Assignment
	var remaining []model.Assignment
	for _, a := range req.Assignments {
		if a.Completed {
			completed = append(completed, a)
		} else {
			remaining = append(remaining, a)
		}
	}

	// Nota atual e projeção final pela média ponderada
	weightedCompleted := 0.0
	completedWeight := 0.0
	for _, a := range completed {
		weightedCompleted += a.Weight / 100 * a.Grade
		completedWeight += a.Weight
	}
	if completedWeight > 0 {
		analysis.CurrentGrade = weightedCompleted / (completedWeight / 100)
	}
	analysis.ProjectedFinal = weightedCompleted

	// Nota necessária no peso restante para atingir a meta
	remainingWeight := 0.0
	for _, a := range remaining {
		remainingWeight += a.Weight
	}
	analysis.RemainingWeight = remainingWeight
	if remainingWeight > 0 {
		required := (req.TargetGrade - weightedCompleted) / (remainingWeight / 100)
		analysis.RequiredScore = math.Max(0, required)
	} else {
		analysis.RequiredScore = analysis.ProjectedFinal
	}

	s.predictTrend(analysis, completed, len(req.Assignments))
	s.assessGoal(analysis, completed, req.TargetGrade)
	analysis.Insights = buildInsights(completed, req.TargetGrade)

	if req.AvailableHours > 0 && len(remaining) > 0 {
		analysis.StudySplit = splitStudyHours(remaining, req.AvailableHours)
	}

	logger.Get(ctx).Info().
		Str("course", req.Course).
		Float64("current_grade", analysis.CurrentGrade).
		Str("trend", analysis.Trend).
		Msg("Análise de notas concluída")

	return analysis, nil
}

func validateGradebook(req model.GradebookRequest) error {
	if req.TargetGrade < 0 || req.TargetGrade > 100 {
		return fmt.Errorf("%w: meta de nota fora de [0, 100]", model.ErrInvalidInput)
	}
	if len(req.Assignments) == 0 {
		return fmt.Errorf("%w: nenhuma avaliação informada", model.ErrInvalidInput)
	}
	for _, a := range req.Assignments {
		if a.Name == "" {
			return fmt.Errorf("%w: avaliação sem nome", model.ErrInvalidInput)
		}
		if a.Weight < 0 {
			return fmt.Errorf("%w: peso negativo em %q", model.ErrInvalidInput, a.Name)
		}
		if a.Completed && (a.Grade < 0 || a.Grade > 100) {
			return fmt.Errorf("%w: nota de %q fora de [0, 100]", model.ErrInvalidInput, a.Name)
		}
	}
	return nil
}

// predictTrend ajusta uma regressão linear sobre a sequência de notas
// concluídas e projeta a nota na posição da última avaliação do curso
func (s *GradebookService) predictTrend(analysis *model.GradeAnalysis, completed []model.Assignment, totalAssignments int) {
	if len(completed) < 2 {
		analysis.Trend = model.TrendInsufficient
		return
	}

	xs := make([]float64, len(completed))
	ys := make([]float64, len(completed))
	for i, a := range completed {
		xs[i] = float64(i)
		ys[i] = a.Grade
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	predicted := alpha + beta*float64(totalAssignments-1)
	predicted = math.Max(0, math.Min(100, predicted))

	analysis.PredictedGrade = &predicted
	analysis.TrendSlope = &beta

	switch {
	case beta > 1:
		analysis.Trend = model.TrendImproving
	case beta < -1:
		analysis.Trend = model.TrendDeclining
	default:
		analysis.Trend = model.TrendStable
	}
}

func (s *GradebookService) assessGoal(analysis *model.GradeAnalysis, completed []model.Assignment, target float64) {
	if len(completed) == 0 {
		analysis.GoalStatus = model.GoalNoData
		analysis.GoalMessage = "Complete avaliações para acompanhar o progresso"
		return
	}

	grades := make([]float64, len(completed))
	for i, a := range completed {
		grades[i] = a.Grade
	}
	avg := stat.Mean(grades, nil)
	gap := target - avg

	switch {
	case gap <= 0:
		analysis.GoalStatus = model.GoalOnTrack
		analysis.GoalMessage = fmt.Sprintf("Sua média (%.1f%%) atinge ou supera a meta (%.1f%%)", avg, target)
	case gap <= 10:
		analysis.GoalStatus = model.GoalAtRisk
		analysis.GoalMessage = fmt.Sprintf("Faltam %.1f%% para a meta. Continue firme!", gap)
	default:
		analysis.GoalStatus = model.GoalBehind
		analysis.GoalMessage = fmt.Sprintf("Você está %.1f%% abaixo da meta. Foque nas próximas avaliações!", gap)
	}
}

func buildInsights(completed []model.Assignment, target float64) []string {
	var insights []string
	if len(completed) == 0 {
		return insights
	}

	grades := make([]float64, len(completed))
	for i, a := range completed {
		grades[i] = a.Grade
	}
	avg := stat.Mean(grades, nil)

	if avg >= target {
		insights = append(insights, fmt.Sprintf("Sua média (%.1f%%) supera a meta (%.1f%%)", avg, target))
	} else {
		insights = append(insights, fmt.Sprintf("Você está %.1f%% abaixo da meta em média", target-avg))
	}

	if len(completed) > 1 {
		if stat.StdDev(grades, nil) > 10 {
			insights = append(insights, "Suas notas variam bastante. Tente manter a consistência")
		} else {
			insights = append(insights, "Desempenho consistente, ótimo trabalho!")
		}

		best, worst := completed[0], completed[0]
		for _, a := range completed[1:] {
			if a.Grade > best.Grade {
				best = a
			}
			if a.Grade < worst.Grade {
				worst = a
			}
		}
		insights = append(insights, fmt.Sprintf("Melhor: %s | Estude mais: %s", best.Name, worst.Name))
	}

	// Eficiência média quando há horas de estudo registradas
	effSum, effCount := 0.0, 0
	for _, a := range completed {
		if a.StudyHours != nil && *a.StudyHours > 0 {
			effSum += a.Grade / *a.StudyHours
			effCount++
		}
	}
	if effCount > 0 {
		insights = append(insights, fmt.Sprintf("Eficiência média: %.1f pontos por hora de estudo", effSum/float64(effCount)))
	}

	return insights
}

// splitStudyHours divide as horas disponíveis proporcionalmente ao peso
// das avaliações pendentes, arredondando para décimos de hora
func splitStudyHours(remaining []model.Assignment, available float64) []model.StudySplit {
	totalWeight := 0.0
	for _, a := range remaining {
		totalWeight += a.Weight
	}
	if totalWeight == 0 {
		return nil
	}

	split := make([]model.StudySplit, 0, len(remaining))
	for _, a := range remaining {
		hours := a.Weight / totalWeight * available
		split = append(split, model.StudySplit{
			Assignment:       a.Name,
			Weight:           a.Weight,
			RecommendedHours: math.Round(hours*10) / 10,
		})
	}
	return split
}
