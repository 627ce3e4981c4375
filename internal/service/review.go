package service

import (
	"fmt"
	"math"

	"github.com/cleberrangel/studyplan-api/internal/model"
)

// Limites do modelo de repetição espaçada
const (
	DefaultTargetRetention = 0.85
	MinTargetRetention     = 0.75
	MaxTargetRetention     = 0.99

	DefaultBeta = 0.2
	MinBeta     = 0.05
	MaxBeta     = 0.50
)

// ReviewService calcula intervalos ótimos de revisão usando um modelo de
// decaimento exponencial: t = −ln(R_alvo)/λ, com λ ajustado a cada novo
// resultado de quiz.
type ReviewService struct{}

// NewReviewService cria o serviço de revisões
func NewReviewService() *ReviewService {
	return &ReviewService{}
}

// Plan calcula, para cada conceito, o intervalo antes e depois do ajuste
// da taxa de decaimento pelo último resultado de quiz
func (s *ReviewService) Plan(req model.ReviewRequest) ([]model.ReviewEntry, error) {
	rTarget := req.TargetRetention
	if rTarget == 0 {
		rTarget = DefaultTargetRetention
	}
	if rTarget < MinTargetRetention || rTarget > MaxTargetRetention {
		return nil, fmt.Errorf("%w: target_retention fora de [%.2f, %.2f]",
			model.ErrInvalidInput, MinTargetRetention, MaxTargetRetention)
	}

	beta := req.Beta
	if beta == 0 {
		beta = DefaultBeta
	}
	if beta < MinBeta || beta > MaxBeta {
		return nil, fmt.Errorf("%w: beta fora de [%.2f, %.2f]", model.ErrInvalidInput, MinBeta, MaxBeta)
	}

	if len(req.Concepts) == 0 {
		return nil, fmt.Errorf("%w: nenhum conceito informado", model.ErrInvalidInput)
	}

	lnTarget := math.Log(rTarget)

	entries := make([]model.ReviewEntry, 0, len(req.Concepts))
	for i, concept := range req.Concepts {
		if concept.Name == "" {
			return nil, fmt.Errorf("%w: conceito %d sem nome", model.ErrInvalidInput, i+1)
		}

		oldLambda := concept.DecayRate
		newLambda := updateDecayRate(oldLambda, concept.QuizScore, beta)

		initial := optimalIntervalHours(oldLambda, lnTarget)
		next := optimalIntervalHours(newLambda, lnTarget)

		entries = append(entries, model.ReviewEntry{
			Concept:              concept.Name,
			OldDecayRate:         oldLambda,
			NewDecayRate:         newLambda,
			InitialIntervalHours: initial,
			NewIntervalHours:     next,
			Change:               classifyChange(initial, next),
		})
	}

	return entries, nil
}

// updateDecayRate ajusta λ pelo último resultado:
// λ_novo = λ_antigo · (1 + β · (1 − score)), score limitado a [0, 1]
func updateDecayRate(oldLambda, score, beta float64) float64 {
	score = math.Max(0, math.Min(1, score))
	return oldLambda * (1 + beta*(1-score))
}

// optimalIntervalHours retorna o intervalo ótimo em horas, ou nil quando
// a taxa de decaimento não é positiva (sem esquecimento previsto)
func optimalIntervalHours(lambda, lnTarget float64) *float64 {
	if lambda <= 0 {
		return nil
	}
	hours := -lnTarget / lambda * 24
	return &hours
}

func classifyChange(initial, next *float64) string {
	switch {
	case next == nil && initial != nil:
		return model.IntervalStoppedForgetting
	case next == nil || initial == nil:
		return model.IntervalUnchanged
	case *next > *initial+1e-12:
		return model.IntervalIncreased
	case *next < *initial-1e-12:
		return model.IntervalDecreased
	default:
		return model.IntervalUnchanged
	}
}
