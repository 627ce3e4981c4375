package service

import (
	"errors"
	"math"
	"testing"

	"github.com/cleberrangel/studyplan-api/internal/model"
)

func TestReviewPlanDefaults(t *testing.T) {
	svc := NewReviewService()

	entries, err := svc.Plan(model.ReviewRequest{
		Concepts: []model.Concept{
			{Name: "Derivadas", DecayRate: 0.1, QuizScore: 0.5},
		},
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("esperada 1 entrada, obtidas %d", len(entries))
	}

	entry := entries[0]

	// λ_novo = 0,1 · (1 + 0,2 · 0,5) = 0,11
	if math.Abs(entry.NewDecayRate-0.11) > 1e-9 {
		t.Errorf("nova taxa = %v, esperado 0.11", entry.NewDecayRate)
	}

	// t = −ln(0,85)/λ dias, em horas
	wantInitial := -math.Log(DefaultTargetRetention) / 0.1 * 24
	if entry.InitialIntervalHours == nil || math.Abs(*entry.InitialIntervalHours-wantInitial) > 1e-9 {
		t.Errorf("intervalo inicial = %v, esperado %.4f", entry.InitialIntervalHours, wantInitial)
	}

	// Nota parcial acelera o esquecimento e encurta o intervalo
	if entry.Change != model.IntervalDecreased {
		t.Errorf("mudança = %q, esperado %q", entry.Change, model.IntervalDecreased)
	}
}

func TestReviewPlanPerfectScoreKeepsInterval(t *testing.T) {
	svc := NewReviewService()

	entries, err := svc.Plan(model.ReviewRequest{
		Concepts: []model.Concept{
			{Name: "Integrais", DecayRate: 0.2, QuizScore: 1.0},
		},
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if entries[0].Change != model.IntervalUnchanged {
		t.Errorf("mudança = %q, esperado %q", entries[0].Change, model.IntervalUnchanged)
	}
	if entries[0].NewDecayRate != 0.2 {
		t.Errorf("taxa alterada sem motivo: %v", entries[0].NewDecayRate)
	}
}

func TestReviewPlanNonPositiveDecay(t *testing.T) {
	svc := NewReviewService()

	entries, err := svc.Plan(model.ReviewRequest{
		Concepts: []model.Concept{
			{Name: "Limites", DecayRate: 0, QuizScore: 0.8},
		},
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	entry := entries[0]
	if entry.InitialIntervalHours != nil || entry.NewIntervalHours != nil {
		t.Errorf("intervalos deveriam ser nulos com λ ≤ 0: %+v", entry)
	}
	if entry.Change != model.IntervalUnchanged {
		t.Errorf("mudança = %q, esperado %q", entry.Change, model.IntervalUnchanged)
	}
}

func TestReviewPlanValidation(t *testing.T) {
	svc := NewReviewService()

	cases := []struct {
		name string
		req  model.ReviewRequest
	}{
		{"retenção fora do intervalo", model.ReviewRequest{
			TargetRetention: 0.5,
			Concepts:        []model.Concept{{Name: "X", DecayRate: 0.1}},
		}},
		{"beta fora do intervalo", model.ReviewRequest{
			Beta:     0.9,
			Concepts: []model.Concept{{Name: "X", DecayRate: 0.1}},
		}},
		{"sem conceitos", model.ReviewRequest{}},
		{"conceito sem nome", model.ReviewRequest{
			Concepts: []model.Concept{{DecayRate: 0.1}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Plan(tc.req); !errors.Is(err, model.ErrInvalidInput) {
				t.Fatalf("esperado ErrInvalidInput, obtido %v", err)
			}
		})
	}
}
