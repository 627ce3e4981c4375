package service

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/repository"
)

func newTestLeaderboard(t *testing.T) *LeaderboardService {
	t.Helper()

	store, err := repository.OpenResultsStore(filepath.Join(t.TempDir(), "results.csv"))
	if err != nil {
		t.Fatalf("erro ao abrir armazenamento: %v", err)
	}
	return NewLeaderboardService(store)
}

func addResult(t *testing.T, svc *LeaderboardService, user, subject, difficulty string, score, total float64) {
	t.Helper()

	err := svc.AddResult(context.Background(), model.QuizResult{
		UserID:     user,
		Subject:    subject,
		Difficulty: difficulty,
		Score:      score,
		Total:      total,
	})
	if err != nil {
		t.Fatalf("erro ao registrar resultado: %v", err)
	}
}

func TestStandingsOrdering(t *testing.T) {
	svc := newTestLeaderboard(t)

	addResult(t, svc, "ana", "Matemática", model.DifficultyEasy, 8, 10)
	addResult(t, svc, "bruno", "Matemática", model.DifficultyEasy, 5, 10)
	addResult(t, svc, "ana", "Física", model.DifficultyHard, 4, 10)
	addResult(t, svc, "carla", "Matemática", model.DifficultyEasy, 8, 10)

	board := svc.Standings("")
	if len(board.Rows) != 3 {
		t.Fatalf("esperadas 3 linhas, obtidas %d", len(board.Rows))
	}

	// ana lidera (12 pontos com pesos neutros); empate 8x8 não ocorre
	// aqui, mas bruno fica por último
	if board.Rows[0].UserID != "ana" || board.Rows[0].Rank != 1 {
		t.Errorf("primeira linha = %+v, esperado ana no rank 1", board.Rows[0])
	}
	if board.Rows[2].UserID != "bruno" {
		t.Errorf("última linha = %+v, esperado bruno", board.Rows[2])
	}
}

func TestStandingsTieBreakByUserID(t *testing.T) {
	svc := newTestLeaderboard(t)

	addResult(t, svc, "zeca", "História", model.DifficultyEasy, 7, 10)
	addResult(t, svc, "alice", "História", model.DifficultyEasy, 7, 10)

	board := svc.Standings("História")
	if board.Rows[0].UserID != "alice" || board.Rows[1].UserID != "zeca" {
		t.Errorf("empate não desfeito por user_id: %+v", board.Rows)
	}
}

func TestStandingsSubjectFilter(t *testing.T) {
	svc := newTestLeaderboard(t)

	addResult(t, svc, "ana", "Matemática", model.DifficultyEasy, 8, 10)
	addResult(t, svc, "bruno", "Física", model.DifficultyEasy, 9, 10)

	board := svc.Standings("Física")
	if len(board.Rows) != 1 || board.Rows[0].UserID != "bruno" {
		t.Errorf("filtro por matéria falhou: %+v", board.Rows)
	}
}

func TestAddResultValidation(t *testing.T) {
	svc := newTestLeaderboard(t)
	ctx := context.Background()

	cases := []struct {
		name string
		res  model.QuizResult
	}{
		{"sem user_id", model.QuizResult{Subject: "X", Difficulty: model.DifficultyEasy, Score: 1, Total: 10}},
		{"dificuldade desconhecida", model.QuizResult{UserID: "u", Subject: "X", Difficulty: "Expert", Score: 1, Total: 10}},
		{"score acima do total", model.QuizResult{UserID: "u", Subject: "X", Difficulty: model.DifficultyEasy, Score: 11, Total: 10}},
		{"total zero", model.QuizResult{UserID: "u", Subject: "X", Difficulty: model.DifficultyEasy, Score: 0, Total: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.AddResult(ctx, tc.res); !errors.Is(err, model.ErrInvalidInput) {
				t.Fatalf("esperado ErrInvalidInput, obtido %v", err)
			}
		})
	}
}

func TestTrainWeightsConvergesToDifficultyScale(t *testing.T) {
	svc := newTestLeaderboard(t)

	// Resultados em todas as dificuldades para o gradiente ter sinal
	addResult(t, svc, "ana", "Matemática", model.DifficultyEasy, 10, 10)
	addResult(t, svc, "ana", "Matemática", model.DifficultyIntermediate, 10, 10)
	addResult(t, svc, "ana", "Matemática", model.DifficultyHard, 10, 10)

	weights := svc.TrainWeights(context.Background(), DefaultLearningRate, DefaultTrainEpochs)

	// O alvo escala com o índice da dificuldade: Easy ×1, Intermediate ×2, Hard ×3
	if math.Abs(weights[model.DifficultyEasy]-1) > 0.1 {
		t.Errorf("peso Easy = %.4f, esperado ~1", weights[model.DifficultyEasy])
	}
	if math.Abs(weights[model.DifficultyIntermediate]-2) > 0.1 {
		t.Errorf("peso Intermediate = %.4f, esperado ~2", weights[model.DifficultyIntermediate])
	}
	if math.Abs(weights[model.DifficultyHard]-3) > 0.1 {
		t.Errorf("peso Hard = %.4f, esperado ~3", weights[model.DifficultyHard])
	}

	if !(weights[model.DifficultyHard] > weights[model.DifficultyIntermediate] &&
		weights[model.DifficultyIntermediate] > weights[model.DifficultyEasy]) {
		t.Errorf("pesos fora de ordem: %+v", weights)
	}
}
