package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/repository"
)

// Parâmetros padrão do treino de pesos por gradiente
const (
	DefaultLearningRate = 1e-4
	DefaultTrainEpochs  = 500
)

// difficultyIndex ordena as dificuldades para o treino de pesos
var difficultyIndex = map[string]int{
	model.DifficultyEasy:         0,
	model.DifficultyIntermediate: 1,
	model.DifficultyHard:         2,
}

// LeaderboardService calcula rankings ponderados por dificuldade a
// partir dos resultados de quiz armazenados
type LeaderboardService struct {
	mu      sync.RWMutex
	weights map[string]float64
	store   *repository.ResultsStore
}

// NewLeaderboardService cria o serviço com pesos neutros (1.0)
func NewLeaderboardService(store *repository.ResultsStore) *LeaderboardService {
	return &LeaderboardService{
		weights: map[string]float64{
			model.DifficultyEasy:         1.0,
			model.DifficultyIntermediate: 1.0,
			model.DifficultyHard:         1.0,
		},
		store: store,
	}
}

// AddResult valida e registra um novo resultado de quiz
func (s *LeaderboardService) AddResult(ctx context.Context, res model.QuizResult) error {
	if res.UserID == "" || res.Subject == "" {
		return fmt.Errorf("%w: user_id e subject são obrigatórios", model.ErrInvalidInput)
	}
	if _, ok := difficultyIndex[res.Difficulty]; !ok {
		return fmt.Errorf("%w: dificuldade %q desconhecida", model.ErrInvalidInput, res.Difficulty)
	}
	if res.Total <= 0 || res.Score < 0 || res.Score > res.Total {
		return fmt.Errorf("%w: pontuação fora do intervalo [0, total]", model.ErrInvalidInput)
	}

	if err := s.store.Append(res); err != nil {
		return fmt.Errorf("registrar resultado: %w", err)
	}

	logger.Get(ctx).Info().
		Str("user_id", res.UserID).
		Str("subject", res.Subject).
		Str("difficulty", res.Difficulty).
		Msg("Resultado de quiz registrado")

	return nil
}

// Standings calcula o ranking. Com subject vazio o ranking é geral;
// caso contrário considera apenas a matéria informada. Empates de
// pontuação são desfeitos pelo user_id para manter a saída estável.
func (s *LeaderboardService) Standings(subject string) *model.Leaderboard {
	s.mu.RLock()
	weights := s.copyWeights()
	s.mu.RUnlock()

	totals := make(map[string]float64)
	for _, res := range s.store.All() {
		if subject != "" && res.Subject != subject {
			continue
		}
		w, ok := weights[res.Difficulty]
		if !ok {
			continue
		}
		totals[res.UserID] += res.Score * w
	}

	rows := make([]model.LeaderboardRow, 0, len(totals))
	for user, score := range totals {
		rows = append(rows, model.LeaderboardRow{UserID: user, WeightedScore: score})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WeightedScore != rows[j].WeightedScore {
			return rows[i].WeightedScore > rows[j].WeightedScore
		}
		return rows[i].UserID < rows[j].UserID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return &model.Leaderboard{Subject: subject, Rows: rows, Weights: weights}
}

// TrainWeights ajusta os pesos por dificuldade via gradiente descendente.
// O alvo é que dificuldades maiores escalem o score proporcionalmente
// ao seu índice (Easy ×1, Intermediate ×2, Hard ×3).
func (s *LeaderboardService) TrainWeights(ctx context.Context, lr float64, epochs int) map[string]float64 {
	if lr <= 0 {
		lr = DefaultLearningRate
	}
	if epochs <= 0 {
		epochs = DefaultTrainEpochs
	}

	results := s.store.All()

	s.mu.Lock()
	defer s.mu.Unlock()

	for epoch := 0; epoch < epochs; epoch++ {
		grads := map[string]float64{}
		for _, res := range results {
			idx, ok := difficultyIndex[res.Difficulty]
			if !ok {
				continue
			}
			weighted := res.Score * s.weights[res.Difficulty]
			target := float64(idx+1) * res.Score
			grads[res.Difficulty] += (weighted - target) * res.Score
		}
		for d, g := range grads {
			s.weights[d] -= lr * g
		}
	}

	logger.Get(ctx).Info().
		Int("epochs", epochs).
		Float64("learning_rate", lr).
		Int("samples", len(results)).
		Msg("Pesos do ranking treinados")

	return s.copyWeights()
}

func (s *LeaderboardService) copyWeights() map[string]float64 {
	out := make(map[string]float64, len(s.weights))
	for k, v := range s.weights {
		out[k] = v
	}
	return out
}
