package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/repository"
)

// QuestionsPerQuiz é o tamanho padrão de um quiz
const QuestionsPerQuiz = 5

// QuizService monta quizzes com seleção aleatória dentro da dificuldade
// pedida (estratégia mista: a mesma consulta pode gerar quizzes diferentes)
type QuizService struct {
	bank *repository.QuestionBank

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuizService cria o serviço de quizzes
func NewQuizService(bank *repository.QuestionBank) *QuizService {
	return &QuizService{
		bank: bank,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample sorteia count questões da matéria e dificuldade pedidas.
// As respostas corretas são omitidas do resultado.
func (s *QuizService) Sample(ctx context.Context, subject, difficulty string, count int) ([]model.Question, error) {
	if subject == "" || difficulty == "" {
		return nil, fmt.Errorf("%w: subject e difficulty são obrigatórios", model.ErrInvalidInput)
	}
	if count <= 0 {
		count = QuestionsPerQuiz
	}

	pool := s.bank.Questions(subject, difficulty)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: nenhuma questão de %s (%s)", model.ErrNotFound, subject, difficulty)
	}

	shuffled := make([]model.Question, len(pool))
	copy(shuffled, pool)

	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	if count > len(shuffled) {
		count = len(shuffled)
	}
	sampled := shuffled[:count]
	for i := range sampled {
		sampled[i].Answer = ""
	}

	logger.Get(ctx).Info().
		Str("subject", subject).
		Str("difficulty", difficulty).
		Int("questions", count).
		Msg("Quiz montado")

	return sampled, nil
}
