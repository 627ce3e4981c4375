package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/repository"
)

const quizCSV = `Subject,Difficulty,Question,Option1,Option2,Option3,Option4,Answer
Matemática,Easy,Quanto é 2+2?,2,3,4,5,4
Matemática,Easy,Quanto é 3+3?,4,5,6,7,6
Matemática,Easy,Quanto é 5+5?,8,9,10,11,10
Matemática,Easy,Quanto é 7+2?,7,8,9,10,9
Matemática,Easy,Quanto é 6+6?,10,11,12,13,12
Matemática,Easy,Quanto é 9+1?,8,9,10,11,10
Matemática,Hard,Derivada de x² em x=3?,3,6,9,12,6
Física,Easy,Unidade de força?,Watt,Newton,Joule,Pascal,Newton
`

func newTestQuiz(t *testing.T) *QuizService {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quiz_data.csv")
	if err := os.WriteFile(path, []byte(quizCSV), 0o644); err != nil {
		t.Fatalf("erro ao escrever CSV: %v", err)
	}

	bank, err := repository.LoadQuestionBank(path)
	if err != nil {
		t.Fatalf("erro ao carregar banco: %v", err)
	}
	return NewQuizService(bank)
}

func TestQuizSampleDefaultCount(t *testing.T) {
	svc := newTestQuiz(t)

	questions, err := svc.Sample(context.Background(), "Matemática", "Easy", 0)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(questions) != QuestionsPerQuiz {
		t.Fatalf("esperadas %d questões, obtidas %d", QuestionsPerQuiz, len(questions))
	}

	for _, q := range questions {
		if q.Answer != "" {
			t.Errorf("resposta vazou na questão %q", q.Text)
		}
		if len(q.Options) != 4 {
			t.Errorf("questão %q com %d opções", q.Text, len(q.Options))
		}
	}
}

func TestQuizSampleSmallPool(t *testing.T) {
	svc := newTestQuiz(t)

	// Só existe uma questão Hard de Matemática
	questions, err := svc.Sample(context.Background(), "Matemática", "Hard", 5)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("esperada 1 questão, obtidas %d", len(questions))
	}
}

func TestQuizSampleCaseInsensitive(t *testing.T) {
	svc := newTestQuiz(t)

	questions, err := svc.Sample(context.Background(), "física", "easy", 1)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(questions) != 1 || questions[0].Subject != "Física" {
		t.Errorf("amostra inesperada: %+v", questions)
	}
}

func TestQuizSampleUnknownSubject(t *testing.T) {
	svc := newTestQuiz(t)

	_, err := svc.Sample(context.Background(), "Astronomia", "Easy", 5)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("esperado ErrNotFound, obtido %v", err)
	}
}

func TestQuizSampleMissingParams(t *testing.T) {
	svc := newTestQuiz(t)

	_, err := svc.Sample(context.Background(), "", "Easy", 5)
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("esperado ErrInvalidInput, obtido %v", err)
	}
}
