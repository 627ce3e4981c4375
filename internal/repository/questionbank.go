package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
)

// QuestionBank guarda o banco de questões carregado do CSV, indexado
// por matéria e dificuldade (chaves normalizadas em minúsculas)
type QuestionBank struct {
	byKey map[string][]model.Question
	size  int
}

// LoadQuestionBank carrega o banco de questões do arquivo CSV.
// Arquivo ausente resulta em um banco vazio, não em erro.
// Colunas esperadas: Subject,Difficulty,Question,Option1..Option4,Answer.
func LoadQuestionBank(path string) (*QuestionBank, error) {
	bank := &QuestionBank{byKey: make(map[string][]model.Question)}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		logger.Global().Warn().Str("path", path).Msg("Banco de questões não encontrado, iniciando vazio")
		return bank, nil
	}
	if err != nil {
		return nil, fmt.Errorf("abrir banco de questões: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ler banco de questões: %w", err)
	}
	if len(records) == 0 {
		return bank, nil
	}

	cols := columnIndex(records[0])
	required := []string{"subject", "difficulty", "question", "option1", "option2", "option3", "option4", "answer"}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("banco de questões sem a coluna %q", name)
		}
	}

	for _, rec := range records[1:] {
		q := model.Question{
			Subject:    strings.TrimSpace(rec[cols["subject"]]),
			Difficulty: strings.TrimSpace(rec[cols["difficulty"]]),
			Text:       rec[cols["question"]],
			Options: []string{
				rec[cols["option1"]],
				rec[cols["option2"]],
				rec[cols["option3"]],
				rec[cols["option4"]],
			},
			Answer: rec[cols["answer"]],
		}
		if q.Subject == "" || q.Difficulty == "" || q.Text == "" {
			continue
		}
		key := bankKey(q.Subject, q.Difficulty)
		bank.byKey[key] = append(bank.byKey[key], q)
		bank.size++
	}

	logger.Global().Info().Str("path", path).Int("questions", bank.size).Msg("Banco de questões carregado")
	return bank, nil
}

// Questions retorna as questões de uma matéria e dificuldade
func (b *QuestionBank) Questions(subject, difficulty string) []model.Question {
	return b.byKey[bankKey(subject, difficulty)]
}

// Size retorna o total de questões carregadas
func (b *QuestionBank) Size() int { return b.size }

func bankKey(subject, difficulty string) string {
	return strings.ToLower(strings.TrimSpace(subject)) + "|" + strings.ToLower(strings.TrimSpace(difficulty))
}

// columnIndex mapeia nomes de coluna normalizados para seus índices
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}
