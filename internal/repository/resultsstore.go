package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
)

var resultsHeader = []string{"user_id", "subject", "difficulty", "score", "total"}

// ResultsStore persiste resultados de quiz em um arquivo CSV, mantendo
// uma cópia em memória para as consultas
type ResultsStore struct {
	mu   sync.RWMutex
	path string
	rows []model.QuizResult
}

// OpenResultsStore abre o repositório de resultados. Arquivo ausente
// inicia um repositório vazio; linhas malformadas são ignoradas.
// A coluna user_id também é aceita como "userid"; total ausente assume 100.
func OpenResultsStore(path string) (*ResultsStore, error) {
	store := &ResultsStore{path: path}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("abrir resultados: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ler resultados: %w", err)
	}
	if len(records) == 0 {
		return store, nil
	}

	cols := columnIndex(records[0])
	userCol, ok := cols["user_id"]
	if !ok {
		userCol, ok = cols["userid"]
	}
	subjectCol, okSubject := cols["subject"]
	diffCol, okDiff := cols["difficulty"]
	scoreCol, okScore := cols["score"]
	if !ok || !okSubject || !okDiff || !okScore {
		return nil, fmt.Errorf("resultados sem as colunas user_id, subject, difficulty e score")
	}
	totalCol, hasTotal := cols["total"]

	skipped := 0
	for _, rec := range records[1:] {
		res, err := parseResult(rec, userCol, subjectCol, diffCol, scoreCol, totalCol, hasTotal)
		if err != nil {
			skipped++
			continue
		}
		store.rows = append(store.rows, res)
	}
	if skipped > 0 {
		logger.Global().Warn().Str("path", path).Int("skipped", skipped).Msg("Linhas de resultado malformadas ignoradas")
	}

	return store, nil
}

func parseResult(rec []string, userCol, subjectCol, diffCol, scoreCol, totalCol int, hasTotal bool) (model.QuizResult, error) {
	maxCol := userCol
	for _, c := range []int{subjectCol, diffCol, scoreCol} {
		if c > maxCol {
			maxCol = c
		}
	}
	if hasTotal && totalCol > maxCol {
		maxCol = totalCol
	}
	if len(rec) <= maxCol {
		return model.QuizResult{}, fmt.Errorf("linha com %d colunas", len(rec))
	}

	score, err := strconv.ParseFloat(rec[scoreCol], 64)
	if err != nil {
		return model.QuizResult{}, err
	}

	total := 100.0
	if hasTotal {
		total, err = strconv.ParseFloat(rec[totalCol], 64)
		if err != nil {
			return model.QuizResult{}, err
		}
	}

	res := model.QuizResult{
		UserID:     rec[userCol],
		Subject:    rec[subjectCol],
		Difficulty: rec[diffCol],
		Score:      score,
		Total:      total,
	}
	if res.UserID == "" || res.Subject == "" {
		return model.QuizResult{}, fmt.Errorf("identificação ausente")
	}
	return res, nil
}

// Append registra um resultado em memória e no arquivo
func (s *ResultsStore) Append(res model.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		writeHeader = true
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("abrir resultados para escrita: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(resultsHeader); err != nil {
			return fmt.Errorf("escrever cabeçalho: %w", err)
		}
	}
	record := []string{
		res.UserID,
		res.Subject,
		res.Difficulty,
		strconv.FormatFloat(res.Score, 'f', -1, 64),
		strconv.FormatFloat(res.Total, 'f', -1, 64),
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("escrever resultado: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("gravar resultados: %w", err)
	}

	s.rows = append(s.rows, res)
	return nil
}

// All retorna uma cópia de todos os resultados
func (s *ResultsStore) All() []model.QuizResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.QuizResult, len(s.rows))
	copy(out, s.rows)
	return out
}

// ForUser retorna os resultados de um usuário
func (s *ResultsStore) ForUser(userID string) []model.QuizResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.QuizResult
	for _, res := range s.rows {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out
}
