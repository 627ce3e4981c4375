package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cleberrangel/studyplan-api/internal/model"
)

// PlanHistoryEntry é um plano gerado registrado no banco
type PlanHistoryEntry struct {
	ID             int64              `json:"id"`
	RequestedHours float64            `json:"requested_hours"`
	SubjectCount   int                `json:"subject_count"`
	SelectedCount  int                `json:"selected_count"`
	TotalHours     float64            `json:"total_hours"`
	Allocations    []model.Allocation `json:"allocations"`
	CreatedAt      time.Time          `json:"created_at"`
}

// HistoryRepository persiste o histórico de planos gerados
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository cria o repositório de histórico
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save registra um plano gerado
func (r *HistoryRepository) Save(ctx context.Context, requestedHours float64, subjectCount int, result *model.PlanResult) error {
	allocations, err := json.Marshal(result.Allocations)
	if err != nil {
		return fmt.Errorf("serializar alocações: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO plan_history (requested_hours, subject_count, selected_count, total_hours, allocations)
		VALUES ($1, $2, $3, $4, $5)`,
		requestedHours, subjectCount, result.SelectedCount, result.TotalHours, allocations,
	)
	if err != nil {
		return fmt.Errorf("inserir histórico: %w", err)
	}
	return nil
}

// List retorna os planos mais recentes, limitado a limit registros
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]PlanHistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, requested_hours, subject_count, selected_count, total_hours, allocations, created_at
		FROM plan_history
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("consultar histórico: %w", err)
	}
	defer rows.Close()

	var entries []PlanHistoryEntry
	for rows.Next() {
		var entry PlanHistoryEntry
		var allocations []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.RequestedHours,
			&entry.SubjectCount,
			&entry.SelectedCount,
			&entry.TotalHours,
			&allocations,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ler histórico: %w", err)
		}
		if err := json.Unmarshal(allocations, &entry.Allocations); err != nil {
			return nil, fmt.Errorf("decodificar alocações: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
