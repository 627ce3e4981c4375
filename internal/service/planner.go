package service

import (
	"context"
	"fmt"
	"math"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/solver"
)

// PlannerService gera planos de estudo por otimização em dois estágios:
// primeiro maximiza o número de matérias atendidas, depois maximiza o
// tempo total utilizado com essa contagem fixada. Colapsar os dois
// estágios em um único objetivo ponderado produz alocações piores, então
// a ordem lexicográfica é mantida.
type PlannerService struct {
	maxNodes int
}

// NewPlannerService cria um novo serviço de planejamento
func NewPlannerService(maxNodes int) *PlannerService {
	return &PlannerService{maxNodes: maxNodes}
}

// Allocate distribui o orçamento de horas entre as matérias respeitando
// os mínimos por matéria e a proporcionalidade às prioridades. Matérias
// não selecionadas são omitidas do resultado. A função é pura: mesmas
// entradas produzem sempre o mesmo plano.
func (s *PlannerService) Allocate(ctx context.Context, budget float64, tasks []model.StudyTask) (*model.PlanResult, error) {
	if err := validatePlanInput(budget, tasks); err != nil {
		return nil, err
	}

	log := logger.Get(ctx)
	log.Info().
		Float64("budget", budget).
		Int("subjects", len(tasks)).
		Msg("Gerando plano de estudos")

	// Estágio 1: maximiza o número de matérias selecionadas
	stage1 := buildStageProblem(budget, tasks, -1)
	sol1, err := stage1.Solve(s.maxNodes)
	if err != nil {
		return nil, fmt.Errorf("%w: estágio 1: %v", model.ErrSolverError, err)
	}

	n := len(tasks)
	selectedSum := 0.0
	for i := 0; i < n; i++ {
		selectedSum += sol1.Values[n+i]
	}
	k := int(math.Round(selectedSum))
	if k == 0 {
		return nil, model.ErrNoFeasibleAllocation
	}

	// Estágio 2: com a contagem fixada em k, maximiza o tempo total usado
	stage2 := buildStageProblem(budget, tasks, k)
	sol2, err := stage2.Solve(s.maxNodes)
	if err != nil {
		return nil, fmt.Errorf("%w: estágio 2: %v", model.ErrSolverError, err)
	}

	result := &model.PlanResult{SelectedCount: k}
	for i, task := range tasks {
		if sol2.Values[n+i] < 0.5 {
			continue
		}
		exact := sol2.Values[i]
		hours := displayHours(exact, task.MinHours)
		result.Allocations = append(result.Allocations, model.Allocation{
			Name:       task.Name,
			Priority:   task.Priority,
			Hours:      hours,
			ExactHours: exact,
		})
		result.TotalHours += hours
	}

	log.Info().
		Int("selected", k).
		Float64("total_hours", result.TotalHours).
		Msg("Plano de estudos gerado")

	return result, nil
}

// validatePlanInput rejeita entradas malformadas antes de montar o MILP
func validatePlanInput(budget float64, tasks []model.StudyTask) error {
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget <= 0 {
		return fmt.Errorf("%w: orçamento de horas deve ser positivo", model.ErrInvalidInput)
	}
	if len(tasks) == 0 {
		return fmt.Errorf("%w: nenhuma matéria informada", model.ErrInvalidInput)
	}
	for i, task := range tasks {
		if task.Name == "" {
			return fmt.Errorf("%w: matéria %d sem nome", model.ErrInvalidInput, i+1)
		}
		if task.Priority < 1 || task.Priority > 5 {
			return fmt.Errorf("%w: prioridade de %q fora do intervalo 1-5", model.ErrInvalidInput, task.Name)
		}
		if math.IsNaN(task.MinHours) || math.IsInf(task.MinHours, 0) || task.MinHours < 0 {
			return fmt.Errorf("%w: tempo mínimo de %q inválido", model.ErrInvalidInput, task.Name)
		}
	}
	return nil
}

// buildStageProblem monta o MILP compartilhado pelos dois estágios.
// Variáveis: x_i (horas), y_i (seleção, binária) e t (fator comum de
// proporcionalidade). k < 0 monta o estágio 1 (max Σy); k ≥ 0 fixa
// Σy = k e maximiza Σx.
//
// O big-M das restrições disjuntivas é exatamente o orçamento: é o maior
// valor que qualquer x_i pode assumir, o que mantém a relaxação justa.
func buildStageProblem(budget float64, tasks []model.StudyTask, k int) *solver.Problem {
	n := len(tasks)
	nVars := 2*n + 1
	tIdx := 2 * n

	p := solver.New(nVars)

	obj := make([]float64, nVars)
	for i := 0; i < n; i++ {
		if k < 0 {
			obj[n+i] = 1
		} else {
			obj[i] = 1
		}
	}
	p.SetObjective(obj, true)

	for i := 0; i < n; i++ {
		p.Binary(n + i)
	}

	// Σx ≤ orçamento
	capRow := make([]float64, nVars)
	for i := 0; i < n; i++ {
		capRow[i] = 1
	}
	p.AddLessEq(capRow, budget)

	for i, task := range tasks {
		pri := float64(task.Priority)

		// mínimo quando selecionada: x_i ≥ min_i·y_i
		minRow := make([]float64, nVars)
		minRow[i] = 1
		minRow[n+i] = -task.MinHours
		p.AddGreaterEq(minRow, 0)

		// zero quando não selecionada: x_i ≤ orçamento·y_i
		zeroRow := make([]float64, nVars)
		zeroRow[i] = 1
		zeroRow[n+i] = -budget
		p.AddLessEq(zeroRow, 0)

		// proporcionalidade quando selecionada: |x_i − p_i·t| ≤ M·(1 − y_i)
		upRow := make([]float64, nVars)
		upRow[i] = 1
		upRow[tIdx] = -pri
		upRow[n+i] = budget
		p.AddLessEq(upRow, budget)

		downRow := make([]float64, nVars)
		downRow[i] = -1
		downRow[tIdx] = pri
		downRow[n+i] = budget
		p.AddLessEq(downRow, budget)
	}

	if k >= 0 {
		countRow := make([]float64, nVars)
		for i := 0; i < n; i++ {
			countRow[n+i] = 1
		}
		p.AddEq(countRow, float64(k))
	}

	return p
}

// roundHalfDown arredonda para o múltiplo de 0,5 imediatamente abaixo,
// com uma folga mínima para ruído numérico do solver. A regra segue a
// exibição original (3,6 → 3,5; 3,4 → 3,0) e garante que a soma
// arredondada nunca ultrapassa o orçamento.
func roundHalfDown(x float64) float64 {
	return math.Floor(x*2+1e-9) / 2
}

// displayHours converte o valor exato da alocação nas horas exibidas:
// arredonda para baixo ao meio mais próximo, nunca acima do exato, e
// eleva ao mínimo da matéria. Só o próprio mínimo pode passar do exato,
// e no máximo pela tolerância do solver.
func displayHours(exact, min float64) float64 {
	hours := roundHalfDown(exact)
	if hours > exact {
		hours = exact
	}
	if hours < min {
		hours = min
	}
	return hours
}
