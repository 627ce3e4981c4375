package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const planTol = 1e-6

func newTestPlanner() *PlannerService {
	return NewPlannerService(0)
}

func TestAllocateProportionalPlan(t *testing.T) {
	planner := newTestPlanner()

	tasks := []model.StudyTask{
		{Name: "Matemática", Priority: 5, MinHours: 0.5},
		{Name: "Física", Priority: 3, MinHours: 0.5},
		{Name: "Química", Priority: 1, MinHours: 0.5},
	}

	result, err := planner.Allocate(context.Background(), 5, tasks)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if result.SelectedCount != 3 {
		t.Fatalf("esperado 3 matérias selecionadas, obtido %d", result.SelectedCount)
	}

	// Horas exatas proporcionais às prioridades: 25/9, 15/9, 5/9
	wantExact := []float64{25.0 / 9, 15.0 / 9, 5.0 / 9}
	wantHours := []float64{2.5, 1.5, 0.5}

	if len(result.Allocations) != 3 {
		t.Fatalf("esperadas 3 alocações, obtidas %d", len(result.Allocations))
	}

	for i, alloc := range result.Allocations {
		if math.Abs(alloc.ExactHours-wantExact[i]) > 1e-4 {
			t.Errorf("%s: horas exatas = %.4f, esperado %.4f", alloc.Name, alloc.ExactHours, wantExact[i])
		}
		if alloc.Hours != wantHours[i] {
			t.Errorf("%s: horas = %.1f, esperado %.1f", alloc.Name, alloc.Hours, wantHours[i])
		}
	}
}

func TestAllocateDropsSubjectWhenProportionalityFails(t *testing.T) {
	planner := newTestPlanner()

	// Os mínimos somam exatamente o orçamento, mas 0,5h para cada uma
	// viola a proporcionalidade 1:3. Só uma matéria pode ser atendida.
	tasks := []model.StudyTask{
		{Name: "História", Priority: 1, MinHours: 0.5},
		{Name: "Geografia", Priority: 3, MinHours: 0.5},
	}

	result, err := planner.Allocate(context.Background(), 1, tasks)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if result.SelectedCount != 1 {
		t.Fatalf("esperada 1 matéria selecionada, obtido %d", result.SelectedCount)
	}
	if len(result.Allocations) != 1 {
		t.Fatalf("esperada 1 alocação, obtidas %d", len(result.Allocations))
	}
	if result.Allocations[0].Hours != 1.0 {
		t.Errorf("horas = %.1f, esperado 1.0", result.Allocations[0].Hours)
	}
}

func TestAllocateNoFeasibleAllocation(t *testing.T) {
	planner := newTestPlanner()
	ctx := context.Background()

	cases := []struct {
		name   string
		budget float64
		tasks  []model.StudyTask
	}{
		{"orçamento abaixo do mínimo único", 0.3, []model.StudyTask{
			{Name: "Matemática", Priority: 5, MinHours: 0.5},
		}},
		{"todos os mínimos acima do orçamento", 2, []model.StudyTask{
			{Name: "Matemática", Priority: 5, MinHours: 3},
			{Name: "Física", Priority: 4, MinHours: 3},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := planner.Allocate(ctx, tc.budget, tc.tasks)
			if !errors.Is(err, model.ErrNoFeasibleAllocation) {
				t.Fatalf("esperado ErrNoFeasibleAllocation, obtido %v", err)
			}
		})
	}
}

func TestAllocateEqualPriorities(t *testing.T) {
	planner := newTestPlanner()

	tasks := []model.StudyTask{
		{Name: "Biologia", Priority: 2, MinHours: 1},
		{Name: "Filosofia", Priority: 2, MinHours: 1},
		{Name: "Sociologia", Priority: 2, MinHours: 1},
	}

	result, err := planner.Allocate(context.Background(), 10, tasks)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if result.SelectedCount != 3 {
		t.Fatalf("esperado 3 matérias selecionadas, obtido %d", result.SelectedCount)
	}

	// 10/3 exatas para cada uma, arredondadas para 3,0
	for _, alloc := range result.Allocations {
		if math.Abs(alloc.ExactHours-10.0/3) > 1e-4 {
			t.Errorf("%s: horas exatas = %.4f, esperado %.4f", alloc.Name, alloc.ExactHours, 10.0/3)
		}
		if alloc.Hours != 3.0 {
			t.Errorf("%s: horas = %.1f, esperado 3.0", alloc.Name, alloc.Hours)
		}
	}
	if result.TotalHours != 9.0 {
		t.Errorf("total de horas = %.1f, esperado 9.0", result.TotalHours)
	}
}

func TestAllocateInvalidInput(t *testing.T) {
	planner := newTestPlanner()
	ctx := context.Background()

	cases := []struct {
		name   string
		budget float64
		tasks  []model.StudyTask
	}{
		{"orçamento zero", 0, []model.StudyTask{{Name: "X", Priority: 1}}},
		{"orçamento negativo", -1, []model.StudyTask{{Name: "X", Priority: 1}}},
		{"orçamento NaN", math.NaN(), []model.StudyTask{{Name: "X", Priority: 1}}},
		{"sem matérias", 10, nil},
		{"matéria sem nome", 10, []model.StudyTask{{Priority: 2}}},
		{"prioridade zero", 10, []model.StudyTask{{Name: "X", Priority: 0}}},
		{"prioridade alta demais", 10, []model.StudyTask{{Name: "X", Priority: 6}}},
		{"mínimo negativo", 10, []model.StudyTask{{Name: "X", Priority: 2, MinHours: -1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := planner.Allocate(ctx, tc.budget, tc.tasks)
			if !errors.Is(err, model.ErrInvalidInput) {
				t.Fatalf("esperado ErrInvalidInput, obtido %v", err)
			}
		})
	}
}

func TestRoundHalfDown(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{3.6, 3.5},
		{3.4, 3.0},
		{3.5, 3.5},
		{0.49, 0.0},
		{0.5, 0.5},
		{10.0 / 3, 3.0},
	}

	for _, tc := range cases {
		if got := roundHalfDown(tc.in); got != tc.want {
			t.Errorf("roundHalfDown(%v) = %v, esperado %v", tc.in, got, tc.want)
		}
	}
}

func TestDisplayHours(t *testing.T) {
	cases := []struct {
		name       string
		exact, min float64
		want       float64
	}{
		{"arredonda para baixo", 3.6, 0, 3.5},
		{"meio exato", 1.5, 0, 1.5},
		{"eleva ao mínimo", 0.49, 0.5, 0.5},
		{"ruído abaixo do meio", 0.4999999999, 0.5, 0.5},
		{"nunca acima do exato", 2.4999999999, 0, 2.0},
		{"terço vira inteiro", 10.0 / 3, 1, 3.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := displayHours(tc.exact, tc.min); got != tc.want {
				t.Errorf("displayHours(%v, %v) = %v, esperado %v", tc.exact, tc.min, got, tc.want)
			}
		})
	}
}

// TestAllocateTightBudgetHighPriorities cobre um cenário apertado que
// exige várias ramificações com vértices degenerados na relaxação
func TestAllocateTightBudgetHighPriorities(t *testing.T) {
	planner := newTestPlanner()
	tasks := []model.StudyTask{
		{Name: "Matemática", Priority: 5, MinHours: 0.5},
		{Name: "Português", Priority: 5, MinHours: 0.5},
		{Name: "História", Priority: 3, MinHours: 0.5},
	}

	result, err := planner.Allocate(context.Background(), 2, tasks)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if result.SelectedCount == 0 {
		t.Fatal("nenhuma matéria selecionada")
	}
	total := 0.0
	for _, alloc := range result.Allocations {
		total += alloc.ExactHours
	}
	if total > 2+1e-6 {
		t.Errorf("soma exata %v estoura o orçamento 2", total)
	}
}

// TestAllocateGrid varre uma grade de entradas válidas de três matérias
// e exige que toda chamada termine em plano ou em inviabilidade, nunca
// em erro do solver
func TestAllocateGrid(t *testing.T) {
	planner := newTestPlanner()
	ctx := context.Background()

	budgets := []float64{2, 4, 6, 8, 10, 12}
	priorities := []int{1, 3, 5}
	mins := []float64{0, 0.5, 1}

	for _, budget := range budgets {
		for _, p1 := range priorities {
			for _, p2 := range priorities {
				for _, p3 := range priorities {
					tasks := []model.StudyTask{
						{Name: "A", Priority: p1, MinHours: mins[0]},
						{Name: "B", Priority: p2, MinHours: mins[1]},
						{Name: "C", Priority: p3, MinHours: mins[2]},
					}
					result, err := planner.Allocate(ctx, budget, tasks)
					if errors.Is(err, model.ErrNoFeasibleAllocation) {
						continue
					}
					if err != nil {
						t.Fatalf("orçamento=%v prioridades=[%d %d %d]: %v", budget, p1, p2, p3, err)
					}
					sum := 0.0
					for _, alloc := range result.Allocations {
						sum += alloc.Hours
					}
					if sum > budget+1e-6 {
						t.Errorf("orçamento=%v prioridades=[%d %d %d]: soma %v estoura o orçamento", budget, p1, p2, p3, sum)
					}
				}
			}
		}
	}
}

// planInput agrupa um cenário gerado para as propriedades do planejador
type planInput struct {
	Budget float64
	Tasks  []model.StudyTask
}

func genPlanInput() gopter.Gen {
	return gen.IntRange(1, 4).FlatMap(func(v interface{}) gopter.Gen {
		n := v.(int)
		return gopter.CombineGens(
			gen.IntRange(2, 20),
			gen.SliceOfN(n, gen.IntRange(1, 5)),
			gen.SliceOfN(n, gen.IntRange(0, 3)),
		).Map(func(vals []interface{}) planInput {
			budget := float64(vals[0].(int))
			priorities := vals[1].([]int)
			minimums := vals[2].([]int)

			tasks := make([]model.StudyTask, n)
			for i := range tasks {
				tasks[i] = model.StudyTask{
					Name:     fmt.Sprintf("Matéria %d", i+1),
					Priority: priorities[i],
					MinHours: float64(minimums[i]) / 2,
				}
			}
			return planInput{Budget: budget, Tasks: tasks}
		})
	}, reflect.TypeOf(planInput{}))
}

func minHoursFor(tasks []model.StudyTask, name string) float64 {
	for _, task := range tasks {
		if task.Name == name {
			return task.MinHours
		}
	}
	return 0
}

func TestAllocateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	planner := newTestPlanner()
	ctx := context.Background()

	properties.Property("soma exata nunca ultrapassa o orçamento", prop.ForAll(
		func(in planInput) bool {
			result, err := planner.Allocate(ctx, in.Budget, in.Tasks)
			if errors.Is(err, model.ErrNoFeasibleAllocation) {
				return true
			}
			if err != nil {
				return false
			}

			sum := 0.0
			for _, alloc := range result.Allocations {
				sum += alloc.ExactHours
			}
			return sum <= in.Budget+planTol
		},
		genPlanInput(),
	))

	properties.Property("matéria selecionada recebe pelo menos o mínimo", prop.ForAll(
		func(in planInput) bool {
			result, err := planner.Allocate(ctx, in.Budget, in.Tasks)
			if errors.Is(err, model.ErrNoFeasibleAllocation) {
				return true
			}
			if err != nil {
				return false
			}

			for _, alloc := range result.Allocations {
				min := minHoursFor(in.Tasks, alloc.Name)
				if alloc.ExactHours < min-planTol {
					return false
				}
				if alloc.Hours < min {
					return false
				}
			}
			return true
		},
		genPlanInput(),
	))

	properties.Property("soma arredondada nunca ultrapassa o orçamento", prop.ForAll(
		func(in planInput) bool {
			result, err := planner.Allocate(ctx, in.Budget, in.Tasks)
			if errors.Is(err, model.ErrNoFeasibleAllocation) {
				return true
			}
			if err != nil {
				return false
			}
			return result.TotalHours <= in.Budget+planTol
		},
		genPlanInput(),
	))

	properties.Property("horas exatas proporcionais às prioridades", prop.ForAll(
		func(in planInput) bool {
			result, err := planner.Allocate(ctx, in.Budget, in.Tasks)
			if errors.Is(err, model.ErrNoFeasibleAllocation) {
				return true
			}
			if err != nil {
				return false
			}

			// Todas as selecionadas compartilham o mesmo fator x_i/p_i
			ratio := -1.0
			for _, alloc := range result.Allocations {
				r := alloc.ExactHours / float64(alloc.Priority)
				if ratio < 0 {
					ratio = r
					continue
				}
				if math.Abs(r-ratio) > 1e-4*(1+ratio) {
					return false
				}
			}
			return true
		},
		genPlanInput(),
	))

	properties.Property("mesma entrada produz o mesmo plano", prop.ForAll(
		func(in planInput) bool {
			first, err1 := planner.Allocate(ctx, in.Budget, in.Tasks)
			second, err2 := planner.Allocate(ctx, in.Budget, in.Tasks)

			if err1 != nil || err2 != nil {
				return errors.Is(err1, model.ErrNoFeasibleAllocation) &&
					errors.Is(err2, model.ErrNoFeasibleAllocation)
			}
			return reflect.DeepEqual(first, second)
		},
		genPlanInput(),
	))

	properties.Property("mais orçamento nunca atende menos matérias", prop.ForAll(
		func(in planInput) bool {
			smaller, err1 := planner.Allocate(ctx, in.Budget, in.Tasks)
			larger, err2 := planner.Allocate(ctx, in.Budget+1, in.Tasks)

			if errors.Is(err1, model.ErrNoFeasibleAllocation) {
				return true
			}
			if err1 != nil || err2 != nil {
				return false
			}
			if larger.SelectedCount < smaller.SelectedCount {
				return false
			}

			sumSmaller, sumLarger := 0.0, 0.0
			for _, alloc := range smaller.Allocations {
				sumSmaller += alloc.ExactHours
			}
			for _, alloc := range larger.Allocations {
				sumLarger += alloc.ExactHours
			}
			return sumLarger >= sumSmaller-planTol
		},
		genPlanInput(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
