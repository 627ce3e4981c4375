package model

// StudyTask representa uma matéria candidata à alocação de tempo
type StudyTask struct {
	Name     string  `json:"name" binding:"required"`
	Priority int     `json:"priority" binding:"required,min=1,max=5"`
	MinHours float64 `json:"min_hours"`
}

// Allocation é o tempo atribuído a uma matéria selecionada.
// Hours é o valor arredondado para exibição; ExactHours preserva a
// solução do solver antes do arredondamento.
type Allocation struct {
	Name       string  `json:"name"`
	Priority   int     `json:"priority"`
	Hours      float64 `json:"hours"`
	ExactHours float64 `json:"exact_hours"`
}

// PlanRequest representa o payload de entrada para geração de plano de estudos
type PlanRequest struct {
	AvailableHours float64     `json:"available_hours" binding:"required"`
	Subjects       []StudyTask `json:"subjects" binding:"required,min=1"`
}

// PlanResult contém o plano de estudos gerado
type PlanResult struct {
	SelectedCount int          `json:"selected_count"`
	TotalHours    float64      `json:"total_hours"`
	Allocations   []Allocation `json:"allocations"`
}
