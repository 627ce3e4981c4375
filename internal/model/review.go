package model

// Concept representa um conceito acompanhado pelo modelo de repetição espaçada
type Concept struct {
	Name      string  `json:"name" binding:"required"`
	DecayRate float64 `json:"decay_rate"`
	QuizScore float64 `json:"quiz_score"`
}

// ReviewRequest representa o pedido de cálculo de intervalos de revisão
type ReviewRequest struct {
	TargetRetention float64   `json:"target_retention"` // default 0.85
	Beta            float64   `json:"beta"`             // default 0.2
	Concepts        []Concept `json:"concepts" binding:"required,min=1"`
}

// ReviewEntry é o intervalo ótimo calculado para um conceito.
// Intervalos nulos indicam que o modelo parou de prever esquecimento
// (taxa de decaimento não positiva).
type ReviewEntry struct {
	Concept              string   `json:"concept"`
	OldDecayRate         float64  `json:"old_decay_rate"`
	NewDecayRate         float64  `json:"new_decay_rate"`
	InitialIntervalHours *float64 `json:"initial_interval_hours"`
	NewIntervalHours     *float64 `json:"new_interval_hours"`
	Change               string   `json:"change"`
}

// Classificações de mudança de intervalo
const (
	IntervalIncreased         = "increased"
	IntervalDecreased         = "decreased"
	IntervalUnchanged         = "no_change"
	IntervalStoppedForgetting = "stopped_forgetting"
)
