package model

// Níveis de foco atribuídos pelo agrupamento de desempenho
const (
	FocusFirst     = "focus_first"
	NeedsAttention = "needs_attention"
	StrongArea     = "strong_area"
)

// InsightsRequest representa o pedido de análise de lacunas de conhecimento.
// Quando Results está vazio, os resultados são lidos do repositório.
type InsightsRequest struct {
	UserID  string       `json:"user_id" binding:"required"`
	Results []QuizResult `json:"results,omitempty"`
}

// SubjectInsight resume o desempenho de um usuário em uma matéria
type SubjectInsight struct {
	Subject        string  `json:"subject"`
	Accuracy       float64 `json:"accuracy"`
	FocusLevel     string  `json:"focus_level"`
	Recommendation string  `json:"recommendation"`
}

// InsightsReport contém a análise completa de um usuário
type InsightsReport struct {
	UserID   string           `json:"user_id"`
	Subjects []SubjectInsight `json:"subjects"`
}
