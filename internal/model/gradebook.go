package model

// Assignment representa uma avaliação de um curso
type Assignment struct {
	Name       string   `json:"name" binding:"required"`
	Weight     float64  `json:"weight"` // percentual do total (0-100)
	Grade      float64  `json:"grade"`  // nota em % quando concluída
	Completed  bool     `json:"completed"`
	StudyHours *float64 `json:"study_hours,omitempty"`
}

// GradebookRequest representa o pedido de análise de um curso
type GradebookRequest struct {
	Course         string       `json:"course" binding:"required"`
	TargetGrade    float64      `json:"target_grade"`
	AvailableHours float64      `json:"available_hours"`
	Assignments    []Assignment `json:"assignments" binding:"required,min=1"`
}

// StudySplit é a sugestão de horas para uma avaliação pendente
type StudySplit struct {
	Assignment       string  `json:"assignment"`
	Weight           float64 `json:"weight"`
	RecommendedHours float64 `json:"recommended_hours"`
}

// GradeAnalysis contém o resultado da análise do curso
type GradeAnalysis struct {
	Course          string       `json:"course"`
	CurrentGrade    float64      `json:"current_grade"`
	ProjectedFinal  float64      `json:"projected_final"`
	RequiredScore   float64      `json:"required_score"`
	RemainingWeight float64      `json:"remaining_weight"`
	PredictedGrade  *float64     `json:"predicted_grade,omitempty"`
	TrendSlope      *float64     `json:"trend_slope,omitempty"`
	Trend           string       `json:"trend"`
	GoalStatus      string       `json:"goal_status"`
	GoalMessage     string       `json:"goal_message"`
	Insights        []string     `json:"insights"`
	StudySplit      []StudySplit `json:"study_split,omitempty"`
}

// Classificações de tendência de notas
const (
	TrendImproving    = "improving"
	TrendDeclining    = "declining"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient_data"
)

// Status de atingimento da meta
const (
	GoalOnTrack  = "on_track"
	GoalAtRisk   = "at_risk"
	GoalBehind   = "behind"
	GoalNoData   = "no_data"
)
