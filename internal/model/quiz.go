package model

// Níveis de dificuldade aceitos nos resultados de quiz
const (
	DifficultyEasy         = "Easy"
	DifficultyIntermediate = "Intermediate"
	DifficultyHard         = "Hard"
)

// QuizResult representa o resultado de uma tentativa de quiz
type QuizResult struct {
	UserID     string  `json:"user_id" binding:"required"`
	Subject    string  `json:"subject" binding:"required"`
	Difficulty string  `json:"difficulty" binding:"required"`
	Score      float64 `json:"score"`
	Total      float64 `json:"total"`
}

// Question representa uma questão do banco de quizzes
type Question struct {
	Subject    string   `json:"subject"`
	Difficulty string   `json:"difficulty"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer,omitempty"`
}

// QuizSampleRequest representa o pedido de montagem de um quiz
type QuizSampleRequest struct {
	Subject    string `json:"subject" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
	Count      int    `json:"count"`
}

// LeaderboardRow é uma linha do ranking
type LeaderboardRow struct {
	Rank          int     `json:"rank"`
	UserID        string  `json:"user_id"`
	WeightedScore float64 `json:"weighted_score"`
}

// Leaderboard contém o ranking calculado e os pesos vigentes por dificuldade
type Leaderboard struct {
	Subject string             `json:"subject,omitempty"`
	Rows    []LeaderboardRow   `json:"rows"`
	Weights map[string]float64 `json:"weights"`
}
