package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config armazena as configurações da aplicação
type Config struct {
	TokenAPI     string
	TokenAPIHash string // hash bcrypt; quando presente tem precedência sobre TokenAPI
	Port         string
	GinMode      string
	LogLevel     string
	LogJSON      bool

	// Banco de histórico (opcional)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Arquivos de dados dos quizzes
	QuizDataPath string
	ResultsPath  string

	// Limites do solver e da API
	SolverMaxNodes int
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load carrega as configurações do ambiente
func Load() (*Config, error) {
	// Tenta carregar .env de múltiplos locais
	_ = godotenv.Load()          // ./.env
	_ = godotenv.Load("../.env") // raiz do projeto

	cfg := &Config{
		TokenAPI:     os.Getenv("TOKEN_API"),
		TokenAPIHash: os.Getenv("TOKEN_API_HASH"),
		Port:         os.Getenv("PORT"),
		GinMode:      os.Getenv("GIN_MODE"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogJSON:      os.Getenv("LOG_JSON") == "true",
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       os.Getenv("DB_PORT"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBSSLMode:    os.Getenv("DB_SSLMODE"),
		QuizDataPath: os.Getenv("QUIZ_DATA_PATH"),
		ResultsPath:  os.Getenv("RESULTS_PATH"),
	}

	// Validações obrigatórias
	if cfg.TokenAPI == "" && cfg.TokenAPIHash == "" {
		return nil, errors.New("TOKEN_API ou TOKEN_API_HASH deve estar configurado")
	}

	// Defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.QuizDataPath == "" {
		cfg.QuizDataPath = "quiz_data.csv"
	}
	if cfg.ResultsPath == "" {
		cfg.ResultsPath = "quiz_results.csv"
	}

	cfg.SolverMaxNodes = envInt("SOLVER_MAX_NODES", 4096)
	cfg.RateLimitRPS = envFloat("RATE_LIMIT_RPS", 20)
	cfg.RateLimitBurst = envInt("RATE_LIMIT_BURST", 40)

	return cfg, nil
}

// DatabaseEnabled indica se o histórico em Postgres está configurado
func (c *Config) DatabaseEnabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
