package model

import "errors"

var (
	// ErrInvalidInput indica entrada rejeitada antes do solve
	ErrInvalidInput = errors.New("dados de entrada inválidos")

	// ErrNoFeasibleAllocation indica que nenhuma matéria recebe sequer o
	// tempo mínimo dentro do orçamento disponível
	ErrNoFeasibleAllocation = errors.New("nenhuma alocação viável dentro do tempo disponível")

	// ErrSolverError indica falha numérica ou limite do solver
	ErrSolverError = errors.New("o solver não encontrou uma solução ótima")

	// ErrHistoryUnavailable indica que o banco de histórico não está configurado
	ErrHistoryUnavailable = errors.New("histórico de planos indisponível")

	// ErrNotFound indica recurso não encontrado
	ErrNotFound = errors.New("recurso não encontrado")
)

// Códigos de erro expostos pela API
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeNoFeasibleAllocation = "NO_FEASIBLE_ALLOCATION"
	CodeSolverError          = "SOLVER_ERROR"
)
