// Package solver resolve programas lineares inteiros mistos (MILP) de
// pequeno porte. A relaxação linear é resolvida por um simplex tabular
// em duas fases com a regra de Bland e as variáveis binárias são
// fixadas por branch-and-bound.
//
// Todas as variáveis são não negativas. Limites superiores e quaisquer
// outras condições entram como restrições lineares.
package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasible indica que o problema não tem solução viável
	ErrInfeasible = errors.New("problema inviável")

	// ErrUnbounded indica objetivo ilimitado
	ErrUnbounded = errors.New("problema ilimitado")

	// ErrNodeLimit indica que o branch-and-bound esgotou o limite de nós
	ErrNodeLimit = errors.New("limite de nós do solver excedido")

	// ErrIterationLimit indica que uma relaxação esgotou o limite de
	// pivôs do simplex
	ErrIterationLimit = errors.New("limite de iterações do simplex excedido")
)

// intTol é a tolerância para considerar uma variável binária como inteira
const intTol = 1e-6

// Problem é um MILP na forma geral: otimizar cᵀx sujeito a restrições
// lineares de desigualdade e igualdade, com x ≥ 0 e um subconjunto de
// variáveis restritas a {0, 1}.
type Problem struct {
	nVars    int
	obj      []float64
	maximize bool
	binary   []bool

	ineqA [][]float64 // G·x ≤ h
	ineqB []float64
	eqA   [][]float64 // A·x = b
	eqB   []float64

	iterLimit int
}

// New cria um problema com nVars variáveis não negativas
func New(nVars int) *Problem {
	return &Problem{
		nVars:  nVars,
		obj:    make([]float64, nVars),
		binary: make([]bool, nVars),
	}
}

// NumVars retorna o número de variáveis do problema
func (p *Problem) NumVars() int { return p.nVars }

// LimitIterations limita o número de pivôs do simplex por relaxação.
// Com n ≤ 0 vale o limite padrão.
func (p *Problem) LimitIterations(n int) { p.iterLimit = n }

// SetObjective define os coeficientes do objetivo e o sentido da otimização
func (p *Problem) SetObjective(coeffs []float64, maximize bool) {
	p.checkDim(coeffs)
	p.obj = append([]float64(nil), coeffs...)
	p.maximize = maximize
}

// Binary restringe a variável i a {0, 1}. O limite superior y ≤ 1 é
// adicionado automaticamente como restrição.
func (p *Problem) Binary(i int) {
	if p.binary[i] {
		return
	}
	p.binary[i] = true
	row := make([]float64, p.nVars)
	row[i] = 1
	p.AddLessEq(row, 1)
}

// AddLessEq adiciona a restrição coeffs·x ≤ rhs
func (p *Problem) AddLessEq(coeffs []float64, rhs float64) {
	p.checkDim(coeffs)
	p.ineqA = append(p.ineqA, append([]float64(nil), coeffs...))
	p.ineqB = append(p.ineqB, rhs)
}

// AddGreaterEq adiciona a restrição coeffs·x ≥ rhs
func (p *Problem) AddGreaterEq(coeffs []float64, rhs float64) {
	neg := make([]float64, len(coeffs))
	for i, c := range coeffs {
		neg[i] = -c
	}
	p.AddLessEq(neg, -rhs)
}

// AddEq adiciona a restrição coeffs·x = rhs
func (p *Problem) AddEq(coeffs []float64, rhs float64) {
	p.checkDim(coeffs)
	p.eqA = append(p.eqA, append([]float64(nil), coeffs...))
	p.eqB = append(p.eqB, rhs)
}

func (p *Problem) checkDim(coeffs []float64) {
	if len(coeffs) != p.nVars {
		panic(fmt.Sprintf("solver: esperados %d coeficientes, recebidos %d", p.nVars, len(coeffs)))
	}
}

// solveRelaxation resolve a relaxação linear do problema com as
// desigualdades extras fornecidas (fixações do branch-and-bound).
// O valor retornado está sempre no espaço de minimização.
func (p *Problem) solveRelaxation(extraA [][]float64, extraB []float64) (float64, []float64, error) {
	nIneq := len(p.ineqA) + len(extraA)
	nEq := len(p.eqA)
	nCols := p.nVars + nIneq // uma variável de folga por desigualdade
	nRows := nIneq + nEq

	c := make([]float64, nCols)
	for i, v := range p.obj {
		if p.maximize {
			c[i] = -v
		} else {
			c[i] = v
		}
	}

	a := make([][]float64, 0, nRows)
	b := make([]float64, 0, nRows)

	addIneq := func(coeffs []float64, rhs float64) {
		// Normaliza para rhs ≥ 0; a folga troca de sinal junto com a linha
		sign := 1.0
		if rhs < 0 {
			sign = -1.0
		}
		row := make([]float64, nCols)
		for j, v := range coeffs {
			row[j] = sign * v
		}
		row[p.nVars+len(a)] = sign
		a = append(a, row)
		b = append(b, sign*rhs)
	}
	for i := range p.ineqA {
		addIneq(p.ineqA[i], p.ineqB[i])
	}
	for i := range extraA {
		addIneq(extraA[i], extraB[i])
	}
	for i := range p.eqA {
		sign := 1.0
		if p.eqB[i] < 0 {
			sign = -1.0
		}
		row := make([]float64, nCols)
		for j, v := range p.eqA[i] {
			row[j] = sign * v
		}
		a = append(a, row)
		b = append(b, sign*p.eqB[i])
	}

	maxIter := p.iterLimit
	if maxIter <= 0 {
		maxIter = defaultIterLimit
	}
	opt, x, err := solveStandard(c, a, b, maxIter)
	if err != nil {
		return 0, nil, err
	}
	return opt, x[:p.nVars], nil
}
