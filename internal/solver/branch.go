package solver

import (
	"math"
)

// Solution é a solução ótima encontrada para um MILP
type Solution struct {
	// Objective é o valor do objetivo no sentido definido pelo problema
	Objective float64
	// Values contém o valor de cada variável
	Values []float64
}

type fixing struct {
	index int
	value int // 0 ou 1
}

type node struct {
	fixed []fixing
}

// Solve resolve o problema por branch-and-bound com busca em profundidade.
// maxNodes limita o número de relaxações resolvidas; ao estourar o limite
// retorna ErrNodeLimit. Cada relaxação carrega ainda o limite de pivôs do
// simplex, então o tempo de uma chamada é sempre limitado. A ordem de
// ramificação é determinística, portanto empates degenerados resolvem
// sempre para a mesma solução.
func (p *Problem) Solve(maxNodes int) (*Solution, error) {
	if maxNodes <= 0 {
		maxNodes = 1 << 12
	}

	var (
		best     float64 // melhor objetivo no espaço de minimização
		bestX    []float64
		haveBest bool
	)

	stack := []node{{}}
	nodes := 0

	for len(stack) > 0 {
		if nodes >= maxNodes {
			return nil, ErrNodeLimit
		}
		nodes++

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		bound, x, err := p.solveRelaxation(p.fixingRows(nd.fixed))
		if err == ErrInfeasible {
			continue
		}
		if err != nil {
			return nil, err
		}

		// Poda por limite: a relaxação já não melhora o incumbente
		if haveBest && bound >= best-1e-9 {
			continue
		}

		branchVar := p.mostFractional(x)
		if branchVar < 0 {
			// Solução inteira nas binárias: novo incumbente
			best = bound
			bestX = append([]float64(nil), x...)
			haveBest = true
			continue
		}

		// Ramifica explorando primeiro o lado mais próximo da relaxação
		near := 0
		if x[branchVar] >= 0.5 {
			near = 1
		}
		stack = append(stack,
			node{fixed: appendFixing(nd.fixed, fixing{branchVar, 1 - near})},
			node{fixed: appendFixing(nd.fixed, fixing{branchVar, near})},
		)
	}

	if !haveBest {
		return nil, ErrInfeasible
	}

	obj := best
	if p.maximize {
		obj = -obj
	}
	return &Solution{Objective: obj, Values: bestX}, nil
}

// fixingRows converte as fixações de um nó em desigualdades extras
func (p *Problem) fixingRows(fixed []fixing) ([][]float64, []float64) {
	rowsA := make([][]float64, 0, len(fixed))
	rowsB := make([]float64, 0, len(fixed))
	for _, f := range fixed {
		row := make([]float64, p.nVars)
		if f.value == 0 {
			row[f.index] = 1 // y ≤ 0
			rowsB = append(rowsB, 0)
		} else {
			row[f.index] = -1 // -y ≤ -1, junto com y ≤ 1 fixa y = 1
			rowsB = append(rowsB, -1)
		}
		rowsA = append(rowsA, row)
	}
	return rowsA, rowsB
}

// mostFractional retorna a variável binária mais distante de um inteiro,
// ou -1 quando todas as binárias estão inteiras dentro da tolerância
func (p *Problem) mostFractional(x []float64) int {
	idx := -1
	worst := intTol
	for i, isBin := range p.binary {
		if !isBin {
			continue
		}
		frac := math.Abs(x[i] - math.Round(x[i]))
		if frac > worst {
			worst = frac
			idx = i
		}
	}
	return idx
}

func appendFixing(fixed []fixing, f fixing) []fixing {
	out := make([]fixing, len(fixed), len(fixed)+1)
	copy(out, fixed)
	return append(out, f)
}
