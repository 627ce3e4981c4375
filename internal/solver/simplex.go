package solver

import "math"

const (
	// pivotTol é a tolerância mínima para um elemento servir de pivô
	pivotTol = 1e-9
	// feasTol é a tolerância de viabilidade ao fim da fase 1
	feasTol = 1e-7
	// defaultIterLimit limita os pivôs de uma relaxação quando o chamador
	// não define um limite próprio
	defaultIterLimit = 20000
)

// solveStandard minimiza c·x sujeito a A·x = b, x ≥ 0, com b ≥ 0.
// Resolve pelo simplex tabular em duas fases com a regra de Bland, que
// não cicla mesmo em problemas degenerados. maxIter limita o total de
// pivôs das duas fases; ao estourar retorna ErrIterationLimit.
func solveStandard(c []float64, a [][]float64, b []float64, maxIter int) (float64, []float64, error) {
	m := len(a)
	n := len(c)
	if m == 0 {
		return 0, make([]float64, n), nil
	}
	total := n + m

	// Tabela com uma variável artificial por linha; a base inicial é a
	// identidade formada pelos artificiais
	tab := make([][]float64, m)
	rhs := make([]float64, m)
	basis := make([]int, m)
	for i := range a {
		tab[i] = make([]float64, total)
		copy(tab[i], a[i])
		tab[i][n+i] = 1
		rhs[i] = b[i]
		basis[i] = n + i
	}

	iter := 0

	// Fase 1: minimiza a soma dos artificiais
	obj := make([]float64, total)
	objRHS := 0.0
	for j := n; j < total; j++ {
		obj[j] = 1
	}
	for i := range tab {
		for j, v := range tab[i] {
			obj[j] -= v
		}
		objRHS -= rhs[i]
	}
	anyCol := func(int) bool { return true }
	if err := iterate(tab, rhs, basis, obj, &objRHS, anyCol, maxIter, &iter); err != nil {
		if err == ErrUnbounded {
			// A fase 1 é limitada inferiormente por zero
			return 0, nil, ErrInfeasible
		}
		return 0, nil, err
	}
	if -objRHS > feasTol {
		return 0, nil, ErrInfeasible
	}

	// Expulsa artificiais remanescentes da base com pivôs degenerados.
	// Linhas sem coluna real não nula são redundantes e ficam como estão.
	for i := range basis {
		if basis[i] < n {
			continue
		}
		for j := 0; j < n; j++ {
			if math.Abs(tab[i][j]) > pivotTol {
				pivot(tab, rhs, basis, i, j)
				break
			}
		}
	}

	// Fase 2: custo original; artificiais nunca voltam à base
	for j := range obj {
		obj[j] = 0
	}
	copy(obj, c)
	objRHS = 0
	for i, bi := range basis {
		if bi >= n || c[bi] == 0 {
			continue
		}
		cb := c[bi]
		for j, v := range tab[i] {
			obj[j] -= cb * v
		}
		objRHS -= cb * rhs[i]
	}
	realCol := func(j int) bool { return j < n }
	if err := iterate(tab, rhs, basis, obj, &objRHS, realCol, maxIter, &iter); err != nil {
		return 0, nil, err
	}

	x := make([]float64, n)
	for i, bi := range basis {
		if bi < n {
			x[bi] = rhs[i]
		}
	}
	return -objRHS, x, nil
}

// iterate executa pivôs até a otimalidade da fase corrente. allowed
// restringe as colunas candidatas a entrar na base. A linha de objetivo
// carrega os custos reduzidos e objRHS o valor negado do objetivo.
func iterate(tab [][]float64, rhs []float64, basis []int, obj []float64, objRHS *float64, allowed func(int) bool, maxIter int, iter *int) error {
	for {
		// Bland: entra a coluna de menor índice com custo reduzido negativo
		enter := -1
		for j := range obj {
			if obj[j] < -pivotTol && allowed(j) {
				enter = j
				break
			}
		}
		if enter < 0 {
			return nil
		}
		if *iter >= maxIter {
			return ErrIterationLimit
		}
		*iter++

		// Razão mínima; empates resolvem pelo menor índice básico
		leave := -1
		var best float64
		for i := range tab {
			piv := tab[i][enter]
			if piv <= pivotTol {
				continue
			}
			ratio := rhs[i] / piv
			switch {
			case leave < 0 || ratio < best-pivotTol:
				leave, best = i, ratio
			case ratio <= best+pivotTol && basis[i] < basis[leave]:
				leave, best = i, ratio
			}
		}
		if leave < 0 {
			return ErrUnbounded
		}

		pivot(tab, rhs, basis, leave, enter)
		if f := obj[enter]; f != 0 {
			for j, v := range tab[leave] {
				obj[j] -= f * v
			}
			*objRHS -= f * rhs[leave]
		}
	}
}

// pivot troca a variável básica da linha p pela coluna q
func pivot(tab [][]float64, rhs []float64, basis []int, p, q int) {
	pr := tab[p]
	f := pr[q]
	for j := range pr {
		pr[j] /= f
	}
	pr[q] = 1
	rhs[p] /= f

	for i := range tab {
		if i == p {
			continue
		}
		f := tab[i][q]
		if f == 0 {
			continue
		}
		row := tab[i]
		for j := range row {
			row[j] -= f * pr[j]
		}
		row[q] = 0
		rhs[i] -= f * rhs[p]
		if rhs[i] < 0 && rhs[i] > -pivotTol {
			rhs[i] = 0
		}
	}
	basis[p] = q
}
