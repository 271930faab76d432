package dimension

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Default search bounds for Equivalents.
const (
	DefaultMaxComposingDims = 5
	DefaultMaxExp           = 3
)

// EquivalentsOptions bounds the exhaustive equivalence search. Zero
// values fall back to the defaults; MaxCombinations of zero means the
// search is exhaustive.
type EquivalentsOptions struct {
	// MaxComposingDims is the maximum number of entries with nonzero
	// exponents in a reported equivalent.
	MaxComposingDims int
	// MaxExp is the exclusive bound on the absolute value of any
	// exponent in a reported equivalent.
	MaxExp int
	// MaxCombinations caps how many basis combinations are examined,
	// trading completeness for latency. Zero examines all of them.
	MaxCombinations int
}

func (o EquivalentsOptions) withDefaults() EquivalentsOptions {
	if o.MaxComposingDims == 0 {
		o.MaxComposingDims = DefaultMaxComposingDims
	}
	if o.MaxExp == 0 {
		o.MaxExp = DefaultMaxExp
	}
	return o
}

// Equivalents finds every dimension with the same primary decomposition
// as d that can be written with integer exponents over the catalog.
//
// Each combination of seven catalog entries spans a candidate basis;
// solving the 7x7 linear system of their primary vectors against d's
// primary decomposition yields the unique exponents in that basis, if
// any. Solutions with non-integer exponents or exponents at or beyond
// MaxExp are discarded, duplicates and d itself are dropped, and the
// rest are ordered by ascending absolute exponent sum before the
// MaxComposingDims filter is applied.
func (d Dimension) Equivalents(opts EquivalentsOptions) []Dimension {
	opts = opts.withDefaults()
	n := d.reg.DimCount()
	k := d.reg.PrimaryDimCount()
	target := d.PrimaryDecomposition()

	seen := make(map[string]bool)
	var solutions [][]float64

	combos := newCombinations(n, k)
	examined := 0
	for combos.next() {
		if opts.MaxCombinations > 0 && examined >= opts.MaxCombinations {
			break
		}
		examined++

		// Matrix columns are the primary vectors of the chosen entries.
		m := make([][]float64, k)
		for r := 0; r < k; r++ {
			row := make([]float64, k)
			for c, idx := range combos.current {
				row[c] = d.reg.Dim(idx).Primary[r]
			}
			m[r] = row
		}
		b := make([]float64, k)
		copy(b, target)

		sol, ok := solveSquare(m, b)
		if !ok {
			continue
		}

		vec, ok := integerVector(sol, combos.current, n, float64(opts.MaxExp))
		if !ok {
			continue
		}
		key := vectorKey(vec)
		if seen[key] {
			continue
		}
		seen[key] = true
		solutions = append(solutions, vec)
	}

	// Deterministic order: lexicographic within equal exponent sums.
	sort.Slice(solutions, func(i, j int) bool {
		return lexLess(solutions[i], solutions[j])
	})
	sort.SliceStable(solutions, func(i, j int) bool {
		return l1(solutions[i]) < l1(solutions[j])
	})

	var out []Dimension
	for _, vec := range solutions {
		if vectorsEqual(vec, d.vec) {
			continue
		}
		if nonzeroCount(vec) > opts.MaxComposingDims {
			continue
		}
		out = append(out, Dimension{reg: d.reg, vec: vec})
	}
	return out
}

// integerVector scatters a basis solution into a full catalog vector,
// rejecting it unless every exponent is an integer with absolute value
// strictly below maxExp.
func integerVector(sol []float64, idxs []int, n int, maxExp float64) ([]float64, bool) {
	vec := make([]float64, n)
	for i, v := range sol {
		r := math.Round(v)
		if math.Abs(v-r) > eps || math.Abs(r) >= maxExp {
			return nil, false
		}
		vec[idxs[i]] = r
	}
	return vec, true
}

func vectorKey(vec []float64) string {
	var b strings.Builder
	for _, v := range vec {
		b.WriteString(strconv.FormatInt(int64(v), 10))
		b.WriteByte(',')
	}
	return b.String()
}

func lexLess(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func nonzeroCount(vec []float64) int {
	n := 0
	for _, v := range vec {
		if v != 0 {
			n++
		}
	}
	return n
}

// combinations iterates k-subsets of {0..n-1} in lexicographic order.
type combinations struct {
	n, k    int
	current []int
	started bool
}

func newCombinations(n, k int) *combinations {
	return &combinations{n: n, k: k}
}

func (c *combinations) next() bool {
	if !c.started {
		c.started = true
		if c.k > c.n {
			return false
		}
		c.current = make([]int, c.k)
		for i := range c.current {
			c.current[i] = i
		}
		return true
	}
	// Advance the rightmost index that can still move.
	i := c.k - 1
	for i >= 0 && c.current[i] == c.n-c.k+i {
		i--
	}
	if i < 0 {
		return false
	}
	c.current[i]++
	for j := i + 1; j < c.k; j++ {
		c.current[j] = c.current[j-1] + 1
	}
	return true
}

// solveSquare solves m*x = b by Gaussian elimination with partial
// pivoting, destroying m and b. It reports false for singular systems.
func solveSquare(m [][]float64, b []float64) ([]float64, bool) {
	const pivotTol = 1e-12
	n := len(m)

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < pivotTol {
			return nil, false
		}
		m[col], m[pivot] = m[pivot], m[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			if f == 0 {
				continue
			}
			for c := col; c < n; c++ {
				m[r][c] -= f * m[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := b[r]
		for c := r + 1; c < n; c++ {
			sum -= m[r][c] * x[c]
		}
		x[r] = sum / m[r][r]
	}
	return x, true
}
