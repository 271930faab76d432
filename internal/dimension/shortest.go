package dimension

// ShortestComposition returns an equivalent dimension composed of the
// fewest catalog entries, found by greedily consuming the primary
// decomposition: at each step the entry whose primary vector, divided
// out of or multiplied into the residual, leaves the smallest absolute
// exponent sum is applied with a unit exponent. Division candidates win
// ties over multiplication, and lower registry indices win within each.
//
// The greedy walk converges whenever the residual exponents are
// integers, because every primary entry can consume one unit of the
// residual outright. Fractional residuals can stall it; when no
// candidate strictly improves the residual, the primary decomposition
// itself is returned.
func (d Dimension) ShortestComposition() Dimension {
	n := d.reg.DimCount()
	out := make([]float64, n)
	residual := d.PrimaryDecomposition()
	sum := l1(residual)

	for sum > eps {
		bestSum := -1.0
		bestIdx := -1
		bestExp := 0.0
		var bestResidual []float64

		// Division first: on equal residuals, prefer dividing by an
		// entry over multiplying with one.
		for _, sign := range []float64{-1, 1} {
			for i := 0; i < n; i++ {
				cand := applyPrimary(residual, d.reg.Dim(i).Primary, sign)
				if s := l1(cand); bestIdx < 0 || s < bestSum {
					bestSum = s
					bestIdx = i
					bestExp = -sign
					bestResidual = cand
				}
			}
		}

		if bestSum >= sum-eps {
			// Stalled on a fractional residual.
			return d.Primary()
		}
		out[bestIdx] += bestExp
		residual = bestResidual
		sum = bestSum
	}
	return Dimension{reg: d.reg, vec: out}
}

func applyPrimary(residual, primary []float64, sign float64) []float64 {
	out := make([]float64, len(residual))
	for i := range out {
		out[i] = residual[i] + sign*primary[i]
	}
	return out
}
